package main

import (
	"io"

	"github.com/cockroachdb/errors"
)

var (
	// ErrNoFilename is returned when the filename prompt was answered with blanks.
	ErrNoFilename = errors.New("no filename provided")
	// ErrNotFound marks a path that does not resolve to any filesystem entry.
	ErrNotFound = errors.New("file not found")
	// ErrNotRegularFile marks a directory, device or other special node.
	ErrNotRegularFile = errors.New("not a regular file")
	// ErrIOFailure marks any other failure while reading file metadata.
	ErrIOFailure = errors.New("i/o failure")

	// ErrInterrupted is returned by a prompt cancelled by an interrupt signal.
	ErrInterrupted = errors.New("interrupted")
	// ErrSelectionAborted is returned when the user leaves the file picker.
	ErrSelectionAborted = errors.New("selection aborted")
)

// isStreamTermination reports whether err ends the command loop gracefully.
func isStreamTermination(err error) bool {
	return errors.Is(err, ErrInterrupted) || errors.Is(err, io.EOF)
}
