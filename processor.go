package main

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	gitignore "github.com/monochromegane/go-gitignore"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// QueryFileSize looks up the size of a single regular file.
// Every call stats the path again; nothing is cached.
func QueryFileSize(fsys afero.Fs, path string) (FileSizeReport, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return FileSizeReport{}, ErrNoFilename
	}

	info, err := fsys.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return FileSizeReport{}, errors.Mark(err, ErrNotFound)
		}
		return FileSizeReport{}, errors.Mark(err, ErrIOFailure)
	}

	if !info.Mode().IsRegular() {
		return FileSizeReport{}, errors.Wrapf(ErrNotRegularFile, "%s", path)
	}

	return NewFileSizeReport(path, info.Size()), nil
}

// candidateOptions filters the paths offered by the file picker.
type candidateOptions struct {
	ShowHidden bool
	NoIgnore   bool
}

// listFileCandidates walks root and returns the regular files a user can pick,
// skipping hidden entries and anything matched by root's .gitignore.
func listFileCandidates(fsys afero.Fs, root string, opts candidateOptions, log *zap.Logger) ([]string, error) {
	var ignoreMatcher gitignore.IgnoreMatcher
	if !opts.NoIgnore {
		ignoreMatcher = loadGitIgnore(fsys, root, log)
	}

	var candidates []string
	err := afero.Walk(fsys, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			log.Debug("Skipping unreadable path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if path == root {
			return nil
		}

		isDir := info.IsDir()
		if !opts.ShowHidden && isHidden(info.Name()) {
			if isDir {
				return filepath.SkipDir
			}
			return nil
		}

		// The matcher resolves path against root itself.
		if ignoreMatcher != nil && ignoreMatcher.Match(path, isDir) {
			if isDir {
				return filepath.SkipDir
			}
			return nil
		}

		if info.Mode().IsRegular() {
			candidates = append(candidates, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walk %s", root)
	}
	return candidates, nil
}

func loadGitIgnore(fsys afero.Fs, root string, log *zap.Logger) gitignore.IgnoreMatcher {
	gitIgnorePath := filepath.Join(root, ".gitignore")
	f, err := fsys.Open(gitIgnorePath)
	if err != nil {
		return nil
	}
	defer f.Close()

	log.Debug("Using ignore file", zap.String("path", gitIgnorePath))
	return gitignore.NewGitIgnoreFromReader(root, f)
}

// isHidden checks if a file path is hidden (starts with '.').
func isHidden(path string) bool {
	if path == "." || path == ".." {
		return false
	}
	baseName := filepath.Base(path)
	return len(baseName) > 0 && baseName[0] == '.'
}
