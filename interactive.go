package main

import (
	"bytes"
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// fuzzyPicker offers the regular files under root in a fuzzy finder.
type fuzzyPicker struct {
	fs   afero.Fs
	root string
	opts candidateOptions
	log  *zap.Logger
}

func newFuzzyPicker(fsys afero.Fs, root string, opts candidateOptions, log *zap.Logger) *fuzzyPicker {
	return &fuzzyPicker{fs: fsys, root: root, opts: opts, log: log}
}

// Pick runs the finder and returns the chosen path.
func (p *fuzzyPicker) Pick(_ context.Context) (string, error) {
	candidates, err := listFileCandidates(p.fs, p.root, p.opts, p.log)
	if err != nil {
		return "", errors.Wrap(err, "scan for files")
	}
	if len(candidates) == 0 {
		return "", errors.Newf("no files found under %s", p.root)
	}

	idx, err := fuzzyfinder.Find(
		candidates,
		func(i int) string {
			return candidates[i]
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return "Select a file. Enter to confirm, Esc to cancel."
			}
			return previewFileSize(p.fs, candidates[i])
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", ErrSelectionAborted
		}
		return "", errors.Wrap(err, "fuzzy finder")
	}

	p.log.Debug("File picked", zap.String("path", candidates[idx]))
	return candidates[idx], nil
}

// previewFileSize renders the same report calc would print.
func previewFileSize(fsys afero.Fs, path string) string {
	var buf bytes.Buffer
	pr := newPrinter(&buf)
	report, err := QueryFileSize(fsys, path)
	if err != nil {
		pr.printQueryError(path, err)
		return buf.String()
	}
	pr.printFileSizeReport(report)
	return strings.TrimPrefix(buf.String(), "\n")
}
