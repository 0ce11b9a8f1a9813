package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

type lineResult struct {
	line string
	err  error
}

// Prompter writes a label and reads one line of input per call.
//
// Reads happen on a background goroutine so that a blocked prompt can be
// abandoned when ctx is cancelled, which is how an interrupt reaches the loop.
// The goroutine only reads when a prompt asks for a line, so input typed
// while no prompt is active (for example into the file picker) is left alone.
type Prompter struct {
	out      io.Writer
	log      *zap.Logger
	requests chan struct{}
	lines    chan lineResult
	done     chan struct{}
	once     sync.Once

	// pending is set while a requested line has not been received yet,
	// e.g. after a cancelled prompt. Only touched by ReadLine's caller.
	pending bool
}

// NewPrompter starts the reader for in. Call Close to stop it.
func NewPrompter(in io.Reader, out io.Writer, log *zap.Logger) *Prompter {
	p := &Prompter{
		out:      out,
		log:      log,
		requests: make(chan struct{}),
		lines:    make(chan lineResult),
		done:     make(chan struct{}),
	}
	go p.readLoop(in)
	return p
}

// readLoop performs exactly one ReadString per request. Once the reader
// fails, every later request gets the same error.
func (p *Prompter) readLoop(in io.Reader) {
	defer close(p.lines)
	reader := bufio.NewReader(in)
	var readErr error
	for {
		select {
		case <-p.requests:
		case <-p.done:
			return
		}

		if readErr != nil {
			if !p.send(lineResult{err: readErr}) {
				return
			}
			continue
		}

		text, err := reader.ReadString('\n')
		readErr = err
		res := lineResult{line: text}
		// An unterminated final line is still a line; the error follows on
		// the next request.
		if err != nil && text == "" {
			res = lineResult{err: err}
		}
		if !p.send(res) {
			return
		}
	}
}

func (p *Prompter) send(res lineResult) bool {
	select {
	case p.lines <- res:
		return true
	case <-p.done:
		return false
	}
}

// ReadLine prints label and returns the next input line with surrounding
// whitespace removed. It returns io.EOF at end of input and ErrInterrupted
// when ctx is cancelled, without printing label if that already happened.
func (p *Prompter) ReadLine(ctx context.Context, label string) (string, error) {
	if ctx.Err() != nil {
		return "", ErrInterrupted
	}

	_, _ = fmt.Fprint(p.out, label)

	if !p.pending {
		select {
		case p.requests <- struct{}{}:
			p.pending = true
		case <-ctx.Done():
			return "", p.cancelled(ctx, label)
		case <-p.done:
			return "", io.EOF
		}
	}

	select {
	case <-ctx.Done():
		return "", p.cancelled(ctx, label)
	case res, ok := <-p.lines:
		p.pending = false
		if !ok {
			return "", io.EOF
		}
		if res.err != nil {
			if errors.Is(res.err, io.EOF) {
				return "", io.EOF
			}
			p.log.Error("Failed to read user input", zap.Error(res.err))
			return "", errors.Wrap(res.err, "read input")
		}
		value := strings.TrimSpace(res.line)
		p.log.Debug("User input received", zap.String("label", label), zap.String("value", value))
		return value, nil
	}
}

func (p *Prompter) cancelled(ctx context.Context, label string) error {
	p.log.Debug("Prompt cancelled", zap.String("label", label), zap.Error(ctx.Err()))
	return ErrInterrupted
}

// Close stops the background reader. A read already blocked on the
// underlying reader returns when that reader does.
func (p *Prompter) Close() {
	p.once.Do(func() { close(p.done) })
}
