package main

import (
	"context"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const (
	choicePrompt   = "Enter your choice (help/calc/info/quit): "
	filenamePrompt = "Enter the filename (with path if needed): "
	pickerToken    = "?"
)

// PathPicker lets the user choose a file instead of typing its path.
type PathPicker interface {
	Pick(ctx context.Context) (string, error)
}

// Session is one run of the interactive menu.
type Session struct {
	prompter *Prompter
	out      *printer
	fs       afero.Fs
	picker   PathPicker // nil disables "?" at the filename prompt
	opts     DispatchOptions
	log      *zap.Logger
}

// NewSession wires a menu session. picker may be nil.
func NewSession(prompter *Prompter, out io.Writer, fsys afero.Fs, picker PathPicker, opts DispatchOptions, log *zap.Logger) *Session {
	return &Session{
		prompter: prompter,
		out:      newPrinter(out),
		fs:       fsys,
		picker:   picker,
		opts:     opts,
		log:      log,
	}
}

// Run prints the banner and serves commands until quit, end of input or an
// interrupt. The last two print a farewell and are not reported as errors.
func (s *Session) Run(ctx context.Context) error {
	s.out.printWelcome()

	state := StateRunning
	for state == StateRunning {
		choice, err := s.readChoice(ctx)
		if err == nil {
			state, err = s.ProcessCommand(ctx, choice, state, s.opts)
		}
		if err != nil {
			if !isStreamTermination(err) {
				return err
			}
			s.log.Debug("Input stream ended", zap.Error(err))
			s.out.printFarewell(err)
			state = StateStopped
		}
	}
	s.log.Debug("Command loop stopped")
	return nil
}

func (s *Session) readChoice(ctx context.Context) (string, error) {
	s.out.printMenu()
	choice, err := s.prompter.ReadLine(ctx, choicePrompt)
	if err != nil {
		return "", err
	}
	return strings.ToLower(choice), nil
}

// ProcessCommand dispatches one command token and returns the next loop
// state. Only quit moves the loop to StateStopped. The returned error is
// non-nil only when the filename prompt hits end of input or an interrupt.
func (s *Session) ProcessCommand(ctx context.Context, choice string, state LoopState, opts DispatchOptions) (LoopState, error) {
	s.log.Debug("Dispatching command", zap.String("choice", choice), zap.Stringer("state", state))

	switch Command(choice) {
	case CommandHelp:
		s.out.printHelp()
	case CommandCalc:
		if err := s.calculateFileSize(ctx); err != nil {
			return state, err
		}
	case CommandInfo:
		s.out.printInfo()
	case CommandQuit:
		if opts.ShowGoodbye {
			s.out.printGoodbye(opts)
		}
		return StateStopped, nil
	default:
		s.out.printInvalidChoice(choice, opts)
	}
	return state, nil
}

// calculateFileSize prompts for a path and prints its size. Query failures
// are printed and swallowed.
func (s *Session) calculateFileSize(ctx context.Context) error {
	filename, err := s.prompter.ReadLine(ctx, filenamePrompt)
	if err != nil {
		return err
	}

	if filename == pickerToken && s.picker != nil {
		filename, err = s.picker.Pick(ctx)
		if err != nil {
			if errors.Is(err, ErrSelectionAborted) {
				s.out.println("File selection aborted.")
				return nil
			}
			s.out.printf("Error selecting file: %v\n", err)
			return nil
		}
	}

	report, err := QueryFileSize(s.fs, filename)
	if err != nil {
		if errors.Is(err, ErrIOFailure) {
			s.log.Warn("Could not read file metadata", zap.String("path", filename), zap.Error(err))
		}
		s.out.printQueryError(filename, err)
		return nil
	}

	s.out.printFileSizeReport(report)
	return nil
}
