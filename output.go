package main

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cockroachdb/errors"
)

const appName = "CLI File Manager"

// printer renders all user-facing text. Titles are bold on a terminal and
// plain everywhere else.
type printer struct {
	out   io.Writer
	title lipgloss.Style
}

func newPrinter(out io.Writer) *printer {
	r := lipgloss.NewRenderer(out)
	return &printer{out: out, title: r.NewStyle().Bold(true)}
}

func (p *printer) println(a ...any) {
	_, _ = fmt.Fprintln(p.out, a...)
}

func (p *printer) printf(format string, a ...any) {
	_, _ = fmt.Fprintf(p.out, format, a...)
}

func (p *printer) rule(width int) {
	p.println(strings.Repeat("=", width))
}

func (p *printer) heading(width int, text string) {
	p.println()
	p.rule(width)
	p.println(p.title.Render(text))
	p.rule(width)
}

func (p *printer) printWelcome() {
	p.rule(50)
	p.println(p.title.Render("   Welcome to " + appName + "!"))
	p.rule(50)
	p.println("This is a simple file manager that reports")
	p.println("the size of a file in bytes, kilobytes and")
	p.println("megabytes.")
	p.println()
}

func (p *printer) printMenu() {
	p.println()
	p.println("Available commands:")
	p.println("1. help - Show this help message")
	p.println("2. calc - Calculate file size")
	p.println("3. info - Show program information")
	p.println("4. quit - Exit the program")
	p.println()
}

func (p *printer) printHelp() {
	p.heading(40, "           HELP - Available Commands")
	p.println("help  - Display this help message")
	p.println("calc  - Calculate the size of a file")
	p.println("        You'll be prompted to enter a filename")
	p.println("info  - Show information about this program")
	p.println("quit  - Exit the file manager")
	p.println()
	p.println("Tips:")
	p.println("- File paths can be relative or absolute")
	p.println("- Enter ? at the filename prompt to pick a file interactively")
	p.println("- Press Ctrl-C or Ctrl-D at any prompt to leave")
	p.rule(40)
}

func (p *printer) printInfo() {
	p.heading(40, "         PROGRAM INFORMATION")
	p.println("Program: " + appName)
	p.println("Purpose: Report file sizes from an interactive menu")
	p.println("Features:")
	p.println("  - File size calculation")
	p.println("  - Interactive command system")
	p.println("  - Help system")
	p.println("  - Fuzzy file picker")
	p.println()
	p.println("Version:", version)
	p.println("Go Version:", runtime.Version())
	p.rule(40)
}

// printFileSizeReport always prints the byte count; the KB and MB lines are
// checked independently.
func (p *printer) printFileSizeReport(r FileSizeReport) {
	p.printf("\nFile: %s\n", r.Path)
	p.printf("Size: %d bytes\n", r.SizeBytes)
	if r.ShowKB() {
		p.printf("Size: %.2f KB\n", r.SizeKB)
	}
	if r.ShowMB() {
		p.printf("Size: %.2f MB\n", r.SizeMB)
	}
}

// printQueryError turns a QueryFileSize error into the line shown to the user.
func (p *printer) printQueryError(path string, err error) {
	path = strings.TrimSpace(path)
	switch {
	case errors.Is(err, ErrNoFilename):
		p.println("Error: No filename provided.")
	case errors.Is(err, ErrNotFound):
		p.printf("Error: File '%s' not found.\n", path)
	case errors.Is(err, ErrNotRegularFile):
		p.printf("Error: '%s' is not a regular file.\n", path)
	case errors.Is(err, ErrIOFailure):
		p.printf("Error reading file: %v\n", err)
	default:
		p.printf("Unexpected error: %v\n", err)
	}
}

func (p *printer) printGoodbye(opts DispatchOptions) {
	p.printf("\n%s\n", opts.GoodbyeMessage)
	p.println("Goodbye!")
}

func (p *printer) printInvalidChoice(choice string, opts DispatchOptions) {
	p.printf("\n%s '%s'\n", opts.InvalidChoicePrefix, choice)
	p.printf("Please enter one of: %s\n", opts.ValidCommands)
}

// printFarewell is used when the input stream ends or is interrupted rather
// than on quit, so it always uses the default goodbye text.
func (p *printer) printFarewell(err error) {
	if errors.Is(err, ErrInterrupted) {
		p.println("\n\nProgram interrupted by user.")
	} else {
		p.println("\n\nEnd of input detected.")
	}
	p.println(defaultGoodbyeMessage)
}
