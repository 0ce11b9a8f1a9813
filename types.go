package main

// Command is a menu token typed at the command prompt.
type Command string

const (
	CommandHelp Command = "help"
	CommandCalc Command = "calc"
	CommandInfo Command = "info"
	CommandQuit Command = "quit"
)

// LoopState is the state of the command loop.
type LoopState int

const (
	StateRunning LoopState = iota
	StateStopped
)

func (s LoopState) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

const (
	bytesPerKB = 1024
	bytesPerMB = bytesPerKB * 1024
)

// FileSizeReport holds the size of a single file in the units shown to the user.
// It is computed on demand and never stored.
type FileSizeReport struct {
	Path      string
	SizeBytes int64
	SizeKB    float64
	SizeMB    float64
}

// NewFileSizeReport derives the KB and MB figures from a byte count.
func NewFileSizeReport(path string, sizeBytes int64) FileSizeReport {
	sizeKB := float64(sizeBytes) / bytesPerKB
	return FileSizeReport{
		Path:      path,
		SizeBytes: sizeBytes,
		SizeKB:    sizeKB,
		SizeMB:    sizeKB / 1024,
	}
}

// ShowKB reports whether the kilobyte line is printed.
func (r FileSizeReport) ShowKB() bool { return r.SizeBytes >= bytesPerKB }

// ShowMB reports whether the megabyte line is printed. Independent of ShowKB.
func (r FileSizeReport) ShowMB() bool { return r.SizeBytes >= bytesPerMB }

// DispatchOptions controls the messages printed by the command dispatcher.
// Use DefaultDispatchOptions as the starting point and override single fields.
type DispatchOptions struct {
	ShowGoodbye         bool   // print GoodbyeMessage on quit
	GoodbyeMessage      string
	InvalidChoicePrefix string
	ValidCommands       string // echoed verbatim after an unrecognized token
}

const (
	defaultGoodbyeMessage      = "Thank you for using Python CLI File Manager!"
	defaultInvalidChoicePrefix = "Invalid choice:"
	defaultValidCommands       = "help, calc, info, quit"
)

// DefaultDispatchOptions returns the options used when nothing is configured.
func DefaultDispatchOptions() DispatchOptions {
	return DispatchOptions{
		ShowGoodbye:         true,
		GoodbyeMessage:      defaultGoodbyeMessage,
		InvalidChoicePrefix: defaultInvalidChoicePrefix,
		ValidCommands:       defaultValidCommands,
	}
}
