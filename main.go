package main

import (
	"os"
	"os/signal"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

var (
	cfgFile string // optional TOML file with message overrides
	verbose bool

	// Picker
	showHidden bool
	noIgnore   bool
)

// version is the application version, set via ldflags.
var version string = "dev"

// Viper keys for DispatchOptions.
const (
	keyShowGoodbye         = "show_goodbye"
	keyGoodbyeMessage      = "goodbye_message"
	keyInvalidChoicePrefix = "invalid_choice_prefix"
	keyValidCommands       = "valid_commands"
)

var rootCmd = &cobra.Command{
	Use:   "fileman",
	Short: "fileman is an interactive menu for checking file sizes.",
	Long: `fileman prompts for commands and reports the size of a file in bytes,
and in kilobytes and megabytes once the file is large enough.`,
	Version:      version,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger(verbose)
		defer func() { _ = log.Sync() }()

		opts := dispatchOptionsFrom(viper.GetViper())
		log.Debug("Effective configuration",
			zap.String("config_file", viper.ConfigFileUsed()),
			zap.Bool(keyShowGoodbye, opts.ShowGoodbye),
			zap.String(keyGoodbyeMessage, opts.GoodbyeMessage),
			zap.String(keyInvalidChoicePrefix, opts.InvalidChoicePrefix),
			zap.String(keyValidCommands, opts.ValidCommands),
		)

		// Ctrl-C ends a blocked prompt instead of killing the process.
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		fsys := afero.NewOsFs()

		var picker PathPicker
		if term.IsTerminal(int(os.Stdin.Fd())) {
			picker = newFuzzyPicker(fsys, ".", candidateOptions{ShowHidden: showHidden, NoIgnore: noIgnore}, log)
		} else {
			log.Debug("stdin is not a terminal, file picker disabled")
		}

		prompter := NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout(), log)
		defer prompter.Close()

		session := NewSession(prompter, cmd.OutOrStdout(), fsys, picker, opts, log)
		return session.Run(ctx)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "TOML file overriding the menu messages")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log diagnostics to stderr")

	rootCmd.Flags().BoolVarP(&showHidden, "hidden", "H", false, "Offer hidden files in the file picker")
	rootCmd.Flags().BoolVar(&noIgnore, "no-ignore", false, "Don't respect .gitignore in the file picker")

	setDispatchDefaults(viper.GetViper())
}

// setDispatchDefaults registers the documented defaults for every DispatchOptions field.
func setDispatchDefaults(v *viper.Viper) {
	defaults := DefaultDispatchOptions()
	v.SetDefault(keyShowGoodbye, defaults.ShowGoodbye)
	v.SetDefault(keyGoodbyeMessage, defaults.GoodbyeMessage)
	v.SetDefault(keyInvalidChoicePrefix, defaults.InvalidChoicePrefix)
	v.SetDefault(keyValidCommands, defaults.ValidCommands)
}

// initConfig reads the config file named by --config. Without the flag only
// the defaults apply; the environment is never consulted.
func initConfig() error {
	if cfgFile == "" {
		return nil
	}
	viper.SetConfigFile(cfgFile)
	if err := viper.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "reading config file %s", cfgFile)
	}
	return nil
}

func dispatchOptionsFrom(v *viper.Viper) DispatchOptions {
	return DispatchOptions{
		ShowGoodbye:         v.GetBool(keyShowGoodbye),
		GoodbyeMessage:      v.GetString(keyGoodbyeMessage),
		InvalidChoicePrefix: v.GetString(keyInvalidChoicePrefix),
		ValidCommands:       v.GetString(keyValidCommands),
	}
}

// newLogger writes human-readable diagnostics to stderr so stdout stays
// reserved for the menu.
func newLogger(verbose bool) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), level)
	return zap.New(core)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
