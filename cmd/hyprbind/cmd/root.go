// Package cmd implements the hyprbind CLI commands.
//
// The root command resolves the project configuration and logger once, in
// its persistent pre-run, and hands both to the subcommands registered with
// RegisterCommand (run, check, version).
package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/hyprbind/hyprbind/cmd/hyprbind/internal/config"
	"github.com/hyprbind/hyprbind/pkg/errors"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// app is the state shared by every command of one invocation.
type app struct {
	dir      string
	logLevel string
	library  string
	verbose  bool

	cfg    *config.Resolved
	logger *log.Logger
}

// CommandFunc builds a subcommand bound to the invocation state.
type CommandFunc func(a *app) *cobra.Command

// Commands registered with the CLI, in registration order.
var commands []CommandFunc

// RegisterCommand adds a command to the CLI.
func RegisterCommand(fn CommandFunc) {
	commands = append(commands, fn)
}

// NewRootCommand returns a fresh command tree writing to stdout and stderr.
func NewRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "hyprbind",
		Short: "Build native windows from YAML layouts",
		Long: `hyprbind builds windows described in YAML layout files on the
native toolkit shim (libhyprbind) and runs their event loop.

Use "hyprbind <command> --help" for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.ErrOrStderr(), cmd.Flags().Changed("log-level"))
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.dir, "dir", "C", ".", "project directory holding "+config.FileName)
	flags.StringVar(&a.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flags.StringVar(&a.library, "library", "", "path to the native toolkit library (overrides "+config.LibraryEnv+")")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "include stack traces in error reports")

	for _, fn := range commands {
		root.AddCommand(fn(a))
	}
	return root
}

// Execute runs the CLI with os.Args.
func Execute() error {
	root := NewRootCommand()
	err := root.Execute()
	if err != nil {
		fmt.Fprintf(root.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}

// setup resolves the project config and builds the logger. An explicit
// --log-level wins over the config file.
func (a *app) setup(stderr io.Writer, levelFlagSet bool) error {
	root, err := config.FindProjectRoot(a.dir)
	if err != nil {
		return err
	}
	cfg, err := config.Resolve(root)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if levelFlagSet {
		level, err := log.ParseLevel(strings.TrimSpace(a.logLevel))
		if err != nil {
			return fmt.Errorf("--log-level: %w", err)
		}
		cfg.LogLevel = level
	}
	if a.library != "" {
		cfg.LibraryPath = a.library
	}
	if a.verbose {
		cfg.Verbose = true
	}
	a.cfg = cfg

	a.logger = log.NewWithOptions(stderr, log.Options{
		Prefix:          "hyprbind",
		Level:           cfg.LogLevel,
		ReportTimestamp: cfg.LogLevel <= log.DebugLevel,
	})
	errors.SetHandler(&errors.LogHandler{Logger: a.logger, Verbose: cfg.Verbose})
	a.logger.Debug("config resolved", "root", cfg.Root, "app", cfg.AppID, "library", cfg.LibraryPath)
	return nil
}
