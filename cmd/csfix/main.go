package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"csfix/internal/prof"
	"csfix/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "csfix",
	Short: "Token-stream toolkit for PHP style fixing",
	Long: `csfix tokenizes PHP sources into mutable token streams, verifies that
they render back byte for byte and exposes the structural queries style rules
are built on.`,
	SilenceUsage:      true,
	PersistentPreRunE: preRun,
}

// active is set by preRun and released by shutdown once Execute returns,
// whether or not the command failed.
var active *settings

// main registers subcommands and persistent flags, then executes the root
// command. A failed command exits with status 1.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(versionCmd)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "path to csfix.toml (default: search upwards from the working directory)")
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("timings", false, "show timing information")
	flags.Int("jobs", 0, "max parallel files (0 = GOMAXPROCS)")
	flags.String("ui", "auto", "progress UI (auto|on|off)")
	flags.String("trace", "", "trace output file (- for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	flags.String("trace-format", "auto", "trace format (auto|text|ndjson); auto picks ndjson for *.ndjson and *.jsonl outputs")
	flags.Int("trace-ring-size", 4096, "events kept by the ring tracer")
	flags.Duration("trace-heartbeat", 0, "emit a heartbeat event at this interval (0 = off)")
	flags.String("cpu-profile", "", "write a CPU profile to this file")
	flags.String("mem-profile", "", "write a heap profile to this file on exit")
	flags.String("runtime-trace", "", "write a Go runtime trace to this file")

	err := rootCmd.Execute()
	if shutdownErr := shutdown(err != nil); shutdownErr != nil {
		fmt.Fprintln(os.Stderr, shutdownErr)
	}
	if err != nil {
		os.Exit(1)
	}
}

func preRun(cmd *cobra.Command, _ []string) error {
	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	applyColor(s.color)
	cleanup, err := setupTracing(cmd, s)
	if err != nil {
		return err
	}
	s.cleanup = cleanup
	if s.profile, err = startProfiling(cmd); err != nil {
		cleanup(false)
		return err
	}
	active = s
	cmd.SetContext(withSettings(cmd.Context(), s))
	return nil
}

// shutdown releases what preRun set up. failed reports whether the command
// returned an error.
func shutdown(failed bool) error {
	s := active
	if s == nil {
		return nil
	}
	active = nil
	if s.cleanup != nil {
		s.cleanup(failed)
	}
	if err := s.profile.Stop(); err != nil {
		return fmt.Errorf("profiling: %w", err)
	}
	return nil
}

func startProfiling(cmd *cobra.Command) (*prof.Session, error) {
	flags := cmd.Root().PersistentFlags()
	var opts prof.Options
	var err error
	if opts.CPU, err = flags.GetString("cpu-profile"); err != nil {
		return nil, err
	}
	if opts.Mem, err = flags.GetString("mem-profile"); err != nil {
		return nil, err
	}
	if opts.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return nil, err
	}
	if !opts.Enabled() {
		return nil, nil
	}
	return prof.Start(opts)
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
