package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"csfix/internal/config"
	"csfix/internal/prof"
)

// settings are csfix.toml values with command-line overrides applied.
type settings struct {
	manifest *config.Manifest
	found    bool
	color    config.Switch
	ui       config.Switch
	jobs     int
	timings  bool
	trace    config.TraceConfig
	cleanup  func(failed bool)
	profile  *prof.Session

	// failedFiles is filled by check so a ring dump can focus on them.
	failedFiles map[string]bool
}

type settingsKey struct{}

func withSettings(ctx context.Context, s *settings) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, settingsKey{}, s)
}

func settingsFrom(ctx context.Context) *settings {
	if ctx == nil {
		return nil
	}
	s, _ := ctx.Value(settingsKey{}).(*settings)
	return s
}

func resolveSettings(cmd *cobra.Command) (*settings, error) {
	flags := cmd.Root().PersistentFlags()

	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	var (
		manifest *config.Manifest
		found    bool
	)
	if configPath != "" {
		manifest, err = config.Load(configPath)
		found = true
	} else {
		manifest, found, err = config.Discover(".")
	}
	if err != nil {
		return nil, err
	}

	cfg := manifest.Config
	s := &settings{
		manifest: manifest,
		found:    found,
		jobs:     cfg.Run.Jobs,
		trace:    cfg.Trace,
	}
	if s.color, err = readSwitch(flags, "color", cfg.Run.Color); err != nil {
		return nil, err
	}
	if s.ui, err = readSwitch(flags, "ui", cfg.Run.UI); err != nil {
		return nil, err
	}
	if flags.Changed("jobs") {
		if s.jobs, err = flags.GetInt("jobs"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("trace-level") {
		if s.trace.Level, err = flags.GetString("trace-level"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("trace-mode") {
		if s.trace.Mode, err = flags.GetString("trace-mode"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("trace-format") {
		if s.trace.Format, err = flags.GetString("trace-format"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("trace") {
		if s.trace.Output, err = flags.GetString("trace"); err != nil {
			return nil, err
		}
	}
	if s.timings, err = flags.GetBool("timings"); err != nil {
		return nil, err
	}
	if s.jobs < 0 {
		return nil, fmt.Errorf("--jobs must be >= 0, got %d", s.jobs)
	}
	return s, nil
}

// readSwitch resolves an auto|on|off setting: the flag when given, the
// csfix.toml value otherwise. Errors name whichever one was used.
func readSwitch(flags *pflag.FlagSet, name, fromConfig string) (config.Switch, error) {
	value, origin := fromConfig, "[run]."+name
	if flags.Changed(name) {
		v, err := flags.GetString(name)
		if err != nil {
			return "", err
		}
		value, origin = v, "--"+name
	}
	sw, err := config.ParseSwitch(value)
	if err != nil {
		return "", fmt.Errorf("%s %w", origin, err)
	}
	return sw, nil
}

// enabled decides an auto switch by whether stdout is a terminal.
func enabled(sw config.Switch) bool {
	switch sw {
	case config.SwitchOn:
		return true
	case config.SwitchOff:
		return false
	default:
		return isTerminal(os.Stdout)
	}
}

// applyColor sets the global color switch used by fatih/color.
func applyColor(sw config.Switch) {
	color.NoColor = !enabled(sw)
}

func colorEnabled() bool { return !color.NoColor }
