package main

import (
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"csfix/internal/config"
)

func switchFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("csfix", pflag.ContinueOnError)
	flags.String("ui", "auto", "")
	flags.String("color", "auto", "")
	return flags
}

func TestReadSwitch(t *testing.T) {
	flags := switchFlags()
	for in, want := range map[string]config.Switch{
		"":     config.SwitchAuto,
		"AUTO": config.SwitchAuto,
		" on ": config.SwitchOn,
		"off":  config.SwitchOff,
	} {
		got, err := readSwitch(flags, "ui", in)
		if err != nil || got != want {
			t.Fatalf("readSwitch(%q) = %q, %v", in, got, err)
		}
	}

	if err := flags.Set("color", "off"); err != nil {
		t.Fatal(err)
	}
	if got, err := readSwitch(flags, "color", "on"); err != nil || got != config.SwitchOff {
		t.Fatalf("flag must override csfix.toml: %q, %v", got, err)
	}
}

func TestReadSwitchNamesOrigin(t *testing.T) {
	flags := switchFlags()
	_, err := readSwitch(flags, "ui", "sometimes")
	if err == nil || !strings.HasPrefix(err.Error(), "[run].ui ") {
		t.Fatalf("csfix.toml value must be blamed on [run].ui, got %v", err)
	}

	if err := flags.Set("ui", "maybe"); err != nil {
		t.Fatal(err)
	}
	_, err = readSwitch(flags, "ui", "on")
	if err == nil || !strings.HasPrefix(err.Error(), "--ui ") || !strings.Contains(err.Error(), `"maybe"`) {
		t.Fatalf("flag value must be blamed on --ui, got %v", err)
	}
}
