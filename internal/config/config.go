// Package config loads csfix.toml, the per-project settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"

	"csfix/internal/trace"
)

// FileName is the settings file looked up from the working directory upwards.
const FileName = "csfix.toml"

// Config mirrors csfix.toml.
type Config struct {
	Paths PathsConfig `toml:"paths"`
	Run   RunConfig   `toml:"run"`
	Cache CacheConfig `toml:"cache"`
	Trace TraceConfig `toml:"trace"`
}

// PathsConfig selects the files a run covers.
type PathsConfig struct {
	Include []string `toml:"include"`
	Exclude []string `toml:"exclude"`
}

// RunConfig tunes a batch run.
type RunConfig struct {
	Jobs   int    `toml:"jobs"`
	Strict bool   `toml:"strict"`
	UI     string `toml:"ui"`
	Color  string `toml:"color"`
}

// CacheConfig controls the on-disk token cache.
type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// TraceConfig holds tracing defaults; flags override them.
type TraceConfig struct {
	Level  string `toml:"level"`
	Mode   string `toml:"mode"`
	Output string `toml:"output"`
	Format string `toml:"format"`
}

// Manifest is a loaded settings file.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Default returns the settings used when no csfix.toml exists.
func Default() Config {
	return Config{
		Paths: PathsConfig{
			Include: []string{"**/*.php"},
			Exclude: []string{"vendor/**", ".git/**", "node_modules/**"},
		},
		Run:   RunConfig{UI: "auto", Color: "auto"},
		Cache: CacheConfig{Enabled: true},
		Trace: TraceConfig{Level: "off", Mode: "stream"},
	}
}

// Find walks up from startDir to locate csfix.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover finds and loads the settings file governing startDir. Without one
// it returns the defaults rooted at startDir and ok == false.
func Discover(startDir string) (*Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		root, absErr := filepath.Abs(startDir)
		if absErr != nil {
			root = startDir
		}
		return &Manifest{Root: root, Config: Default()}, false, nil
	}
	m, err := Load(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// Load reads path on top of the defaults and validates the result.
func Load(path string) (*Manifest, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if err := validate(cfg, meta); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, nil
}

// Parse decodes settings from a string; used for inline and test configs.
func Parse(data string) (Config, error) {
	cfg := Default()
	meta, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if err := validate(cfg, meta); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validate(cfg Config, meta toml.MetaData) error {
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	if meta.IsDefined("paths", "include") && len(cfg.Paths.Include) == 0 {
		return errors.New("[paths].include must not be empty")
	}
	for _, pattern := range slices.Concat(cfg.Paths.Include, cfg.Paths.Exclude) {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("[paths]: invalid glob %q", pattern)
		}
	}
	if cfg.Run.Jobs < 0 {
		return fmt.Errorf("[run].jobs must be >= 0, got %d", cfg.Run.Jobs)
	}
	if _, err := ParseSwitch(cfg.Run.UI); err != nil {
		return fmt.Errorf("[run].ui %w", err)
	}
	if _, err := ParseSwitch(cfg.Run.Color); err != nil {
		return fmt.Errorf("[run].color %w", err)
	}
	if meta.IsDefined("cache", "dir") && strings.TrimSpace(cfg.Cache.Dir) == "" {
		return errors.New("[cache].dir must not be blank")
	}
	if _, err := trace.ParseLevel(cfg.Trace.Level); err != nil {
		return fmt.Errorf("[trace].level: %w", err)
	}
	if _, err := trace.ParseMode(cfg.Trace.Mode); err != nil {
		return fmt.Errorf("[trace].mode: %w", err)
	}
	if _, err := trace.ParseFormat(cfg.Trace.Format); err != nil {
		return fmt.Errorf("[trace].format: %w", err)
	}
	return nil
}

// Switch is a tri-state auto|on|off setting.
type Switch string

const (
	SwitchAuto Switch = "auto"
	SwitchOn   Switch = "on"
	SwitchOff  Switch = "off"
)

// ParseSwitch normalizes v. Empty means auto. The error names only the
// accepted values so callers can prefix where v came from.
func ParseSwitch(v string) (Switch, error) {
	switch sw := Switch(strings.ToLower(strings.TrimSpace(v))); sw {
	case "":
		return SwitchAuto, nil
	case SwitchAuto, SwitchOn, SwitchOff:
		return sw, nil
	}
	return "", fmt.Errorf("must be auto|on|off, got %q", v)
}

// CacheDir resolves the cache directory relative to the manifest root.
// An empty result means the user cache directory.
func (m *Manifest) CacheDir() string {
	dir := m.Config.Cache.Dir
	if dir == "" || filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(m.Root, filepath.FromSlash(dir))
}
