// Package config parses the flux settings file (~/.flux/config.toml).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultAccentColor is the default accent color (indigo).
const DefaultAccentColor = "#7D56F4"

// HomeEnv overrides the flux home directory.
const HomeEnv = "FLUX_HOME"

// FileName is the settings file inside the flux home directory.
const FileName = "config.toml"

// hexColorRe matches a 6-digit hex color string like "#7D56F4".
var hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

var logLevels = map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "error": true}

// Config is the top-level settings file.
type Config struct {
	UI    UIConfig    `toml:"ui"`
	Store StoreConfig `toml:"store"`
	Log   LogConfig   `toml:"log"`
	State StateConfig `toml:"state"`
}

// UIConfig controls rendering.
type UIConfig struct {
	Frontend     FrontendKind `toml:"frontend"`
	InlineHeight int          `toml:"inline_height"`  // rows reserved by the inline frontend
	RenderTickMS int          `toml:"render_tick_ms"` // inline frontend redraw period
	AccentColor  string       `toml:"accent_color"`
	Theme        ThemeKind    `toml:"theme"`
	AltScreen    bool         `toml:"alt_screen"` // tree frontend only
}

// StoreConfig controls the state store.
type StoreConfig struct {
	TickMS          int  `toml:"tick_ms"`
	ChangeDetection bool `toml:"change_detection"`
}

// LogConfig controls the log file.
type LogConfig struct {
	Level string `toml:"level"`
}

// StateConfig controls persisted UI state.
type StateConfig struct {
	Persist bool `toml:"persist"`
}

// RenderTick returns the inline redraw period.
func (c UIConfig) RenderTick() time.Duration {
	return time.Duration(c.RenderTickMS) * time.Millisecond
}

// TickRate returns the store tick period.
func (c StoreConfig) TickRate() time.Duration {
	return time.Duration(c.TickMS) * time.Millisecond
}

// Validate checks the configuration for values that would cause confusing
// runtime failures. It returns all found issues joined together.
func (c *Config) Validate() error {
	var errs []error

	if c.UI.InlineHeight < 3 {
		errs = append(errs, fmt.Errorf("ui.inline_height must be >= 3"))
	}
	if c.UI.RenderTickMS < 10 {
		errs = append(errs, fmt.Errorf("ui.render_tick_ms must be >= 10"))
	}
	if c.UI.AccentColor != "" && !hexColorRe.MatchString(c.UI.AccentColor) {
		errs = append(errs, fmt.Errorf("ui.accent_color must be a hex color (e.g. \"#7D56F4\")"))
	}
	if c.Store.TickMS < 10 {
		errs = append(errs, fmt.Errorf("store.tick_ms must be >= 10"))
	}
	if !logLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, fmt.Errorf("log.level must be one of trace, debug, info, warn, error"))
	}

	return errors.Join(errs...)
}

// Defaults returns a Config with the built-in settings.
func Defaults() Config {
	return Config{
		UI: UIConfig{
			Frontend:     FrontendTree,
			InlineHeight: 20,
			RenderTickMS: 250,
			AccentColor:  DefaultAccentColor,
			Theme:        ThemeAuto,
		},
		Store: StoreConfig{
			TickMS: 1000,
		},
		Log: LogConfig{
			Level: "info",
		},
		State: StateConfig{
			Persist: true,
		},
	}
}

// Home returns the flux home directory: $FLUX_HOME if set, ~/.flux
// otherwise. A missing home directory is an error.
func Home() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve home directory: %w", err)
	}
	return filepath.Join(home, ".flux"), nil
}

// Load reads the settings file at path. An empty path means config.toml in
// Home. A missing file yields the defaults. Unknown keys (likely typos) and
// invalid values are errors.
func Load(path string) (*Config, error) {
	if path == "" {
		home, err := Home()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, FileName)
	}

	cfg := Defaults()
	meta, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, os.ErrNotExist) {
		return &cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("config: unknown keys in %s: %s (possible typos?)", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return &cfg, nil
}

// InitFile writes a default config.toml template to dir.
func InitFile(dir string) (string, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("config: %s already exists at %s", FileName, path)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("config: create %s: %w", dir, err)
	}

	content := `# flux settings

[ui]
frontend = "tree"         # "tree" (full screen) or "inline" (below the prompt)
inline_height = 20        # rows used by the inline frontend
render_tick_ms = 250      # inline frontend redraw period
accent_color = "#7D56F4"  # hex color for header/accent elements
theme = "auto"            # "auto", "dark" or "light"
alt_screen = false        # tree frontend: draw on the alternate screen

[store]
tick_ms = 1000            # refresh period for relative timestamps
change_detection = false  # skip redraws when nothing changed

[log]
level = "info"            # trace, debug, info, warn, error

[state]
persist = true            # remember the cursor per command and repository
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("config: write %s: %w", path, err)
	}
	return path, nil
}
