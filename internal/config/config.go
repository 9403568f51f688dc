package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// DefaultTickInterval is the countdown update cadence when unconfigured.
const DefaultTickInterval = 100 * time.Millisecond

// Duration is a time.Duration that unmarshals from TOML strings like
// "100ms" or "1.5s".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config is the application configuration.
type Config struct {
	Tracker  TrackerConfig  `toml:"tracker"`
	Settings SettingsConfig `toml:"settings"`
	Logging  LoggingConfig  `toml:"logging"`
}

// TrackerConfig controls the runtime tracker loop.
type TrackerConfig struct {
	// TickInterval is how often countdown updates are emitted.
	TickInterval Duration `toml:"tick_interval"`
	// HoldMode switches select keys from one-shot arming to held modifiers.
	HoldMode bool `toml:"hold_mode"`
}

// SettingsConfig locates the persisted profiles and skill bindings.
type SettingsConfig struct {
	// Path is the settings JSON file; empty means the platform default.
	Path string `toml:"path"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Tracker: TrackerConfig{TickInterval: Duration(DefaultTickInterval)},
		Logging: LoggingConfig{Level: "info"},
	}
}

// DefaultPath returns the conventional config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "skilltrack", "config.toml"), nil
}

// Load builds the configuration from defaults, the TOML file at path (if
// it exists), and SKILLTRACK_* environment overrides, then validates it.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults apply.
		case err != nil:
			return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return Config{}, &ParseError{Path: path, Err: err}
			}
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field values after all layers are applied.
func (c Config) Validate() error {
	if c.Tracker.TickInterval.Std() <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidInterval, c.Tracker.TickInterval.Std())
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level)
	}
	return nil
}

// applyEnv overlays SKILLTRACK_* environment variables. Unparseable
// values are ignored so a bad variable cannot take the application down.
func applyEnv(cfg *Config) {
	if val, ok := os.LookupEnv("SKILLTRACK_TICK_INTERVAL"); ok {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Tracker.TickInterval = Duration(d)
		}
	}
	if val, ok := os.LookupEnv("SKILLTRACK_HOLD_MODE"); ok {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Tracker.HoldMode = b
		}
	}
	if val, ok := os.LookupEnv("SKILLTRACK_SETTINGS_PATH"); ok {
		cfg.Settings.Path = val
	}
	if val, ok := os.LookupEnv("SKILLTRACK_LOG_LEVEL"); ok {
		cfg.Logging.Level = val
	}
}
