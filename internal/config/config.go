package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Directory search strategies.
const (
	// StrategyNative walks the filesystem in-process.
	StrategyNative = "native"
	// StrategyCommand shells out to the platform search utility.
	StrategyCommand = "command"
)

// Config captures runtime configuration for a scan session.
type Config struct {
	// Target is the directory/manifest pair being searched for.
	Target Target

	// Strategy selects the DirectoryFinder implementation.
	Strategy string

	// Timeout bounds the directory search. Zero disables the deadline.
	Timeout time.Duration

	// Workers caps concurrent directory reads and size computations.
	Workers int

	// Roots are the directories searched, the OS default unless a test overrides them.
	Roots []string

	// Excludes are doublestar patterns pruned from the native walk.
	Excludes []string

	// Debug enables detailed operation logs.
	Debug bool

	// DryRun reports deletions without removing anything.
	DryRun bool
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Target:   NodeModules,
		Strategy: StrategyNative,
		Timeout:  10 * time.Minute,
		Workers:  runtime.NumCPU(),
		Roots:    ScanRoots(),
		Excludes: DefaultExcludes(),
	}
}

// Load builds the configuration from defaults, an optional .env file in the
// working directory, and NMKILL_* environment variables.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if v := strings.TrimSpace(os.Getenv("NMKILL_STRATEGY")); v != "" {
		cfg.Strategy = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv("NMKILL_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse NMKILL_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}
	if v := strings.TrimSpace(os.Getenv("NMKILL_WORKERS")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse NMKILL_WORKERS: %w", err)
		}
		cfg.Workers = n
	}
	if v := strings.TrimSpace(os.Getenv("NMKILL_DEBUG")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse NMKILL_DEBUG: %w", err)
		}
		cfg.Debug = b
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch c.Strategy {
	case StrategyNative, StrategyCommand:
	default:
		return fmt.Errorf("unknown search strategy %q (want %q or %q)", c.Strategy, StrategyNative, StrategyCommand)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	if c.Target.DirName == "" || c.Target.Manifest == "" {
		return fmt.Errorf("target directory and manifest names are required")
	}
	return nil
}
