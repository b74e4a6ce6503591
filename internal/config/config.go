// Package config provides centralized configuration management for the
// portalcheck CLI. It loads configuration from CLI flags and environment
// variables, validates required fields, and provides sensible defaults.
//
// The engine and browser packages never read the environment themselves;
// everything they need arrives through explicit structs built here.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kuitang/portalcheck/internal/browser"
	"github.com/kuitang/portalcheck/internal/engine"
)

// Config holds all CLI configuration.
type Config struct {
	// Run inputs
	PortalURL string // --url, or the plan file's portal_url
	PlanPath  string // --plan

	// Browser
	Browser browser.Config

	// Engine
	NavigationTimeout time.Duration
	SettleInteract    time.Duration
	SettleNavigate    time.Duration
	Screenshots       bool

	// Output
	JSONOutput bool
}

// ValidationError represents a configuration validation error with multiple issues.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("configuration validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// Flags holds raw CLI flag values. Call ParseFlags before LoadConfig.
type Flags struct {
	URL         string
	Plan        string
	Headed      bool
	Screenshots bool
	JSONOutput  bool
	NavTimeout  time.Duration
}

// ParseFlags registers and parses the CLI flags.
func ParseFlags() Flags {
	var f Flags
	flag.StringVar(&f.URL, "url", "", "Portal URL to test (overrides the plan file's portal_url)")
	flag.StringVar(&f.Plan, "plan", "", "Path to the YAML scenario plan (required)")
	flag.BoolVar(&f.Headed, "headed", false, "Run the browser with a visible window")
	flag.BoolVar(&f.Screenshots, "screenshots", false, "Capture a screenshot for each failed scenario")
	flag.BoolVar(&f.JSONOutput, "json", false, "Write the full result report as JSON to stdout")
	flag.DurationVar(&f.NavTimeout, "nav-timeout", 0, "Navigation timeout (default 60s, overrides NAV_TIMEOUT env var)")
	flag.Parse()
	return f
}

// LoadConfig loads configuration from environment variables and CLI flag values.
func LoadConfig(f Flags) (*Config, error) {
	cfg := &Config{}

	cfg.PortalURL = strings.TrimSpace(f.URL)
	cfg.PlanPath = strings.TrimSpace(f.Plan)
	cfg.JSONOutput = f.JSONOutput
	cfg.Screenshots = f.Screenshots

	cfg.Browser = browser.Config{
		Headed: f.Headed,
		Viewport: browser.Viewport{
			Width:  parseIntOrDefault("VIEWPORT_WIDTH", browser.DefaultConfig.Viewport.Width),
			Height: parseIntOrDefault("VIEWPORT_HEIGHT", browser.DefaultConfig.Viewport.Height),
		},
	}

	cfg.NavigationTimeout = parseDurationOrDefault("NAV_TIMEOUT", engine.DefaultNavigationTimeout)
	if f.NavTimeout > 0 {
		cfg.NavigationTimeout = f.NavTimeout
	}
	cfg.SettleInteract = parseDurationOrDefault("SETTLE_INTERACT", 400*time.Millisecond)
	cfg.SettleNavigate = parseDurationOrDefault("SETTLE_NAVIGATE", time.Second)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that all required configuration is present and valid.
func (c *Config) Validate() error {
	var errs []string

	if c.PlanPath == "" {
		errs = append(errs, "--plan is required (path to a YAML scenario plan)")
	}
	if c.NavigationTimeout <= 0 {
		errs = append(errs, "navigation timeout must be positive")
	}
	if c.Browser.Viewport.Width <= 0 || c.Browser.Viewport.Height <= 0 {
		errs = append(errs, "viewport dimensions must be positive")
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// EngineOptions builds the engine options from this configuration.
func (c *Config) EngineOptions() engine.Options {
	return engine.Options{
		NavigationTimeout: c.NavigationTimeout,
		Settle: engine.FixedSettle{
			Interact: c.SettleInteract,
			Navigate: c.SettleNavigate,
		},
		CaptureOnFailure: c.Screenshots,
	}
}

// PrintStartupSummary prints a human-readable summary of the configuration to stderr.
func (c *Config) PrintStartupSummary() {
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "portalcheck starting...")
	fmt.Fprintf(os.Stderr, "  Plan:     %s\n", c.PlanPath)
	if c.PortalURL != "" {
		fmt.Fprintf(os.Stderr, "  URL:      %s (flag override)\n", c.PortalURL)
	}
	if c.Browser.Headed {
		fmt.Fprintln(os.Stderr, "  Browser:  headed Chromium (--headed)")
	} else {
		fmt.Fprintln(os.Stderr, "  Browser:  headless Chromium")
	}
	fmt.Fprintf(os.Stderr, "  Viewport: %dx%d\n", c.Browser.Viewport.Width, c.Browser.Viewport.Height)
	fmt.Fprintf(os.Stderr, "  Timeout:  %s per navigation\n", c.NavigationTimeout)
	fmt.Fprintln(os.Stderr, "")
}

// Helper functions for parsing environment variables

func parseIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// MustLoadConfig loads configuration and panics if validation fails.
// Use this in main() when you want the run to fail fast on bad config.
func MustLoadConfig(f Flags) *Config {
	cfg, err := LoadConfig(f)
	if err != nil {
		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			panic(fmt.Sprintf("Configuration validation failed:\n  - %s", strings.Join(validationErr.Errors, "\n  - ")))
		}
		panic(fmt.Sprintf("Failed to load configuration: %v", err))
	}
	return cfg
}
