package config

import (
	"strings"
	"testing"
	"time"

	"github.com/kuitang/portalcheck/internal/browser"
	"github.com/kuitang/portalcheck/internal/engine"
)

func validTestConfig() Config {
	return Config{
		PlanPath:          "plan.yaml",
		Browser:           browser.DefaultConfig,
		NavigationTimeout: engine.DefaultNavigationTimeout,
		SettleInteract:    400 * time.Millisecond,
		SettleNavigate:    time.Second,
	}
}

func TestValidate_MinimalConfigPasses(t *testing.T) {
	t.Parallel()
	cfg := validTestConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got error: %v", err)
	}
}

func TestValidate_RequiresPlanPath(t *testing.T) {
	t.Parallel()
	cfg := validTestConfig()
	cfg.PlanPath = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error without a plan path")
	}
	if !strings.Contains(err.Error(), "--plan") {
		t.Fatalf("expected error to mention --plan, got: %v", err)
	}
}

func TestValidate_RejectsNonPositiveValues(t *testing.T) {
	t.Parallel()
	cfg := validTestConfig()
	cfg.NavigationTimeout = 0
	cfg.Browser.Viewport.Width = -1

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error for non-positive values")
	}
	for _, token := range []string{"timeout", "viewport"} {
		if !strings.Contains(err.Error(), token) {
			t.Fatalf("expected validation error to mention %q, got: %v", token, err)
		}
	}
}

func TestLoadConfig_DefaultsAndOverrides(t *testing.T) {
	cfg, err := LoadConfig(Flags{Plan: "plan.yaml"})
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Browser.Headed {
		t.Fatal("browser should default to headless")
	}
	if cfg.NavigationTimeout != engine.DefaultNavigationTimeout {
		t.Fatalf("navigation timeout default mismatch: %v", cfg.NavigationTimeout)
	}
	if cfg.Browser.Viewport != browser.DefaultConfig.Viewport {
		t.Fatalf("viewport default mismatch: %+v", cfg.Browser.Viewport)
	}

	cfg, err = LoadConfig(Flags{Plan: "plan.yaml", Headed: true, NavTimeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if !cfg.Browser.Headed {
		t.Fatal("--headed should open a visible window")
	}
	if cfg.NavigationTimeout != 5*time.Second {
		t.Fatalf("--nav-timeout should override default, got %v", cfg.NavigationTimeout)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("VIEWPORT_WIDTH", "1920")
	t.Setenv("VIEWPORT_HEIGHT", "1080")
	t.Setenv("NAV_TIMEOUT", "30s")

	cfg, err := LoadConfig(Flags{Plan: "plan.yaml"})
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Browser.Viewport != (browser.Viewport{Width: 1920, Height: 1080}) {
		t.Fatalf("viewport env override mismatch: %+v", cfg.Browser.Viewport)
	}
	if cfg.NavigationTimeout != 30*time.Second {
		t.Fatalf("NAV_TIMEOUT override mismatch: %v", cfg.NavigationTimeout)
	}
}

func TestHelperParsers_DefaultOnBadInput(t *testing.T) {
	t.Setenv("CFG_TEST_INT", "not-an-int")
	t.Setenv("CFG_TEST_DUR", "not-a-duration")
	if got := parseIntOrDefault("CFG_TEST_INT", 7); got != 7 {
		t.Fatalf("parseIntOrDefault fallback mismatch: got=%d want=7", got)
	}
	if got := parseDurationOrDefault("CFG_TEST_DUR", 2*time.Minute); got != 2*time.Minute {
		t.Fatalf("parseDurationOrDefault fallback mismatch: got=%v want=%v", got, 2*time.Minute)
	}
}

func TestEngineOptions_CarriesSettleDurations(t *testing.T) {
	t.Parallel()
	cfg := validTestConfig()
	cfg.Screenshots = true

	opts := cfg.EngineOptions()
	if opts.NavigationTimeout != cfg.NavigationTimeout {
		t.Fatalf("navigation timeout mismatch: %v", opts.NavigationTimeout)
	}
	if !opts.CaptureOnFailure {
		t.Fatal("screenshots flag should enable failure capture")
	}
	settle, ok := opts.Settle.(engine.FixedSettle)
	if !ok {
		t.Fatalf("settle policy type: %T", opts.Settle)
	}
	if settle.Interact != cfg.SettleInteract || settle.Navigate != cfg.SettleNavigate {
		t.Fatalf("settle durations mismatch: %+v", settle)
	}
}
