package obs

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestFrom_CarriesRunCorrelation(t *testing.T) {
	var buf bytes.Buffer
	restore := SetOutputForTests(&buf)
	defer restore()

	ctx := WithRunID(context.Background(), "run-test-1")
	ctx = WithScenario(ctx, 2, "check_style")

	From(ctx).Info("scenario started")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v\n%s", err, buf.String())
	}
	if entry["run_id"] != "run-test-1" {
		t.Fatalf("run_id = %v", entry["run_id"])
	}
	if entry["scenario_index"] != float64(2) {
		t.Fatalf("scenario_index = %v", entry["scenario_index"])
	}
	if entry["action"] != "check_style" {
		t.Fatalf("action = %v", entry["action"])
	}
}

func TestFrom_ScenarioIndexZeroIsLogged(t *testing.T) {
	var buf bytes.Buffer
	restore := SetOutputForTests(&buf)
	defer restore()

	ctx := WithScenario(context.Background(), 0, "click")
	From(ctx).Info("first scenario")

	if !strings.Contains(buf.String(), `"scenario_index":0`) {
		t.Fatalf("index zero should still appear: %s", buf.String())
	}
}

func TestCorrelationFromContext_Empty(t *testing.T) {
	corr := CorrelationFromContext(context.Background())
	if corr.RunID != "" || corr.Action != "" {
		t.Fatalf("expected zero correlation, got %+v", corr)
	}
	if got := RunIDFromContext(context.Background()); got != "unknown" {
		t.Fatalf("RunIDFromContext fallback = %q", got)
	}
}

func TestNewRunID_Unique(t *testing.T) {
	a := NewRunID()
	b := NewRunID()
	if a == b {
		t.Fatalf("run IDs should be unique: %q", a)
	}
	if !strings.HasPrefix(a, "run-") {
		t.Fatalf("run ID prefix missing: %q", a)
	}
}
