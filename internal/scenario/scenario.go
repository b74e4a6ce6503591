// Package scenario defines the test instruction and result records shared by
// the execution engine and its callers. Scenarios are produced upstream and
// consumed read-only; results are produced by the engine and never mutated
// after they are appended to a run's output.
package scenario

import (
	"fmt"
	"strings"
	"time"
)

// ActionKind is the closed set of scenario actions the engine can execute.
type ActionKind string

const (
	ActionNavigate        ActionKind = "navigate"
	ActionClick           ActionKind = "click"
	ActionHover           ActionKind = "hover"
	ActionFillInput       ActionKind = "fill_input"
	ActionCheckStyle      ActionKind = "check_style"
	ActionCheckText       ActionKind = "check_text"
	ActionCheckVisibility ActionKind = "check_visibility"
)

// Kinds lists every supported action, in a stable order for diagnostics.
var Kinds = []ActionKind{
	ActionNavigate,
	ActionClick,
	ActionHover,
	ActionFillInput,
	ActionCheckStyle,
	ActionCheckText,
	ActionCheckVisibility,
}

// ParseAction maps a free-form action string onto the closed set,
// case-insensitively. Unrecognized strings are rejected here, at the
// boundary, so handlers can assume a valid kind.
func ParseAction(raw string) (ActionKind, error) {
	normalized := ActionKind(strings.ToLower(strings.TrimSpace(raw)))
	for _, kind := range Kinds {
		if normalized == kind {
			return kind, nil
		}
	}
	return "", fmt.Errorf("unsupported action %q (supported: %s)", raw, KindsString())
}

// KindsString returns the supported actions joined for error messages.
func KindsString() string {
	parts := make([]string, len(Kinds))
	for i, k := range Kinds {
		parts[i] = string(k)
	}
	return strings.Join(parts, ", ")
}

// RequiresTarget reports whether the action resolves a selector before
// executing. Navigation is the only action without a target element.
func (k ActionKind) RequiresTarget() bool {
	return k != ActionNavigate
}

// TestScenario is one atomic test instruction. Target is an opaque selector
// string passed verbatim to the rendering layer; ExpectedResult is a
// human-phrased expectation parsed per action by the expect package.
type TestScenario struct {
	Action         string `json:"action" yaml:"action"`
	Target         string `json:"target" yaml:"target"`
	ExpectedResult string `json:"expected_result" yaml:"expected_result"`
	Description    string `json:"description" yaml:"description"`
}

// TestResult is the outcome of executing one scenario. Exactly one result is
// produced per input scenario unless the run aborts fatally.
type TestResult struct {
	Scenario    TestScenario  `json:"scenario" yaml:"scenario"`
	Passed      bool          `json:"passed" yaml:"passed"`
	Error       string        `json:"error,omitempty" yaml:"error,omitempty"`
	ActualValue string        `json:"actual_value,omitempty" yaml:"actual_value,omitempty"`
	Screenshot  string        `json:"screenshot,omitempty" yaml:"screenshot,omitempty"`
	Duration    time.Duration `json:"-" yaml:"-"`
	DurationMS  int64         `json:"duration_ms" yaml:"duration_ms"`
}

// Summary holds the aggregate counts for a run.
type Summary struct {
	Total  int `json:"total" yaml:"total"`
	Passed int `json:"passed" yaml:"passed"`
	Failed int `json:"failed" yaml:"failed"`
}
