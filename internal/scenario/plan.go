package scenario

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Plan is a scenario file as authored on disk: a portal URL plus the ordered
// scenarios to run against it.
type Plan struct {
	PortalURL string         `json:"portal_url" yaml:"portal_url"`
	Scenarios []TestScenario `json:"scenarios" yaml:"scenarios"`
}

// LoadPlan reads and validates a YAML plan file.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan %s: %w", path, err)
	}
	return ParsePlan(data)
}

// ParsePlan decodes a YAML plan document. Scenario actions are not validated
// here: unsupported actions must flow through the engine so they surface as
// per-scenario failures rather than load-time errors.
func ParsePlan(data []byte) (*Plan, error) {
	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("parse plan: %w", err)
	}
	if strings.TrimSpace(plan.PortalURL) == "" {
		return nil, fmt.Errorf("plan is missing portal_url")
	}
	if len(plan.Scenarios) == 0 {
		return nil, fmt.Errorf("plan has no scenarios")
	}
	return &plan, nil
}
