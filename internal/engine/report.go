package engine

import (
	"github.com/kuitang/portalcheck/internal/scenario"
)

// Report is the output of a non-fatal run: one result per input scenario,
// in input order, plus the aggregate counts.
type Report struct {
	Results []scenario.TestResult `json:"results" yaml:"results"`
	Summary scenario.Summary      `json:"summary" yaml:"summary"`
}

// OK reports whether every scenario passed.
func (r *Report) OK() bool {
	return r.Summary.Failed == 0
}

// aggregator accumulates ordered results and derives the summary.
type aggregator struct {
	results []scenario.TestResult
}

func newAggregator(capacity int) *aggregator {
	return &aggregator{results: make([]scenario.TestResult, 0, capacity)}
}

func (a *aggregator) add(result scenario.TestResult) {
	a.results = append(a.results, result)
}

func (a *aggregator) report() *Report {
	summary := scenario.Summary{Total: len(a.results)}
	for _, r := range a.results {
		if r.Passed {
			summary.Passed++
		} else {
			summary.Failed++
		}
	}
	return &Report{Results: a.results, Summary: summary}
}
