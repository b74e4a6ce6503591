// Package engine executes an ordered scenario list against a live page.
//
// A run acquires one browser session, navigates to the portal URL, resolves
// every scenario strictly in order against the same document, and releases
// the session on every exit path. Scenario-local failures (missing elements,
// unparsable expectations, unsupported actions, failed navigations) are
// recovered into failed results and never interrupt subsequent scenarios.
// Only session-level failures abort the run, and an aborted run returns a
// single error with no partial results.
package engine

import (
	"context"
	"encoding/base64"
	"net/url"
	"time"

	"github.com/kuitang/portalcheck/internal/errs"
	"github.com/kuitang/portalcheck/internal/obs"
	"github.com/kuitang/portalcheck/internal/scenario"
)

// DefaultNavigationTimeout bounds every navigation, including the initial
// portal load.
const DefaultNavigationTimeout = 60 * time.Second

// Session is the rendering collaborator: page primitives plus release.
// browser.Session satisfies it; tests substitute fakes.
type Session interface {
	Navigate(url string, timeout time.Duration) error
	Resolve(selector string) (bool, error)
	ComputedStyle(selector, property string) (string, error)
	TextContent(selector string) (string, error)
	Click(selector string) error
	Hover(selector string) error
	Fill(selector, value string) error
	Screenshot() ([]byte, error)
	Release()
}

// SessionFactory acquires a fresh session for one run. Each run owns its
// session exclusively; concurrent runs must each acquire their own.
type SessionFactory func() (Session, error)

// Options configures a run. Zero values take documented defaults.
type Options struct {
	NavigationTimeout time.Duration
	Settle            SettlePolicy
	CaptureOnFailure  bool
}

func (o Options) withDefaults() Options {
	if o.NavigationTimeout <= 0 {
		o.NavigationTimeout = DefaultNavigationTimeout
	}
	if o.Settle == nil {
		o.Settle = DefaultSettle
	}
	return o
}

// Engine runs scenario lists. Safe for sequential reuse; each Run acquires
// and releases its own session.
type Engine struct {
	acquire SessionFactory
	opts    Options
}

// New creates an engine that acquires sessions from the given factory.
func New(acquire SessionFactory, opts Options) *Engine {
	return &Engine{acquire: acquire, opts: opts.withDefaults()}
}

// Run executes the scenarios in order against the portal URL.
//
// On success the report carries exactly one result per scenario, in input
// order. On a fatal abort (initial load failure or a crashed browser
// process) the report is nil and the error describes the abort; the session
// is released either way.
func (e *Engine) Run(ctx context.Context, portalURL string, scenarios []scenario.TestScenario) (*Report, error) {
	ctx = obs.WithRunID(ctx, obs.NewRunID())
	log := obs.From(ctx)

	base, err := url.Parse(portalURL)
	if err != nil {
		return nil, errs.Wrap(errs.InvalidArgument, "invalid portal URL", err)
	}

	sess, err := e.acquire()
	if err != nil {
		return nil, errs.Wrap(errs.SessionFatal, "acquire browser session", err)
	}
	defer sess.Release()

	log.Info("run started", "portal_url", portalURL, "scenarios", len(scenarios))

	if err := sess.Navigate(portalURL, e.opts.NavigationTimeout); err != nil {
		log.Error("initial portal load failed", "error", err)
		return nil, err
	}

	agg := newAggregator(len(scenarios))
	for i, sc := range scenarios {
		scenarioCtx := obs.WithScenario(ctx, i, sc.Action)
		result, err := e.execute(scenarioCtx, sess, base, sc)
		if err != nil {
			obs.From(scenarioCtx).Error("run aborted", "error", err)
			return nil, err
		}
		if !result.Passed && e.opts.CaptureOnFailure {
			attachScreenshot(scenarioCtx, sess, &result)
		}
		agg.add(result)
	}

	report := agg.report()
	log.Info("run finished",
		"total", report.Summary.Total,
		"passed", report.Summary.Passed,
		"failed", report.Summary.Failed)
	return report, nil
}

// execute resolves one scenario into a result. A non-nil error means the run
// must abort; every scenario-local failure comes back as a failed result.
func (e *Engine) execute(ctx context.Context, sess Session, base *url.URL, sc scenario.TestScenario) (scenario.TestResult, error) {
	start := time.Now()
	result, err := e.dispatch(ctx, sess, base, sc)
	if err != nil {
		if errs.IsFatal(err) {
			return scenario.TestResult{}, err
		}
		// Scenario-local failure: recover into a failed result.
		result = failed(sc, err.Error())
	}
	result.Duration = time.Since(start)
	result.DurationMS = result.Duration.Milliseconds()

	log := obs.From(ctx)
	if result.Passed {
		log.Info("scenario passed", "target", sc.Target, "duration_ms", result.DurationMS)
	} else {
		log.Warn("scenario failed", "target", sc.Target, "error", result.Error, "duration_ms", result.DurationMS)
	}
	return result, nil
}

func passed(sc scenario.TestScenario, actual string) scenario.TestResult {
	return scenario.TestResult{Scenario: sc, Passed: true, ActualValue: actual}
}

func failed(sc scenario.TestScenario, diagnostic string) scenario.TestResult {
	return scenario.TestResult{Scenario: sc, Passed: false, Error: diagnostic}
}

// resolveURL turns a navigation value into an absolute URL. Bare paths are
// resolved against the portal URL so plans can say `navigate to "/pricing"`.
func resolveURL(base *url.URL, value string) string {
	ref, err := url.Parse(value)
	if err != nil {
		return value
	}
	return base.ResolveReference(ref).String()
}

// attachScreenshot captures a best-effort failure screenshot. Capture errors
// are logged and otherwise ignored; they must not fail the scenario twice.
func attachScreenshot(ctx context.Context, sess Session, result *scenario.TestResult) {
	data, err := sess.Screenshot()
	if err != nil {
		obs.From(ctx).Warn("failure screenshot not captured", "error", err)
		return
	}
	result.Screenshot = base64.StdEncoding.EncodeToString(data)
}
