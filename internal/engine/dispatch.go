package engine

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/kuitang/portalcheck/internal/cssvalue"
	"github.com/kuitang/portalcheck/internal/errs"
	"github.com/kuitang/portalcheck/internal/expect"
	"github.com/kuitang/portalcheck/internal/logutil"
	"github.com/kuitang/portalcheck/internal/scenario"
)

// dispatch routes one scenario to its action handler. The action set is
// closed; anything outside it is rejected here into an unsupported-action
// failure. Errors returned to execute are either session-fatal or converted
// there into failed results.
func (e *Engine) dispatch(ctx context.Context, sess Session, base *url.URL, sc scenario.TestScenario) (scenario.TestResult, error) {
	kind, err := scenario.ParseAction(sc.Action)
	if err != nil {
		return scenario.TestResult{}, errs.Wrap(errs.UnsupportedAction, err.Error(), err)
	}

	// Every action except navigate resolves its target first. For
	// check_visibility the presence boolean is the assertion itself, not a
	// precondition.
	var present bool
	if kind.RequiresTarget() {
		present, err = sess.Resolve(sc.Target)
		if err != nil {
			return scenario.TestResult{}, err
		}
		if !present && kind != scenario.ActionCheckVisibility {
			return scenario.TestResult{}, errs.New(errs.ElementNotFound,
				fmt.Sprintf("element not found: %s", logutil.FormatSelectorForLog(sc.Target)))
		}
	}

	switch kind {
	case scenario.ActionCheckStyle:
		return e.checkStyle(sess, sc)
	case scenario.ActionCheckText:
		return e.checkText(sess, sc)
	case scenario.ActionCheckVisibility:
		return e.checkVisibility(sc, present)
	case scenario.ActionClick:
		if err := sess.Click(sc.Target); err != nil {
			return scenario.TestResult{}, err
		}
		e.opts.Settle.AfterInteract()
		return passed(sc, ""), nil
	case scenario.ActionHover:
		if err := sess.Hover(sc.Target); err != nil {
			return scenario.TestResult{}, err
		}
		e.opts.Settle.AfterInteract()
		return passed(sc, ""), nil
	case scenario.ActionFillInput:
		return e.fillInput(sess, sc)
	case scenario.ActionNavigate:
		return e.navigate(sess, base, sc)
	}
	// ParseAction guarantees exhaustiveness above.
	return scenario.TestResult{}, errs.New(errs.Internal, fmt.Sprintf("unhandled action %q", kind))
}

// checkStyle compares the computed value of a CSS property against the
// expectation. Both sides pass through value normalization so any recognized
// color representation compares equal to any other.
func (e *Engine) checkStyle(sess Session, sc scenario.TestScenario) (scenario.TestResult, error) {
	parsed, err := expect.Style(sc.ExpectedResult)
	if err != nil {
		return scenario.TestResult{}, err
	}

	actual, err := sess.ComputedStyle(sc.Target, parsed.Property)
	if err != nil {
		return scenario.TestResult{}, err
	}

	normalizedActual := cssvalue.Normalize(actual)
	if !cssvalue.Equal(actual, parsed.Value) {
		result := failed(sc, fmt.Sprintf("%s is %q, expected %q",
			parsed.Property, normalizedActual, cssvalue.Normalize(parsed.Value)))
		result.ActualValue = normalizedActual
		return result, nil
	}
	return passed(sc, normalizedActual), nil
}

// checkText passes when the element text equals the expected literal or
// contains it as a substring.
func (e *Engine) checkText(sess Session, sc scenario.TestScenario) (scenario.TestResult, error) {
	parsed, err := expect.Text(sc.ExpectedResult)
	if err != nil {
		return scenario.TestResult{}, err
	}

	actual, err := sess.TextContent(sc.Target)
	if err != nil {
		return scenario.TestResult{}, err
	}

	trimmed := strings.TrimSpace(actual)
	ok := trimmed == parsed.Literal || strings.Contains(trimmed, parsed.Literal)
	if !ok {
		result := failed(sc, fmt.Sprintf("text is %q, expected it to %s %q",
			logutil.TruncateForLog(trimmed, 200), parsed.Mode, parsed.Literal))
		result.ActualValue = logutil.TruncateForLog(trimmed, 500)
		return result, nil
	}
	return passed(sc, logutil.TruncateForLog(trimmed, 500)), nil
}

// checkVisibility compares DOM presence against the expectation keyword.
// This deliberately checks presence, not CSS visibility or opacity.
func (e *Engine) checkVisibility(sc scenario.TestScenario, present bool) (scenario.TestResult, error) {
	wantPresent := expect.Visibility(sc.ExpectedResult)
	actual := "hidden"
	if present {
		actual = "visible"
	}
	if present != wantPresent {
		want := "hidden"
		if wantPresent {
			want = "visible"
		}
		result := failed(sc, fmt.Sprintf("element %s is %s, expected %s",
			logutil.FormatSelectorForLog(sc.Target), actual, want))
		result.ActualValue = actual
		return result, nil
	}
	return passed(sc, actual), nil
}

// fillInput types the literal from the expectation into the target element.
func (e *Engine) fillInput(sess Session, sc scenario.TestScenario) (scenario.TestResult, error) {
	value, err := expect.Fill(sc.ExpectedResult)
	if err != nil {
		return scenario.TestResult{}, err
	}
	if err := sess.Fill(sc.Target, value); err != nil {
		return scenario.TestResult{}, err
	}
	return passed(sc, value), nil
}

// navigate loads the URL (or portal-relative path) from the expectation with
// a bounded timeout, then lets the new document settle.
func (e *Engine) navigate(sess Session, base *url.URL, sc scenario.TestScenario) (scenario.TestResult, error) {
	value, err := expect.NavigateTarget(sc.ExpectedResult)
	if err != nil {
		return scenario.TestResult{}, err
	}

	target := resolveURL(base, value)
	if err := sess.Navigate(target, e.opts.NavigationTimeout); err != nil {
		return scenario.TestResult{}, err
	}
	e.opts.Settle.AfterNavigate()
	return passed(sc, target), nil
}
