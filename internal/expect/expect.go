// Package expect extracts structured expectations from the human-phrased
// expectation strings carried by scenarios.
//
// Grammar table, per action:
//
//	check_style       <property> should be <value>
//	check_text        text should (contain|be) "<value>"
//	fill_input        fill with "<value>"
//	navigate          navigate to "<value>"
//	check_visibility  keyword scan: "visible" vs "hidden" / absent
//
// All verbs match case-insensitively. Parsing fails open: a grammar mismatch
// is reported as an error echoing the required pattern so the scenario author
// can correct the input; it is never fatal to a run.
package expect

import (
	"regexp"
	"strings"

	"github.com/kuitang/portalcheck/internal/errs"
)

var (
	styleRe    = regexp.MustCompile(`(?i)^\s*(\S+)\s+should\s+be\s+(.+?)\s*$`)
	textRe     = regexp.MustCompile(`(?i)text\s+should\s+(contain|be)\s+"([^"]*)"`)
	fillRe     = regexp.MustCompile(`(?i)fill\s+with\s+"([^"]*)"`)
	navigateRe = regexp.MustCompile(`(?i)navigate\s+to\s+"([^"]*)"`)
)

// StyleExpectation is a parsed check_style expectation.
type StyleExpectation struct {
	Property string
	Value    string
}

// TextMatchMode says how a check_text literal is compared to the element text.
type TextMatchMode string

const (
	TextContain TextMatchMode = "contain"
	TextExact   TextMatchMode = "be"
)

// TextExpectation is a parsed check_text expectation.
type TextExpectation struct {
	Mode    TextMatchMode
	Literal string
}

// Style parses `<property> should be <value>`.
func Style(expected string) (StyleExpectation, error) {
	m := styleRe.FindStringSubmatch(expected)
	if m == nil {
		return StyleExpectation{}, errs.New(errs.ExpectationParse,
			`expected result must match "<property> should be <value>", got: `+strings.TrimSpace(expected))
	}
	return StyleExpectation{
		Property: strings.ToLower(m[1]),
		Value:    m[2],
	}, nil
}

// Text parses `text should (contain|be) "<value>"`.
func Text(expected string) (TextExpectation, error) {
	m := textRe.FindStringSubmatch(expected)
	if m == nil {
		return TextExpectation{}, errs.New(errs.ExpectationParse,
			`expected result must match `+"`"+`text should (contain|be) "<value>"`+"`"+`, got: `+strings.TrimSpace(expected))
	}
	return TextExpectation{
		Mode:    TextMatchMode(strings.ToLower(m[1])),
		Literal: m[2],
	}, nil
}

// Fill parses `fill with "<value>"`.
func Fill(expected string) (string, error) {
	m := fillRe.FindStringSubmatch(expected)
	if m == nil {
		return "", errs.New(errs.ExpectationParse,
			`expected result must match `+"`"+`fill with "<value>"`+"`"+`, got: `+strings.TrimSpace(expected))
	}
	return m[1], nil
}

// NavigateTarget parses `navigate to "<value>"`.
func NavigateTarget(expected string) (string, error) {
	m := navigateRe.FindStringSubmatch(expected)
	if m == nil {
		return "", errs.New(errs.ExpectationParse,
			`expected result must match `+"`"+`navigate to "<value>"`+"`"+`, got: `+strings.TrimSpace(expected))
	}
	return m[1], nil
}

// Visibility reports whether the expectation asks for the element to be
// present. The keyword "visible" means present; "hidden" or the absence of
// "visible" means absent.
func Visibility(expected string) bool {
	lower := strings.ToLower(expected)
	if strings.Contains(lower, "hidden") {
		return false
	}
	return strings.Contains(lower, "visible")
}
