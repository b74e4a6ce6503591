// Package logutil provides safe formatting helpers for values embedded in
// logs and scenario diagnostics.
package logutil

import (
	"strings"
)

// TruncateForLog returns a single-line truncated preview for unstructured values.
// Page text content can be arbitrarily large; diagnostics keep a bounded preview.
func TruncateForLog(value string, maxChars int) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	normalized := strings.ReplaceAll(trimmed, "\n", "\\n")
	if maxChars <= 0 || len(normalized) <= maxChars {
		return normalized
	}
	return normalized[:maxChars] + "... [truncated]"
}

// FormatSelectorForLog trims and bounds a selector string for diagnostics.
func FormatSelectorForLog(selector string) string {
	return TruncateForLog(selector, 120)
}
