// Package cssvalue canonicalizes CSS comparison values so that expected and
// actual forms can be compared by exact string equality.
//
// Colors in any recognized representation collapse to the canonical string
// "rgb(r, g, b)":
//
//	named color   yellow            -> rgb(255, 255, 0)
//	3-digit hex   #ff0              -> rgb(255, 255, 0)
//	6-digit hex   #FFFF00           -> rgb(255, 255, 0)
//	rgb()         rgb(255,255,0)    -> rgb(255, 255, 0)
//	rgba()        rgba(255,255,0,1) -> rgb(255, 255, 0), alpha discarded
//
// Anything that does not match a color grammar passes through trimmed and
// lowercased, so non-color properties fall back to exact-string comparison.
// Normalize is idempotent: the canonical form normalizes to itself.
package cssvalue

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// namedColors is the fixed lookup table of common CSS color names.
var namedColors = map[string][3]int{
	"black":   {0, 0, 0},
	"white":   {255, 255, 255},
	"red":     {255, 0, 0},
	"green":   {0, 128, 0},
	"blue":    {0, 0, 255},
	"yellow":  {255, 255, 0},
	"cyan":    {0, 255, 255},
	"magenta": {255, 0, 255},
	"gray":    {128, 128, 128},
	"grey":    {128, 128, 128},
	"orange":  {255, 165, 0},
	"purple":  {128, 0, 128},
	"pink":    {255, 192, 203},
	"brown":   {165, 42, 42},
}

var (
	hexColorRe  = regexp.MustCompile(`^#([0-9a-f]{3}|[0-9a-f]{6})$`)
	rgbColorRe  = regexp.MustCompile(`^rgb\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*\)$`)
	rgbaColorRe = regexp.MustCompile(`^rgba\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*[0-9.]+\s*\)$`)
)

// Normalize canonicalizes a comparison value. Recognized colors become
// "rgb(r, g, b)"; everything else is returned trimmed and lowercased.
func Normalize(value string) string {
	v := strings.ToLower(strings.TrimSpace(value))

	if rgb, ok := namedColors[v]; ok {
		return canonical(rgb)
	}
	if m := hexColorRe.FindStringSubmatch(v); m != nil {
		return canonical(hexToRGB(m[1]))
	}
	if m := rgbColorRe.FindStringSubmatch(v); m != nil {
		if rgb, ok := channels(m[1], m[2], m[3]); ok {
			return canonical(rgb)
		}
	}
	if m := rgbaColorRe.FindStringSubmatch(v); m != nil {
		if rgb, ok := channels(m[1], m[2], m[3]); ok {
			return canonical(rgb)
		}
	}
	return v
}

// Equal reports whether two values are equal after normalization.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

func canonical(rgb [3]int) string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb[0], rgb[1], rgb[2])
}

func hexToRGB(hex string) [3]int {
	if len(hex) == 3 {
		// Each digit doubles: #ff0 == #ffff00.
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	var rgb [3]int
	for i := 0; i < 3; i++ {
		n, _ := strconv.ParseInt(hex[i*2:i*2+2], 16, 32)
		rgb[i] = int(n)
	}
	return rgb
}

// channels parses decimal channel strings, rejecting out-of-range values so
// that e.g. rgb(300,0,0) falls back to string comparison instead of a bogus
// canonical color.
func channels(r, g, b string) ([3]int, bool) {
	var rgb [3]int
	for i, s := range []string{r, g, b} {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 || n > 255 {
			return rgb, false
		}
		rgb[i] = n
	}
	return rgb, true
}
