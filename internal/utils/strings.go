package utils

import "strings"

// TrimOrEmpty normalizes user input without turning nil into "nil".
func TrimOrEmpty(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeSeatCode upper-cases and trims a seat code the way the layout
// stores it.
func NormalizeSeatCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// SplitSeatList splits comma/semicolon separated seat strings into cleaned
// slices.
func SplitSeatList(raw string) []string {
	out := []string{}
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	})
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, strings.ToUpper(p))
	}
	return out
}

// FirstNonEmpty returns the first trimmed non-empty value.
func FirstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
