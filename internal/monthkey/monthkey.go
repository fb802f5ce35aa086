// Package monthkey normalizes arbitrary month labels onto the fixed
// 12-element calendar vocabulary used as the partition key for monthly
// records.
package monthkey

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// canonical is the authoritative month vocabulary, in calendar order.
var canonical = []string{
	"Janvier",
	"Février",
	"Mars",
	"Avril",
	"Mai",
	"Juin",
	"Juillet",
	"Août",
	"Septembre",
	"Octobre",
	"Novembre",
	"Décembre",
}

// variants maps lowercased abbreviations and foreign spellings to their
// canonical label. Accent-less spellings are included because user input
// and legacy documents carry both forms.
var variants = map[string]string{
	"janv":      "Janvier",
	"jan":       "Janvier",
	"january":   "Janvier",
	"févr":      "Février",
	"fevr":      "Février",
	"fév":       "Février",
	"fev":       "Février",
	"feb":       "Février",
	"february":  "Février",
	"fevrier":   "Février",
	"mar":       "Mars",
	"march":     "Mars",
	"avr":       "Avril",
	"apr":       "Avril",
	"april":     "Avril",
	"may":       "Mai",
	"jun":       "Juin",
	"june":      "Juin",
	"juil":      "Juillet",
	"jul":       "Juillet",
	"july":      "Juillet",
	"aout":      "Août",
	"aou":       "Août",
	"aug":       "Août",
	"august":    "Août",
	"sept":      "Septembre",
	"sep":       "Septembre",
	"september": "Septembre",
	"oct":       "Octobre",
	"october":   "Octobre",
	"nov":       "Novembre",
	"november":  "Novembre",
	"déc":       "Décembre",
	"dec":       "Décembre",
	"december":  "Décembre",
	"decembre":  "Décembre",
}

// Normalize maps a raw month label to its canonical form. Resolution order:
// case-insensitive match against the canonical list, then the variant table,
// then a best-effort fallback that capitalizes the trimmed input verbatim.
// The fallback does not guarantee a valid calendar month; callers must
// tolerate unresolved keys until reconciliation groups equal outputs.
// Empty input yields an empty string, meaning "no month selected".
func Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	lowered := strings.ToLower(trimmed)
	for _, month := range canonical {
		if strings.ToLower(month) == lowered {
			return month
		}
	}

	if month, ok := variants[lowered]; ok {
		return month
	}

	return capitalize(trimmed)
}

// IsCanonical returns true if key is one of the 12 canonical labels.
func IsCanonical(key string) bool {
	for _, month := range canonical {
		if month == key {
			return true
		}
	}
	return false
}

// Keys returns the canonical month labels in calendar order.
func Keys() []string {
	keys := make([]string, len(canonical))
	copy(keys, canonical)
	return keys
}

// ForTime returns the canonical label of the calendar month containing t.
func ForTime(t time.Time) string {
	return canonical[int(t.Month())-1]
}

// capitalize upper-cases the first rune of s, leaving the rest untouched.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
