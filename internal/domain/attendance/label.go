package attendance

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// StatusLabel is the closed set of producer status labels recognised at ingestion.
// The reconciliation never reads it; it is kept for display and auditing.
type StatusLabel string

const (
	LabelUnknown StatusLabel = "unknown"
	LabelPresent StatusLabel = "present"
	LabelLate    StatusLabel = "late"
	LabelAbsent  StatusLabel = "absent"
	LabelPartial StatusLabel = "partial"
)

var labelKeywords = []struct {
	label    StatusLabel
	keywords []string
}{
	// order matters: "tidak hadir" also contains "hadir"
	{LabelAbsent, []string{"absent", "absence", "alpha", "tidak hadir"}},
	{LabelLate, []string{"retard", "late", "terlambat"}},
	{LabelPartial, []string{"partiel", "partial", "incomplet"}},
	{LabelPresent, []string{"present", "hadir", "on time"}},
}

// foldLabel strips accents and folds case so "Présent", "PRESENT" and "present" compare equal.
func foldLabel(raw string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, raw)
	if err != nil {
		out = raw
	}
	// a Caser is stateful, so each call gets its own
	return cases.Fold().String(strings.TrimSpace(out))
}

// ParseStatusLabel maps a free-text producer label onto StatusLabel.
func ParseStatusLabel(raw string) StatusLabel {
	folded := foldLabel(raw)
	if folded == "" {
		return LabelUnknown
	}
	for _, entry := range labelKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(folded, kw) {
				return entry.label
			}
		}
	}
	return LabelUnknown
}
