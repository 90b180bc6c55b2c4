package paydoc

import "strings"

// Recognized pay frequencies and the number of pay periods each represents
// per year. Keys are the normalized lower-case spellings.
var periodsPerYear = map[string]float64{
	"weekly":       52,
	"bi-weekly":    26,
	"biweekly":     26,
	"semi-monthly": 24,
	"semimonthly":  24,
	"monthly":      12,
	"quarterly":    4,
	"annual":       1,
}

// FrequencyPeriodsPerYear returns the pay periods per year for a recognized
// frequency label, or 0 when the label is unknown.
func FrequencyPeriodsPerYear(frequency string) float64 {
	return periodsPerYear[strings.ToLower(strings.TrimSpace(frequency))]
}

// KnownFrequency reports whether the label belongs to the closed frequency
// vocabulary (case-insensitive).
func KnownFrequency(frequency string) bool {
	_, ok := periodsPerYear[strings.ToLower(strings.TrimSpace(frequency))]
	return ok
}
