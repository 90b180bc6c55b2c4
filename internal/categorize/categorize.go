// Package categorize flags earnings lines that are employer-side
// contributions rather than employee compensation. Keeping them apart matters
// downstream: qualifying income is computed from employee earnings only.
package categorize

import (
	"strings"

	"payproof/internal/paydoc"
)

// employerContributionKeywords are matched case-insensitively as substrings
// of the earning description.
var employerContributionKeywords = []string{
	"401k match", "401k matching", "employer match", "company match",
	"employer contribution", "company contribution", "employer benefit",
	"employer paid", "company paid", "employer 401k", "company 401k",
	"pension contribution", "employer pension", "retirement match",
	"employer retirement", "company retirement", "employer hsa",
	"company hsa", "employer fsa", "company fsa", "er cost", "er cost of",
}

// Earnings returns a new slice with IsEmployerContribution set on every line
// whose description matches an employer-contribution keyword. Order is
// preserved and the input is not mutated. Applying it twice yields the same
// result as once.
func Earnings(earnings []paydoc.EarningsLine) []paydoc.EarningsLine {
	if earnings == nil {
		return nil
	}
	out := make([]paydoc.EarningsLine, len(earnings))
	for i, line := range earnings {
		line.IsEmployerContribution = IsEmployerContribution(line.Description)
		out[i] = line
	}
	return out
}

// IsEmployerContribution reports whether a line description names an
// employer-side contribution.
func IsEmployerContribution(description string) bool {
	desc := strings.ToLower(description)
	for _, kw := range employerContributionKeywords {
		if strings.Contains(desc, kw) {
			return true
		}
	}
	return false
}

// Document applies earnings categorization to a record in place.
func Document(doc *paydoc.Document) {
	doc.Earnings = Earnings(doc.Earnings)
}
