// Package fields implements the regex heuristics shared by the table and text
// extraction adapters. Matching is stateless and deterministic; fields that
// do not match are simply left unset.
package fields

import (
	"regexp"
	"strconv"
	"strings"

	"payproof/internal/paydoc"
)

// Caps on the detected-value lists, to bound prompt size and merge cost.
const (
	MaxAmounts = 20
	MaxDates   = 10
)

var (
	amountRe = regexp.MustCompile(`-?\$?-?[0-9][0-9,]*\.?[0-9]{0,2}`)

	dateRes = []*regexp.Regexp{
		regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{2,4}`),
		regexp.MustCompile(`\d{4}-\d{2}-\d{2}`),
		regexp.MustCompile(`\d{1,2}-\d{1,2}-\d{2,4}`),
	}

	// Tax-id shapes in priority order: fully formatted, masked, bare numeric.
	ssnRes = []*regexp.Regexp{
		regexp.MustCompile(`\d{3}-\d{2}-\d{4}`),
		regexp.MustCompile(`XXX-XX-\d{4}`),
		regexp.MustCompile(`\*{3,5}\d{4}`),
		regexp.MustCompile(`\b\d{9}\b`),
	}

	einRes = []*regexp.Regexp{
		regexp.MustCompile(`\d{2}-\d{7}`),
		regexp.MustCompile(`\b\d{9}\b`),
	}

	employeeIDRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Employee\s+ID[:\s]*([A-Za-z0-9\-]+)`),
		regexp.MustCompile(`(?i)Employee\s+Number[:\s]*([A-Za-z0-9\-]+)`),
		regexp.MustCompile(`(?i)\bID[:\s]+([A-Za-z0-9\-]+)`),
	}

	frequencyRe = regexp.MustCompile(`(?i)\b(bi-weekly|biweekly|semi-monthly|semimonthly|weekly|monthly|quarterly|annual)\b`)

	companyRes = []*regexp.Regexp{
		regexp.MustCompile(`(?im)^([A-Za-z][A-Za-z\s&,\.]+(?:Inc|LLC|Corp|Company|Group|Limited|Ltd|Incorporated|Corporation|Associates|Partners|Enterprises|Services|Systems|Solutions|Technologies|Industries|Holdings|International|Global)\.?)`),
		regexp.MustCompile(`(?i)([A-Za-z][A-Za-z\s&,\.]+(?:Inc|LLC|Corp|Incorporated|Corporation|Ltd)\.?)`),
		regexp.MustCompile(`(?m)^([A-Z][A-Za-z\s&,\.]{2,50})$`),
	}

	employeeNameRes = []*regexp.Regexp{
		regexp.MustCompile(`[A-Z][a-z]+ [A-Z][a-z]+ [A-Z][a-z]+`),
		regexp.MustCompile(`[A-Z][a-z]+ [A-Z][a-z]+`),
	}

	benefitCodeRes = []*regexp.Regexp{
		regexp.MustCompile(`\b([A-Z]{1,2})\s+([0-9][0-9,]*\.[0-9]{2})\b`),
		regexp.MustCompile(`(?i)Code\s*([A-Z]{1,2})\D*?([0-9][0-9,]*\.[0-9]{2})`),
	}

	// Words that disqualify a company-name candidate; these show up in
	// paystub headings and routinely fool the capitalized-phrase rule.
	companyStopWords = []string{"pay", "statement", "earnings", "employee", "period", "date", "gross", "net"}
)

// Fields is the heuristic field map produced by a single Extract call. The
// JSON form is embedded verbatim in the vision instruction as context.
type Fields struct {
	DetectedAmounts []float64            `json:"detected_amounts,omitempty"`
	DetectedDates   []string             `json:"detected_dates,omitempty"`
	SSN             string               `json:"employee_ssn,omitempty"`
	EIN             string               `json:"employer_ein,omitempty"`
	EmployeeID      string               `json:"employee_id,omitempty"`
	PayFrequency    string               `json:"pay_frequency,omitempty"`
	CompanyName     string               `json:"company_name,omitempty"`
	EmployeeName    string               `json:"employee_name,omitempty"`
	BenefitCodes    []paydoc.BenefitCode `json:"benefit_codes,omitempty"`
}

// Empty reports whether nothing at all was matched.
func (f Fields) Empty() bool {
	return len(f.DetectedAmounts) == 0 && len(f.DetectedDates) == 0 &&
		f.SSN == "" && f.EIN == "" && f.EmployeeID == "" &&
		f.PayFrequency == "" && f.CompanyName == "" && f.EmployeeName == "" &&
		len(f.BenefitCodes) == 0
}

// Extract runs every matcher over the text blob. docType gates the matchers
// that only make sense for one document kind (EIN and benefit codes on W-2s).
func Extract(text string, docType paydoc.DocType) Fields {
	f := Fields{
		DetectedAmounts: Amounts(text),
		DetectedDates:   Dates(text),
		SSN:             firstMatch(ssnRes, text),
		EmployeeID:      firstGroup(employeeIDRes, text),
		PayFrequency:    Frequency(text),
		CompanyName:     CompanyName(text),
		EmployeeName:    firstMatch(employeeNameRes, text),
	}
	if docType == paydoc.DocTypeW2 {
		f.EIN = firstMatch(einRes, text)
		f.BenefitCodes = BenefitCodes(text)
	}
	return f
}

// Amounts returns up to MaxAmounts positive decimal amounts in document
// order. Non-positive or unparsable tokens are dropped, never zeroed.
func Amounts(text string) []float64 {
	var out []float64
	for _, m := range amountRe.FindAllString(text, -1) {
		m = strings.ReplaceAll(strings.ReplaceAll(m, "$", ""), ",", "")
		v, err := strconv.ParseFloat(m, 64)
		if err != nil || v <= 0 {
			continue
		}
		out = append(out, v)
		if len(out) == MaxAmounts {
			break
		}
	}
	return out
}

// Dates tries all three date-token shapes and concatenates the matches,
// keeping the first MaxDates.
func Dates(text string) []string {
	var out []string
	for _, re := range dateRes {
		out = append(out, re.FindAllString(text, -1)...)
	}
	if len(out) > MaxDates {
		out = out[:MaxDates]
	}
	return out
}

// Frequency matches the closed pay-frequency vocabulary, case-insensitive,
// first match wins.
func Frequency(text string) string {
	return frequencyRe.FindString(text)
}

// CompanyName applies the legal-entity-suffix heuristics and then the
// capitalized-phrase-at-start rule, rejecting candidates that overlap known
// false-positive words.
func CompanyName(text string) string {
	for _, re := range companyRes {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			candidate := strings.TrimSpace(m[1])
			if candidate == "" || stopWorded(candidate) {
				continue
			}
			return candidate
		}
	}
	return ""
}

// BenefitCodes extracts box-12-style code/amount pairs.
func BenefitCodes(text string) []paydoc.BenefitCode {
	var out []paydoc.BenefitCode
	seen := make(map[string]bool)
	for _, re := range benefitCodeRes {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			amount, err := strconv.ParseFloat(strings.ReplaceAll(m[2], ",", ""), 64)
			if err != nil || amount <= 0 {
				continue
			}
			code := strings.ToUpper(m[1])
			if seen[code] {
				continue
			}
			seen[code] = true
			out = append(out, paydoc.BenefitCode{Code: code, Amount: amount})
		}
	}
	return out
}

// Merge fills f's unset fields from other and concatenates the detected
// amount/date lists up to their caps. f's values win for scalar fields that
// are already set.
func (f *Fields) Merge(other Fields) {
	f.DetectedAmounts = appendCapped(f.DetectedAmounts, other.DetectedAmounts, MaxAmounts)
	f.DetectedDates = appendCapped(f.DetectedDates, other.DetectedDates, MaxDates)
	if f.SSN == "" {
		f.SSN = other.SSN
	}
	if f.EIN == "" {
		f.EIN = other.EIN
	}
	if f.EmployeeID == "" {
		f.EmployeeID = other.EmployeeID
	}
	if f.PayFrequency == "" {
		f.PayFrequency = other.PayFrequency
	}
	if f.CompanyName == "" {
		f.CompanyName = other.CompanyName
	}
	if f.EmployeeName == "" {
		f.EmployeeName = other.EmployeeName
	}
	if len(f.BenefitCodes) == 0 {
		f.BenefitCodes = other.BenefitCodes
	}
}

func appendCapped[T any](dst, src []T, limit int) []T {
	for _, v := range src {
		if len(dst) >= limit {
			break
		}
		dst = append(dst, v)
	}
	return dst
}

func firstMatch(res []*regexp.Regexp, text string) string {
	for _, re := range res {
		if m := re.FindString(text); m != "" {
			return m
		}
	}
	return ""
}

func firstGroup(res []*regexp.Regexp, text string) string {
	for _, re := range res {
		if m := re.FindStringSubmatch(text); len(m) > 1 {
			return m[1]
		}
	}
	return ""
}

func stopWorded(candidate string) bool {
	lower := strings.ToLower(candidate)
	for _, w := range companyStopWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
