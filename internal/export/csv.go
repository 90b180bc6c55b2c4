package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"payproof/internal/domain"
	"payproof/internal/paydoc"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the export header row.
var columns = []string{
	"File Name",
	"Document Type",
	"Review Status",
	"Validation Passed",
	"Confidence",
	"Warnings",
	"Employer Name",
	"Employer Tax ID",
	"Employee Name",
	"Pay Date",
	"Period Start",
	"Period End",
	"Pay Frequency",
	"Gross Pay Current",
	"Net Pay Current",
	"Gross Pay YTD",
	"Annual Income",
	"Monthly Income",
	"Monthly Qualifying Income",
	"Income Method",
	"Additional Benefits",
	"Earnings Lines",
	"Deduction Lines",
	"Tax Lines",
	"Vision Used",
	"Reviewer Notes",
	"Created At",
}

// CSVWriter wraps csv.Writer for exporting parse results as CSV.
type CSVWriter struct {
	csv *csv.Writer
}

// NewCSVWriter creates a CSVWriter that writes to w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *CSVWriter) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteResults converts a batch of parse results to CSV rows and writes them.
func (w *CSVWriter) WriteResults(results []domain.ParseResult) error {
	for i := range results {
		if err := w.csv.Write(resultToRow(&results[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *CSVWriter) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *CSVWriter) Error() error {
	return w.csv.Error()
}

// resultToRow flattens one persisted result. Metadata columns are always
// filled; record columns stay empty when the stored JSON does not decode.
func resultToRow(r *domain.ParseResult) []string {
	row := make([]string, len(columns))

	row[0] = r.FileName
	row[1] = r.DocType
	row[2] = string(r.ReviewStatus)
	row[3] = formatBool(r.ValidationPassed)
	row[4] = strconv.FormatFloat(r.ConfidenceScore, 'f', 2, 64)
	row[5] = strconv.Itoa(r.WarningCount)
	row[24] = formatBool(r.VisionUsed)
	row[25] = r.ReviewerNotes
	row[26] = r.CreatedAt.Format(time.RFC3339)

	var doc paydoc.Document
	if err := json.Unmarshal(r.Record, &doc); err != nil {
		return row
	}

	row[6] = doc.Employer.Name
	row[7] = doc.Employer.TaxID
	row[8] = doc.Employee.Name
	row[9] = doc.Period.PayDate
	row[10] = doc.Period.StartDate
	row[11] = doc.Period.EndDate
	row[12] = doc.PayFrequency
	row[13] = formatMoney(doc.Totals.GrossPayCurrent)
	row[14] = formatMoney(doc.Totals.NetPayCurrent)
	row[15] = formatMoneyPtr(doc.Totals.GrossPayYTD)
	row[16] = formatMoneyPtr(doc.Totals.AnnualIncome)
	row[17] = formatMoneyPtr(doc.Totals.MonthlyIncome)
	row[18] = formatMoneyPtr(doc.Totals.MonthlyQualifyingIncome)
	row[19] = doc.Totals.IncomeVerificationMethod
	row[20] = formatMoneyPtr(doc.Totals.AdditionalBenefits)
	row[21] = strconv.Itoa(len(doc.Earnings))
	row[22] = strconv.Itoa(len(doc.Deductions))
	row[23] = strconv.Itoa(len(doc.Taxes))

	return row
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatMoneyPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return formatMoney(*v)
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition. Replaces
// non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for the Content-Disposition
// header. Format: {sanitized_name}_{YYYY-MM-DD}.{ext}
func BuildFilename(name, ext string) string {
	return fmt.Sprintf("%s_%s.%s", SanitizeFilename(name), time.Now().Format("2006-01-02"), ext)
}
