package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"payproof/internal/domain"
	"payproof/internal/paydoc"
)

func paystubResult(t *testing.T) domain.ParseResult {
	t.Helper()
	doc := paydoc.Document{
		DocType:  paydoc.DocTypePaystub,
		Employer: paydoc.Employer{Name: "Acme Widgets Inc"},
		Employee: paydoc.Employee{Name: "Jordan Fuller"},
		Period:   paydoc.Period{PayDate: "2026-07-15"},
		Totals: paydoc.Totals{
			GrossPayCurrent:         4500,
			NetPayCurrent:           3200,
			MonthlyQualifyingIncome: paydoc.Float64(9750),
		},
		PayFrequency: "bi-weekly",
		Earnings: []paydoc.EarningsLine{
			{Description: "Regular", CurrentAmount: 4500},
		},
		ConfidenceScore: 0.92,
	}
	record, err := json.Marshal(&doc)
	require.NoError(t, err)

	return domain.ParseResult{
		ID:               uuid.New(),
		FileName:         "stub.pdf",
		DocType:          "paystub",
		Record:           record,
		ConfidenceScore:  0.92,
		WarningCount:     1,
		VisionUsed:       true,
		ValidationPassed: true,
		ReviewStatus:     domain.ReviewPending,
		CreatedAt:        time.Date(2026, 7, 16, 12, 0, 0, 0, time.UTC),
	}
}

func TestCSVRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewCSVWriter(&buf)
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteResults([]domain.ParseResult{paystubResult(t)}))
	w.Flush()
	require.NoError(t, w.Error())

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, columns, rows[0])

	row := rows[1]
	assert.Equal(t, "stub.pdf", row[0])
	assert.Equal(t, "paystub", row[1])
	assert.Equal(t, "pending", row[2])
	assert.Equal(t, "Yes", row[3])
	assert.Equal(t, "0.92", row[4])
	assert.Equal(t, "Acme Widgets Inc", row[6])
	assert.Equal(t, "Jordan Fuller", row[8])
	assert.Equal(t, "2026-07-15", row[9])
	assert.Equal(t, "bi-weekly", row[12])
	assert.Equal(t, "4500.00", row[13])
	assert.Equal(t, "3200.00", row[14])
	assert.Equal(t, "9750.00", row[18])
	assert.Equal(t, "1", row[21])
	assert.Equal(t, "Yes", row[24])
}

func TestCSVHandlesUndecodableRecord(t *testing.T) {
	r := paystubResult(t)
	r.Record = json.RawMessage(`{broken`)

	var buf bytes.Buffer
	w := NewCSVWriter(&buf)
	require.NoError(t, w.WriteResults([]domain.ParseResult{r}))
	w.Flush()
	require.NoError(t, w.Error())

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)

	// Metadata columns survive; record columns stay empty.
	assert.Equal(t, "stub.pdf", rows[0][0])
	assert.Equal(t, "", rows[0][6])
	assert.Equal(t, "", rows[0][13])
}

func TestXLSXRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, []domain.ParseResult{paystubResult(t)}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "File Name", rows[0][0])
	assert.Equal(t, "stub.pdf", rows[1][0])
	assert.Equal(t, "Acme Widgets Inc", rows[1][6])
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "Q3_payroll_batch", SanitizeFilename("Q3 payroll/batch!"))
	assert.Equal(t, "a_b", SanitizeFilename("__a___b__"))

	long := SanitizeFilename(string(bytes.Repeat([]byte("x"), 150)))
	assert.Len(t, long, 100)
}

func TestBuildFilename(t *testing.T) {
	name := BuildFilename("parse results", "csv")
	assert.Contains(t, name, "parse_results_")
	assert.Contains(t, name, ".csv")
}
