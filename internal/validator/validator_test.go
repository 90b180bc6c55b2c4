package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payproof/internal/paydoc"
)

func paystub(gross, net float64, earnings []paydoc.EarningsLine) *paydoc.Document {
	return &paydoc.Document{
		DocType:  paydoc.DocTypePaystub,
		Employer: paydoc.Employer{Name: "Acme Widgets Inc"},
		Employee: paydoc.Employee{Name: "Jane Doe"},
		Totals:   paydoc.Totals{GrossPayCurrent: gross, NetPayCurrent: net},
		Earnings: earnings,
	}
}

func TestConsistencyNetExceedsGross(t *testing.T) {
	warnings := Consistency(paystub(5000, 6000, nil), DefaultPolicy())

	assert.Contains(t, warnings, "Net pay is greater than or equal to gross pay - check deductions")
}

func TestConsistencyNetBelowGrossClean(t *testing.T) {
	warnings := Consistency(paystub(5000, 3800, nil), DefaultPolicy())

	assert.Empty(t, warnings)
}

func TestConsistencyMissingAmounts(t *testing.T) {
	warnings := Consistency(paystub(0, 0, nil), DefaultPolicy())

	assert.Contains(t, warnings, "Missing gross pay current amount")
	assert.Contains(t, warnings, "Missing net pay current amount")
}

func TestConsistencyEarningsWithinTolerance(t *testing.T) {
	// 0.5% off on a 10,000 gross is inside both the $100 and the 5% bounds.
	d := paystub(10000, 7500, []paydoc.EarningsLine{
		{Description: "Regular", CurrentAmount: 9950},
	})

	warnings := Consistency(d, DefaultPolicy())

	assert.Empty(t, warnings)
}

func TestConsistencyEarningsMismatchFlagged(t *testing.T) {
	// 20% off exceeds both the $100 floor and 5% of gross.
	d := paystub(10000, 7500, []paydoc.EarningsLine{
		{Description: "Regular", CurrentAmount: 8000},
	})

	warnings := Consistency(d, DefaultPolicy())

	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "doesn't match gross pay")
	assert.Contains(t, warnings[0], "difference: $2000.00")
}

func TestConsistencyEmployerContributionsExcluded(t *testing.T) {
	// Employee lines reconcile exactly; the employer match must not trip the check.
	d := paystub(4500, 3200, []paydoc.EarningsLine{
		{Description: "Regular", CurrentAmount: 4500},
		{Description: "401k Employer Match", CurrentAmount: 200, IsEmployerContribution: true},
	})

	warnings := Consistency(d, DefaultPolicy())

	assert.Empty(t, warnings)
}

func TestConsistencyTotalEarningsWithContributionsFlagged(t *testing.T) {
	d := paystub(4500, 3200, []paydoc.EarningsLine{
		{Description: "Regular", CurrentAmount: 4500},
		{Description: "Employer Contribution Pension", CurrentAmount: 900, IsEmployerContribution: true},
	})

	warnings := Consistency(d, DefaultPolicy())

	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "includes employer contributions")
}

func TestConsistencyPlausibilityBounds(t *testing.T) {
	low := Consistency(paystub(80, 60, nil), DefaultPolicy())
	assert.Contains(t, low, "Gross pay seems unusually low")

	high := Consistency(paystub(60000, 40000, nil), DefaultPolicy())
	assert.Contains(t, high, "Gross pay seems unusually high for a single pay period")
}

func TestConsistencyW2SkipsPaystubOnlyChecks(t *testing.T) {
	d := &paydoc.Document{
		DocType:  paydoc.DocTypeW2,
		Employer: paydoc.Employer{Name: "Acme Widgets Inc"},
		Employee: paydoc.Employee{Name: "Jane Doe"},
		Totals:   paydoc.Totals{GrossPayCurrent: 87500},
	}

	warnings := Consistency(d, DefaultPolicy())

	assert.Empty(t, warnings, "annual W-2 wages must not trigger per-period bounds or net-pay checks")
}

func TestConsistencyCustomPolicy(t *testing.T) {
	policy := DefaultPolicy()
	policy.EarningsAbsTolerance = 10
	policy.EarningsPctTolerance = 0.001

	d := paystub(10000, 7500, []paydoc.EarningsLine{
		{Description: "Regular", CurrentAmount: 9950},
	})

	warnings := Consistency(d, policy)

	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "doesn't match gross pay")
}

func TestValidateStampsMetadata(t *testing.T) {
	schemas, err := LoadSchemas()
	require.NoError(t, err)

	v := New(DefaultPolicy(), schemas)
	d := paystub(5000, 6000, nil)
	v.Validate(d)

	assert.Contains(t, d.ValidationWarnings, "Net pay is greater than or equal to gross pay - check deductions")
	count, ok := d.Meta(paydoc.MetaWarningCount)
	require.True(t, ok)
	assert.Equal(t, 1, count)
	passed, ok := d.Meta(paydoc.MetaValidationPassed)
	require.True(t, ok)
	assert.Equal(t, true, passed)
}

func TestValidateSchemaFailureKeepsRecord(t *testing.T) {
	schemas, err := LoadSchemas()
	require.NoError(t, err)

	v := New(DefaultPolicy(), schemas)
	d := paystub(4500, 3200, nil)
	d.ConfidenceScore = 1.5 // out of range

	v.Validate(d)

	passed, ok := d.Meta(paydoc.MetaValidationPassed)
	require.True(t, ok)
	assert.Equal(t, false, passed)
	_, hasErr := d.Meta(paydoc.MetaValidationError)
	assert.True(t, hasErr)
	assert.Equal(t, 4500.0, d.Totals.GrossPayCurrent, "record is kept despite the schema failure")
}

func TestSchemaValidW2Record(t *testing.T) {
	schemas, err := LoadSchemas()
	require.NoError(t, err)

	d := &paydoc.Document{
		DocType:  paydoc.DocTypeW2,
		TaxYear:  "2023",
		Employer: paydoc.Employer{Name: "Acme Widgets Inc", TaxID: "12-3456789"},
		Employee: paydoc.Employee{Name: "Jane Doe", SSNMasked: "XXX-XX-1234"},
		Totals:   paydoc.Totals{GrossPayCurrent: 87500},
		Taxes: []paydoc.TaxLine{
			{TaxType: "Federal Income Tax", CurrentAmount: 11200, TaxableWagesCurrent: paydoc.Float64(87500)},
		},
		BenefitCodes:       []paydoc.BenefitCode{{Code: "DD", Amount: 8250}},
		ValidationWarnings: []string{},
	}

	assert.NoError(t, schemas.Validate(d))
}
