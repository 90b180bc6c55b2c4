package paydoc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveW2IncomeFromBox1(t *testing.T) {
	d := &Document{
		DocType: DocTypeW2,
		Totals:  Totals{GrossPayCurrent: 87500},
	}

	DeriveIncome(d)

	require.NotNil(t, d.Totals.AnnualIncome)
	assert.Equal(t, 87500.0, *d.Totals.AnnualIncome)
	require.NotNil(t, d.Totals.MonthlyIncome)
	assert.InDelta(t, 7291.67, *d.Totals.MonthlyIncome, 0.001)
	assert.Equal(t, VerificationBox1Wages, d.Totals.IncomeVerificationMethod)
}

func TestDeriveW2IncomeFallsBackToSocialSecurityWages(t *testing.T) {
	d := &Document{
		DocType: DocTypeW2,
		Taxes: []TaxLine{
			{TaxType: "Social Security", CurrentAmount: 5425, TaxableWagesCurrent: Float64(87500)},
		},
	}

	DeriveIncome(d)

	require.NotNil(t, d.Totals.AnnualIncome)
	assert.Equal(t, 87500.0, *d.Totals.AnnualIncome)
	assert.Equal(t, VerificationBox3SSWages, d.Totals.IncomeVerificationMethod)
}

func TestDeriveW2IncomeFallsBackToMedicareWages(t *testing.T) {
	d := &Document{
		DocType: DocTypeW2,
		Taxes: []TaxLine{
			{TaxType: "Medicare", CurrentAmount: 1268.75, TaxableWagesCurrent: Float64(87500)},
		},
	}

	DeriveIncome(d)

	require.NotNil(t, d.Totals.AnnualIncome)
	assert.Equal(t, VerificationBox5Medicare, d.Totals.IncomeVerificationMethod)
}

func TestDeriveW2IncomeNothingToDerive(t *testing.T) {
	d := &Document{DocType: DocTypeW2}

	DeriveIncome(d)

	assert.Nil(t, d.Totals.AnnualIncome)
	assert.Nil(t, d.Totals.MonthlyIncome)
	assert.Empty(t, d.Totals.IncomeVerificationMethod)
}

func TestDeriveW2BenefitsSum(t *testing.T) {
	d := &Document{
		DocType: DocTypeW2,
		Totals:  Totals{GrossPayCurrent: 87500},
		BenefitCodes: []BenefitCode{
			{Code: "D", Amount: 6500},
			{Code: "DD", Amount: 8250},
		},
	}

	DeriveIncome(d)

	require.NotNil(t, d.Totals.AdditionalBenefits)
	assert.Equal(t, 14750.0, *d.Totals.AdditionalBenefits)
}

func TestDerivePaystubMonthlyQualifyingIncome(t *testing.T) {
	cases := []struct {
		frequency string
		gross     float64
		want      float64
	}{
		{"Weekly", 1000, 4333.33},
		{"Bi-weekly", 4500, 9750},
		{"biweekly", 4500, 9750},
		{"Semi-monthly", 2500, 5000},
		{"Monthly", 6000, 6000},
		{"Quarterly", 15000, 5000},
		{"Annual", 120000, 10000},
	}
	for _, tc := range cases {
		t.Run(tc.frequency, func(t *testing.T) {
			d := &Document{
				DocType:      DocTypePaystub,
				Totals:       Totals{GrossPayCurrent: tc.gross},
				PayFrequency: tc.frequency,
			}
			DeriveIncome(d)
			require.NotNil(t, d.Totals.MonthlyQualifyingIncome)
			assert.InDelta(t, tc.want, *d.Totals.MonthlyQualifyingIncome, 0.001)
		})
	}
}

func TestDerivePaystubUnknownFrequency(t *testing.T) {
	d := &Document{
		DocType:      DocTypePaystub,
		Totals:       Totals{GrossPayCurrent: 4500},
		PayFrequency: "fortnightly-ish",
	}

	DeriveIncome(d)

	assert.Nil(t, d.Totals.MonthlyQualifyingIncome)
}

func TestFrequencyVocabulary(t *testing.T) {
	assert.Equal(t, 26.0, FrequencyPeriodsPerYear("Bi-Weekly"))
	assert.Equal(t, 52.0, FrequencyPeriodsPerYear(" weekly "))
	assert.Equal(t, 0.0, FrequencyPeriodsPerYear("daily"))
	assert.True(t, KnownFrequency("SEMI-MONTHLY"))
	assert.False(t, KnownFrequency(""))
}

func TestErrorRecordShape(t *testing.T) {
	d := ErrorRecord(DocTypePaystub, errors.New("reading PDF a.pdf: invalid header"))

	assert.Equal(t, DocTypePaystub, d.DocType)
	assert.Equal(t, 0.0, d.ConfidenceScore)
	assert.Contains(t, d.Error, "invalid header")
	assert.NotNil(t, d.ValidationWarnings)
	assert.False(t, d.VisionUsed())
}
