package paydoc

import (
	"math"
	"strings"
)

// Income verification methods recorded on derived W-2 income.
const (
	VerificationBox1Wages    = "box_1_wages"
	VerificationBox3SSWages  = "box_3_ss_wages"
	VerificationBox5Medicare = "box_5_medicare_wages"
)

// DeriveIncome computes the derived income fields on d.Totals in place.
//
// W-2: annual income is the primary wage figure; when it is absent the
// social-security and then medicare taxable-wage bases are used instead,
// recording which source backed the number. Benefit-code amounts are summed
// into AdditionalBenefits.
//
// Paystub: monthly qualifying income is gross * periods-per-year / 12 for a
// recognized pay frequency; an unknown frequency leaves the field unset.
func DeriveIncome(d *Document) {
	switch d.DocType {
	case DocTypeW2:
		deriveW2Income(d)
	case DocTypePaystub:
		derivePaystubIncome(d)
	}
}

func deriveW2Income(d *Document) {
	annual := d.Totals.GrossPayCurrent
	method := VerificationBox1Wages

	if annual <= 0 {
		if w := taxableWages(d, "social security"); w > 0 {
			annual = w
			method = VerificationBox3SSWages
		} else if w := taxableWages(d, "medicare"); w > 0 {
			annual = w
			method = VerificationBox5Medicare
		}
	}

	if annual > 0 {
		monthly := round2(annual / 12)
		d.Totals.AnnualIncome = Float64(annual)
		d.Totals.MonthlyIncome = Float64(monthly)
		d.Totals.IncomeVerificationMethod = method
	}

	var benefits float64
	for _, bc := range d.BenefitCodes {
		benefits += bc.Amount
	}
	if benefits > 0 {
		d.Totals.AdditionalBenefits = Float64(benefits)
	}
}

func derivePaystubIncome(d *Document) {
	periods := FrequencyPeriodsPerYear(d.PayFrequency)
	if periods == 0 || d.Totals.GrossPayCurrent <= 0 {
		return
	}
	monthly := round2(d.Totals.GrossPayCurrent * periods / 12)
	d.Totals.MonthlyQualifyingIncome = Float64(monthly)
}

// taxableWages finds the current taxable-wage base of the first tax line whose
// category contains the given fragment (case-insensitive).
func taxableWages(d *Document, fragment string) float64 {
	for _, t := range d.Taxes {
		if strings.Contains(strings.ToLower(t.TaxType), fragment) && t.TaxableWagesCurrent != nil {
			return *t.TaxableWagesCurrent
		}
	}
	return 0
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
