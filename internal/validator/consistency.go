// Package validator runs the record-level checks: cross-field consistency
// rules that produce human-readable warnings, and structural validation of
// the record against an embedded JSON schema. Warnings never fail a parse;
// a structural failure marks the record but still returns it.
package validator

import (
	"fmt"
	"math"

	"payproof/internal/paydoc"
)

// Policy holds the consistency thresholds. The earnings-vs-gross tolerance is
// the larger of the absolute and the proportional bound, so small rounding
// gaps on large paychecks and flat fees on small ones both pass.
type Policy struct {
	// EarningsAbsTolerance is the flat earnings/gross mismatch allowance in dollars.
	EarningsAbsTolerance float64
	// EarningsPctTolerance is the proportional allowance as a fraction of gross.
	EarningsPctTolerance float64
	// LowGrossFloor flags per-period gross amounts below it as unusually low.
	LowGrossFloor float64
	// HighGrossCeiling flags per-period gross amounts above it as unusually high.
	HighGrossCeiling float64
}

// DefaultPolicy returns the standard thresholds: $100 or 5% of gross for
// earnings reconciliation, plausibility bounds of $100 and $50,000 per period.
func DefaultPolicy() Policy {
	return Policy{
		EarningsAbsTolerance: 100,
		EarningsPctTolerance: 0.05,
		LowGrossFloor:        100,
		HighGrossCeiling:     50000,
	}
}

func (p Policy) earningsTolerance(gross float64) float64 {
	return math.Max(p.EarningsAbsTolerance, gross*p.EarningsPctTolerance)
}

// Consistency produces the cross-field warnings for a record. Order is
// deterministic: required-field checks, then mathematical consistency, then
// plausibility bounds.
func Consistency(d *paydoc.Document, policy Policy) []string {
	var warnings []string

	gross := d.Totals.GrossPayCurrent
	net := d.Totals.NetPayCurrent

	if gross == 0 {
		warnings = append(warnings, "Missing gross pay current amount")
	}
	if d.DocType == paydoc.DocTypePaystub && net == 0 {
		warnings = append(warnings, "Missing net pay current amount")
	}

	if gross > 0 && net > 0 && net >= gross {
		warnings = append(warnings, "Net pay is greater than or equal to gross pay - check deductions")
	}

	if len(d.Earnings) > 0 && gross > 0 {
		warnings = append(warnings, earningsWarnings(d, gross, policy)...)
	}

	if gross > 0 && gross < policy.LowGrossFloor {
		warnings = append(warnings, "Gross pay seems unusually low")
	}
	if d.DocType == paydoc.DocTypePaystub && gross > policy.HighGrossCeiling {
		warnings = append(warnings, "Gross pay seems unusually high for a single pay period")
	}

	return warnings
}

// earningsWarnings reconciles the earnings lines against gross pay. Employee
// earnings exclude employer-contribution lines; a second check covers the
// all-lines total when the two sums differ.
func earningsWarnings(d *paydoc.Document, gross float64, policy Policy) []string {
	var employeeSum, totalSum float64
	for _, line := range d.Earnings {
		totalSum += line.CurrentAmount
		if !line.IsEmployerContribution {
			employeeSum += line.CurrentAmount
		}
	}

	tolerance := policy.earningsTolerance(gross)
	var warnings []string

	if diff := math.Abs(employeeSum - gross); diff > 0.01 && diff > tolerance {
		warnings = append(warnings, fmt.Sprintf(
			"Employee earnings total (%.2f) doesn't match gross pay (%.2f) - difference: $%.2f",
			employeeSum, gross, diff))
	}

	if diff := math.Abs(totalSum - gross); diff > 0.01 && employeeSum != totalSum && diff > tolerance {
		warnings = append(warnings, fmt.Sprintf(
			"Total earnings (%.2f) includes employer contributions and doesn't match gross pay (%.2f) - difference: $%.2f",
			totalSum, gross, diff))
	}

	return warnings
}
