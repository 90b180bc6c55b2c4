// Package score computes the record confidence value. The score is a
// completeness and method-diversity proxy, not an accuracy estimate: the
// system has no ground truth, so it measures how much of the document
// structure was recovered and through how many independent methods.
package score

import "payproof/internal/paydoc"

const maxPoints = 100.0

// Point weights per presence check.
const (
	ptsEmployerName  = 10
	ptsEmployeeName  = 10
	ptsPayDate       = 10
	ptsGrossPositive = 15
	ptsNetPositive   = 15
	ptsHasEarnings   = 10
	ptsHasTaxes      = 10
	ptsHasDeductions = 10
	ptsVisionUsed    = 5
	ptsTablesFound   = 3
	ptsTextLength    = 2
)

// textLengthFloor is the minimum extracted text length that counts as a
// meaningful text-extraction result.
const textLengthFloor = 100

// Completeness returns a deterministic confidence in [0,1] for the record.
// Fixed points are summed over presence checks and normalized by 100, so
// populating a previously absent field never lowers the result.
func Completeness(d *paydoc.Document) float64 {
	points := 0.0

	// Identity completeness.
	if d.Employer.Name != "" {
		points += ptsEmployerName
	}
	if d.Employee.Name != "" {
		points += ptsEmployeeName
	}
	if d.Period.PayDate != "" {
		points += ptsPayDate
	}

	// Financial completeness.
	if d.Totals.GrossPayCurrent > 0 {
		points += ptsGrossPositive
	}
	if d.Totals.NetPayCurrent > 0 {
		points += ptsNetPositive
	}
	if len(d.Earnings) > 0 {
		points += ptsHasEarnings
	}

	// Breakdown completeness.
	if len(d.Taxes) > 0 {
		points += ptsHasTaxes
	}
	if len(d.Deductions) > 0 {
		points += ptsHasDeductions
	}

	// Processing quality.
	if d.VisionUsed() {
		points += ptsVisionUsed
	}
	if tablesFound(d) > 0 {
		points += ptsTablesFound
	}
	if textLength(d) > textLengthFloor {
		points += ptsTextLength
	}

	score := points / maxPoints
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// tablesFound reads the table count stamped by the extraction stage. The
// value round-trips through JSON as float64, so both numeric kinds are
// accepted.
func tablesFound(d *paydoc.Document) int {
	return metaInt(d, paydoc.MetaTablesFound)
}

func textLength(d *paydoc.Document) int {
	return metaInt(d, paydoc.MetaTextLength)
}

func metaInt(d *paydoc.Document, key string) int {
	v, ok := d.Meta(key)
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	default:
		return 0
	}
}
