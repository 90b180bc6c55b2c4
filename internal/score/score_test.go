package score

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"payproof/internal/paydoc"
)

func fullRecord() *paydoc.Document {
	d := &paydoc.Document{
		DocType:  paydoc.DocTypePaystub,
		Employer: paydoc.Employer{Name: "Acme Widgets Inc"},
		Employee: paydoc.Employee{Name: "Jane Doe"},
		Period:   paydoc.Period{PayDate: "2024-01-19"},
		Totals:   paydoc.Totals{GrossPayCurrent: 4500, NetPayCurrent: 3200},
		Earnings: []paydoc.EarningsLine{{Description: "Regular", CurrentAmount: 4500}},
		Taxes:    []paydoc.TaxLine{{TaxType: "Federal Income Tax", CurrentAmount: 540}},
		Deductions: []paydoc.DeductionLine{
			{Description: "Health", CurrentAmount: 120},
		},
	}
	d.SetMeta(paydoc.MetaVisionUsed, true)
	d.SetMeta(paydoc.MetaTablesFound, 2)
	d.SetMeta(paydoc.MetaTextLength, 1200)
	return d
}

func TestCompletenessFullRecordIsOne(t *testing.T) {
	assert.Equal(t, 1.0, Completeness(fullRecord()))
}

func TestCompletenessEmptyRecordIsZero(t *testing.T) {
	assert.Equal(t, 0.0, Completeness(&paydoc.Document{}))
}

func TestCompletenessWithinBounds(t *testing.T) {
	records := []*paydoc.Document{
		{},
		{Employer: paydoc.Employer{Name: "Acme"}},
		{Totals: paydoc.Totals{GrossPayCurrent: 100}},
		fullRecord(),
	}
	for _, d := range records {
		s := Completeness(d)
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 1.0)
	}
}

func TestCompletenessMonotonicInPopulatedFields(t *testing.T) {
	d := &paydoc.Document{}
	prev := Completeness(d)

	steps := []func(){
		func() { d.Employer.Name = "Acme Widgets Inc" },
		func() { d.Employee.Name = "Jane Doe" },
		func() { d.Period.PayDate = "2024-01-19" },
		func() { d.Totals.GrossPayCurrent = 4500 },
		func() { d.Totals.NetPayCurrent = 3200 },
		func() { d.Earnings = []paydoc.EarningsLine{{Description: "Regular", CurrentAmount: 4500}} },
		func() { d.Taxes = []paydoc.TaxLine{{TaxType: "Federal", CurrentAmount: 540}} },
		func() { d.Deductions = []paydoc.DeductionLine{{Description: "Health", CurrentAmount: 120}} },
		func() { d.SetMeta(paydoc.MetaVisionUsed, true) },
		func() { d.SetMeta(paydoc.MetaTablesFound, 1) },
		func() { d.SetMeta(paydoc.MetaTextLength, 500) },
	}
	for _, step := range steps {
		step()
		cur := Completeness(d)
		assert.GreaterOrEqual(t, cur, prev)
		prev = cur
	}
	assert.Equal(t, 1.0, prev)
}

func TestCompletenessHeuristicOnlyBaseline(t *testing.T) {
	// A record built without vision but with both adapters succeeding and the
	// headline fields found lands in the 0.6 region.
	d := &paydoc.Document{
		DocType:  paydoc.DocTypePaystub,
		Employer: paydoc.Employer{Name: "Acme Widgets Inc"},
		Employee: paydoc.Employee{Name: "Jane Doe"},
		Period:   paydoc.Period{PayDate: "2024-01-19"},
		Totals:   paydoc.Totals{GrossPayCurrent: 4500, NetPayCurrent: 3200},
	}
	d.SetMeta(paydoc.MetaVisionUsed, false)
	d.SetMeta(paydoc.MetaTablesFound, 1)
	d.SetMeta(paydoc.MetaTextLength, 800)

	assert.InDelta(t, 0.65, Completeness(d), 0.001)
}

func TestCompletenessMetaCountsSurviveJSONRoundTrip(t *testing.T) {
	d := fullRecord()
	// JSON decoding turns numbers into float64.
	d.SetMeta(paydoc.MetaTablesFound, float64(2))
	d.SetMeta(paydoc.MetaTextLength, float64(1200))

	assert.Equal(t, 1.0, Completeness(d))
}

func TestCompletenessTextLengthFloor(t *testing.T) {
	d := &paydoc.Document{}
	d.SetMeta(paydoc.MetaTextLength, 100)
	assert.Equal(t, 0.0, Completeness(d))

	d.SetMeta(paydoc.MetaTextLength, 101)
	assert.InDelta(t, 0.02, Completeness(d), 0.001)
}
