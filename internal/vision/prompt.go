package vision

import "payproof/internal/paydoc"

// BuildPrompt returns the extraction instruction for the given document kind,
// embedding the table and text adapters' partial results as context. The
// preliminary data is supplied as a hint, not ground truth: heuristics are
// frequently wrong on unusual layouts, so the instruction tells the model to
// prefer the page image while using the hints as anchoring context.
func BuildPrompt(docType paydoc.DocType, tableContext, textContext string) string {
	if docType == paydoc.DocTypeW2 {
		return buildW2Prompt(tableContext, textContext)
	}
	return buildPaystubPrompt(tableContext, textContext)
}

func buildPaystubPrompt(tableContext, textContext string) string {
	return `Analyze this pay stub document and extract ALL fields accurately. This parser must work with ANY pay stub format from ANY company. Preliminary data from table and text extraction is provided below; use it to guide you, but rely on the page image for accuracy.

PRELIMINARY TABLE DATA:
` + tableContext + `

PRELIMINARY TEXT DATA:
` + textContext + `

Return a JSON object with exactly this structure:

{
  "document_type": "paystub",
  "employer": {
    "name": "Acme Widgets Inc",
    "employee_id": "E-10482",
    "address": {"street": "100 Main St", "city": "Springfield", "state": "IL", "zip": "62701"}
  },
  "employee": {
    "name": "Jane Q Doe",
    "ssn_masked": "XXX-XX-1234",
    "address": {"street": "22 Oak Ave", "city": "Springfield", "state": "IL", "zip": "62702"}
  },
  "payroll_period": {
    "start_date": "2024-01-01",
    "end_date": "2024-01-14",
    "pay_date": "2024-01-19"
  },
  "totals": {
    "gross_pay_current": 4500.00,
    "gross_pay_ytd": 9000.00,
    "net_pay_current": 3200.00,
    "net_pay_ytd": 6400.00
  },
  "earnings": [
    {"description": "Regular Pay", "rate": 45.00, "hours": 80.00, "current_amount": 3600.00, "ytd_amount": 7200.00, "is_employer_contribution": false}
  ],
  "deductions": [
    {"description": "Health Insurance", "current_amount": 120.00, "ytd_amount": 240.00, "is_pre_tax": true}
  ],
  "taxes": [
    {"tax_type": "Federal Income Tax", "current_amount": 540.00, "ytd_amount": 1080.00, "taxable_wages_current": 4500.00, "taxable_wages_ytd": 9000.00}
  ],
  "total_hours_current": 80.00,
  "pay_frequency": "Bi-weekly"
}

IMPORTANT INSTRUCTIONS:
1. Use the preliminary data to guide you, but rely on the image for accuracy.
2. Look for the standard sections: Employee Info, Pay Period, Earnings, Deductions, Taxes, Net Pay.
3. Extract all monetary values as bare numbers (no $ signs or commas).
4. Normalize all dates to YYYY-MM-DD.
5. CRITICAL: mark any item described as an employer match, employer contribution, company contribution, employer/company paid, ER cost, pension contribution, or employer HSA/FSA as an employer-contribution line ("is_employer_contribution": true), not an employee-earnings line.
6. Gross pay may represent base compensation only; bonuses and holiday pay can legitimately be reported separately, so total earnings need not equal gross pay. Prioritize accuracy over forcing the numbers to reconcile.
7. Determine pay frequency from the document (Weekly, Bi-weekly, Semi-monthly, Monthly, Quarterly, Annual).
8. If a field is not clearly visible, omit it or use null.
9. Return ONLY the JSON object, no markdown fences, no explanation.`
}

func buildW2Prompt(tableContext, textContext string) string {
	return `Analyze this W-2 wage statement and extract ALL fields accurately. Preliminary data from table and text extraction is provided below; use it to guide you, but rely on the page image for accuracy.

PRELIMINARY TABLE DATA:
` + tableContext + `

PRELIMINARY TEXT DATA:
` + textContext + `

Return a JSON object with exactly this structure:

{
  "document_type": "w2",
  "tax_year": "2023",
  "employer": {
    "name": "Acme Widgets Inc",
    "tax_id": "12-3456789",
    "control_number": "00421",
    "address": {"street": "100 Main St", "city": "Springfield", "state": "IL", "zip": "62701"}
  },
  "employee": {
    "name": "Jane Q Doe",
    "ssn_masked": "XXX-XX-1234",
    "address": {"street": "22 Oak Ave", "city": "Springfield", "state": "IL", "zip": "62702"}
  },
  "totals": {
    "gross_pay_current": 87500.00
  },
  "taxes": [
    {"tax_type": "Federal Income Tax", "current_amount": 11200.00, "taxable_wages_current": 87500.00},
    {"tax_type": "Social Security", "current_amount": 5425.00, "taxable_wages_current": 87500.00},
    {"tax_type": "Medicare", "current_amount": 1268.75, "taxable_wages_current": 87500.00},
    {"tax_type": "State Income Tax - IL", "current_amount": 4200.00, "taxable_wages_current": 87500.00}
  ],
  "benefit_codes": [
    {"code": "D", "amount": 6500.00},
    {"code": "DD", "amount": 8250.00}
  ]
}

IMPORTANT INSTRUCTIONS:
1. Use the table data to guide you, but rely on the image for accuracy.
2. Identify fields by their box numbers: box 1 wages go to totals.gross_pay_current; box 2 is Federal Income Tax withheld; boxes 3/4 are Social Security wages/tax; boxes 5/6 are Medicare wages/tax; boxes 15-20 are state and local entries.
3. Record each withholding as a taxes entry with its taxable wage base in taxable_wages_current (box 1 for federal, box 3 for Social Security, box 5 for Medicare, box 16 for state).
4. Extract every box 12 code (A, B, C, D, DD, W, ...) with its amount into benefit_codes.
5. Extract all monetary values as bare numbers (no $ signs or commas).
6. Handle SSN masking patterns like XXX-XX-1234 or *****1234; keep the masking as printed.
7. If a field is not clearly visible, omit it or use null.
8. Return ONLY the JSON object, no markdown fences, no explanation.`
}
