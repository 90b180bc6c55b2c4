package paydoc

// DocType identifies which kind of payroll document a record was extracted from.
type DocType string

const (
	DocTypePaystub DocType = "paystub"
	DocTypeW2      DocType = "w2"
)

// Address is the structured address shared by employer and employee.
type Address struct {
	Street      string `json:"street,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	Zip         string `json:"zip,omitempty"`
	FullAddress string `json:"full_address,omitempty"`
}

// Employer identifies the issuing employer. TaxID holds the EIN on W-2s.
type Employer struct {
	Name          string   `json:"name"`
	TaxID         string   `json:"tax_id,omitempty"`
	EmployeeID    string   `json:"employee_id,omitempty"`
	ControlNumber string   `json:"control_number,omitempty"`
	Address       *Address `json:"address,omitempty"`
}

// Employee identifies the wage earner. SSNMasked keeps whatever masking the
// document used (XXX-XX-1234, *****1234, or a bare 9-digit value).
type Employee struct {
	Name      string   `json:"name"`
	SSNMasked string   `json:"ssn_masked,omitempty"`
	Address   *Address `json:"address,omitempty"`
}

// Period holds the payroll period boundaries as ISO calendar dates (YYYY-MM-DD).
// All fields are optional; W-2s typically only carry the tax year.
type Period struct {
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
	PayDate   string `json:"pay_date,omitempty"`
}

// EarningsLine is a single earnings row. CurrentAmount is required; a line
// without a parseable positive amount is dropped rather than zeroed.
type EarningsLine struct {
	Description            string   `json:"description"`
	Rate                   *float64 `json:"rate,omitempty"`
	Hours                  *float64 `json:"hours,omitempty"`
	CurrentAmount          float64  `json:"current_amount"`
	YTDAmount              *float64 `json:"ytd_amount,omitempty"`
	IsEmployerContribution bool     `json:"is_employer_contribution"`
}

// DeductionLine is a single deduction row.
type DeductionLine struct {
	Description   string   `json:"description"`
	CurrentAmount float64  `json:"current_amount"`
	YTDAmount     *float64 `json:"ytd_amount,omitempty"`
	IsPreTax      bool     `json:"is_pre_tax"`
}

// TaxLine is a single tax-withholding row. The taxable-wage bases carry
// W-2 box 3/5 style amounts when present.
type TaxLine struct {
	TaxType             string   `json:"tax_type"`
	CurrentAmount       float64  `json:"current_amount"`
	YTDAmount           *float64 `json:"ytd_amount,omitempty"`
	TaxableWagesCurrent *float64 `json:"taxable_wages_current,omitempty"`
	TaxableWagesYTD     *float64 `json:"taxable_wages_ytd,omitempty"`
}

// BenefitCode is a W-2 box-12 style supplemental compensation entry.
type BenefitCode struct {
	Code   string  `json:"code"`
	Amount float64 `json:"amount"`
}

// Totals aggregates the document's headline amounts. The income fields
// (annual/monthly/monthly-qualifying) are derived, never extracted.
type Totals struct {
	GrossPayCurrent          float64  `json:"gross_pay_current"`
	GrossPayYTD              *float64 `json:"gross_pay_ytd,omitempty"`
	NetPayCurrent            float64  `json:"net_pay_current"`
	NetPayYTD                *float64 `json:"net_pay_ytd,omitempty"`
	AnnualIncome             *float64 `json:"annual_income,omitempty"`
	MonthlyIncome            *float64 `json:"monthly_income,omitempty"`
	MonthlyQualifyingIncome  *float64 `json:"monthly_qualifying_income,omitempty"`
	IncomeVerificationMethod string   `json:"income_verification_method,omitempty"`
	AdditionalBenefits       *float64 `json:"additional_benefits,omitempty"`
}

// Document is the final record produced by the extraction pipeline. It is
// fully built in-process by a single parse call and immutable once returned.
// ConfidenceScore is a completeness/method-diversity proxy in [0,1], not an
// accuracy estimate; see score.Completeness.
type Document struct {
	DocType            DocType         `json:"document_type"`
	TaxYear            string          `json:"tax_year,omitempty"`
	Employer           Employer        `json:"employer"`
	Employee           Employee        `json:"employee"`
	Period             Period          `json:"payroll_period"`
	Totals             Totals          `json:"totals"`
	Earnings           []EarningsLine  `json:"earnings"`
	Deductions         []DeductionLine `json:"deductions"`
	Taxes              []TaxLine       `json:"taxes"`
	BenefitCodes       []BenefitCode   `json:"benefit_codes,omitempty"`
	TotalHoursCurrent  *float64        `json:"total_hours_current,omitempty"`
	PayFrequency       string          `json:"pay_frequency,omitempty"`
	ConfidenceScore    float64         `json:"confidence_score"`
	ValidationWarnings []string        `json:"validation_warnings"`
	ProcessingMetadata map[string]any  `json:"processing_metadata,omitempty"`
	Error              string          `json:"error,omitempty"`
}

// Metadata keys written by the pipeline stages.
const (
	MetaVisionUsed       = "gpt_vision_used"
	MetaExtractionMethod = "extraction_method"
	MetaTablesFound      = "tables_found"
	MetaTextLength       = "text_length"
	MetaValidationPassed = "validation_passed"
	MetaValidationError  = "validation_error"
	MetaWarningCount     = "validation_warnings_count"
	MetaDetectedAmounts  = "detected_amounts"
	MetaDetectedDates    = "detected_dates"
)

// SetMeta writes a processing-metadata entry, allocating the map if needed.
func (d *Document) SetMeta(key string, value any) {
	if d.ProcessingMetadata == nil {
		d.ProcessingMetadata = make(map[string]any)
	}
	d.ProcessingMetadata[key] = value
}

// Meta reads a processing-metadata entry.
func (d *Document) Meta(key string) (any, bool) {
	v, ok := d.ProcessingMetadata[key]
	return v, ok
}

// VisionUsed reports whether the vision-enhancement stage produced this record.
func (d *Document) VisionUsed() bool {
	v, ok := d.ProcessingMetadata[MetaVisionUsed].(bool)
	return ok && v
}

// ErrorRecord builds the error-shaped record returned when the input file
// cannot be processed at all.
func ErrorRecord(docType DocType, err error) *Document {
	return &Document{
		DocType:            docType,
		ConfidenceScore:    0.0,
		ValidationWarnings: []string{},
		Error:              err.Error(),
		ProcessingMetadata: map[string]any{
			MetaExtractionMethod: "failed",
			MetaVisionUsed:       false,
		},
	}
}

// Float64 returns a pointer to v. Convenience for the optional amount fields.
func Float64(v float64) *float64 { return &v }
