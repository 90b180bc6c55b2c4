package validator

import (
	"log"

	"payproof/internal/paydoc"
)

// Validator applies the consistency rules and the schema check to a record.
type Validator struct {
	policy  Policy
	schemas *SchemaSet
}

// New creates a Validator. A nil SchemaSet skips structural validation.
func New(policy Policy, schemas *SchemaSet) *Validator {
	return &Validator{policy: policy, schemas: schemas}
}

// Validate annotates the record in place: consistency warnings are appended
// to ValidationWarnings and the structural result is stamped into the
// processing metadata. A structural failure never discards the record.
func (v *Validator) Validate(d *paydoc.Document) {
	warnings := Consistency(d, v.policy)
	d.ValidationWarnings = append(d.ValidationWarnings, warnings...)
	if d.ValidationWarnings == nil {
		d.ValidationWarnings = []string{}
	}
	d.SetMeta(paydoc.MetaWarningCount, len(d.ValidationWarnings))

	if v.schemas == nil {
		return
	}
	if err := v.schemas.Validate(d); err != nil {
		log.Printf("validator.Validator: schema validation failed: %v", err)
		d.SetMeta(paydoc.MetaValidationPassed, false)
		d.SetMeta(paydoc.MetaValidationError, err.Error())
		return
	}
	d.SetMeta(paydoc.MetaValidationPassed, true)
}
