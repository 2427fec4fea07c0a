// Package validate checks extracted claims against the mandatory field set.
package validate

import (
	"github.com/dkosarev/claimtriage/internal/model"
)

// Validator reports which mandatory fields a claim is missing
type Validator struct {
	mandatory []string
}

// NewValidator creates a validator for the given mandatory field list.
// The list order is the reporting order.
func NewValidator(mandatory []string) *Validator {
	return &Validator{mandatory: mandatory}
}

// MissingFields returns every mandatory field that is absent or blank, in
// catalog order. The check is exhaustive — a claim can be missing zero or
// many fields at once. Pure function; an empty claim yields the full
// mandatory list.
func (v *Validator) MissingFields(claim model.ExtractedClaim) []string {
	missing := make([]string, 0, len(v.mandatory))

	for _, field := range v.mandatory {
		if !claim.Has(field) {
			missing = append(missing, field)
		}
	}

	return missing
}
