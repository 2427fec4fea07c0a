package model

import (
	"strconv"
	"strings"
)

// Recognized FNOL field names. The catalog order below is the canonical
// order used for validation reporting and output.
const (
	FieldPolicyNumber       = "policy_number"
	FieldPolicyholderName   = "policyholder_name"
	FieldEffectiveDate      = "effective_date"
	FieldDateOfLoss         = "date_of_loss"
	FieldTimeOfLoss         = "time_of_loss"
	FieldLocationOfLoss     = "location_of_loss"
	FieldDescription        = "description_of_accident"
	FieldClaimant           = "claimant"
	FieldDriverName         = "driver_name"
	FieldContactPhone       = "contact_phone"
	FieldContactEmail       = "contact_email"
	FieldAssetType          = "asset_type"
	FieldAssetID            = "asset_id"
	FieldVehicleDescription = "vehicle_description"
	FieldEstimatedDamage    = "estimated_damage"
	FieldClaimType          = "claim_type"
	FieldLineOfBusiness     = "line_of_business"
	FieldNAICCode           = "naic_code"
)

// Catalog lists every recognized field in canonical order
var Catalog = []string{
	FieldPolicyNumber,
	FieldPolicyholderName,
	FieldEffectiveDate,
	FieldDateOfLoss,
	FieldTimeOfLoss,
	FieldLocationOfLoss,
	FieldDescription,
	FieldClaimant,
	FieldDriverName,
	FieldContactPhone,
	FieldContactEmail,
	FieldAssetType,
	FieldAssetID,
	FieldVehicleDescription,
	FieldEstimatedDamage,
	FieldClaimType,
	FieldLineOfBusiness,
	FieldNAICCode,
}

// ExtractedClaim maps field names to extracted values. An absent key, a nil
// value, and a whitespace-only string are all equivalent: the field is missing.
type ExtractedClaim map[string]interface{}

// Text returns the trimmed string value of a field, or "" if the field is
// absent, nil, blank, or not a string.
func (c ExtractedClaim) Text(field string) string {
	val, ok := c[field]
	if !ok || val == nil {
		return ""
	}
	s, ok := val.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// Has reports whether a field is present with a usable value. Strings must be
// non-blank after trimming; any other non-nil value counts as present.
func (c ExtractedClaim) Has(field string) bool {
	val, ok := c[field]
	if !ok || val == nil {
		return false
	}
	if s, ok := val.(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return true
}

// Description returns the accident description text, or "" when missing.
func (c ExtractedClaim) Description() string {
	return c.Text(FieldDescription)
}

// Damage returns the estimated damage amount, or nil when the field is
// absent or cannot be coerced to a number. Malformed values normalize to
// missing here so the router only ever sees well-typed optional input.
func (c ExtractedClaim) Damage() *float64 {
	val, ok := c[FieldEstimatedDamage]
	if !ok || val == nil {
		return nil
	}

	switch v := val.(type) {
	case float64:
		return &v
	case float32:
		f := float64(v)
		return &f
	case int:
		f := float64(v)
		return &f
	case int64:
		f := float64(v)
		return &f
	case string:
		return parseMoney(v)
	default:
		return nil
	}
}

// parseMoney parses a currency string like "$12,500.00" into a float
func parseMoney(s string) *float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}
