package extract

import (
	"regexp"
	"strings"

	"github.com/dkosarev/claimtriage/internal/model"
)

// Capture patterns for ACORD FNOL form text. The source text comes from an
// upstream document-extraction layer (PDF text, OCR, plain text intake).
var (
	rePolicyNumber = regexp.MustCompile(`(?im)POLICY NUMBER[:\s]*([A-Z0-9-]+)`)
	reInsuredName  = regexp.MustCompile(`(?im)NAME OF INSURED[:\s]*\(First, Middle, Last\)[:\s]*([A-Za-z\s,.]+?)(?:\n|DATE OF BIRTH)`)
	reEffective    = regexp.MustCompile(`(?im)EFFECTIVE DATE[:\s]*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`)
	reDateOfLoss   = regexp.MustCompile(`(?im)DATE OF LOSS AND TIME[:\s]*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`)
	reTimeOfLoss   = regexp.MustCompile(`(?i)(\d{1,2}:\d{2})\s*(AM|PM)`)
	reStreet       = regexp.MustCompile(`(?im)STREET:[:\s]*([^\n]+)`)
	reCityStateZip = regexp.MustCompile(`(?im)CITY, STATE, ZIP:[:\s]*([^\n]+)`)
	reDescription  = regexp.MustCompile(`(?im)DESCRIPTION OF ACCIDENT[:\s]*\(ACORD[^)]*\)[:\s]*([^\n]+)`)
	reClaimant     = regexp.MustCompile(`(?im)NAME OF INSURED[:\s]*\(First, Middle, Last\)[:\s]*([A-Za-z\s,.]+?)(?:\n|INSURED)`)
	reDriverName   = regexp.MustCompile(`(?im)DRIVER'S NAME AND ADDRESS[:\s]*\(Check if same as insured\)[:\s]*PHONE[^\n]*\n([A-Za-z\s,.]+?)(?:\n|PHONE)`)
	rePhone        = regexp.MustCompile(`(?im)PHONE #[:\s]*HOME BUS CELL PRIMARY[:\s]*(\d{3}[-.\s]?\d{3}[-.\s]?\d{4})`)
	reEmail        = regexp.MustCompile(`(?im)E-MAIL ADDRESS:[:\s]*PRIMARY E-MAIL ADDRESS:[:\s]*([^\s\n]+@[^\s\n]+)`)
	reVehicleYear  = regexp.MustCompile(`(?im)VEH #[:\s]*YEAR[:\s]*(\d{4})`)
	reVehicleMake  = regexp.MustCompile(`(?im)MAKE:[:\s]*([A-Z][A-Za-z]+)`)
	reVehicleModel = regexp.MustCompile(`(?im)MODEL:[:\s]*([A-Za-z0-9\s]+?)(?:\n|BODY)`)
	reVIN          = regexp.MustCompile(`(?im)V\.I\.N\.:[:\s]*([A-Z0-9]{17})`)
	reEstimate     = regexp.MustCompile(`(?im)ESTIMATE AMOUNT:[:\s]*\$?([0-9,]+(?:\.\d{2})?)`)
	reLOB          = regexp.MustCompile(`(?im)LINE OF BUSINESS[:\s]*([A-Z\s]+?)(?:\n|ACORD)`)
	reNAIC         = regexp.MustCompile(`(?im)CARRIER NAIC CODE[:\s]*(\d+)`)

	// Description blocks continue onto following lines until the next form
	// section starts.
	reSectionStart = regexp.MustCompile(`(?i)^(LOSS|DRIVER|OWNER|VEHICLE)`)
)

// FieldExtractor extracts structured FNOL fields from document text
type FieldExtractor struct {
	rules model.RulesConfig
}

// NewFieldExtractor creates a new field extractor
func NewFieldExtractor(rules model.RulesConfig) *FieldExtractor {
	return &FieldExtractor{rules: rules}
}

// ExtractText extracts all recognized fields from FNOL document text.
// Fields that do not match are simply absent from the result; extraction
// never fails.
func (e *FieldExtractor) ExtractText(text string) model.ExtractedClaim {
	claim := model.ExtractedClaim{}

	set := func(field, value string) {
		if value != "" {
			claim[field] = value
		}
	}

	set(model.FieldPolicyNumber, firstMatch(rePolicyNumber, text))
	set(model.FieldPolicyholderName, firstMatch(reInsuredName, text))
	set(model.FieldEffectiveDate, firstMatch(reEffective, text))
	set(model.FieldDateOfLoss, firstMatch(reDateOfLoss, text))

	if m := reTimeOfLoss.FindStringSubmatch(text); m != nil {
		claim[model.FieldTimeOfLoss] = m[1] + " " + strings.ToUpper(m[2])
	}

	// Location is street + city/state/zip, joined when both are present
	var locationParts []string
	if street := firstMatch(reStreet, text); street != "" {
		locationParts = append(locationParts, street)
	}
	if csz := firstMatch(reCityStateZip, text); csz != "" {
		locationParts = append(locationParts, csz)
	}
	if len(locationParts) > 0 {
		claim[model.FieldLocationOfLoss] = strings.Join(locationParts, ", ")
	}

	set(model.FieldDescription, e.extractDescription(text))
	set(model.FieldClaimant, firstMatch(reClaimant, text))
	set(model.FieldDriverName, firstMatch(reDriverName, text))
	set(model.FieldContactPhone, firstMatch(rePhone, text))
	set(model.FieldContactEmail, firstMatch(reEmail, text))

	claim[model.FieldAssetType] = "vehicle"

	// Vehicle description combines year, make and model when any are present
	vehicleParts := make([]string, 0, 3)
	for _, re := range []*regexp.Regexp{reVehicleYear, reVehicleMake, reVehicleModel} {
		if v := firstMatch(re, text); v != "" {
			vehicleParts = append(vehicleParts, v)
		}
	}
	if len(vehicleParts) > 0 {
		claim[model.FieldVehicleDescription] = strings.Join(vehicleParts, " ")
	}

	set(model.FieldAssetID, firstMatch(reVIN, text))

	// Damage estimate: strip comma grouping, coerce to number, normalize
	// malformed values to missing
	if raw := firstMatch(reEstimate, text); raw != "" {
		if d := (model.ExtractedClaim{model.FieldEstimatedDamage: raw}).Damage(); d != nil {
			claim[model.FieldEstimatedDamage] = *d
		}
	}

	claim[model.FieldClaimType] = string(e.inferClaimType(text))

	set(model.FieldLineOfBusiness, firstMatch(reLOB, text))
	set(model.FieldNAICCode, firstMatch(reNAIC, text))

	return claim
}

// extractDescription captures the description block: the text after the
// section header plus any continuation lines up to the next form section.
func (e *FieldExtractor) extractDescription(text string) string {
	loc := reDescription.FindStringSubmatchIndex(text)
	if loc == nil {
		return ""
	}

	desc := text[loc[2]:loc[3]]
	rest := text[loc[3]:]

	for _, line := range strings.Split(rest, "\n")[1:] {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || reSectionStart.MatchString(trimmed) {
			break
		}
		desc += " " + trimmed
	}

	return normalizeSpace(desc)
}

// inferClaimType scans the full document text with the configured keyword
// families in fixed precedence: injury wins over property damage, property
// damage over collision. Substring matching is intentional — the bias is
// toward the higher-touch category.
func (e *FieldExtractor) inferClaimType(text string) model.ClaimType {
	lower := strings.ToLower(text)

	for _, keyword := range e.rules.InjuryKeywords {
		if strings.Contains(lower, keyword) {
			return model.ClaimTypeInjury
		}
	}
	for _, keyword := range e.rules.PropertyKeywords {
		if strings.Contains(lower, keyword) {
			return model.ClaimTypePropertyDamage
		}
	}
	for _, keyword := range e.rules.CollisionKeywords {
		if strings.Contains(lower, keyword) {
			return model.ClaimTypeCollision
		}
	}

	return model.ClaimTypeOther
}

// firstMatch returns the first capture group with whitespace normalized,
// or "" when the pattern does not match.
func firstMatch(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return normalizeSpace(m[1])
}

// normalizeSpace collapses runs of whitespace into single spaces
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
