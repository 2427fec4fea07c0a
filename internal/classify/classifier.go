// Package classify derives claim-type and risk signals from extracted claims.
package classify

import (
	"strings"

	"github.com/dkosarev/claimtriage/internal/model"
)

// Classifier assigns a claim type and detects fraud and injury indicators.
// All matching is case-insensitive substring search; the false-positive bias
// (e.g. "unfraudulent" matching "fraud") is intentional — suspicious claims
// go to a human, missed fraud does not.
type Classifier struct {
	fraudKeywords     []string
	injuryKeywords    []string
	propertyKeywords  []string
	collisionKeywords []string
}

// NewClassifier creates a classifier from the configured keyword families.
// Keywords are expected to be lowercased already (Config.Normalize).
func NewClassifier(rules model.RulesConfig) *Classifier {
	return &Classifier{
		fraudKeywords:     rules.FraudKeywords,
		injuryKeywords:    rules.InjuryKeywords,
		propertyKeywords:  rules.PropertyKeywords,
		collisionKeywords: rules.CollisionKeywords,
	}
}

// Classify computes the three independent signals for a claim. Pure function;
// an absent description yields claim type "other" with both flags false.
func (c *Classifier) Classify(claim model.ExtractedClaim) model.ClassificationResult {
	description := strings.ToLower(claim.Description())

	claimType := c.claimType(claim, description)

	fraudMatches := matchKeywords(description, c.fraudKeywords)

	// The injury flag is independent of the claim-type precedence: an
	// explicit claim-type override does not suppress it.
	injuryFlag := claimType == model.ClaimTypeInjury ||
		len(matchKeywords(description, c.injuryKeywords)) > 0

	return model.ClassificationResult{
		ClaimType:    claimType,
		FraudFlag:    len(fraudMatches) > 0,
		InjuryFlag:   injuryFlag,
		FraudMatches: fraudMatches,
	}
}

// claimType resolves the claim type: an explicit extracted value from the
// closed set takes precedence; otherwise keyword families are checked in
// fixed priority order and the first matching family wins.
func (c *Classifier) claimType(claim model.ExtractedClaim, description string) model.ClaimType {
	if explicit := claim.Text(model.FieldClaimType); explicit != "" {
		if t, ok := model.ParseClaimType(strings.ToLower(explicit)); ok {
			return t
		}
		// Unrecognized explicit value: fall through to inference
	}

	if len(matchKeywords(description, c.injuryKeywords)) > 0 {
		return model.ClaimTypeInjury
	}
	if len(matchKeywords(description, c.propertyKeywords)) > 0 {
		return model.ClaimTypePropertyDamage
	}
	if len(matchKeywords(description, c.collisionKeywords)) > 0 {
		return model.ClaimTypeCollision
	}

	return model.ClaimTypeOther
}

// matchKeywords returns the keywords found in the lowercased text
func matchKeywords(lowerText string, keywords []string) []string {
	if lowerText == "" {
		return nil
	}

	var matched []string
	for _, keyword := range keywords {
		if strings.Contains(lowerText, keyword) {
			matched = append(matched, keyword)
		}
	}
	return matched
}
