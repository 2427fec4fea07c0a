package model

// ClaimType categorizes the nature of the claim
type ClaimType string

const (
	ClaimTypeInjury         ClaimType = "injury"          // Bodily injury involved
	ClaimTypePropertyDamage ClaimType = "property_damage" // Damage to property
	ClaimTypeCollision      ClaimType = "collision"       // Vehicle collision without injury
	ClaimTypeOther          ClaimType = "other"           // Anything else
)

// ParseClaimType maps a raw claim-type string to a known ClaimType.
// Returns ClaimTypeOther, false for anything outside the closed set.
func ParseClaimType(s string) (ClaimType, bool) {
	switch ClaimType(s) {
	case ClaimTypeInjury, ClaimTypePropertyDamage, ClaimTypeCollision, ClaimTypeOther:
		return ClaimType(s), true
	default:
		return ClaimTypeOther, false
	}
}

// Route identifies the processing route assigned to a claim
type Route int

const (
	RouteManualReview Route = iota
	RouteInvestigationQueue
	RouteSpecialistQueue
	RouteFastTrack
	RouteStandardProcessing
)

// String returns the exact display name downstream consumers expect
func (r Route) String() string {
	switch r {
	case RouteManualReview:
		return "Manual Review"
	case RouteInvestigationQueue:
		return "Investigation Queue"
	case RouteSpecialistQueue:
		return "Specialist Queue"
	case RouteFastTrack:
		return "Fast-Track"
	case RouteStandardProcessing:
		return "Standard Processing"
	default:
		return "Manual Review"
	}
}

// ClassificationResult holds the three independent signals derived from a claim
type ClassificationResult struct {
	ClaimType    ClaimType `json:"claim_type"`              // One of the closed claim-type set
	FraudFlag    bool      `json:"fraud_flag"`              // Description matched a fraud keyword
	InjuryFlag   bool      `json:"injury_flag"`             // Injury claim type or injury keyword
	FraudMatches []string  `json:"fraud_matches,omitempty"` // Which fraud keywords matched
}

// RoutingDecision is the terminal output of the decision engine.
// Created once per claim and never mutated.
type RoutingDecision struct {
	Route     Route  `json:"route"`
	Reasoning string `json:"reasoning"`
}

// ProcessingResult is the complete triage output handed to serialization.
// The four contract members match the downstream consumers exactly; the llm
// block is additive and absent unless briefing is enabled.
type ProcessingResult struct {
	ExtractedFields  ExtractedClaim `json:"extractedFields"`
	MissingFields    []string       `json:"missingFields"`
	RecommendedRoute string         `json:"recommendedRoute"`
	Reasoning        string         `json:"reasoning"`

	LLM *BriefingSummary `json:"llm,omitempty"`
}

// BriefingSummary contains the optional LLM-drafted adjuster briefing.
// CRITICAL: this never affects the routing decision and is clearly separated.
type BriefingSummary struct {
	Enabled    bool     `json:"enabled"`
	Provider   string   `json:"provider,omitempty"` // openai, ollama
	Model      string   `json:"model,omitempty"`    // Model name
	BriefingMD string   `json:"briefing_md,omitempty"`
	Warnings   []string `json:"warnings,omitempty"`
}
