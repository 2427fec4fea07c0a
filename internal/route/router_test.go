package route

import (
	"testing"

	"github.com/dkosarev/claimtriage/internal/model"
)

func damage(v float64) *float64 {
	return &v
}

func TestRouter_MissingFieldsGate(t *testing.T) {
	router := NewRouter(25000)

	decision := router.Route(
		[]string{"policy_number", "date_of_loss"},
		model.ClassificationResult{},
		damage(4500),
	)

	if decision.Route != model.RouteManualReview {
		t.Errorf("Expected Manual Review, got %s", decision.Route)
	}

	want := "Missing mandatory fields: policy_number, date_of_loss"
	if decision.Reasoning != want {
		t.Errorf("Expected reasoning %q, got %q", want, decision.Reasoning)
	}
}

func TestRouter_GateOverridesAllDownstreamSignals(t *testing.T) {
	router := NewRouter(25000)

	// Missing fields AND fraud AND injury AND high damage: the gate wins
	// and the reasoning reflects only the gate
	decision := router.Route(
		[]string{"policy_number"},
		model.ClassificationResult{
			ClaimType:    model.ClaimTypeInjury,
			FraudFlag:    true,
			InjuryFlag:   true,
			FraudMatches: []string{"staged"},
		},
		damage(90000),
	)

	if decision.Route != model.RouteManualReview {
		t.Errorf("Expected Manual Review to win the cascade, got %s", decision.Route)
	}

	if decision.Reasoning != "Missing mandatory fields: policy_number" {
		t.Errorf("Expected reasoning to reflect only the gate, got %q", decision.Reasoning)
	}
}

func TestRouter_FraudBeforeInjury(t *testing.T) {
	router := NewRouter(25000)

	decision := router.Route(
		nil,
		model.ClassificationResult{
			ClaimType:  model.ClaimTypeInjury,
			FraudFlag:  true,
			InjuryFlag: true,
		},
		damage(1000),
	)

	if decision.Route != model.RouteInvestigationQueue {
		t.Errorf("Expected Investigation Queue, got %s", decision.Route)
	}

	if decision.Reasoning != "Description contains potential fraud indicators" {
		t.Errorf("Unexpected reasoning: %q", decision.Reasoning)
	}
}

func TestRouter_InjurySpecialistQueue(t *testing.T) {
	router := NewRouter(25000)

	decision := router.Route(
		nil,
		model.ClassificationResult{ClaimType: model.ClaimTypeInjury, InjuryFlag: true},
		damage(18500),
	)

	if decision.Route != model.RouteSpecialistQueue {
		t.Errorf("Expected Specialist Queue, got %s", decision.Route)
	}

	if decision.Reasoning != "Claim involves injury and requires specialist review" {
		t.Errorf("Unexpected reasoning: %q", decision.Reasoning)
	}
}

func TestRouter_FastTrack(t *testing.T) {
	router := NewRouter(25000)

	decision := router.Route(nil, model.ClassificationResult{ClaimType: model.ClaimTypeCollision}, damage(4500))

	if decision.Route != model.RouteFastTrack {
		t.Errorf("Expected Fast-Track, got %s", decision.Route)
	}

	want := "Estimated damage ($4,500.00) is below fast-track threshold ($25,000)"
	if decision.Reasoning != want {
		t.Errorf("Expected reasoning %q, got %q", want, decision.Reasoning)
	}
}

func TestRouter_StandardProcessing(t *testing.T) {
	router := NewRouter(25000)

	decision := router.Route(nil, model.ClassificationResult{}, damage(32000))

	if decision.Route != model.RouteStandardProcessing {
		t.Errorf("Expected Standard Processing, got %s", decision.Route)
	}

	want := "Estimated damage ($32,000.00) meets or exceeds fast-track threshold ($25,000)"
	if decision.Reasoning != want {
		t.Errorf("Expected reasoning %q, got %q", want, decision.Reasoning)
	}
}

func TestRouter_ThresholdBoundaryIsInclusive(t *testing.T) {
	router := NewRouter(25000)

	// Damage exactly at the threshold goes to Standard Processing
	decision := router.Route(nil, model.ClassificationResult{}, damage(25000))

	if decision.Route != model.RouteStandardProcessing {
		t.Errorf("Expected Standard Processing at exact threshold, got %s", decision.Route)
	}

	justBelow := router.Route(nil, model.ClassificationResult{}, damage(24999.99))
	if justBelow.Route != model.RouteFastTrack {
		t.Errorf("Expected Fast-Track just below threshold, got %s", justBelow.Route)
	}
}

func TestRouter_MissingDamageFallsBackToManualReview(t *testing.T) {
	router := NewRouter(25000)

	decision := router.Route(nil, model.ClassificationResult{ClaimType: model.ClaimTypeCollision}, nil)

	if decision.Route != model.RouteManualReview {
		t.Errorf("Expected Manual Review for missing damage, got %s", decision.Route)
	}

	if decision.Reasoning != "Estimated damage amount is missing or invalid" {
		t.Errorf("Unexpected reasoning: %q", decision.Reasoning)
	}
}

func TestRouter_Idempotent(t *testing.T) {
	router := NewRouter(25000)
	cls := model.ClassificationResult{ClaimType: model.ClaimTypeCollision}

	first := router.Route([]string{"claim_type"}, cls, damage(100))
	second := router.Route([]string{"claim_type"}, cls, damage(100))

	if first != second {
		t.Errorf("Expected identical decisions, got %+v and %+v", first, second)
	}
}

func TestRouter_NegativeDamageStillRoutes(t *testing.T) {
	router := NewRouter(25000)

	// Present-but-unusual values produce a decision, never a failure
	decision := router.Route(nil, model.ClassificationResult{}, damage(-100))

	if decision.Route != model.RouteFastTrack {
		t.Errorf("Expected Fast-Track for negative damage, got %s", decision.Route)
	}
}

func TestFormatUSD(t *testing.T) {
	tests := []struct {
		amount   float64
		decimals int
		want     string
	}{
		{4500, 2, "$4,500.00"},
		{25000, 0, "$25,000"},
		{32000, 2, "$32,000.00"},
		{999.5, 2, "$999.50"},
		{1234567.89, 2, "$1,234,567.89"},
		{0, 2, "$0.00"},
		{-100, 2, "-$100.00"},
	}

	for _, tt := range tests {
		got := formatUSD(tt.amount, tt.decimals)
		if got != tt.want {
			t.Errorf("formatUSD(%v, %d) = %q, want %q", tt.amount, tt.decimals, got, tt.want)
		}
	}
}
