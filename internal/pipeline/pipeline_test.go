package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/dkosarev/claimtriage/internal/model"
)

const sampleFNOL = `POLICY NUMBER: POL-2025-88421
NAME OF INSURED (First, Middle, Last): Jordan A. Smith
DATE OF LOSS AND TIME: 06/14/2025 3:45 PM
STREET: 123 Main St
CITY, STATE, ZIP: Springfield, IL 62701
DESCRIPTION OF ACCIDENT (ACORD 101): Vehicle collision with deer
LOSS REPORTED TO POLICE
ESTIMATE AMOUNT: $4,500.00
`

func testConfig(t *testing.T) *model.Config {
	t.Helper()
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = false
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Invalid test config: %v", err)
	}
	return cfg
}

func TestPipeline_CompleteClaimFastTracks(t *testing.T) {
	p := NewPipeline(testConfig(t))

	result, err := p.ProcessText(context.Background(), sampleFNOL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(result.MissingFields) != 0 {
		t.Errorf("Expected no missing fields, got %v", result.MissingFields)
	}

	if result.RecommendedRoute != "Fast-Track" {
		t.Errorf("Expected Fast-Track, got %s", result.RecommendedRoute)
	}

	if !strings.Contains(result.Reasoning, "$4,500.00") || !strings.Contains(result.Reasoning, "$25,000") {
		t.Errorf("Expected reasoning to mention amount and threshold, got %q", result.Reasoning)
	}
}

func TestPipeline_MissingFieldsGateWinsOverFraud(t *testing.T) {
	p := NewPipeline(testConfig(t))

	// policy_number and date_of_loss missing, fraud keyword present,
	// damage over threshold: the gate still wins
	claim := model.ExtractedClaim{
		model.FieldPolicyholderName: "Jordan Smith",
		model.FieldLocationOfLoss:   "123 Main St",
		model.FieldDescription:      "Statements were inconsistent",
		model.FieldClaimType:        "collision",
		model.FieldEstimatedDamage:  32000.0,
	}

	result := p.Triage(claim)

	want := []string{model.FieldPolicyNumber, model.FieldDateOfLoss}
	if !reflect.DeepEqual(result.MissingFields, want) {
		t.Errorf("Expected missing %v, got %v", want, result.MissingFields)
	}

	if result.RecommendedRoute != "Manual Review" {
		t.Errorf("Expected Manual Review, got %s", result.RecommendedRoute)
	}

	if !strings.Contains(result.Reasoning, "policy_number") || !strings.Contains(result.Reasoning, "date_of_loss") {
		t.Errorf("Expected reasoning to list both missing fields, got %q", result.Reasoning)
	}
}

func TestPipeline_InjuryKeywordRoutesToSpecialist(t *testing.T) {
	p := NewPipeline(testConfig(t))

	doc := strings.Replace(sampleFNOL,
		"Vehicle collision with deer",
		"T-bone collision, driver taken to hospital", 1)

	result, err := p.ProcessText(context.Background(), doc)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(result.MissingFields) != 0 {
		t.Errorf("Expected no missing fields, got %v", result.MissingFields)
	}

	if result.RecommendedRoute != "Specialist Queue" {
		t.Errorf("Expected Specialist Queue, got %s", result.RecommendedRoute)
	}

	if !strings.Contains(result.Reasoning, "injury") {
		t.Errorf("Expected reasoning to cite injury, got %q", result.Reasoning)
	}
}

func TestPipeline_ExactThresholdRoutesToStandard(t *testing.T) {
	p := NewPipeline(testConfig(t))

	doc := strings.Replace(sampleFNOL, "$4,500.00", "$25,000.00", 1)

	result, err := p.ProcessText(context.Background(), doc)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.RecommendedRoute != "Standard Processing" {
		t.Errorf("Expected Standard Processing at exact threshold, got %s", result.RecommendedRoute)
	}
}

func TestPipeline_MissingDamageRoutesToManualReview(t *testing.T) {
	p := NewPipeline(testConfig(t))

	doc := strings.Replace(sampleFNOL, "ESTIMATE AMOUNT: $4,500.00\n", "", 1)

	result, err := p.ProcessText(context.Background(), doc)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(result.MissingFields) != 0 {
		t.Errorf("Expected no missing mandatory fields, got %v", result.MissingFields)
	}

	if result.RecommendedRoute != "Manual Review" {
		t.Errorf("Expected Manual Review for missing damage, got %s", result.RecommendedRoute)
	}

	if result.Reasoning != "Estimated damage amount is missing or invalid" {
		t.Errorf("Unexpected reasoning: %q", result.Reasoning)
	}
}

func TestPipeline_ProcessDocument(t *testing.T) {
	p := NewPipeline(testConfig(t))

	path := filepath.Join(t.TempDir(), "fnol.txt")
	if err := os.WriteFile(path, []byte(sampleFNOL), 0644); err != nil {
		t.Fatalf("write test document: %v", err)
	}

	result, err := p.ProcessDocument(context.Background(), path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.RecommendedRoute != "Fast-Track" {
		t.Errorf("Expected Fast-Track, got %s", result.RecommendedRoute)
	}
}

func TestPipeline_ProcessDocument_HTMLIntake(t *testing.T) {
	p := NewPipeline(testConfig(t))

	html := "<html><body>" +
		"<div>POLICY NUMBER: POL-2025-88421</div>" +
		"<div>NAME OF INSURED (First, Middle, Last): Jordan A. Smith</div>" +
		"<div>DATE OF LOSS AND TIME: 06/14/2025 3:45 PM</div>" +
		"<div>STREET: 123 Main St</div>" +
		"<div>CITY, STATE, ZIP: Springfield, IL 62701</div>" +
		"<div>DESCRIPTION OF ACCIDENT (ACORD 101): Vehicle collision with deer</div>" +
		"<div>LOSS REPORTED TO POLICE</div>" +
		"<div>ESTIMATE AMOUNT: $4,500.00</div>" +
		"</body></html>"

	path := filepath.Join(t.TempDir(), "fnol.html")
	if err := os.WriteFile(path, []byte(html), 0644); err != nil {
		t.Fatalf("write test document: %v", err)
	}

	result, err := p.ProcessDocument(context.Background(), path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.RecommendedRoute != "Fast-Track" {
		t.Errorf("Expected Fast-Track from HTML intake, got %s", result.RecommendedRoute)
	}
}

func TestPipeline_ProcessDocument_MissingFile(t *testing.T) {
	p := NewPipeline(testConfig(t))

	_, err := p.ProcessDocument(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
	if err == nil {
		t.Error("Expected error for missing document")
	}
}

func TestPipeline_ResultContractSerialization(t *testing.T) {
	p := NewPipeline(testConfig(t))

	result, err := p.ProcessText(context.Background(), sampleFNOL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal result: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}

	for _, key := range []string{"extractedFields", "missingFields", "recommendedRoute", "reasoning"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("Expected contract member %q in output", key)
		}
	}

	// missingFields must serialize as [], never null
	if decoded["missingFields"] == nil {
		t.Error("Expected missingFields to serialize as an empty array, got null")
	}

	// llm block is absent unless briefing is enabled
	if _, ok := decoded["llm"]; ok {
		t.Error("Expected no llm member when briefing is disabled")
	}
}

func TestPipeline_CachedResultIsIdentical(t *testing.T) {
	cfg := testConfig(t)
	cfg.Cache.Enabled = true
	cfg.Cache.Dir = t.TempDir()

	p := NewPipeline(cfg)

	first, err := p.ProcessText(context.Background(), sampleFNOL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	second, err := p.ProcessText(context.Background(), sampleFNOL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	firstJSON, _ := json.Marshal(first)
	secondJSON, _ := json.Marshal(second)
	if string(firstJSON) != string(secondJSON) {
		t.Errorf("Expected cached result to be identical:\n%s\n%s", firstJSON, secondJSON)
	}
}
