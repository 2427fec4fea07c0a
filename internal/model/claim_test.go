package model

import "testing"

func TestExtractedClaim_Has(t *testing.T) {
	claim := ExtractedClaim{
		FieldPolicyNumber:     "POL-1",
		FieldPolicyholderName: "  ",
		FieldDateOfLoss:       nil,
		FieldEstimatedDamage:  4500.0,
	}

	if !claim.Has(FieldPolicyNumber) {
		t.Error("Expected policy_number to be present")
	}

	if claim.Has(FieldPolicyholderName) {
		t.Error("Expected whitespace-only value to count as missing")
	}

	if claim.Has(FieldDateOfLoss) {
		t.Error("Expected nil value to count as missing")
	}

	if claim.Has(FieldLocationOfLoss) {
		t.Error("Expected absent key to count as missing")
	}

	if !claim.Has(FieldEstimatedDamage) {
		t.Error("Expected numeric value to count as present")
	}
}

func TestExtractedClaim_Text(t *testing.T) {
	claim := ExtractedClaim{
		FieldPolicyNumber:    "  POL-1  ",
		FieldEstimatedDamage: 4500.0,
	}

	if got := claim.Text(FieldPolicyNumber); got != "POL-1" {
		t.Errorf("Expected trimmed POL-1, got %q", got)
	}

	if got := claim.Text(FieldEstimatedDamage); got != "" {
		t.Errorf("Expected empty string for non-string value, got %q", got)
	}

	if got := claim.Text(FieldDateOfLoss); got != "" {
		t.Errorf("Expected empty string for absent field, got %q", got)
	}
}

func TestExtractedClaim_Damage(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  *float64
	}{
		{"float", 4500.5, ptr(4500.5)},
		{"int", 32000, ptr(32000)},
		{"currency string", "$12,500.00", ptr(12500)},
		{"plain string", "900", ptr(900)},
		{"malformed string", "pending", nil},
		{"empty string", "  ", nil},
		{"nil", nil, nil},
		{"wrong type", []string{"x"}, nil},
	}

	for _, tt := range tests {
		claim := ExtractedClaim{FieldEstimatedDamage: tt.value}
		got := claim.Damage()

		if tt.want == nil {
			if got != nil {
				t.Errorf("%s: expected nil, got %v", tt.name, *got)
			}
			continue
		}

		if got == nil {
			t.Errorf("%s: expected %v, got nil", tt.name, *tt.want)
			continue
		}

		if *got != *tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, *tt.want, *got)
		}
	}
}

func TestExtractedClaim_DamageAbsent(t *testing.T) {
	if got := (ExtractedClaim{}).Damage(); got != nil {
		t.Errorf("Expected nil for absent damage, got %v", *got)
	}
}

func ptr(v float64) *float64 {
	return &v
}
