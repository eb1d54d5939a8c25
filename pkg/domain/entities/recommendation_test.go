package entities

import (
	"encoding/json"
	"testing"
)

func TestRecommendationCategory_RoundTrip(t *testing.T) {
	for _, c := range []RecommendationCategory{Loss, LowMargin, LowROAS, Excellent, Healthy} {
		parsed, err := ParseRecommendationCategory(c.String())
		if err != nil {
			t.Fatalf("parse %s: %v", c, err)
		}
		if parsed != c {
			t.Errorf("Expected %s, got %s", c, parsed)
		}
	}

	if _, err := ParseRecommendationCategory("GREAT"); err == nil {
		t.Error("Expected error for unknown category")
	}
}

func TestRecommendationCategory_JSON(t *testing.T) {
	out := Outputs{Recommendation: LowROAS}
	data, err := json.Marshal(out)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded struct {
		Recommendation string `json:"recommendation"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Recommendation != "LOW_ROAS" {
		t.Errorf("Expected LOW_ROAS, got %s", decoded.Recommendation)
	}
}
