package debate

import (
	"strings"
	"testing"
)

func TestParseVariant(t *testing.T) {
	for _, valid := range []string{"vanilla", "irac", "hybrid"} {
		if _, err := ParseVariant(valid); err != nil {
			t.Errorf("ParseVariant(%q) error = %v", valid, err)
		}
	}
	for _, invalid := range []string{"", "IRAC", "mixed"} {
		if _, err := ParseVariant(invalid); err == nil {
			t.Errorf("ParseVariant(%q) expected error", invalid)
		}
	}
}

func TestHybridPhaseVariants(t *testing.T) {
	if got := VariantHybrid.openingVariant(); got != VariantIRAC {
		t.Errorf("hybrid opening variant = %q, want irac", got)
	}
	if got := VariantHybrid.rebuttalVariant(); got != VariantVanilla {
		t.Errorf("hybrid rebuttal variant = %q, want vanilla", got)
	}
	if got := VariantVanilla.openingVariant(); got != VariantVanilla {
		t.Errorf("vanilla opening variant = %q", got)
	}
	if got := VariantIRAC.rebuttalVariant(); got != VariantIRAC {
		t.Errorf("irac rebuttal variant = %q", got)
	}
}

func TestHybridDecisionPromptConstrainsAnswer(t *testing.T) {
	transcript := transcriptWithPositions(PositionA, PositionC, true)

	prompt := decisionPromptHybrid("q", "", testChoices, transcript)
	if !strings.Contains(prompt, "must match your winner") {
		t.Error("hybrid judge prompt must bind the decision to the winner")
	}
	if !strings.Contains(prompt, "A or C only") {
		t.Error("hybrid judge prompt must restrict the decision to the defended positions")
	}
}

func TestVanillaRebuttalPromptFallsBackToConclusion(t *testing.T) {
	// Hybrid rebuttals quote IRAC openings through their conclusions
	mine := &DebaterState{
		Position: PositionA,
		Opening:  &OpeningArgument{Position: PositionA, IRAC: &IRAC{Conclusion: "my conclusion"}},
	}
	opponent := &OpeningArgument{Position: PositionB, IRAC: &IRAC{Conclusion: "their conclusion"}}

	prompt := rebuttalPromptVanilla("q", "", mine, opponent)
	if !strings.Contains(prompt, "my conclusion") || !strings.Contains(prompt, "their conclusion") {
		t.Error("rebuttal prompt should fall back to IRAC conclusions")
	}
}
