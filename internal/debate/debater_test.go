package debate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

// scriptedGenerator returns canned responses in order and records the prompts
// it saw
type scriptedGenerator struct {
	responses []string
	prompts   []string
}

func (g *scriptedGenerator) GenerateStructured(ctx context.Context, prompt string, maxTokens int) (json.RawMessage, error) {
	g.prompts = append(g.prompts, prompt)
	if len(g.prompts) > len(g.responses) {
		return nil, fmt.Errorf("no scripted response for call %d", len(g.prompts))
	}
	return json.RawMessage(g.responses[len(g.prompts)-1]), nil
}

// failingGenerator always fails, standing in for a transport outage
type failingGenerator struct{}

func (failingGenerator) GenerateStructured(ctx context.Context, prompt string, maxTokens int) (json.RawMessage, error) {
	return nil, errors.New("upstream unavailable")
}

var testChoices = []string{"choice one", "choice two", "choice three", "choice four"}

func vanillaOpeningJSON(position string) string {
	return fmt.Sprintf(`{"position": %q, "argument": "arguing for %s", "citations": []}`, position, position)
}

func iracOpeningJSON(position string) string {
	return fmt.Sprintf(`{
		"position": %q,
		"irac": {"issue": "i", "rule": "r", "application": "a", "conclusion": "conclusion for %s"},
		"citations": []
	}`, position, position)
}

func TestDebaterOpenAssignedPositions(t *testing.T) {
	for _, assigned := range Positions {
		t.Run(string(assigned), func(t *testing.T) {
			gen := &scriptedGenerator{responses: []string{vanillaOpeningJSON(string(assigned))}}
			d := NewDebater(gen, "Debater X")

			opening, err := d.Open(context.Background(), "q", "", testChoices, assigned, VariantVanilla)
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			if opening.Position != assigned {
				t.Errorf("Position = %q, want %q", opening.Position, assigned)
			}
			if d.State() == nil || d.State().Position != assigned {
				t.Errorf("state not recorded: %+v", d.State())
			}
		})
	}
}

func TestDebaterOpenChoiceCount(t *testing.T) {
	d := NewDebater(&scriptedGenerator{}, "Debater X")

	_, err := d.Open(context.Background(), "q", "", []string{"only", "three", "choices"}, "", VariantVanilla)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
}

func TestDebaterOpenHybridUsesIRACSchema(t *testing.T) {
	// A vanilla-shaped opening must fail under hybrid, which opens with IRAC
	gen := &scriptedGenerator{responses: []string{vanillaOpeningJSON("A")}}
	d := NewDebater(gen, "Debater X")

	_, err := d.Open(context.Background(), "q", "", testChoices, PositionA, VariantHybrid)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if schemaErr.Variant != VariantIRAC {
		t.Errorf("Variant = %q, want irac", schemaErr.Variant)
	}

	gen = &scriptedGenerator{responses: []string{iracOpeningJSON("A")}}
	d = NewDebater(gen, "Debater X")
	opening, err := d.Open(context.Background(), "q", "", testChoices, PositionA, VariantHybrid)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if opening.IRAC == nil {
		t.Error("hybrid opening should carry IRAC structure")
	}
}

func TestDebaterRebutRequiresOpening(t *testing.T) {
	opponent := &OpeningArgument{Position: PositionB, Argument: "b"}

	for _, variant := range []Variant{VariantVanilla, VariantIRAC, VariantHybrid} {
		t.Run(string(variant), func(t *testing.T) {
			d := NewDebater(&scriptedGenerator{}, "Debater Y")

			_, err := d.Rebut(context.Background(), "q", "", opponent, variant)
			var seqErr *SequenceError
			if !errors.As(err, &seqErr) {
				t.Fatalf("expected SequenceError, got %v", err)
			}
			if seqErr.Op != "rebut" {
				t.Errorf("Op = %q, want rebut", seqErr.Op)
			}
		})
	}
}

func TestDebaterRebutHybridUsesVanillaSchema(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{
		iracOpeningJSON("A"),
		`{"rebuttal": "free-form counter", "counterarguments": [], "citations": []}`,
	}}
	d := NewDebater(gen, "Debater X")

	if _, err := d.Open(context.Background(), "q", "", testChoices, PositionA, VariantHybrid); err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	rebuttal, err := d.Rebut(context.Background(), "q", "", &OpeningArgument{Position: PositionB, Argument: "b"}, VariantHybrid)
	if err != nil {
		t.Fatalf("Rebut() error = %v", err)
	}
	if rebuttal.Text != "free-form counter" || rebuttal.Critique != nil {
		t.Errorf("rebuttal = %+v", rebuttal)
	}
}

func TestDebaterOpenGenerationFailure(t *testing.T) {
	d := NewDebater(failingGenerator{}, "Debater X")

	_, err := d.Open(context.Background(), "q", "", testChoices, "", VariantVanilla)
	if err == nil {
		t.Fatal("expected error")
	}
	if d.State() != nil {
		t.Error("failed opening must not record state")
	}
}
