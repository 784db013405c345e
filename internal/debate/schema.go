package debate

import (
	"encoding/json"
	"fmt"
)

// Phase names used in schema errors
const (
	phaseOpening  = "opening"
	phaseRebuttal = "rebuttal"
	phaseDecision = "decision"
)

// Validators are selected per variant from these tables so every
// phase/variant combination stays enumerable and testable in isolation.
// Hybrid runs reach the opening/rebuttal tables through
// Variant.openingVariant and Variant.rebuttalVariant.
var (
	openingValidators = map[Variant]func(json.RawMessage) (*OpeningArgument, error){
		VariantVanilla: validateVanillaOpening,
		VariantIRAC:    validateIRACOpening,
	}

	rebuttalValidators = map[Variant]func(json.RawMessage) (*Rebuttal, error){
		VariantVanilla: validateVanillaRebuttal,
		VariantIRAC:    validateIRACRebuttal,
	}

	decisionValidators = map[Variant]func(json.RawMessage) (*Decision, error){
		VariantVanilla: validateVanillaDecision,
		VariantIRAC:    validateIRACDecision,
		VariantHybrid:  validateHybridDecision,
	}
)

// decodeObject splits a JSON object into its top-level fields, preserving
// which keys were actually present
func decodeObject(raw json.RawMessage) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("response is not a JSON object: %w", err)
	}
	return fields, nil
}

func stringField(fields map[string]json.RawMessage, key string) (string, bool) {
	raw, ok := fields[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func stringSliceField(fields map[string]json.RawMessage, key string) []string {
	raw, ok := fields[key]
	if !ok {
		return nil
	}
	var ss []string
	if err := json.Unmarshal(raw, &ss); err != nil {
		return nil
	}
	return ss
}

// positionField extracts and validates a closed-set answer label
func positionField(phase string, variant Variant, fields map[string]json.RawMessage, key string) (Position, error) {
	s, ok := stringField(fields, key)
	if !ok {
		return "", &SchemaError{Phase: phase, Variant: variant, Field: key}
	}
	p := Position(s)
	if !p.IsValid() {
		return "", &SchemaError{
			Phase: phase, Variant: variant, Field: key,
			Detail: fmt.Sprintf("%q is not one of A, B, C, D", s),
		}
	}
	return p, nil
}

// iracField extracts an IRAC object, requiring all four component keys to be
// present (their text may be empty)
func iracField(phase string, variant Variant, fields map[string]json.RawMessage, key string) (*IRAC, error) {
	raw, ok := fields[key]
	if !ok {
		return nil, &SchemaError{Phase: phase, Variant: variant, Field: key}
	}
	sub, err := decodeObject(raw)
	if err != nil {
		return nil, &SchemaError{Phase: phase, Variant: variant, Field: key, Detail: err.Error()}
	}
	irac := &IRAC{}
	for _, comp := range []struct {
		key string
		dst *string
	}{
		{"issue", &irac.Issue},
		{"rule", &irac.Rule},
		{"application", &irac.Application},
		{"conclusion", &irac.Conclusion},
	} {
		s, ok := stringField(sub, comp.key)
		if !ok {
			return nil, &SchemaError{Phase: phase, Variant: variant, Field: key + "." + comp.key}
		}
		*comp.dst = s
	}
	return irac, nil
}

func validateVanillaOpening(raw json.RawMessage) (*OpeningArgument, error) {
	fields, err := decodeObject(raw)
	if err != nil {
		return nil, &SchemaError{Phase: phaseOpening, Variant: VariantVanilla, Field: "-", Detail: err.Error()}
	}
	pos, err := positionField(phaseOpening, VariantVanilla, fields, "position")
	if err != nil {
		return nil, err
	}
	argument, ok := stringField(fields, "argument")
	if !ok {
		return nil, &SchemaError{Phase: phaseOpening, Variant: VariantVanilla, Field: "argument"}
	}
	return &OpeningArgument{
		Position:  pos,
		Argument:  argument,
		Citations: stringSliceField(fields, "citations"),
	}, nil
}

func validateIRACOpening(raw json.RawMessage) (*OpeningArgument, error) {
	fields, err := decodeObject(raw)
	if err != nil {
		return nil, &SchemaError{Phase: phaseOpening, Variant: VariantIRAC, Field: "-", Detail: err.Error()}
	}
	pos, err := positionField(phaseOpening, VariantIRAC, fields, "position")
	if err != nil {
		return nil, err
	}
	irac, err := iracField(phaseOpening, VariantIRAC, fields, "irac")
	if err != nil {
		return nil, err
	}
	return &OpeningArgument{
		Position:  pos,
		IRAC:      irac,
		Citations: stringSliceField(fields, "citations"),
	}, nil
}

func validateVanillaRebuttal(raw json.RawMessage) (*Rebuttal, error) {
	fields, err := decodeObject(raw)
	if err != nil {
		return nil, &SchemaError{Phase: phaseRebuttal, Variant: VariantVanilla, Field: "-", Detail: err.Error()}
	}
	text, ok := stringField(fields, "rebuttal")
	if !ok {
		return nil, &SchemaError{Phase: phaseRebuttal, Variant: VariantVanilla, Field: "rebuttal"}
	}
	return &Rebuttal{
		Text:             text,
		Counterarguments: stringSliceField(fields, "counterarguments"),
		Citations:        stringSliceField(fields, "citations"),
	}, nil
}

func validateIRACRebuttal(raw json.RawMessage) (*Rebuttal, error) {
	fields, err := decodeObject(raw)
	if err != nil {
		return nil, &SchemaError{Phase: phaseRebuttal, Variant: VariantIRAC, Field: "-", Detail: err.Error()}
	}
	sub, ok := fields["rebuttal"]
	if !ok {
		return nil, &SchemaError{Phase: phaseRebuttal, Variant: VariantIRAC, Field: "rebuttal"}
	}
	subFields, err := decodeObject(sub)
	if err != nil {
		return nil, &SchemaError{Phase: phaseRebuttal, Variant: VariantIRAC, Field: "rebuttal", Detail: err.Error()}
	}
	critique := &Critique{}
	for _, comp := range []struct {
		key string
		dst *string
	}{
		{"issue_critique", &critique.IssueCritique},
		{"rule_critique", &critique.RuleCritique},
		{"application_critique", &critique.ApplicationCritique},
		{"my_reinforcement", &critique.MyReinforcement},
	} {
		s, ok := stringField(subFields, comp.key)
		if !ok {
			return nil, &SchemaError{Phase: phaseRebuttal, Variant: VariantIRAC, Field: "rebuttal." + comp.key}
		}
		*comp.dst = s
	}
	return &Rebuttal{
		Critique:  critique,
		Citations: stringSliceField(fields, "citations"),
	}, nil
}

// winnerField validates the declared winner against the allowed set for the
// variant
func winnerField(variant Variant, fields map[string]json.RawMessage, allowTie bool) (Winner, error) {
	s, ok := stringField(fields, "winner")
	if !ok {
		return "", &SchemaError{Phase: phaseDecision, Variant: variant, Field: "winner"}
	}
	w := Winner(s)
	switch w {
	case WinnerX, WinnerY:
		return w, nil
	case WinnerTie:
		if allowTie {
			return w, nil
		}
	}
	return "", &SchemaError{
		Phase: phaseDecision, Variant: variant, Field: "winner",
		Detail: fmt.Sprintf("%q is not an allowed winner", s),
	}
}

func validateVanillaDecision(raw json.RawMessage) (*Decision, error) {
	fields, err := decodeObject(raw)
	if err != nil {
		return nil, &SchemaError{Phase: phaseDecision, Variant: VariantVanilla, Field: "-", Detail: err.Error()}
	}
	pos, err := positionField(phaseDecision, VariantVanilla, fields, "decision")
	if err != nil {
		return nil, err
	}
	winner, err := winnerField(VariantVanilla, fields, true)
	if err != nil {
		return nil, err
	}
	rationale, _ := stringField(fields, "rationale")
	synthesis, _ := stringField(fields, "synthesis")
	return &Decision{
		Rationale: rationale,
		Winner:    winner,
		Decision:  pos,
		Synthesis: synthesis,
	}, nil
}

func validateIRACDecision(raw json.RawMessage) (*Decision, error) {
	fields, err := decodeObject(raw)
	if err != nil {
		return nil, &SchemaError{Phase: phaseDecision, Variant: VariantIRAC, Field: "-", Detail: err.Error()}
	}
	pos, err := positionField(phaseDecision, VariantIRAC, fields, "decision")
	if err != nil {
		return nil, err
	}
	winner, err := winnerField(VariantIRAC, fields, true)
	if err != nil {
		return nil, err
	}
	synthesis, err := iracField(phaseDecision, VariantIRAC, fields, "synthesis")
	if err != nil {
		return nil, err
	}
	rationale, _ := stringField(fields, "rationale")
	return &Decision{
		Rationale:     rationale,
		Winner:        winner,
		Decision:      pos,
		SynthesisIRAC: synthesis,
	}, nil
}

func validateHybridDecision(raw json.RawMessage) (*Decision, error) {
	fields, err := decodeObject(raw)
	if err != nil {
		return nil, &SchemaError{Phase: phaseDecision, Variant: VariantHybrid, Field: "-", Detail: err.Error()}
	}
	pos, err := positionField(phaseDecision, VariantHybrid, fields, "decision")
	if err != nil {
		return nil, err
	}
	// The hybrid judge must choose one of the two defended positions, so a
	// tie is not an allowed winner.
	winner, err := winnerField(VariantHybrid, fields, false)
	if err != nil {
		return nil, err
	}
	rationale, _ := stringField(fields, "rationale")
	synthesis, _ := stringField(fields, "synthesis")
	return &Decision{
		Rationale: rationale,
		Winner:    winner,
		Decision:  pos,
		Synthesis: synthesis,
	}, nil
}
