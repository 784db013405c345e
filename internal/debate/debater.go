package debate

import "context"

// Debater argues one side of a debate. Its only mutable state is the
// DebaterState produced by Open, which Rebut requires.
type Debater struct {
	client Generator
	name   string
	state  *DebaterState
}

// NewDebater creates a debater backed by the given generation client
func NewDebater(client Generator, name string) *Debater {
	return &Debater{client: client, name: name}
}

// Name returns the debater's display name
func (d *Debater) Name() string {
	return d.name
}

// State returns the immutable state set by Open, or nil before any opening
func (d *Debater) State() *DebaterState {
	return d.state
}

// Open generates and validates an opening argument. When assigned is empty
// the debater selects its position freely; otherwise it must defend the
// assigned label. The validated result becomes the debater's state.
func (d *Debater) Open(ctx context.Context, question, promptContext string, choices []string, assigned Position, variant Variant) (*OpeningArgument, error) {
	if len(choices) != NumChoices {
		return nil, &SchemaError{
			Phase: phaseOpening, Variant: variant, Field: "choices",
			Detail: "exactly four answer choices are required",
		}
	}

	schemaVariant := variant.openingVariant()
	var prompt string
	var budget int
	switch schemaVariant {
	case VariantIRAC:
		prompt = openingPromptIRAC(question, promptContext, choices, assigned)
		budget = openingIRACMaxTokens
	default:
		prompt = openingPromptVanilla(question, promptContext, choices, assigned)
		budget = openingMaxTokens
	}

	raw, err := d.client.GenerateStructured(ctx, prompt, budget)
	if err != nil {
		return nil, err
	}

	opening, err := openingValidators[schemaVariant](raw)
	if err != nil {
		return nil, err
	}

	d.state = &DebaterState{Position: opening.Position, Opening: opening}
	return opening, nil
}

// Rebut generates and validates a rebuttal to the opponent's opening. The
// opponent's opening is read-only context; no cross-validation is performed
// against it.
func (d *Debater) Rebut(ctx context.Context, question, promptContext string, opponent *OpeningArgument, variant Variant) (*Rebuttal, error) {
	if d.state == nil {
		return nil, &SequenceError{Op: "rebut", Reason: "opening required before rebuttal"}
	}

	schemaVariant := variant.rebuttalVariant()
	var prompt string
	var budget int
	switch schemaVariant {
	case VariantIRAC:
		prompt = rebuttalPromptIRAC(question, promptContext, d.state, opponent)
		budget = rebuttalIRACMaxTokens
	default:
		prompt = rebuttalPromptVanilla(question, promptContext, d.state, opponent)
		budget = rebuttalMaxTokens
	}

	raw, err := d.client.GenerateStructured(ctx, prompt, budget)
	if err != nil {
		return nil, err
	}

	return rebuttalValidators[schemaVariant](raw)
}
