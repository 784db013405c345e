package debate

import "context"

// Judge synthesizes a completed transcript into a final decision. It keeps no
// state between calls; every decision depends only on its inputs.
type Judge struct {
	client Generator
}

// NewJudge creates a judge backed by the given generation client
func NewJudge(client Generator) *Judge {
	return &Judge{client: client}
}

// Decide produces a validated decision for the given transcript. Both
// openings must be present; missing rebuttals are treated as empty content.
// Under the hybrid variant the decision label is additionally reconciled
// against the declared winner's defended position.
func (j *Judge) Decide(ctx context.Context, question, promptContext string, choices []string, transcript *Transcript, variant Variant) (*Decision, error) {
	if transcript == nil || transcript.DebaterX.Opening == nil || transcript.DebaterY.Opening == nil {
		return nil, &SequenceError{Op: "decide", Reason: "transcript must contain both openings"}
	}

	var prompt string
	var budget int
	switch variant {
	case VariantIRAC:
		prompt = decisionPromptIRAC(question, promptContext, choices, transcript)
		budget = decisionIRACMaxTokens
	case VariantHybrid:
		prompt = decisionPromptHybrid(question, promptContext, choices, transcript)
		budget = decisionIRACMaxTokens
	default:
		prompt = decisionPromptVanilla(question, promptContext, choices, transcript)
		budget = decisionMaxTokens
	}

	raw, err := j.client.GenerateStructured(ctx, prompt, budget)
	if err != nil {
		return nil, err
	}

	decision, err := decisionValidators[variant](raw)
	if err != nil {
		return nil, err
	}

	// The hybrid protocol restricts the judge to the two positions actually
	// defended, so the chosen label must agree with the winner's side. The
	// vanilla and irac protocols deliberately carry no such cross-check.
	if variant == VariantHybrid {
		winnerOpening := transcript.opening(decision.Winner)
		if winnerOpening != nil && decision.Decision != winnerOpening.Position {
			return nil, &ConsistencyError{
				Winner:         decision.Winner,
				Decision:       decision.Decision,
				WinnerPosition: winnerOpening.Position,
			}
		}
	}

	return decision, nil
}
