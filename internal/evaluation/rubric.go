package evaluation

import (
	"context"
	"encoding/json"
	"fmt"
)

const (
	maxCorrectness = 4.0
	maxReasoning   = 3.0
	maxCitations   = 4.0
	maxTotal       = maxCorrectness + maxReasoning + maxCitations

	rubricMaxTokens = 500
)

// generator is the structured-output LLM boundary the grader depends on
type generator interface {
	GenerateStructured(ctx context.Context, prompt string, maxTokens int) (json.RawMessage, error)
}

// RubricScores holds an LLM-graded assessment of one answer
type RubricScores struct {
	Correctness   float64 `json:"correctness"`
	Reasoning     float64 `json:"reasoning"`
	Citations     float64 `json:"citations"`
	Total         float64 `json:"total"`
	Normalized    float64 `json:"normalized"`
	Justification string  `json:"justification"`
}

// RubricGrader scores answers with an LLM judge against a reference answer.
// Use a different model than the one under evaluation to avoid self-grading
// bias.
type RubricGrader struct {
	client generator
}

// NewRubricGrader creates a grader over the given generation client
func NewRubricGrader(client generator) *RubricGrader {
	return &RubricGrader{client: client}
}

// Grade scores a predicted answer against the reference on legal correctness
// (0-4), reasoning quality (0-3), and citation accuracy (0-4). Grading sits
// outside the debate core, so failures degrade to zero scores with the error
// recorded in the justification instead of aborting.
func (g *RubricGrader) Grade(ctx context.Context, question, prediction, reference string) RubricScores {
	if prediction == "" || reference == "" {
		return RubricScores{Justification: "empty prediction or reference"}
	}

	prompt := rubricPrompt(question, prediction, reference)

	raw, err := g.client.GenerateStructured(ctx, prompt, rubricMaxTokens)
	if err != nil {
		return RubricScores{Justification: fmt.Sprintf("grading failed: %v", err)}
	}

	var resp struct {
		Correctness   float64 `json:"correctness"`
		Reasoning     float64 `json:"reasoning"`
		Citations     float64 `json:"citations"`
		Justification string  `json:"justification"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return RubricScores{Justification: fmt.Sprintf("grading failed: %v", err)}
	}

	correctness := clamp(resp.Correctness, 0, maxCorrectness)
	reasoning := clamp(resp.Reasoning, 0, maxReasoning)
	citations := clamp(resp.Citations, 0, maxCitations)
	total := correctness + reasoning + citations

	return RubricScores{
		Correctness:   correctness,
		Reasoning:     reasoning,
		Citations:     citations,
		Total:         total,
		Normalized:    round4(total / maxTotal),
		Justification: resp.Justification,
	}
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func rubricPrompt(question, prediction, reference string) string {
	return fmt.Sprintf(`You are an expert evaluator of legal exam answers.

<task>
Evaluate the quality of a candidate answer against the official reference answer.
</task>

<question>
%s
</question>

<reference_answer>
%s
</reference_answer>

<candidate_answer>
%s
</candidate_answer>

<evaluation_criteria>
Score the CANDIDATE ANSWER on the following criteria:

1. LEGAL CORRECTNESS (0-4 points):
   0 = Completely incorrect or irrelevant
   1 = Partially correct, but with serious errors of reasoning
   2 = Correct but incomplete or superficial
   3 = Correct and complete
   4 = Correct, complete, and exceptionally well grounded

2. LEGAL REASONING (0-3 points):
   0 = No legal logic or incoherent reasoning
   1 = Basic reasoning present
   2 = Clear, structured reasoning
   3 = Excellent structured reasoning (e.g. IRAC or similar)

3. LEGAL CITATIONS (0-4 points):
   0 = No citations or completely wrong citations
   1 = Cited the correct statute/code but the wrong article/provision
   2 = Cited an article close or related to the correct one
   3 = Cited the correct article but missed complements (paragraphs, subsections)
   4 = Perfect and complete citation
</evaluation_criteria>

<instructions>
IMPORTANT:
- Compare the candidate answer carefully against the reference answer
- Be rigorous but fair
- Answers may be correct even when worded differently
- Keep the justification objective and technical (at most 2 sentences)

Return ONLY valid JSON in the following format:
{
    "correctness": <number from 0 to 4>,
    "reasoning": <number from 0 to 3>,
    "citations": <number from 0 to 4>,
    "justification": "<brief, objective explanation>"
}
</instructions>`, question, reference, prediction)
}
