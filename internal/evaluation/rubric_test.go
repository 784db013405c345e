package evaluation

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

type fakeGenerator struct {
	response string
	err      error
}

func (f *fakeGenerator) GenerateStructured(ctx context.Context, prompt string, maxTokens int) (json.RawMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(f.response), nil
}

func TestRubricGraderGrade(t *testing.T) {
	t.Run("scores and normalizes", func(t *testing.T) {
		gen := &fakeGenerator{response: `{"correctness": 3, "reasoning": 2, "citations": 4, "justification": "solid answer"}`}
		grader := NewRubricGrader(gen)

		scores := grader.Grade(context.Background(), "q", "prediction", "reference")
		if scores.Total != 9 {
			t.Errorf("Total = %v, want 9", scores.Total)
		}
		if scores.Normalized != 0.8182 {
			t.Errorf("Normalized = %v, want 0.8182", scores.Normalized)
		}
		if scores.Justification != "solid answer" {
			t.Errorf("Justification = %q", scores.Justification)
		}
	})

	t.Run("clamps out of range scores", func(t *testing.T) {
		gen := &fakeGenerator{response: `{"correctness": 9, "reasoning": -1, "citations": 4, "justification": "j"}`}
		grader := NewRubricGrader(gen)

		scores := grader.Grade(context.Background(), "q", "prediction", "reference")
		if scores.Correctness != 4 || scores.Reasoning != 0 {
			t.Errorf("scores = %+v", scores)
		}
		if scores.Total != 8 {
			t.Errorf("Total = %v, want 8", scores.Total)
		}
	})

	t.Run("degrades on generation failure", func(t *testing.T) {
		gen := &fakeGenerator{err: errors.New("api down")}
		grader := NewRubricGrader(gen)

		scores := grader.Grade(context.Background(), "q", "prediction", "reference")
		if scores.Total != 0 {
			t.Errorf("Total = %v, want 0", scores.Total)
		}
		if !strings.Contains(scores.Justification, "grading failed") {
			t.Errorf("Justification = %q", scores.Justification)
		}
	})

	t.Run("empty inputs skip the grader", func(t *testing.T) {
		grader := NewRubricGrader(&fakeGenerator{response: `{"correctness": 4}`})

		scores := grader.Grade(context.Background(), "q", "", "reference")
		if scores.Total != 0 || scores.Justification == "" {
			t.Errorf("scores = %+v", scores)
		}
	})
}

func TestAggregate(t *testing.T) {
	t.Run("empty results", func(t *testing.T) {
		agg := Aggregate(nil)
		if agg.Count != 0 {
			t.Errorf("Count = %d, want 0", agg.Count)
		}
	})

	t.Run("means across results", func(t *testing.T) {
		results := []Result{
			{
				CitationF1: CitationScores{Precision: 1.0, Recall: 0.5, F1: 0.6667},
				Semantic:   0.9,
				Rubric:     &RubricScores{Total: 11, Normalized: 1.0},
			},
			{
				CitationF1: CitationScores{Precision: 0.5, Recall: 0.5, F1: 0.5},
				Semantic:   0.7,
			},
		}

		agg := Aggregate(results)
		if agg.Count != 2 {
			t.Errorf("Count = %d, want 2", agg.Count)
		}
		if agg.CitationPrecision != 0.75 {
			t.Errorf("CitationPrecision = %v, want 0.75", agg.CitationPrecision)
		}
		if agg.Semantic != 0.8 {
			t.Errorf("Semantic = %v, want 0.8", agg.Semantic)
		}
		// Rubric mean only covers results that carry rubric scores
		if agg.RubricTotal != 11 || agg.RubricNormalized != 1.0 {
			t.Errorf("rubric means = %v, %v", agg.RubricTotal, agg.RubricNormalized)
		}
	})
}
