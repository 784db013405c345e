// Package evaluation scores completed debate answers against ground truth:
// citation overlap F1, embedding-based semantic similarity, and an LLM-graded
// rubric.
package evaluation

import "math"

// CitationScores holds precision/recall/F1 over citation sets
type CitationScores struct {
	Precision      float64 `json:"precision"`
	Recall         float64 `json:"recall"`
	F1             float64 `json:"f1"`
	PredictedCount int     `json:"predicted_count"`
	ExpectedCount  int     `json:"expected_count"`
	MatchedCount   int     `json:"matched_count"`
}

// CitationF1 scores predicted citations against expected ones by exact set
// overlap. Both empty counts as a perfect match; one empty side scores zero.
func CitationF1(predicted, expected []string) CitationScores {
	if len(predicted) == 0 && len(expected) == 0 {
		return CitationScores{Precision: 1.0, Recall: 1.0, F1: 1.0}
	}
	if len(predicted) == 0 || len(expected) == 0 {
		return CitationScores{
			PredictedCount: len(predicted),
			ExpectedCount:  len(expected),
		}
	}

	predSet := make(map[string]struct{}, len(predicted))
	for _, c := range predicted {
		predSet[c] = struct{}{}
	}
	expSet := make(map[string]struct{}, len(expected))
	for _, c := range expected {
		expSet[c] = struct{}{}
	}

	matched := 0
	for c := range predSet {
		if _, ok := expSet[c]; ok {
			matched++
		}
	}

	precision := float64(matched) / float64(len(predSet))
	recall := float64(matched) / float64(len(expSet))

	f1 := 0.0
	if precision+recall > 0 {
		f1 = 2 * precision * recall / (precision + recall)
	}

	return CitationScores{
		Precision:      round4(precision),
		Recall:         round4(recall),
		F1:             round4(f1),
		PredictedCount: len(predSet),
		ExpectedCount:  len(expSet),
		MatchedCount:   matched,
	}
}

func round4(x float64) float64 {
	return math.Round(x*10000) / 10000
}
