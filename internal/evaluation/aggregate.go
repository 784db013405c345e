package evaluation

import "gonum.org/v1/gonum/stat"

// Result bundles the per-question metric scores for one evaluated answer
type Result struct {
	CitationF1 CitationScores `json:"citation_f1"`
	Semantic   float64        `json:"semantic_similarity"`
	Rubric     *RubricScores  `json:"rubric,omitempty"`
}

// Aggregated holds metric means across a result set
type Aggregated struct {
	CitationPrecision float64 `json:"citation_precision"`
	CitationRecall    float64 `json:"citation_recall"`
	CitationF1        float64 `json:"citation_f1"`
	Semantic          float64 `json:"semantic_similarity"`
	RubricTotal       float64 `json:"rubric_total"`
	RubricNormalized  float64 `json:"rubric_normalized"`
	Count             int     `json:"count"`
}

// Aggregate computes per-metric means across results. Rubric means are taken
// only over results that carry rubric scores.
func Aggregate(results []Result) Aggregated {
	if len(results) == 0 {
		return Aggregated{}
	}

	precision := make([]float64, len(results))
	recall := make([]float64, len(results))
	f1 := make([]float64, len(results))
	semantic := make([]float64, len(results))
	var rubricTotal, rubricNormalized []float64

	for i, r := range results {
		precision[i] = r.CitationF1.Precision
		recall[i] = r.CitationF1.Recall
		f1[i] = r.CitationF1.F1
		semantic[i] = r.Semantic
		if r.Rubric != nil {
			rubricTotal = append(rubricTotal, r.Rubric.Total)
			rubricNormalized = append(rubricNormalized, r.Rubric.Normalized)
		}
	}

	agg := Aggregated{
		CitationPrecision: round4(stat.Mean(precision, nil)),
		CitationRecall:    round4(stat.Mean(recall, nil)),
		CitationF1:        round4(stat.Mean(f1, nil)),
		Semantic:          round4(stat.Mean(semantic, nil)),
		Count:             len(results),
	}
	if len(rubricTotal) > 0 {
		agg.RubricTotal = round4(stat.Mean(rubricTotal, nil))
		agg.RubricNormalized = round4(stat.Mean(rubricNormalized, nil))
	}
	return agg
}
