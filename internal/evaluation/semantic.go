package evaluation

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Embedder produces embedding vectors for texts, in input order
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// SemanticScorer measures how close a predicted answer is to the reference
// answer in embedding space
type SemanticScorer struct {
	embedder Embedder
}

// NewSemanticScorer creates a scorer over the given embedder
func NewSemanticScorer(embedder Embedder) *SemanticScorer {
	return &SemanticScorer{embedder: embedder}
}

// Score returns the cosine similarity between the prediction and reference
// embeddings. Empty inputs score zero without calling the embedder.
func (s *SemanticScorer) Score(ctx context.Context, prediction, reference string) (float64, error) {
	if prediction == "" || reference == "" {
		return 0, nil
	}

	vectors, err := s.embedder.EmbedTexts(ctx, []string{prediction, reference})
	if err != nil {
		return 0, fmt.Errorf("embed answers: %w", err)
	}
	if len(vectors) != 2 {
		return 0, fmt.Errorf("expected 2 embeddings, got %d", len(vectors))
	}

	return round4(CosineSimilarity(vectors[0], vectors[1])), nil
}

// CosineSimilarity calculates the cosine similarity between two vectors.
// Returns a value between -1 and 1.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	aFloat64 := make([]float64, len(a))
	bFloat64 := make([]float64, len(b))
	for i := range a {
		aFloat64[i] = float64(a[i])
		bFloat64[i] = float64(b[i])
	}

	dot := floats.Dot(aFloat64, bFloat64)
	magA := math.Sqrt(floats.Dot(aFloat64, aFloat64))
	magB := math.Sqrt(floats.Dot(bFloat64, bFloat64))

	if magA == 0 || magB == 0 {
		return 0
	}

	return dot / (magA * magB)
}
