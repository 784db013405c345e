package evaluation

import (
	"context"
	"errors"
	"math"
	"testing"
)

type fakeEmbedder struct {
	vectors [][]float32
	err     error
	calls   int
}

func (f *fakeEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.vectors, nil
}

func TestSemanticScorerScore(t *testing.T) {
	t.Run("identical vectors score one", func(t *testing.T) {
		embedder := &fakeEmbedder{vectors: [][]float32{{1, 0, 1}, {1, 0, 1}}}
		scorer := NewSemanticScorer(embedder)

		score, err := scorer.Score(context.Background(), "prediction", "reference")
		if err != nil {
			t.Fatalf("Score() error = %v", err)
		}
		if score != 1.0 {
			t.Errorf("score = %v, want 1.0", score)
		}
	})

	t.Run("orthogonal vectors score zero", func(t *testing.T) {
		embedder := &fakeEmbedder{vectors: [][]float32{{1, 0}, {0, 1}}}
		scorer := NewSemanticScorer(embedder)

		score, err := scorer.Score(context.Background(), "prediction", "reference")
		if err != nil {
			t.Fatalf("Score() error = %v", err)
		}
		if score != 0 {
			t.Errorf("score = %v, want 0", score)
		}
	})

	t.Run("empty input skips the embedder", func(t *testing.T) {
		embedder := &fakeEmbedder{}
		scorer := NewSemanticScorer(embedder)

		score, err := scorer.Score(context.Background(), "", "reference")
		if err != nil {
			t.Fatalf("Score() error = %v", err)
		}
		if score != 0 {
			t.Errorf("score = %v, want 0", score)
		}
		if embedder.calls != 0 {
			t.Errorf("embedder called %d times, want 0", embedder.calls)
		}
	})

	t.Run("embedder failure propagates", func(t *testing.T) {
		embedder := &fakeEmbedder{err: errors.New("api down")}
		scorer := NewSemanticScorer(embedder)

		if _, err := scorer.Score(context.Background(), "prediction", "reference"); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1.0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1.0},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0},
		{"length mismatch", []float32{1}, []float32{1, 2}, 0},
		{"empty", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("CosineSimilarity() = %v, want %v", got, tt.want)
			}
		})
	}
}
