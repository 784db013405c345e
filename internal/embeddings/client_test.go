package embeddings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func embeddingServer(t *testing.T, calls *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++

		var req EmbeddingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}

		resp := EmbeddingResponse{Model: req.Model}
		// Return embeddings out of order to exercise index-based reassembly
		for i := len(req.Input) - 1; i >= 0; i-- {
			resp.Data = append(resp.Data, EmbeddingData{
				Index:     i,
				Embedding: []float32{float32(i), float32(i) + 0.5},
			})
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestEmbedTextsOrdering(t *testing.T) {
	var calls int
	server := embeddingServer(t, &calls)
	defer server.Close()

	client := NewClient("k", WithBaseURL(server.URL))

	vectors, err := client.EmbedTexts(context.Background(), []string{"first", "second", "third"})
	if err != nil {
		t.Fatalf("EmbedTexts() error = %v", err)
	}
	if len(vectors) != 3 {
		t.Fatalf("len = %d, want 3", len(vectors))
	}
	for i, v := range vectors {
		if v[0] != float32(i) {
			t.Errorf("vector %d = %v, out of input order", i, v)
		}
	}
}

func TestEmbedTextsBatching(t *testing.T) {
	var calls int
	server := embeddingServer(t, &calls)
	defer server.Close()

	client := NewClient("k", WithBaseURL(server.URL), WithBatchSize(2))

	texts := []string{"a", "b", "c", "d", "e"}
	vectors, err := client.EmbedTexts(context.Background(), texts)
	if err != nil {
		t.Fatalf("EmbedTexts() error = %v", err)
	}
	if len(vectors) != len(texts) {
		t.Errorf("len = %d, want %d", len(vectors), len(texts))
	}
	if calls != 3 {
		t.Errorf("API calls = %d, want 3", calls)
	}
}

func TestEmbedTextsEmptyInput(t *testing.T) {
	var calls int
	server := embeddingServer(t, &calls)
	defer server.Close()

	client := NewClient("k", WithBaseURL(server.URL))

	vectors, err := client.EmbedTexts(context.Background(), nil)
	if err != nil {
		t.Fatalf("EmbedTexts() error = %v", err)
	}
	if vectors != nil || calls != 0 {
		t.Errorf("vectors = %v, calls = %d", vectors, calls)
	}
}

func TestCachedClientSkipsRepeatLookups(t *testing.T) {
	var calls int
	server := embeddingServer(t, &calls)
	defer server.Close()

	client := NewCachedClient(NewClient("k", WithBaseURL(server.URL)), NewMemoryCache())

	if _, err := client.EmbedText(context.Background(), "same text"); err != nil {
		t.Fatalf("first EmbedText() error = %v", err)
	}
	if _, err := client.EmbedText(context.Background(), "same text"); err != nil {
		t.Fatalf("second EmbedText() error = %v", err)
	}
	if calls != 1 {
		t.Errorf("API calls = %d, want 1", calls)
	}
}

func TestCachedClientMixedHit(t *testing.T) {
	var calls int
	server := embeddingServer(t, &calls)
	defer server.Close()

	client := NewCachedClient(NewClient("k", WithBaseURL(server.URL)), NewMemoryCache())

	if _, err := client.EmbedTexts(context.Background(), []string{"cached"}); err != nil {
		t.Fatalf("EmbedTexts() error = %v", err)
	}

	vectors, err := client.EmbedTexts(context.Background(), []string{"cached", "fresh"})
	if err != nil {
		t.Fatalf("EmbedTexts() error = %v", err)
	}
	if len(vectors) != 2 || vectors[0] == nil || vectors[1] == nil {
		t.Errorf("vectors = %v", vectors)
	}
	if calls != 2 {
		t.Errorf("API calls = %d, want 2", calls)
	}
}

func TestCacheKeyDistinguishesModels(t *testing.T) {
	if CacheKey(ModelTextEmbedding3Small, "text") == CacheKey(ModelTextEmbedding3Large, "text") {
		t.Error("cache keys must differ across models")
	}
	if CacheKey(ModelTextEmbedding3Small, "a") == CacheKey(ModelTextEmbedding3Small, "b") {
		t.Error("cache keys must differ across texts")
	}
}
