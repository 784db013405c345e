package embeddings

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
)

// Cache stores embeddings so repeated evaluations of the same answers do not
// re-hit the API
type Cache interface {
	Get(ctx context.Context, key string) ([]float32, bool, error)
	Set(ctx context.Context, key string, embedding []float32) error
}

// CacheKey creates a cache key from model and text
func CacheKey(model, text string) string {
	h := sha256.New()
	h.Write([]byte(model + ":" + text))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// MemoryCache is a process-local cache keyed by CacheKey
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string][]float32
}

// NewMemoryCache creates an empty in-memory cache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string][]float32)}
}

func (c *MemoryCache) Get(ctx context.Context, key string) ([]float32, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	emb, ok := c.entries[key]
	return emb, ok, nil
}

func (c *MemoryCache) Set(ctx context.Context, key string, embedding []float32) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = embedding
	return nil
}

// CachedClient wraps a Client with caching
type CachedClient struct {
	client *Client
	cache  Cache
}

// NewCachedClient creates a new cached embedding client
func NewCachedClient(client *Client, cache Cache) *CachedClient {
	return &CachedClient{
		client: client,
		cache:  cache,
	}
}

// EmbedTexts generates embeddings with caching
func (c *CachedClient) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	results := make([][]float32, len(texts))
	var uncachedTexts []string
	var uncachedIndices []int

	for i, text := range texts {
		key := CacheKey(c.client.model, text)
		if emb, ok, err := c.cache.Get(ctx, key); err == nil && ok {
			results[i] = emb
			continue
		}
		uncachedTexts = append(uncachedTexts, text)
		uncachedIndices = append(uncachedIndices, i)
	}

	if len(uncachedTexts) > 0 {
		fresh, err := c.client.EmbedTexts(ctx, uncachedTexts)
		if err != nil {
			return nil, err
		}
		for i, idx := range uncachedIndices {
			results[idx] = fresh[i]
			// Cache failures are not fatal
			_ = c.cache.Set(ctx, CacheKey(c.client.model, texts[idx]), fresh[i])
		}
	}

	return results, nil
}

// EmbedText generates an embedding for a single text with caching
func (c *CachedClient) EmbedText(ctx context.Context, text string) ([]float32, error) {
	results, err := c.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return results[0], nil
}

// GetDimension returns the embedding dimension
func (c *CachedClient) GetDimension() int {
	return c.client.GetDimension()
}
