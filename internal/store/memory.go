// ABOUTME: In-memory vector store with cosine similarity search
// ABOUTME: Backend for tests and single-process deployments without Qdrant
package store

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/vangipuraputarunsailesh/Docuchat-AI-project/internal/models"
)

// MemoryStore keeps embedded chunks in process memory
type MemoryStore struct {
	embedder Embedder

	mu      sync.RWMutex
	entries []models.EmbeddedChunk
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore(embedder Embedder) *MemoryStore {
	return &MemoryStore{embedder: embedder}
}

// Add embeds the chunks and appends them to the index
func (ms *MemoryStore) Add(ctx context.Context, chunks []models.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	vectors, err := ms.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return err
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()
	for i, c := range chunks {
		ms.entries = append(ms.entries, models.EmbeddedChunk{Chunk: c, Vector: vectors[i]})
	}
	return nil
}

// Search embeds the query and returns the top-k most similar chunks
func (ms *MemoryStore) Search(ctx context.Context, query string, k int, filter *Filter) ([]models.SearchResult, error) {
	if k <= 0 {
		k = 5
	}

	vectors, err := ms.embedder.EmbedTexts(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	queryVec := vectors[0]

	ms.mu.RLock()
	defer ms.mu.RUnlock()

	var results []models.SearchResult
	for _, e := range ms.entries {
		if !filter.Matches(e.Chunk) {
			continue
		}
		results = append(results, models.SearchResult{
			Chunk: e.Chunk,
			Score: cosineSimilarity(queryVec, e.Vector),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// Count returns the number of stored chunks
func (ms *MemoryStore) Count(ctx context.Context) (int, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return len(ms.entries), nil
}

// Clear removes all stored chunks
func (ms *MemoryStore) Clear(ctx context.Context) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.entries = nil
	return nil
}

// cosineSimilarity calculates cosine similarity between two vectors
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
