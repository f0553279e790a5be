// ABOUTME: Store is the knowledge-base vector store contract
// ABOUTME: Chunks are embedded at insertion and retrieved by similarity
package store

import (
	"context"
	"errors"

	"github.com/vangipuraputarunsailesh/Docuchat-AI-project/internal/models"
)

// ErrNotInitialized reports that the underlying index is unavailable after a
// lazy re-initialization attempt.
var ErrNotInitialized = errors.New("vector index not initialized")

// Filter narrows a search to chunks from one document. Zero-value fields are
// ignored; when both are set a chunk matches if either field matches.
type Filter struct {
	UploadID string
	Source   string
}

// Matches reports whether the chunk satisfies the filter. A nil or
// zero-value filter matches every chunk.
func (f *Filter) Matches(c models.Chunk) bool {
	if f == nil || (f.UploadID == "" && f.Source == "") {
		return true
	}
	if f.UploadID != "" && c.UploadID == f.UploadID {
		return true
	}
	if f.Source != "" && c.Source == f.Source {
		return true
	}
	return false
}

// Embedder converts texts into embedding vectors
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float64, error)
}

// Store persists embedded chunks and retrieves them by similarity.
// Implementations initialize their index lazily on first use and re-attempt
// initialization before failing when the index handle is absent.
type Store interface {
	// Add embeds each chunk's text and appends it to the index. Partial
	// insertion is possible; any error means the caller cannot assume all
	// chunks were stored.
	Add(ctx context.Context, chunks []models.Chunk) error

	// Search returns up to k chunks ranked by descending similarity to
	// query, optionally restricted to chunks matching filter.
	Search(ctx context.Context, query string, k int, filter *Filter) ([]models.SearchResult, error)

	// Count returns the number of chunks in the index
	Count(ctx context.Context) (int, error)

	// Clear irreversibly deletes all entries
	Clear(ctx context.Context) error
}
