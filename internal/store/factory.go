// ABOUTME: Factory selecting the vector store backend from configuration
// ABOUTME: Supports qdrant for deployments and memory for tests/offline use
package store

import (
	"fmt"

	"github.com/vangipuraputarunsailesh/Docuchat-AI-project/internal/config"
)

// New builds the configured Store implementation
func New(cfg *config.Config, embedder Embedder) (Store, error) {
	switch cfg.StoreBackend {
	case "qdrant":
		return NewQdrantStore(QdrantConfig{
			URL:        cfg.QdrantURL,
			APIKey:     cfg.QdrantAPIKey,
			Collection: cfg.QdrantCollection,
			Dimension:  cfg.VectorDimension,
		}, embedder), nil
	case "memory":
		return NewMemoryStore(embedder), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
