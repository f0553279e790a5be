// ABOUTME: Chunk represents a bounded segment of source document text
// ABOUTME: Carries provenance metadata used for scoped retrieval
package models

// ChunkKind identifies the type of source a chunk was extracted from
type ChunkKind string

const (
	ChunkKindPDF  ChunkKind = "pdf"
	ChunkKindText ChunkKind = "text"
	ChunkKindWeb  ChunkKind = "web"
)

// Chunk is an immutable segment of one source document
type Chunk struct {
	ChunkID  string    `json:"chunk_id"`
	Text     string    `json:"text"`
	Source   string    `json:"source"`
	Sequence int       `json:"sequence"` // 1-based position within the source
	UploadID string    `json:"upload_id,omitempty"`
	Kind     ChunkKind `json:"kind"`
}

// EmbeddedChunk pairs a chunk with its embedding vector.
// The vector is computed once at insertion time and never mutated.
type EmbeddedChunk struct {
	Chunk
	Vector []float64 `json:"vector"`
}

// SearchResult is a retrieved chunk with its similarity score
type SearchResult struct {
	Chunk Chunk   `json:"chunk"`
	Score float64 `json:"score"`
}
