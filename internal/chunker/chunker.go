// ABOUTME: Splitter cuts document text into overlapping fixed-size chunks
// ABOUTME: Prefers paragraph, sentence, then word boundaries before a hard cut
package chunker

import (
	"strings"

	"github.com/google/uuid"

	"github.com/vangipuraputarunsailesh/Docuchat-AI-project/internal/models"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultOverlap is the default number of characters shared between
// consecutive chunks.
const DefaultOverlap = 200

// SourceMeta is the provenance attached to every chunk of one document
type SourceMeta struct {
	Source   string
	UploadID string
	Kind     models.ChunkKind
}

// Splitter splits raw text into overlapping chunks
type Splitter struct {
	chunkSize int
	overlap   int
}

// NewSplitter creates a Splitter. Non-positive size or overlap fall back to
// the defaults; overlap is clamped below the chunk size.
func NewSplitter(chunkSize, overlap int) *Splitter {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = DefaultOverlap
	}
	if overlap >= chunkSize {
		overlap = chunkSize / 4
	}
	return &Splitter{chunkSize: chunkSize, overlap: overlap}
}

// Split cuts text into ordered chunks carrying meta. Empty or
// whitespace-only input yields no chunks and no error.
func (s *Splitter) Split(text string, meta SourceMeta) []models.Chunk {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	runes := []rune(text)
	total := len(runes)

	var chunks []models.Chunk
	start := 0
	seq := 1

	for start < total {
		end := start + s.chunkSize
		if end >= total {
			end = total
		} else {
			end = s.breakPoint(runes, start, end)
		}

		content := string(runes[start:end])
		if strings.TrimSpace(content) != "" {
			chunks = append(chunks, models.Chunk{
				ChunkID:  "chunk_" + uuid.New().String(),
				Text:     content,
				Source:   meta.Source,
				Sequence: seq,
				UploadID: meta.UploadID,
				Kind:     meta.Kind,
			})
			seq++
		}

		if end >= total {
			break
		}
		start = end - s.overlap
	}

	return chunks
}

// breakPoint picks a cut position at or before end, preferring a paragraph
// break, then a sentence end, then a word boundary. The cut never moves back
// past start+overlap so the window always advances.
func (s *Splitter) breakPoint(runes []rune, start, end int) int {
	floor := start + s.overlap + 1
	if half := start + s.chunkSize/2; half > floor {
		floor = half
	}
	if floor >= end {
		return end
	}

	window := string(runes[floor:end])

	if i := strings.LastIndex(window, "\n\n"); i >= 0 {
		return floor + len([]rune(window[:i+2]))
	}
	for _, sep := range []string{". ", "! ", "? ", "\n"} {
		if i := strings.LastIndex(window, sep); i >= 0 {
			return floor + len([]rune(window[:i+len(sep)]))
		}
	}
	if i := strings.LastIndex(window, " "); i >= 0 {
		return floor + len([]rune(window[:i+1]))
	}

	// Unsplittable run of characters: hard cut
	return end
}
