// ABOUTME: Processor is the document ingestion boundary
// ABOUTME: Validates uploads, extracts text per kind, and produces chunks
package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/vangipuraputarunsailesh/Docuchat-AI-project/internal/chunker"
	"github.com/vangipuraputarunsailesh/Docuchat-AI-project/internal/models"
)

// SupportedExtensions are the upload file types accepted for processing
var SupportedExtensions = []string{".pdf", ".txt", ".md"}

// Processor turns raw uploads and web articles into chunks
type Processor struct {
	splitter     *chunker.Splitter
	maxFileBytes int64
	client       *http.Client
}

// NewProcessor creates a Processor with the given splitter and size cap
func NewProcessor(splitter *chunker.Splitter, maxFileSizeMB int) *Processor {
	if maxFileSizeMB <= 0 {
		maxFileSizeMB = 50
	}
	return &Processor{
		splitter:     splitter,
		maxFileBytes: int64(maxFileSizeMB) << 20,
		client:       &http.Client{Timeout: 10 * time.Second},
	}
}

// ProcessFile validates and chunks one uploaded file. The upload id scopes
// the resulting chunks to this document for filtered retrieval.
func (p *Processor) ProcessFile(name string, data []byte, uploadID string) ([]models.Chunk, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if !supported(ext) {
		return nil, models.NewValidationError("file", "unsupported extension %q (supported: %s)", ext, strings.Join(SupportedExtensions, ", "))
	}
	if int64(len(data)) > p.maxFileBytes {
		return nil, models.NewValidationError("file", "size %.2f MB exceeds maximum %d MB",
			float64(len(data))/(1<<20), p.maxFileBytes>>20)
	}

	var text string
	kind := models.ChunkKindText
	switch ext {
	case ".pdf":
		extracted, err := extractPDFText(data)
		if err != nil {
			return nil, fmt.Errorf("extracting PDF text from %s: %w", name, err)
		}
		text = extracted
		kind = models.ChunkKindPDF
	default: // .txt, .md
		text = string(data)
	}

	return p.splitter.Split(text, chunker.SourceMeta{
		Source:   name,
		UploadID: uploadID,
		Kind:     kind,
	}), nil
}

// ProcessWebArticle fetches a URL, strips markup, and chunks the text
func (p *Processor) ProcessWebArticle(ctx context.Context, url, uploadID string) ([]models.Chunk, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return nil, models.NewValidationError("url", "must start with http:// or https://")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, models.NewValidationError("url", "%v", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching article: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching article: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, p.maxFileBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading article body: %w", err)
	}
	if int64(len(body)) > p.maxFileBytes {
		return nil, models.NewValidationError("url", "article exceeds maximum size %d MB", p.maxFileBytes>>20)
	}

	text := chunker.StripHTML(string(body))
	return p.splitter.Split(text, chunker.SourceMeta{
		Source:   url,
		UploadID: uploadID,
		Kind:     models.ChunkKindWeb,
	}), nil
}

func supported(ext string) bool {
	for _, s := range SupportedExtensions {
		if ext == s {
			return true
		}
	}
	return false
}
