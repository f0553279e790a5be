// ABOUTME: Qdrant-backed vector store over the REST API
// ABOUTME: Lazily creates the collection and re-initializes before failing
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vangipuraputarunsailesh/Docuchat-AI-project/internal/models"
)

// upsertBatchSize bounds a single points upsert request
const upsertBatchSize = 64

// QdrantConfig contains connection details for the Qdrant index
type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
	Dimension  int
	HTTPClient *http.Client
}

// QdrantStore is a minimal REST client to Qdrant assuming cosine distance
type QdrantStore struct {
	embedder   Embedder
	url        string
	apiKey     string
	collection string
	dimension  int
	client     *http.Client

	mu    sync.Mutex
	ready bool
}

// NewQdrantStore creates a store backed by the given Qdrant instance. The
// collection is not touched until the first operation.
func NewQdrantStore(cfg QdrantConfig, embedder Embedder) *QdrantStore {
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &QdrantStore{
		embedder:   embedder,
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		dimension:  cfg.Dimension,
		client:     client,
	}
}

// ensureReady creates the collection if it does not exist yet. Every
// operation calls it so a failed initialization is retried on the next use.
func (q *QdrantStore) ensureReady(ctx context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.ready {
		return nil
	}

	body := map[string]any{
		"vectors": map[string]any{
			"size":     q.dimension,
			"distance": "Cosine",
		},
	}
	// Qdrant returns 409 when the collection already exists with this schema
	if err := q.do(ctx, http.MethodPut, fmt.Sprintf("/collections/%s", q.collection), body, nil, http.StatusConflict); err != nil {
		return fmt.Errorf("%w: %v", ErrNotInitialized, err)
	}
	q.ready = true
	return nil
}

// Add embeds the chunks and upserts them in batches. On a mid-batch failure
// the error reports how many chunks were already inserted.
func (q *QdrantStore) Add(ctx context.Context, chunks []models.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}
	if err := q.ensureReady(ctx); err != nil {
		return err
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	vectors, err := q.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return err
	}

	inserted := 0
	for start := 0; start < len(chunks); start += upsertBatchSize {
		end := start + upsertBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}

		points := make([]map[string]any, 0, end-start)
		for i := start; i < end; i++ {
			points = append(points, map[string]any{
				"id":     uuid.New().String(),
				"vector": vectors[i],
				"payload": map[string]any{
					"chunk_id":  chunks[i].ChunkID,
					"text":      chunks[i].Text,
					"source":    chunks[i].Source,
					"sequence":  chunks[i].Sequence,
					"upload_id": chunks[i].UploadID,
					"kind":      string(chunks[i].Kind),
				},
			})
		}

		path := fmt.Sprintf("/collections/%s/points?wait=true", q.collection)
		if err := q.do(ctx, http.MethodPut, path, map[string]any{"points": points}, nil); err != nil {
			q.markNotReady()
			return models.NewProviderError("vector index",
				fmt.Errorf("upsert failed after %d of %d chunks: %w", inserted, len(chunks), err))
		}
		inserted = end
	}
	return nil
}

// Search embeds the query and runs a top-k similarity search, optionally
// restricted by payload filter.
func (q *QdrantStore) Search(ctx context.Context, query string, k int, filter *Filter) ([]models.SearchResult, error) {
	if k <= 0 {
		k = 5
	}
	if err := q.ensureReady(ctx); err != nil {
		return nil, err
	}

	vectors, err := q.embedder.EmbedTexts(ctx, []string{query})
	if err != nil {
		return nil, err
	}

	req := map[string]any{
		"vector":       vectors[0],
		"limit":        k,
		"with_payload": true,
	}
	if qf := qdrantFilter(filter); qf != nil {
		req["filter"] = qf
	}

	var resp struct {
		Result []struct {
			Score   float64        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	path := fmt.Sprintf("/collections/%s/points/search", q.collection)
	if err := q.do(ctx, http.MethodPost, path, req, &resp); err != nil {
		q.markNotReady()
		return nil, models.NewProviderError("vector index", err)
	}

	results := make([]models.SearchResult, 0, len(resp.Result))
	for _, r := range resp.Result {
		results = append(results, models.SearchResult{
			Chunk: chunkFromPayload(r.Payload),
			Score: r.Score,
		})
	}
	return results, nil
}

// Count returns the exact number of points in the collection
func (q *QdrantStore) Count(ctx context.Context) (int, error) {
	if err := q.ensureReady(ctx); err != nil {
		return 0, err
	}

	var resp struct {
		Result struct {
			Count int `json:"count"`
		} `json:"result"`
	}
	path := fmt.Sprintf("/collections/%s/points/count", q.collection)
	if err := q.do(ctx, http.MethodPost, path, map[string]any{"exact": true}, &resp); err != nil {
		q.markNotReady()
		return 0, models.NewProviderError("vector index", err)
	}
	return resp.Result.Count, nil
}

// Clear drops the collection. The next operation re-creates it empty.
func (q *QdrantStore) Clear(ctx context.Context) error {
	if err := q.ensureReady(ctx); err != nil {
		return err
	}
	if err := q.do(ctx, http.MethodDelete, fmt.Sprintf("/collections/%s", q.collection), nil, nil); err != nil {
		return models.NewProviderError("vector index", err)
	}
	q.markNotReady()
	return nil
}

func (q *QdrantStore) markNotReady() {
	q.mu.Lock()
	q.ready = false
	q.mu.Unlock()
}

// qdrantFilter builds a payload filter matching either the upload id or
// the source field.
func qdrantFilter(f *Filter) map[string]any {
	if f == nil || (f.UploadID == "" && f.Source == "") {
		return nil
	}
	var should []map[string]any
	if f.UploadID != "" {
		should = append(should, map[string]any{
			"key":   "upload_id",
			"match": map[string]any{"value": f.UploadID},
		})
	}
	if f.Source != "" {
		should = append(should, map[string]any{
			"key":   "source",
			"match": map[string]any{"value": f.Source},
		})
	}
	return map[string]any{"should": should}
}

func chunkFromPayload(payload map[string]any) models.Chunk {
	chunk := models.Chunk{}
	if v, ok := payload["chunk_id"].(string); ok {
		chunk.ChunkID = v
	}
	if v, ok := payload["text"].(string); ok {
		chunk.Text = v
	}
	if v, ok := payload["source"].(string); ok {
		chunk.Source = v
	}
	if v, ok := payload["sequence"].(float64); ok {
		chunk.Sequence = int(v)
	}
	if v, ok := payload["upload_id"].(string); ok {
		chunk.UploadID = v
	}
	if v, ok := payload["kind"].(string); ok {
		chunk.Kind = models.ChunkKind(v)
	}
	return chunk
}

// do issues one JSON request against the Qdrant API. Extra status codes in
// okStatuses are treated as success alongside any 2xx.
func (q *QdrantStore) do(ctx context.Context, method, path string, body any, out any, okStatuses ...int) error {
	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, q.url+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if q.apiKey != "" {
		req.Header.Set("api-key", q.apiKey)
	}

	resp, err := q.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		allowed := false
		for _, s := range okStatuses {
			if resp.StatusCode == s {
				allowed = true
				break
			}
		}
		if !allowed {
			return fmt.Errorf("qdrant %s %s failed: %s", method, path, resp.Status)
		}
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
