// ABOUTME: Ingestion endpoints: multipart document upload and web article fetch
// ABOUTME: Both chunk, embed, and index the content under a fresh upload id
package httpapi

import (
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/vangipuraputarunsailesh/Docuchat-AI-project/internal/models"
)

const maxUploadFormMemory = 32 << 20

type ingestResponse struct {
	UploadID string `json:"upload_id"`
	Source   string `json:"source"`
	Chunks   int    `json:"chunks"`
}

func (s *Server) handleUploadDocument(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadFormMemory); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_form", err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "missing_file", "form field file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusBadRequest, "unreadable_file", err.Error())
		return
	}

	uploadID := strings.TrimSpace(r.FormValue("upload_id"))
	if uploadID == "" {
		uploadID = uuid.NewString()
	}

	chunks, err := s.processor.ProcessFile(header.Filename, data, uploadID)
	if err != nil {
		if models.IsValidation(err) {
			respondError(w, http.StatusBadRequest, "invalid_document", err.Error())
			return
		}
		respondError(w, http.StatusUnprocessableEntity, "extraction_failed", err.Error())
		return
	}

	s.index(w, r, chunks, uploadID, header.Filename)
}

type webIngestRequest struct {
	URL      string `json:"url"`
	UploadID string `json:"upload_id,omitempty"`
}

func (s *Server) handleIngestWebArticle(w http.ResponseWriter, r *http.Request) {
	var req webIngestRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		respondError(w, http.StatusBadRequest, "missing_url", "field url is required")
		return
	}

	uploadID := strings.TrimSpace(req.UploadID)
	if uploadID == "" {
		uploadID = uuid.NewString()
	}

	chunks, err := s.processor.ProcessWebArticle(r.Context(), req.URL, uploadID)
	if err != nil {
		if models.IsValidation(err) {
			respondError(w, http.StatusBadRequest, "invalid_url", err.Error())
			return
		}
		respondError(w, http.StatusBadGateway, "fetch_failed", err.Error())
		return
	}

	s.index(w, r, chunks, uploadID, req.URL)
}

// index embeds and stores the chunks, then reports the ingestion outcome
func (s *Server) index(w http.ResponseWriter, r *http.Request, chunks []models.Chunk, uploadID, source string) {
	if len(chunks) > 0 {
		if err := s.store.Add(r.Context(), chunks); err != nil {
			s.metrics.ProviderErrors.WithLabelValues("embedding").Inc()
			respondError(w, http.StatusBadGateway, "index_failed", err.Error())
			return
		}
		s.metrics.DocumentsIngested.WithLabelValues(string(chunks[0].Kind)).Inc()
	}

	if count, err := s.store.Count(r.Context()); err == nil {
		s.metrics.ChunksIndexed.Set(float64(count))
	}

	respondJSON(w, http.StatusCreated, ingestResponse{
		UploadID: uploadID,
		Source:   source,
		Chunks:   len(chunks),
	})
}
