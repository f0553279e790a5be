// ABOUTME: HTTP endpoint tests using httptest and in-memory dependencies
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/vangipuraputarunsailesh/Docuchat-AI-project/internal/chat"
	"github.com/vangipuraputarunsailesh/Docuchat-AI-project/internal/chunker"
	"github.com/vangipuraputarunsailesh/Docuchat-AI-project/internal/config"
	"github.com/vangipuraputarunsailesh/Docuchat-AI-project/internal/history"
	"github.com/vangipuraputarunsailesh/Docuchat-AI-project/internal/ingest"
	"github.com/vangipuraputarunsailesh/Docuchat-AI-project/internal/models"
	"github.com/vangipuraputarunsailesh/Docuchat-AI-project/internal/observability"
	"github.com/vangipuraputarunsailesh/Docuchat-AI-project/internal/session"
	"github.com/vangipuraputarunsailesh/Docuchat-AI-project/internal/store"
)

type fixedEmbedder struct{}

func (fixedEmbedder) EmbedTexts(_ context.Context, texts []string) ([][]float64, error) {
	vectors := make([][]float64, len(texts))
	for i := range texts {
		vectors[i] = []float64{1, 0, 0}
	}
	return vectors, nil
}

type fakeEngine struct {
	result       chat.Result
	lastQuestion string
	lastFilter   string
}

func (f *fakeEngine) Answer(_ context.Context, question string, hist *history.History, sourceFilter string) chat.Result {
	f.lastQuestion = question
	f.lastFilter = sourceFilter
	if hist != nil && f.result.Outcome == chat.OutcomeGrounded {
		if turn, err := models.NewTurn(models.RoleUser, question); err == nil {
			_ = hist.Append(*turn)
		}
		if turn, err := models.NewTurn(models.RoleAssistant, f.result.Response); err == nil {
			_ = hist.Append(*turn)
		}
	}
	return f.result
}

func testNamespace(prefix string) string {
	return fmt.Sprintf("test_%s_%d", prefix, time.Now().UnixNano())
}

func newTestServer(t *testing.T, engine Answerer) (*Server, *httptest.Server) {
	t.Helper()
	cfg := config.Config{
		StoreBackend:     "memory",
		QdrantCollection: "knowledge_vault",
		MaxContextChunks: 5,
		MaxFileSizeMB:    1,
	}
	sessions := session.NewManager(10, "", time.Hour)
	st := store.NewMemoryStore(fixedEmbedder{})
	processor := ingest.NewProcessor(chunker.NewSplitter(1000, 200), cfg.MaxFileSizeMB)
	metrics := observability.NewMetrics(testNamespace("httpapi"))

	srv := New(cfg, sessions, engine, st, processor, metrics)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return srv, ts
}

func TestHealthz(t *testing.T) {
	_, ts := newTestServer(t, &fakeEngine{})

	res, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz error = %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusOK)
	}

	var payload map[string]any
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["backend"] != "memory" {
		t.Errorf("backend = %v, want memory", payload["backend"])
	}
}

func TestChatEndpoint(t *testing.T) {
	engine := &fakeEngine{result: chat.Result{
		Response: "The report covers fiscal year 2023.",
		Outcome:  chat.OutcomeGrounded,
	}}
	_, ts := newTestServer(t, engine)

	body, _ := json.Marshal(chatRequest{Question: "What does the report cover?", SourceFilter: "report.pdf"})
	res, err := http.Post(ts.URL+"/v1/chat", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /v1/chat error = %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusOK)
	}

	var reply chatResponse
	if err := json.NewDecoder(res.Body).Decode(&reply); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if reply.Response != "The report covers fiscal year 2023." {
		t.Errorf("unexpected response: %q", reply.Response)
	}
	if reply.SessionID != session.DefaultSessionID {
		t.Errorf("session_id = %q, want %q", reply.SessionID, session.DefaultSessionID)
	}
	if engine.lastFilter != "report.pdf" {
		t.Errorf("source filter not forwarded, got %q", engine.lastFilter)
	}
}

func TestChatEndpointStatusMapping(t *testing.T) {
	tests := []struct {
		outcome    chat.Outcome
		wantStatus int
	}{
		{chat.OutcomeGrounded, http.StatusOK},
		{chat.OutcomeRefusal, http.StatusOK},
		{chat.OutcomeValidation, http.StatusBadRequest},
		{chat.OutcomeProviderError, http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(string(tt.outcome), func(t *testing.T) {
			engine := &fakeEngine{result: chat.Result{Response: "x", Outcome: tt.outcome}}
			_, ts := newTestServer(t, engine)

			body, _ := json.Marshal(chatRequest{Question: "q"})
			res, err := http.Post(ts.URL+"/v1/chat", "application/json", bytes.NewReader(body))
			if err != nil {
				t.Fatalf("POST /v1/chat error = %v", err)
			}
			defer res.Body.Close()
			if res.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", res.StatusCode, tt.wantStatus)
			}
		})
	}
}

func TestChatEndpointUnknownSession(t *testing.T) {
	_, ts := newTestServer(t, &fakeEngine{})

	body, _ := json.Marshal(chatRequest{Question: "q", SessionID: "no-such-session"})
	res, err := http.Post(ts.URL+"/v1/chat", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /v1/chat error = %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", res.StatusCode, http.StatusNotFound)
	}
}

func TestCreateAndEndSession(t *testing.T) {
	_, ts := newTestServer(t, &fakeEngine{})

	res, err := http.Post(ts.URL+"/v1/sessions", "application/json", nil)
	if err != nil {
		t.Fatalf("create session request error = %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want %d", res.StatusCode, http.StatusCreated)
	}

	var created map[string]any
	if err := json.NewDecoder(res.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	sessionID, _ := created["session_id"].(string)
	if sessionID == "" {
		t.Fatalf("missing session_id in create response: %+v", created)
	}

	endRes, err := http.Post(ts.URL+"/v1/sessions/"+sessionID+"/end", "application/json", nil)
	if err != nil {
		t.Fatalf("end session request error = %v", err)
	}
	defer endRes.Body.Close()
	if endRes.StatusCode != http.StatusOK {
		t.Fatalf("end status = %d, want %d", endRes.StatusCode, http.StatusOK)
	}
}

func TestUploadDocumentAndSearch(t *testing.T) {
	_, ts := newTestServer(t, &fakeEngine{})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "notes.txt")
	if err != nil {
		t.Fatalf("creating form file: %v", err)
	}
	if _, err := part.Write([]byte("The quarterly revenue grew by twelve percent over last year.")); err != nil {
		t.Fatalf("writing form file: %v", err)
	}
	mw.Close()

	res, err := http.Post(ts.URL+"/v1/documents", mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatalf("POST /v1/documents error = %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("upload status = %d, want %d", res.StatusCode, http.StatusCreated)
	}

	var uploaded ingestResponse
	if err := json.NewDecoder(res.Body).Decode(&uploaded); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}
	if uploaded.Chunks != 1 {
		t.Errorf("chunks = %d, want 1", uploaded.Chunks)
	}
	if uploaded.UploadID == "" {
		t.Error("expected generated upload id")
	}

	searchRes, err := http.Get(ts.URL + "/v1/search?q=revenue&upload_id=" + uploaded.UploadID)
	if err != nil {
		t.Fatalf("GET /v1/search error = %v", err)
	}
	defer searchRes.Body.Close()
	if searchRes.StatusCode != http.StatusOK {
		t.Fatalf("search status = %d, want %d", searchRes.StatusCode, http.StatusOK)
	}

	var found struct {
		Results []models.SearchResult `json:"results"`
	}
	if err := json.NewDecoder(searchRes.Body).Decode(&found); err != nil {
		t.Fatalf("decode search response: %v", err)
	}
	if len(found.Results) != 1 {
		t.Fatalf("results = %d, want 1", len(found.Results))
	}
	if found.Results[0].Chunk.Source != "notes.txt" {
		t.Errorf("source = %q, want notes.txt", found.Results[0].Chunk.Source)
	}
}

func TestUploadRejectsUnsupportedExtension(t *testing.T) {
	_, ts := newTestServer(t, &fakeEngine{})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, _ := mw.CreateFormFile("file", "slides.pptx")
	_, _ = part.Write([]byte("not supported"))
	mw.Close()

	res, err := http.Post(ts.URL+"/v1/documents", mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatalf("POST /v1/documents error = %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", res.StatusCode, http.StatusBadRequest)
	}
}

func TestKnowledgeBaseStatusAndClear(t *testing.T) {
	srv, ts := newTestServer(t, &fakeEngine{})

	chunks := chunker.NewSplitter(1000, 200).Split("Some indexed content for the status check.", chunker.SourceMeta{
		Source:   "status.txt",
		UploadID: "upload-1",
		Kind:     models.ChunkKindText,
	})
	if err := srv.store.Add(context.Background(), chunks); err != nil {
		t.Fatalf("seeding store: %v", err)
	}

	res, err := http.Get(ts.URL + "/v1/knowledge-base")
	if err != nil {
		t.Fatalf("GET /v1/knowledge-base error = %v", err)
	}
	defer res.Body.Close()
	var status map[string]any
	if err := json.NewDecoder(res.Body).Decode(&status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if status["chunks"].(float64) != 1 {
		t.Errorf("chunks = %v, want 1", status["chunks"])
	}

	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/v1/knowledge-base", nil)
	clearRes, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE /v1/knowledge-base error = %v", err)
	}
	defer clearRes.Body.Close()
	if clearRes.StatusCode != http.StatusOK {
		t.Fatalf("clear status = %d, want %d", clearRes.StatusCode, http.StatusOK)
	}

	count, err := srv.store.Count(context.Background())
	if err != nil {
		t.Fatalf("count after clear: %v", err)
	}
	if count != 0 {
		t.Errorf("count after clear = %d, want 0", count)
	}
}

func TestHistoryEndpoints(t *testing.T) {
	engine := &fakeEngine{result: chat.Result{Response: "Grounded answer.", Outcome: chat.OutcomeGrounded}}
	_, ts := newTestServer(t, engine)

	body, _ := json.Marshal(chatRequest{Question: "What is in the report?"})
	res, err := http.Post(ts.URL+"/v1/chat", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /v1/chat error = %v", err)
	}
	res.Body.Close()

	histRes, err := http.Get(ts.URL + "/v1/sessions/" + session.DefaultSessionID + "/history")
	if err != nil {
		t.Fatalf("GET history error = %v", err)
	}
	defer histRes.Body.Close()
	var listed struct {
		Turns []models.Turn `json:"turns"`
	}
	if err := json.NewDecoder(histRes.Body).Decode(&listed); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(listed.Turns) != 2 {
		t.Fatalf("turns = %d, want 2", len(listed.Turns))
	}
	if listed.Turns[0].Role != models.RoleUser || listed.Turns[1].Role != models.RoleAssistant {
		t.Errorf("unexpected turn roles: %s, %s", listed.Turns[0].Role, listed.Turns[1].Role)
	}

	exportRes, err := http.Get(ts.URL + "/v1/sessions/" + session.DefaultSessionID + "/history/export")
	if err != nil {
		t.Fatalf("GET export error = %v", err)
	}
	defer exportRes.Body.Close()
	if got := exportRes.Header.Get("Content-Type"); got != "text/csv" {
		t.Errorf("export content type = %q, want text/csv", got)
	}
	var csvBody bytes.Buffer
	if _, err := csvBody.ReadFrom(exportRes.Body); err != nil {
		t.Fatalf("reading export body: %v", err)
	}
	if !strings.Contains(csvBody.String(), "timestamp,role,message") {
		t.Error("export missing CSV header")
	}
	if !strings.Contains(csvBody.String(), "Grounded answer.") {
		t.Error("export missing assistant turn")
	}

	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/v1/sessions/"+session.DefaultSessionID+"/history", nil)
	clearRes, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE history error = %v", err)
	}
	defer clearRes.Body.Close()
	if clearRes.StatusCode != http.StatusOK {
		t.Fatalf("clear status = %d, want %d", clearRes.StatusCode, http.StatusOK)
	}

	afterRes, err := http.Get(ts.URL + "/v1/sessions/" + session.DefaultSessionID + "/history")
	if err != nil {
		t.Fatalf("GET history after clear error = %v", err)
	}
	defer afterRes.Body.Close()
	var after struct {
		Turns []models.Turn `json:"turns"`
	}
	if err := json.NewDecoder(afterRes.Body).Decode(&after); err != nil {
		t.Fatalf("decode history after clear: %v", err)
	}
	if len(after.Turns) != 0 {
		t.Errorf("turns after clear = %d, want 0", len(after.Turns))
	}
}

func TestUIRoutes(t *testing.T) {
	_, ts := newTestServer(t, &fakeEngine{})

	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	rootRes, err := client.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET / error = %v", err)
	}
	defer rootRes.Body.Close()
	if rootRes.StatusCode != http.StatusTemporaryRedirect {
		t.Fatalf("GET / status = %d, want %d", rootRes.StatusCode, http.StatusTemporaryRedirect)
	}
	if got := rootRes.Header.Get("Location"); got != "/ui/" {
		t.Fatalf("GET / location = %q, want %q", got, "/ui/")
	}

	uiRes, err := http.Get(ts.URL + "/ui/")
	if err != nil {
		t.Fatalf("GET /ui/ error = %v", err)
	}
	defer uiRes.Body.Close()
	if uiRes.StatusCode != http.StatusOK {
		t.Fatalf("GET /ui/ status = %d, want %d", uiRes.StatusCode, http.StatusOK)
	}

	var body bytes.Buffer
	if _, err := body.ReadFrom(uiRes.Body); err != nil {
		t.Fatalf("reading /ui/ body failed: %v", err)
	}
	if !strings.Contains(body.String(), "DocuChat") {
		t.Fatalf("GET /ui/ body missing expected content")
	}
}
