// ABOUTME: Engine runs one chat turn: classify, retrieve, ground, answer
// ABOUTME: Implements the refusal policy, source filtering, and history updates
package chat

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/vangipuraputarunsailesh/Docuchat-AI-project/internal/history"
	"github.com/vangipuraputarunsailesh/Docuchat-AI-project/internal/intent"
	"github.com/vangipuraputarunsailesh/Docuchat-AI-project/internal/models"
	"github.com/vangipuraputarunsailesh/Docuchat-AI-project/internal/store"
)

// RefusalSentence is returned when retrieved context is too thin to answer,
// and is the exact fallback the model is instructed to reply with when the
// answer is not derivable from context.
const RefusalSentence = "I couldn't find relevant information in your documents to answer that question."

// Fixed small-talk replies used when reply generation fails
const (
	greetingFallback = "Hello! Upload a document or ask me a question about your knowledge base."
	ackFallback      = "You're welcome! Feel free to ask another question about your documents."
)

// Outcome labels the terminal state of a chat turn
type Outcome string

const (
	OutcomeGreeting        Outcome = "greeting"
	OutcomeAcknowledgement Outcome = "acknowledgement"
	OutcomeRefusal         Outcome = "refusal"
	OutcomeGrounded        Outcome = "grounded"
	OutcomeProviderError   Outcome = "provider_error"
	OutcomeValidation      Outcome = "validation"
)

// Result is the reply for one chat turn. Err is empty unless the turn
// terminated in a provider or validation failure.
type Result struct {
	Response string         `json:"response"`
	Sources  []models.Chunk `json:"sources,omitempty"`
	Outcome  Outcome        `json:"outcome"`
	Err      string         `json:"error,omitempty"`
}

// Completer obtains a chat completion from the external model provider
type Completer interface {
	Complete(ctx context.Context, system string, history []models.Turn, user string) (string, error)
}

// Engine is the retrieval-augmented answerer
type Engine struct {
	store      store.Store
	completer  Completer
	classifier *intent.Classifier

	topK            int
	minContextChars int
}

// NewEngine creates an Engine. Non-positive topK or minContextChars fall
// back to 5 and 50.
func NewEngine(st store.Store, completer Completer, classifier *intent.Classifier, topK, minContextChars int) *Engine {
	if topK <= 0 {
		topK = 5
	}
	if minContextChars <= 0 {
		minContextChars = 50
	}
	return &Engine{
		store:           st,
		completer:       completer,
		classifier:      classifier,
		topK:            topK,
		minContextChars: minContextChars,
	}
}

// Answer processes one user question. sourceFilter optionally scopes
// retrieval to a single document by upload id (falling back to source name,
// then to the unfiltered result when nothing matches). History is only
// updated when the turn produces a user-visible reply; a provider error
// commits nothing.
func (e *Engine) Answer(ctx context.Context, question string, hist *history.History, sourceFilter string) Result {
	question = strings.TrimSpace(question)
	if question == "" {
		return Result{
			Response: "Please enter a question.",
			Outcome:  OutcomeValidation,
			Err:      "empty question",
		}
	}

	switch e.classifier.Classify(question) {
	case intent.Greeting:
		return e.smallTalk(ctx, question, hist, OutcomeGreeting)
	case intent.Acknowledgement:
		return e.smallTalk(ctx, question, hist, OutcomeAcknowledgement)
	}

	results, err := e.store.Search(ctx, question, e.topK, nil)
	if err != nil {
		return Result{
			Response: "Sorry, I couldn't search the knowledge base. Please try again.",
			Outcome:  OutcomeProviderError,
			Err:      err.Error(),
		}
	}

	chunks := applySourceFilter(resultChunks(results), sourceFilter)

	if !sufficientContext(chunks, e.minContextChars) {
		e.record(hist, question, RefusalSentence)
		return Result{Response: RefusalSentence, Outcome: OutcomeRefusal}
	}

	var past []models.Turn
	if hist != nil {
		past = hist.Context()
	}
	answer, err := e.completer.Complete(ctx, groundedPrompt(chunks), past, question)
	if err != nil {
		return Result{
			Response: "Sorry, I encountered an error generating the answer. Please try again.",
			Outcome:  OutcomeProviderError,
			Err:      err.Error(),
		}
	}

	e.record(hist, question, answer)
	return Result{Response: answer, Sources: chunks, Outcome: OutcomeGrounded}
}

// smallTalk produces a short reply inviting a real question, degrading to a
// fixed template when generation fails. Retrieval is never touched.
func (e *Engine) smallTalk(ctx context.Context, utterance string, hist *history.History, outcome Outcome) Result {
	system := "You are DocuChat, an assistant that answers questions about the user's uploaded documents. " +
		"The user sent a short greeting or pleasantry. Reply in one friendly sentence and invite them " +
		"to ask a question about their documents."

	reply, err := e.completer.Complete(ctx, system, nil, utterance)
	if err != nil || strings.TrimSpace(reply) == "" {
		if outcome == OutcomeGreeting {
			reply = greetingFallback
		} else {
			reply = ackFallback
		}
	}

	e.record(hist, utterance, reply)
	return Result{Response: reply, Outcome: outcome}
}

// record appends the question and reply to history. Persistence failures
// are logged, never surfaced.
func (e *Engine) record(hist *history.History, question, answer string) {
	if hist == nil {
		return
	}
	if userTurn, err := models.NewTurn(models.RoleUser, question); err == nil {
		if err := hist.Append(*userTurn); err != nil {
			log.Printf("history persist failed: %v", err)
		}
	}
	if aiTurn, err := models.NewTurn(models.RoleAssistant, answer); err == nil {
		if err := hist.Append(*aiTurn); err != nil {
			log.Printf("history persist failed: %v", err)
		}
	}
}

func resultChunks(results []models.SearchResult) []models.Chunk {
	chunks := make([]models.Chunk, len(results))
	for i, r := range results {
		chunks[i] = r.Chunk
	}
	return chunks
}

// applySourceFilter scopes retrieved chunks to one document. Upload id
// equality wins; source name equality is the fallback. When neither matches
// anything the filter is dropped entirely rather than returning an empty
// set, since upload metadata can be inconsistent across ingestion paths.
func applySourceFilter(chunks []models.Chunk, sourceFilter string) []models.Chunk {
	if sourceFilter == "" {
		return chunks
	}

	var byUpload []models.Chunk
	for _, c := range chunks {
		if c.UploadID == sourceFilter {
			byUpload = append(byUpload, c)
		}
	}
	if len(byUpload) > 0 {
		return byUpload
	}

	var bySource []models.Chunk
	for _, c := range chunks {
		if c.Source == sourceFilter {
			bySource = append(bySource, c)
		}
	}
	if len(bySource) > 0 {
		return bySource
	}

	return chunks
}

// sufficientContext applies the minimum retrieved-character policy
func sufficientContext(chunks []models.Chunk, minChars int) bool {
	if len(chunks) == 0 {
		return false
	}
	total := 0
	for _, c := range chunks {
		total += len(c.Text)
	}
	return total >= minChars
}

// groundedPrompt builds the system prompt constraining the model to the
// retrieved chunks and the conversation so far.
func groundedPrompt(chunks []models.Chunk) string {
	var sb strings.Builder
	sb.WriteString("You are DocuChat, an assistant that answers questions about the user's uploaded documents.\n")
	sb.WriteString("Answer using ONLY the context below and the conversation so far.\n")
	sb.WriteString("If the answer cannot be derived from the context, reply exactly: \"")
	sb.WriteString(RefusalSentence)
	sb.WriteString("\"\n\nCONTEXT:\n")
	for _, c := range chunks {
		sb.WriteString(fmt.Sprintf("[Source: %s | chunk %d]\n%s\n\n", c.Source, c.Sequence, c.Text))
	}
	return sb.String()
}
