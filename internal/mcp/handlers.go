// ABOUTME: MCP tool handler implementations for the DocuChat server
// ABOUTME: Tool errors are returned as tool results, never as transport errors
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/vangipuraputarunsailesh/Docuchat-AI-project/internal/chat"
	"github.com/vangipuraputarunsailesh/Docuchat-AI-project/internal/ingest"
	"github.com/vangipuraputarunsailesh/Docuchat-AI-project/internal/session"
	"github.com/vangipuraputarunsailesh/Docuchat-AI-project/internal/store"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	engine    *chat.Engine
	store     store.Store
	processor *ingest.Processor
	sessions  *session.Manager
}

// ChatWithDocuments handles the chat_with_documents tool. Turns share the
// default session so the conversation carries across tool calls.
func (h *Handlers) ChatWithDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("question argument is required and must be a string"), nil
	}
	sourceFilter := request.GetString("source_filter", "")

	sess := h.sessions.Default()
	result := h.engine.Answer(ctx, question, sess.History, sourceFilter)
	if result.Outcome == chat.OutcomeProviderError || result.Outcome == chat.OutcomeValidation {
		return mcp.NewToolResultError(result.Err), nil
	}

	sources := make([]string, 0, len(result.Sources))
	seen := make(map[string]bool)
	for _, c := range result.Sources {
		if !seen[c.Source] {
			seen[c.Source] = true
			sources = append(sources, c.Source)
		}
	}

	responseJSON, err := json.Marshal(map[string]interface{}{
		"response": result.Response,
		"outcome":  string(result.Outcome),
		"sources":  sources,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// IngestWebArticle handles the ingest_web_article tool
func (h *Handlers) IngestWebArticle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url argument is required and must be a string"), nil
	}

	uploadID := uuid.NewString()
	chunks, err := h.processor.ProcessWebArticle(ctx, url, uploadID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to fetch article: %v", err)), nil
	}
	if len(chunks) > 0 {
		if err := h.store.Add(ctx, chunks); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to index article: %v", err)), nil
		}
	}

	responseJSON, err := json.Marshal(map[string]interface{}{
		"upload_id": uploadID,
		"source":    url,
		"chunks":    len(chunks),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// SearchKnowledgeBase handles the search_knowledge_base tool
func (h *Handlers) SearchKnowledgeBase(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}
	maxResults := request.GetInt("max_results", 5)
	if maxResults <= 0 {
		maxResults = 5
	}

	results, err := h.store.Search(ctx, query, maxResults, nil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	matches := make([]map[string]interface{}, 0, len(results))
	for _, r := range results {
		matches = append(matches, map[string]interface{}{
			"text":     r.Chunk.Text,
			"source":   r.Chunk.Source,
			"sequence": r.Chunk.Sequence,
			"score":    r.Score,
		})
	}

	responseJSON, err := json.Marshal(map[string]interface{}{
		"query":   query,
		"matches": matches,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// KnowledgeBaseStatus handles the knowledge_base_status tool
func (h *Handlers) KnowledgeBaseStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	count, err := h.store.Count(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to count chunks: %v", err)), nil
	}

	responseJSON, err := json.Marshal(map[string]interface{}{
		"chunks": count,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// ClearKnowledgeBase handles the clear_knowledge_base tool
func (h *Handlers) ClearKnowledgeBase(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.store.Clear(ctx); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to clear knowledge base: %v", err)), nil
	}
	return mcp.NewToolResultText(`{"status":"cleared"}`), nil
}
