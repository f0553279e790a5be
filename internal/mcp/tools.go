// ABOUTME: MCP tool definitions and registration for the DocuChat server
// ABOUTME: Exposes chat, ingestion, search, and knowledge base management tools
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/vangipuraputarunsailesh/Docuchat-AI-project/internal/chat"
	"github.com/vangipuraputarunsailesh/Docuchat-AI-project/internal/ingest"
	"github.com/vangipuraputarunsailesh/Docuchat-AI-project/internal/session"
	"github.com/vangipuraputarunsailesh/Docuchat-AI-project/internal/store"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, engine *chat.Engine, st store.Store, processor *ingest.Processor, sessions *session.Manager) *Handlers {
	handlers := &Handlers{
		engine:    engine,
		store:     st,
		processor: processor,
		sessions:  sessions,
	}

	// 1. chat_with_documents - Ask a question against the knowledge base
	server.AddTool(mcp.Tool{
		Name:        "chat_with_documents",
		Description: "Ask a question about the ingested documents. Answers are grounded in retrieved document chunks; returns a refusal when the knowledge base holds nothing relevant.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"question": map[string]interface{}{
					"type":        "string",
					"description": "Question to answer from the documents",
				},
				"source_filter": map[string]interface{}{
					"type":        "string",
					"description": "Optional upload id or source name to scope retrieval to one document",
				},
			},
			Required: []string{"question"},
		},
	}, handlers.ChatWithDocuments)

	// 2. ingest_web_article - Fetch, strip, chunk, and index a web page
	server.AddTool(mcp.Tool{
		Name:        "ingest_web_article",
		Description: "Fetch a web article, strip its markup, and index the text into the knowledge base.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"url": map[string]interface{}{
					"type":        "string",
					"description": "HTTP or HTTPS URL of the article to ingest",
				},
			},
			Required: []string{"url"},
		},
	}, handlers.IngestWebArticle)

	// 3. search_knowledge_base - Raw similarity search without answer generation
	server.AddTool(mcp.Tool{
		Name:        "search_knowledge_base",
		Description: "Run a similarity search over indexed chunks and return the raw matches with scores.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query",
				},
				"max_results": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of results to return (default: 5)",
					"default":     5,
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SearchKnowledgeBase)

	// 4. knowledge_base_status - Indexed chunk count
	server.AddTool(mcp.Tool{
		Name:        "knowledge_base_status",
		Description: "Report how many chunks are currently indexed in the knowledge base.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.KnowledgeBaseStatus)

	// 5. clear_knowledge_base - Drop all indexed chunks
	server.AddTool(mcp.Tool{
		Name:        "clear_knowledge_base",
		Description: "Remove every indexed chunk from the knowledge base. This cannot be undone.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ClearKnowledgeBase)

	return handlers
}
