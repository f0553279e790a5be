// ABOUTME: Shared component wiring for CLI commands
// ABOUTME: Builds config, clients, store, and engine from the environment
package commands

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	openai "github.com/sashabaranov/go-openai"

	"github.com/vangipuraputarunsailesh/Docuchat-AI-project/internal/chat"
	"github.com/vangipuraputarunsailesh/Docuchat-AI-project/internal/chunker"
	"github.com/vangipuraputarunsailesh/Docuchat-AI-project/internal/config"
	"github.com/vangipuraputarunsailesh/Docuchat-AI-project/internal/ingest"
	"github.com/vangipuraputarunsailesh/Docuchat-AI-project/internal/intent"
	"github.com/vangipuraputarunsailesh/Docuchat-AI-project/internal/llm"
	"github.com/vangipuraputarunsailesh/Docuchat-AI-project/internal/session"
	"github.com/vangipuraputarunsailesh/Docuchat-AI-project/internal/store"
)

// app bundles the components a command needs to serve or answer
type app struct {
	cfg       *config.Config
	client    *llm.Client
	store     store.Store
	engine    *chat.Engine
	processor *ingest.Processor
	sessions  *session.Manager
}

// buildApp loads configuration and wires up the full pipeline
func buildApp() (*app, error) {
	// Load .env for API keys if present
	if err := godotenv.Load(); err != nil && verbose {
		log.Printf("No .env file found: %v", err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}

	client, err := llm.NewClient(&llm.ClientConfig{
		APIKey:         cfg.OpenAIKey,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: openai.EmbeddingModel(cfg.EmbeddingModel),
		Temperature:    float32(cfg.Temperature),
		Timeout:        cfg.Timeout,
		MaxRetries:     cfg.MaxRetries,
		RetryDelay:     cfg.RetryDelay,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing OpenAI client: %w", err)
	}

	st, err := store.New(cfg, client)
	if err != nil {
		return nil, fmt.Errorf("initializing vector store: %w", err)
	}

	classifier := intent.NewClassifier(cfg.Greetings, cfg.Acknowledgements)
	engine := chat.NewEngine(st, client, classifier, cfg.MaxContextChunks, cfg.MinContextChars)
	splitter := chunker.NewSplitter(cfg.ChunkSize, cfg.ChunkOverlap)
	processor := ingest.NewProcessor(splitter, cfg.MaxFileSizeMB)
	sessions := session.NewManager(cfg.MaxHistoryTurns, cfg.HistoryPath, cfg.SessionInactivityTimeout)

	return &app{
		cfg:       cfg,
		client:    client,
		store:     st,
		engine:    engine,
		processor: processor,
		sessions:  sessions,
	}, nil
}
