// ABOUTME: Centralized configuration for the DocuChat service
// ABOUTME: Loads from environment variables with an optional YAML overlay
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults mirroring the document processing pipeline
const (
	DefaultChunkSize        = 1000
	DefaultChunkOverlap     = 200
	DefaultMaxFileSizeMB    = 50
	DefaultMaxContextChunks = 5
	DefaultMinContextChars  = 50
	DefaultMaxHistoryTurns  = 10 // five user/assistant exchanges
)

// Config holds all configuration for the DocuChat service
type Config struct {
	// OpenAI settings
	OpenAIKey      string
	ChatModel      string
	EmbeddingModel string
	Temperature    float64
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration

	// Vector store settings
	StoreBackend     string // "qdrant" or "memory"
	QdrantURL        string
	QdrantAPIKey     string
	QdrantCollection string
	VectorDimension  int

	// Document processing settings
	ChunkSize     int
	ChunkOverlap  int
	MaxFileSizeMB int

	// Chat settings
	MaxContextChunks int
	MinContextChars  int
	MaxHistoryTurns  int
	HistoryPath      string

	// Intent word lists (lowercase, matched exactly after trimming)
	Greetings        []string
	Acknowledgements []string

	// HTTP settings
	ListenAddr               string
	SessionInactivityTimeout time.Duration
}

// fileConfig is the optional YAML overlay (docuchat.yaml)
type fileConfig struct {
	Chunker struct {
		Size    int `yaml:"size"`
		Overlap int `yaml:"overlap"`
	} `yaml:"chunker"`
	Intent struct {
		Greetings        []string `yaml:"greetings"`
		Acknowledgements []string `yaml:"acknowledgements"`
	} `yaml:"intent"`
	Store struct {
		Backend    string `yaml:"backend"`
		URL        string `yaml:"url"`
		Collection string `yaml:"collection"`
	} `yaml:"store"`
}

// Load reads configuration from environment variables and, when present,
// overlays the YAML file at path (or ./docuchat.yaml when path is empty).
// A missing file leaves the env/default values untouched; a file that exists
// but cannot be read or parsed is an error.
func Load(path string) (*Config, error) {
	cfg := &Config{
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		ChatModel:      getEnv("OPENAI_MODEL_NAME", "gpt-3.5-turbo"),
		EmbeddingModel: getEnv("OPENAI_EMBEDDING_MODEL_NAME", "text-embedding-3-small"),
		Temperature:    getEnvFloat("OPENAI_TEMPERATURE", 0.2),
		Timeout:        getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
		MaxRetries:     getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:     getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),

		StoreBackend:     getEnv("DOCUCHAT_STORE", "qdrant"),
		QdrantURL:        getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantAPIKey:     os.Getenv("QDRANT_API_KEY"),
		QdrantCollection: getEnv("QDRANT_COLLECTION", "knowledge_vault"),
		VectorDimension:  getEnvInt("VECTOR_DIMENSION", 1536),

		ChunkSize:     getEnvInt("CHUNK_SIZE", DefaultChunkSize),
		ChunkOverlap:  getEnvInt("CHUNK_OVERLAP", DefaultChunkOverlap),
		MaxFileSizeMB: getEnvInt("MAX_FILE_SIZE_MB", DefaultMaxFileSizeMB),

		MaxContextChunks: getEnvInt("MAX_CONTEXT_CHUNKS", DefaultMaxContextChunks),
		MinContextChars:  getEnvInt("MIN_CONTEXT_CHARS", DefaultMinContextChars),
		MaxHistoryTurns:  getEnvInt("MAX_MEMORY_HISTORY", DefaultMaxHistoryTurns),
		HistoryPath:      getEnv("DOCUCHAT_HISTORY_FILE", "chat_history.json"),

		Greetings:        DefaultGreetings(),
		Acknowledgements: DefaultAcknowledgements(),

		ListenAddr:               getEnv("DOCUCHAT_LISTEN", ":8080"),
		SessionInactivityTimeout: getEnvDuration("SESSION_INACTIVITY_TIMEOUT", 30*time.Minute),
	}

	if err := cfg.overlayFile(path); err != nil {
		return nil, err
	}

	return cfg, cfg.Validate()
}

// DefaultGreetings returns the built-in greeting word list
func DefaultGreetings() []string {
	return []string{"hi", "hello", "hey", "good morning", "good afternoon", "good evening", "howdy", "greetings"}
}

// DefaultAcknowledgements returns the built-in acknowledgement word list
func DefaultAcknowledgements() []string {
	return []string{"ok", "okay", "thanks", "thank you", "bye", "goodbye", "cool", "great", "nice", "sure", "yes", "no"}
}

func (c *Config) overlayFile(path string) error {
	explicit := path != ""
	if path == "" {
		path = getEnv("DOCUCHAT_CONFIG", "docuchat.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		// A missing config file is not an error; env values and defaults apply
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		if explicit {
			return fmt.Errorf("reading config file: %w", err)
		}
		return nil
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if fc.Chunker.Size > 0 {
		c.ChunkSize = fc.Chunker.Size
	}
	if fc.Chunker.Overlap > 0 {
		c.ChunkOverlap = fc.Chunker.Overlap
	}
	if len(fc.Intent.Greetings) > 0 {
		c.Greetings = fc.Intent.Greetings
	}
	if len(fc.Intent.Acknowledgements) > 0 {
		c.Acknowledgements = fc.Intent.Acknowledgements
	}
	if fc.Store.Backend != "" {
		c.StoreBackend = fc.Store.Backend
	}
	if fc.Store.URL != "" {
		c.QdrantURL = fc.Store.URL
	}
	if fc.Store.Collection != "" {
		c.QdrantCollection = fc.Store.Collection
	}
	return nil
}

func (c *Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("CHUNK_SIZE must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("CHUNK_OVERLAP must be in [0, %d), got %d", c.ChunkSize, c.ChunkOverlap)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.StoreBackend != "qdrant" && c.StoreBackend != "memory" {
		return fmt.Errorf("DOCUCHAT_STORE must be qdrant or memory, got %q", c.StoreBackend)
	}
	if c.MaxHistoryTurns <= 0 {
		return fmt.Errorf("MAX_MEMORY_HISTORY must be positive, got %d", c.MaxHistoryTurns)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
