package config

import (
	"errors"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var ErrMissingRequired = errors.New("missing required configuration")

type Config struct {
	// Embedding + completion service
	OpenAIAPIKey    string  `envconfig:"OPENAI_API_KEY"`
	EmbeddingModel  string  `envconfig:"EMBEDDING_MODEL" default:"text-embedding-3-small"`
	EmbeddingDims   int     `envconfig:"EMBEDDING_DIMENSIONS" default:"1536"`
	CompletionModel string  `envconfig:"COMPLETION_MODEL" default:"gpt-4-turbo-preview"`
	Temperature     float64 `envconfig:"COMPLETION_TEMPERATURE" default:"0.3"`
	MaxTokens       int     `envconfig:"COMPLETION_MAX_TOKENS" default:"1000"`

	// Vector index
	WeaviateHost   string `envconfig:"WEAVIATE_HOST" default:"localhost:8080"`
	WeaviateScheme string `envconfig:"WEAVIATE_SCHEME" default:"http"`
	WeaviateAPIKey string `envconfig:"WEAVIATE_API_KEY"`
	IndexClass     string `envconfig:"VECTOR_INDEX" default:"RunningFloorManual"`

	// Retrieval
	TopK           int     `envconfig:"SEARCH_TOP_K" default:"5"`
	ScoreThreshold float64 `envconfig:"SCORE_THRESHOLD" default:"0.7"`

	// Ingestion
	ChunkSize       int `envconfig:"CHUNK_SIZE" default:"500"`
	ChunkOverlap    int `envconfig:"CHUNK_OVERLAP" default:"100"`
	EmbedBatchSize  int `envconfig:"EMBED_BATCH_SIZE" default:"100"`
	UpsertBatchSize int `envconfig:"UPSERT_BATCH_SIZE" default:"100"`

	// Server
	ServerPort   int    `envconfig:"SERVER_PORT" default:"8081"`
	StaticDir    string `envconfig:"STATIC_DIR" default:"./web"`
	QueryLogPath string `envconfig:"QUERY_LOG_PATH" default:"data/logs/query.log"`

	// Resilience
	BootstrapRetryAttempts     int `envconfig:"BOOTSTRAP_RETRY_ATTEMPTS" default:"10"`
	BootstrapRetryDelaySeconds int `envconfig:"BOOTSTRAP_RETRY_DELAY_SECONDS" default:"2"`
}

func Load() (*Config, error) {
	// Env vars set in the shell take precedence; a .env is optional.
	_ = godotenv.Load(".env")

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.OpenAIAPIKey == "" {
		return fmt.Errorf("%w: OPENAI_API_KEY", ErrMissingRequired)
	}
	if c.WeaviateHost == "" {
		return fmt.Errorf("%w: WEAVIATE_HOST", ErrMissingRequired)
	}
	if c.IndexClass == "" {
		return fmt.Errorf("%w: VECTOR_INDEX", ErrMissingRequired)
	}
	if c.EmbeddingDims <= 0 {
		return fmt.Errorf("%w: EMBEDDING_DIMENSIONS must be positive", ErrMissingRequired)
	}
	return nil
}
