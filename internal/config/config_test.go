package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"floorassist/internal/config"
)

func TestLoadConfig_Defaults(t *testing.T) {
	os.Setenv("OPENAI_API_KEY", "sk-test")
	defer os.Unsetenv("OPENAI_API_KEY")

	cfg, err := config.Load()
	assert.NoError(t, err)
	assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingModel)
	assert.Equal(t, 1536, cfg.EmbeddingDims)
	assert.Equal(t, "gpt-4-turbo-preview", cfg.CompletionModel)
	assert.Equal(t, "RunningFloorManual", cfg.IndexClass)
	assert.Equal(t, 5, cfg.TopK)
	assert.InDelta(t, 0.7, cfg.ScoreThreshold, 1e-9)
	assert.Equal(t, 500, cfg.ChunkSize)
	assert.Equal(t, 100, cfg.ChunkOverlap)
}

func TestLoadConfig_Overrides(t *testing.T) {
	os.Setenv("OPENAI_API_KEY", "sk-test")
	os.Setenv("VECTOR_INDEX", "TestManual")
	os.Setenv("SCORE_THRESHOLD", "0.35")
	os.Setenv("SEARCH_TOP_K", "3")
	defer func() {
		os.Unsetenv("OPENAI_API_KEY")
		os.Unsetenv("VECTOR_INDEX")
		os.Unsetenv("SCORE_THRESHOLD")
		os.Unsetenv("SEARCH_TOP_K")
	}()

	cfg, err := config.Load()
	assert.NoError(t, err)
	assert.Equal(t, "TestManual", cfg.IndexClass)
	assert.InDelta(t, 0.35, cfg.ScoreThreshold, 1e-9)
	assert.Equal(t, 3, cfg.TopK)
}

func TestLoadConfig_MissingAPIKey(t *testing.T) {
	os.Unsetenv("OPENAI_API_KEY")

	_, err := config.Load()
	assert.ErrorIs(t, err, config.ErrMissingRequired)
}

func TestLoadConfig_FromEnvFile(t *testing.T) {
	content := []byte("OPENAI_API_KEY=sk-from-file")
	err := os.WriteFile(".env", content, 0o644)
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(".env")

	cfg, err := config.Load()
	assert.NoError(t, err)
	assert.Equal(t, "sk-from-file", cfg.OpenAIAPIKey)
}

func TestValidate_BadDimensions(t *testing.T) {
	cfg := &config.Config{
		OpenAIAPIKey:  "sk-test",
		WeaviateHost:  "localhost:8080",
		IndexClass:    "RunningFloorManual",
		EmbeddingDims: 0,
	}
	assert.ErrorIs(t, cfg.Validate(), config.ErrMissingRequired)
}
