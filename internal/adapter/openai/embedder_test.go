package openai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openai/openai-go/option"
	"github.com/stretchr/testify/assert"

	adapter "floorassist/internal/adapter/openai"
)

func TestEmbedder_Embed(t *testing.T) {
	var gotBody map[string]interface{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embeddings", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"object": "list",
			"data": []map[string]interface{}{
				{"object": "embedding", "index": 0, "embedding": []float64{0.1, 0.2, 0.3}},
			},
			"model": "text-embedding-3-small",
		})
	}))
	defer ts.Close()

	e := adapter.NewEmbedder("sk-test", "text-embedding-3-small", 3, option.WithBaseURL(ts.URL))
	vec, err := e.Embed(context.Background(), "align the drive unit")

	assert.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
	assert.Equal(t, "text-embedding-3-small", gotBody["model"])
	assert.Equal(t, float64(3), gotBody["dimensions"])
}

func TestEmbedder_EmbedBatch_OrderPreserving(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"object": "list",
			"data": []map[string]interface{}{
				{"object": "embedding", "index": 0, "embedding": []float64{1, 0}},
				{"object": "embedding", "index": 1, "embedding": []float64{0, 1}},
			},
			"model": "text-embedding-3-small",
		})
	}))
	defer ts.Close()

	e := adapter.NewEmbedder("sk-test", "text-embedding-3-small", 2, option.WithBaseURL(ts.URL))
	vecs, err := e.EmbedBatch(context.Background(), []string{"first", "second"})

	assert.NoError(t, err)
	assert.Len(t, vecs, 2)
	assert.Equal(t, []float32{1, 0}, vecs[0])
	assert.Equal(t, []float32{0, 1}, vecs[1])
}

func TestEmbedder_EmbedBatch_CountMismatch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"object": "list",
			"data":   []map[string]interface{}{},
			"model":  "text-embedding-3-small",
		})
	}))
	defer ts.Close()

	e := adapter.NewEmbedder("sk-test", "text-embedding-3-small", 2, option.WithBaseURL(ts.URL))
	_, err := e.EmbedBatch(context.Background(), []string{"first", "second"})

	assert.Error(t, err)
}

func TestEmbedder_Embed_ServiceError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "rate limit", "type": "requests"}}`))
	}))
	defer ts.Close()

	e := adapter.NewEmbedder("sk-test", "text-embedding-3-small", 2,
		option.WithBaseURL(ts.URL), option.WithMaxRetries(0))
	_, err := e.Embed(context.Background(), "q")

	assert.Error(t, err)
}
