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
	"floorassist/internal/prompt"
)

func TestCompleter_Complete(t *testing.T) {
	var gotBody map[string]interface{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"choices": []map[string]interface{}{
				{
					"index":         0,
					"finish_reason": "stop",
					"message":       map[string]interface{}{"role": "assistant", "content": "Torque the bolts to spec."},
				},
			},
		})
	}))
	defer ts.Close()

	c := adapter.NewCompleter("sk-test", "gpt-4-turbo-preview", 0.3, 1000, option.WithBaseURL(ts.URL))
	reply, err := c.Complete(context.Background(), []prompt.Message{
		{Role: prompt.RoleSystem, Content: "persona"},
		{Role: prompt.RoleUser, Content: "previous question"},
		{Role: prompt.RoleAssistant, Content: "previous answer"},
		{Role: prompt.RoleUser, Content: "current question"},
	})

	assert.NoError(t, err)
	assert.Equal(t, "Torque the bolts to spec.", reply)

	assert.Equal(t, "gpt-4-turbo-preview", gotBody["model"])
	assert.Equal(t, 0.3, gotBody["temperature"])
	assert.Equal(t, float64(1000), gotBody["max_tokens"])

	msgs := gotBody["messages"].([]interface{})
	assert.Len(t, msgs, 4)
	first := msgs[0].(map[string]interface{})
	assert.Equal(t, "system", first["role"])
	third := msgs[2].(map[string]interface{})
	assert.Equal(t, "assistant", third["role"])
}

func TestCompleter_Complete_NoChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":      "chatcmpl-2",
			"object":  "chat.completion",
			"choices": []map[string]interface{}{},
		})
	}))
	defer ts.Close()

	c := adapter.NewCompleter("sk-test", "gpt-4-turbo-preview", 0.3, 1000, option.WithBaseURL(ts.URL))
	_, err := c.Complete(context.Background(), []prompt.Message{{Role: prompt.RoleUser, Content: "q"}})

	assert.Error(t, err)
}

func TestCompleter_Complete_ServiceError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": {"message": "invalid api key", "type": "auth"}}`))
	}))
	defer ts.Close()

	c := adapter.NewCompleter("bad-key", "gpt-4-turbo-preview", 0.3, 1000,
		option.WithBaseURL(ts.URL), option.WithMaxRetries(0))
	_, err := c.Complete(context.Background(), []prompt.Message{{Role: prompt.RoleUser, Content: "q"}})

	assert.Error(t, err)
}
