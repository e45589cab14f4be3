package chat

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"floorassist/internal/middleware"
	"floorassist/internal/prompt"
)

type Handler struct {
	service  *Service
	sessions *Sessions
}

func NewHandler(service *Service, sessions *Sessions) *Handler {
	return &Handler{service: service, sessions: sessions}
}

// Ask handles POST /chat. A missing session id starts a new conversation;
// the minted id is returned so the client can continue it.
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID string `json:"session_id"`
		Query     string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(r.Context(), w, "VALIDATION_ERROR", err.Error(), http.StatusBadRequest)
		return
	}
	if req.Query == "" {
		h.writeError(r.Context(), w, "VALIDATION_ERROR", "Query is required", http.StatusBadRequest)
		return
	}

	sess := h.sessions.Get(req.SessionID)
	turn, err := h.service.Ask(r.Context(), sess, req.Query)
	if err != nil {
		slog.Error("chat turn failed", "error", err, "session_id", sess.ID)
		h.writeError(r.Context(), w, "UPSTREAM_ERROR", "Unable to answer right now", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	resp := map[string]interface{}{
		"data": map[string]interface{}{
			"session_id": sess.ID,
			"reply":      turn.Content,
			"sources":    turn.Sources,
		},
	}
	if turn.Sources == nil {
		resp["data"].(map[string]interface{})["sources"] = []Citation{}
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// History handles GET /chat/history.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("session_id")
	if id == "" {
		h.writeError(r.Context(), w, "VALIDATION_ERROR", "session_id is required", http.StatusBadRequest)
		return
	}

	turns := h.sessions.Get(id).Turns()

	w.Header().Set("Content-Type", "application/json")
	resp := map[string]interface{}{
		"data": turns,
		"meta": map[string]int{"count": len(turns)},
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Clear handles DELETE /chat/history, the explicit user reset action.
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("session_id")
	if id == "" {
		h.writeError(r.Context(), w, "VALIDATION_ERROR", "session_id is required", http.StatusBadRequest)
		return
	}

	h.sessions.Get(id).Clear()
	w.WriteHeader(http.StatusOK)
}

// Examples handles GET /chat/examples: the one-click prefill questions.
func (h *Handler) Examples(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	resp := map[string]interface{}{"data": prompt.ExampleQuestions}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, code, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
		"correlationId": middleware.GetCorrelationID(ctx),
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}
