package retrieval

import (
	"context"
	"fmt"
	"time"
)

// Match is one retrieval result: a stored chunk's metadata paired with the
// similarity score reported by the index. Ordering is the index's ordering.
type Match struct {
	ID     string  `json:"id"`
	Score  float64 `json:"score"`
	Text   string  `json:"text"`
	Page   int     `json:"page"`
	Source string  `json:"source"`
}

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type VectorStore interface {
	Query(ctx context.Context, vector []float32, topK int) ([]Match, error)
}

type Service struct {
	embedder Embedder
	store    VectorStore
	dims     int
	logger   *QueryLogger
}

func NewService(e Embedder, s VectorStore, dims int, l *QueryLogger) *Service {
	return &Service{embedder: e, store: s, dims: dims, logger: l}
}

// Search embeds the query and returns the index's nearest matches in the
// index's order. No local ranking or re-ranking is applied. Embedding and
// index failures propagate to the caller; nothing is retried here.
func (s *Service) Search(ctx context.Context, query string, topK int) ([]Match, error) {
	start := time.Now()

	vec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	// A dimensionality mismatch is a configuration error, not a recoverable
	// condition.
	if len(vec) != s.dims {
		return nil, fmt.Errorf("embedding has %d dimensions, index expects %d", len(vec), s.dims)
	}

	matches, err := s.store.Query(ctx, vec, topK)
	if err != nil {
		return nil, fmt.Errorf("query index: %w", err)
	}

	if s.logger != nil {
		entry := QueryLogEntry{
			Query:      query,
			NumResults: len(matches),
			Duration:   time.Since(start),
		}
		if len(matches) > 0 {
			entry.TopScore = matches[0].Score
		}
		s.logger.Log(entry)
	}

	return matches, nil
}
