package chat

import (
	"context"
	"fmt"
	"log/slog"

	"floorassist/internal/prompt"
	"floorassist/internal/retrieval"
)

type Retriever interface {
	Search(ctx context.Context, query string, topK int) ([]retrieval.Match, error)
}

type Completer interface {
	Complete(ctx context.Context, msgs []prompt.Message) (string, error)
}

// Service runs one chat turn end to end: retrieve, filter, assemble, and
// either short-circuit with the canned reply or call the completion model.
// Every step is synchronous and nothing is retried.
type Service struct {
	retriever Retriever
	completer Completer
	topK      int
	threshold float64
}

func NewService(r Retriever, c Completer, topK int, threshold float64) *Service {
	return &Service{retriever: r, completer: c, topK: topK, threshold: threshold}
}

// Ask answers query within sess and appends both sides of the exchange to the
// session. On failure the user's question stays recorded but no assistant
// turn is appended.
func (s *Service) Ask(ctx context.Context, sess *Session, query string) (Turn, error) {
	if query == "" {
		return Turn{}, fmt.Errorf("empty query")
	}

	// History is captured before the current question is recorded; the
	// question reaches the model through the per-turn template instead.
	history := sess.History()
	sess.Append(Turn{Role: prompt.RoleUser, Content: query})

	matches, err := s.retriever.Search(ctx, query, s.topK)
	if err != nil {
		return Turn{}, err
	}

	assembled := BuildContext(matches, s.threshold)

	var reply Turn
	if assembled.Text == "" {
		// Nothing relevant was retrieved. Answering from the canned guidance
		// avoids an ungrounded model call.
		slog.InfoContext(ctx, "no context found, skipping completion", "query_len", len(query))
		reply = Turn{Role: prompt.RoleAssistant, Content: prompt.NoContextReply}
	} else {
		msgs := prompt.Build(query, assembled.Text, history)
		content, err := s.completer.Complete(ctx, msgs)
		if err != nil {
			return Turn{}, err
		}
		reply = Turn{Role: prompt.RoleAssistant, Content: content, Sources: assembled.Sources}
	}

	sess.Append(reply)
	return reply, nil
}
