package chat

import (
	"math"
	"sort"
	"strings"

	"floorassist/internal/retrieval"
)

const (
	// snippetLength bounds the citation preview shown next to a reply.
	snippetLength = 200
	// fallbackCount is how many matches the below-threshold fallback keeps.
	fallbackCount = 3
)

// Citation is the user-facing summary of one match: a trimmed snippet, the
// one-indexed page and the rounded relevance score.
type Citation struct {
	Text  string  `json:"text"`
	Page  int     `json:"page"`
	Score float64 `json:"score"`
}

// Context is the grounding material assembled for one query turn.
type Context struct {
	Text    string
	Sources []Citation
}

// BuildContext turns ordered matches into the context block and its source
// citations. Matches scoring at or above the threshold are kept in order. If
// none qualify but retrieval returned something, the top fallbackCount
// matches by score with non-empty text are used instead, so borderline
// queries still get grounding. An empty Text signals the caller to skip the
// completion call entirely.
func BuildContext(matches []retrieval.Match, threshold float64) Context {
	var parts []string
	var sources []Citation

	for _, m := range matches {
		if m.Score >= threshold {
			parts = append(parts, m.Text)
			sources = append(sources, newCitation(m))
		}
	}

	if len(parts) == 0 && len(matches) > 0 {
		// Re-sort explicitly instead of trusting the index ordering; this is
		// the one place where positional order decides what the user sees.
		ranked := make([]retrieval.Match, len(matches))
		copy(ranked, matches)
		sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })

		for _, m := range ranked {
			if m.Text == "" {
				continue
			}
			parts = append(parts, m.Text)
			sources = append(sources, newCitation(m))
			if len(parts) == fallbackCount {
				break
			}
		}
	}

	return Context{Text: strings.Join(parts, "\n\n"), Sources: sources}
}

func newCitation(m retrieval.Match) Citation {
	return Citation{
		Text:  snippet(m.Text),
		Page:  m.Page + 1, // stored pages are zero-indexed
		Score: math.Round(m.Score*1000) / 1000,
	}
}

func snippet(text string) string {
	runes := []rune(text)
	if len(runes) <= snippetLength {
		return text
	}
	return string(runes[:snippetLength]) + "..."
}
