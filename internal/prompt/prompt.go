// Package prompt holds the fixed prompt content as named constants so it can
// be versioned and tested independently of the chat pipeline.
package prompt

import "fmt"

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// HistoryLimit is the number of most recent conversation entries forwarded to
// the completion model, i.e. up to 6 user/assistant exchange pairs. Older
// history is silently dropped.
const HistoryLimit = 12

// SystemPersona is constant across calls and not user-configurable at runtime.
const SystemPersona = `You are the KEITH Running Floor II Installation Assistant, an expert AI assistant
specializing in the installation and maintenance of KEITH Walking Floor® unloading systems.

Your role is to help installers, technicians, and operators with questions about:
- Installation procedures and best practices
- Troubleshooting common issues
- Component specifications and requirements
- Safety guidelines and warnings
- Maintenance recommendations

Guidelines:
1. Always base your answers on the provided context from the installation manual
2. If the context doesn't contain enough information, say so clearly
3. Highlight important safety warnings when relevant
4. Use clear, technical language appropriate for skilled installers
5. Reference specific page numbers or sections when helpful
6. If asked about something outside the manual's scope, acknowledge the limitation

Remember: Installing the WALKING FLOOR® system requires alterations to trailers.
Always emphasize safety and proper procedures.`

// userTemplate wraps the current turn. Substitution points: context, query.
const userTemplate = `Based on the following context from the Running Floor II Installation Manual:

---
%s
---

User Question: %s

Please provide a helpful, accurate response based on the manual content.`

// NoContextReply is returned verbatim when retrieval finds nothing usable;
// the completion model is never invoked in that case.
const NoContextReply = `I couldn't find specific information about that in the Running Floor II Installation Manual. Could you rephrase your question, or ask about:
- Trailer preparation and alignment
- Drive unit installation (center frame or frameless)
- Sub-deck and flooring installation
- Hydraulic tubing setup
- Seal installation procedures`

// ExampleQuestions are offered as one-click prefills on an empty chat.
var ExampleQuestions = []string{
	"How do I align the drive unit in a center frame trailer?",
	"What are the steps for installing floor seals?",
	"How should I route hydraulic tubing?",
	"What's the recommended torque for floor bolts?",
	"How do I prepare the trailer before installation?",
}

// UserTurn renders the per-turn template around the assembled context block
// and the literal question.
func UserTurn(query, context string) string {
	return fmt.Sprintf(userTemplate, context, query)
}

// Build assembles the full message sequence for one completion call: the
// persona, the most recent HistoryLimit prior entries in original order, and
// the templated current turn.
func Build(query, context string, history []Message) []Message {
	msgs := make([]Message, 0, len(history)+2)
	msgs = append(msgs, Message{Role: RoleSystem, Content: SystemPersona})

	if len(history) > HistoryLimit {
		history = history[len(history)-HistoryLimit:]
	}
	msgs = append(msgs, history...)

	msgs = append(msgs, Message{Role: RoleUser, Content: UserTurn(query, context)})
	return msgs
}
