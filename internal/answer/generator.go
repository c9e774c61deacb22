package answer

import (
	"context"

	"casefile/internal/domain"
)

// ErrPrefix marks responses that carry a failure description instead of a
// model answer. The session keeps running after such a response.
const ErrPrefix = "Error al consultar IA: "

// Generator turns a query and its retrieved fragments into a model answer.
type Generator struct {
	chat domain.ChatCompleter
	caso domain.CaseInfo
}

// NewGenerator creates a Generator bound to the configured case.
func NewGenerator(chat domain.ChatCompleter, caso domain.CaseInfo) *Generator {
	return &Generator{chat: chat, caso: caso}
}

// Answer builds the prompt and calls the remote model. Every failure mode
// (network, timeout, non-2xx, malformed body) is folded into a readable
// string prefixed with ErrPrefix; the function never panics and never
// returns an error to its caller.
func (g *Generator) Answer(ctx context.Context, query string, fragments []domain.ScoredChunk) string {
	prompt, err := BuildPrompt(g.caso, query, fragments)
	if err != nil {
		return ErrPrefix + err.Error()
	}
	reply, err := g.chat.Complete(ctx, prompt)
	if err != nil {
		return ErrPrefix + err.Error()
	}
	return reply
}
