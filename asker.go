package menuboard

import "context"

// Turn is one answered exchange of a conversation.
type Turn struct {
	Question string
	Answer   string
}

// Asker answers natural language questions about the menu catalog.
type Asker interface {
	// Ask answers question in the context of earlier turns of the same
	// conversation. history may be empty.
	Ask(ctx context.Context, question string, history []Turn) (string, error)
}
