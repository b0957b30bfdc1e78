package menuboard

import "context"

// TokenCounter counts tokens in text for a specific model.
// Used to report the size of the indexed menu corpus.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
