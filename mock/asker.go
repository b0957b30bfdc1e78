package mock

import (
	"context"

	"github.com/fwojciec/menuboard"
)

var _ menuboard.Asker = (*Asker)(nil)

// Asker is a mock implementation of menuboard.Asker.
type Asker struct {
	AskFn func(ctx context.Context, question string, history []menuboard.Turn) (string, error)
}

func (a *Asker) Ask(ctx context.Context, question string, history []menuboard.Turn) (string, error) {
	return a.AskFn(ctx, question, history)
}
