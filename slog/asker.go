package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/menuboard"
)

var _ menuboard.Asker = (*LoggingAsker)(nil)

// LoggingAsker wraps an Asker with logging.
type LoggingAsker struct {
	next   menuboard.Asker
	logger *slog.Logger
}

// NewLoggingAsker creates a new LoggingAsker.
func NewLoggingAsker(next menuboard.Asker, logger *slog.Logger) *LoggingAsker {
	return &LoggingAsker{next: next, logger: logger}
}

// Ask delegates to the wrapped asker and logs the question, the answer
// length and the duration. The answer text itself is not logged.
func (a *LoggingAsker) Ask(ctx context.Context, question string, history []menuboard.Turn) (answer string, err error) {
	defer func(begin time.Time) {
		a.logger.Info("ask",
			"question", question,
			"history", len(history),
			"answer_len", len(answer),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.Ask(ctx, question, history)
}
