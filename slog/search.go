package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/menuboard"
)

var _ menuboard.SearchService = (*LoggingSearchService)(nil)

// LoggingSearchService wraps a SearchService with logging.
type LoggingSearchService struct {
	next   menuboard.SearchService
	logger *slog.Logger
}

// NewLoggingSearchService creates a new LoggingSearchService.
func NewLoggingSearchService(next menuboard.SearchService, logger *slog.Logger) *LoggingSearchService {
	return &LoggingSearchService{next: next, logger: logger}
}

// Search delegates to the wrapped service and logs the retrieved menu items.
func (s *LoggingSearchService) Search(ctx context.Context, query string, opts menuboard.SearchOptions) (results []menuboard.SearchResult, err error) {
	defer func(begin time.Time) {
		names := make([]string, 0, len(results))
		for _, r := range results {
			if r.Document != nil {
				names = append(names, r.Document.Metadata.Name)
			}
		}
		s.logger.Info("search",
			"query", query,
			"count", len(results),
			"items", names,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, query, opts)
}
