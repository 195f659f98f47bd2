package ports

import (
	"context"

	"ivr-event-metrics/internal/summary/core/domain"
)

type SummaryFilter struct {
	Kind     string
	From     int64
	To       int64
	Brand    *string // optional
	GroupBy  string  // "", "consumer", "flow", "brand", "node", "time"
	Interval string  // "hour" / "day" (GroupBy = "time" required)
}

type SummaryReaderPort interface {
	QuerySummary(ctx context.Context, f SummaryFilter) (*domain.Summary, error)
}
