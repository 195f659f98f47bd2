package ports

import (
	"context"
	"time"

	"ivr-event-metrics/internal/events/core/domain"
)

type EventArchivePort interface {
	// ArchiveEvent stores an accepted event. receivedAt is the server-side
	// arrival time, not the caller supplied one.
	ArchiveEvent(ctx context.Context, e *domain.Event, receivedAt time.Time) error
}
