package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ivr-event-metrics/internal/events/core/domain"
	"ivr-event-metrics/internal/events/core/ports"

	"github.com/lib/pq"
)

type EventRepository struct {
	db DB
}

func NewEventRepository(db DB) *EventRepository {
	return &EventRepository{db: db}
}

var _ ports.EventArchivePort = (*EventRepository)(nil)

const insertEventSQL = `
INSERT INTO interaction_events (
    kind,
    consumer,
    flow,
    brand,
    node,
    labels,
    duration_seconds,
    event_time,
    payload,
    received_at
) VALUES (
    $1, $2, $3, $4, $5,
    $6, $7, $8, $9, $10
);
`

func (r *EventRepository) ArchiveEvent(ctx context.Context, e *domain.Event, receivedAt time.Time) error {
	labelsJSON, err := json.Marshal(e.Labels())
	if err != nil {
		return err
	}

	payloadJSON, err := json.Marshal(e.Record)
	if err != nil {
		return err
	}

	var duration any
	if e.Duration != nil {
		duration = *e.Duration
	}

	consumer, flow, brand, node := e.Common()

	_, err = r.db.ExecContext(ctx, insertEventSQL,
		string(e.Kind),
		consumer,
		flow,
		brand,
		node,
		labelsJSON,
		duration,
		e.EventTime,
		payloadJSON,
		receivedAt.UTC(),
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			return fmt.Errorf("insert interaction event (%s): %w", pqErr.Code.Name(), err)
		}
		return fmt.Errorf("insert interaction event: %w", err)
	}

	return nil
}
