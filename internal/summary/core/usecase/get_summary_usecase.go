package usecase

import (
	"context"
	"errors"

	events "ivr-event-metrics/internal/events/core/domain"
	"ivr-event-metrics/internal/summary/core/domain"
	"ivr-event-metrics/internal/summary/core/ports"
)

var (
	ErrInvalidKind      = errors.New("kind must be start, end or service-call")
	ErrInvalidTimeRange = errors.New("invalid time range")
	ErrInvalidGroupBy   = errors.New("invalid group_by value")
	ErrInvalidInterval  = errors.New("invalid interval for time grouping")
)

type GetSummaryInput struct {
	Kind string
	From int64
	To   int64

	Brand    *string
	GroupBy  string
	Interval string // required when GroupBy is "time"
}

type GetSummaryUseCase struct {
	reader ports.SummaryReaderPort
}

func NewGetSummaryUseCase(reader ports.SummaryReaderPort) *GetSummaryUseCase {
	return &GetSummaryUseCase{reader: reader}
}

// Execute validates the input, turns it into a filter and queries the reader.
func (uc *GetSummaryUseCase) Execute(ctx context.Context, in GetSummaryInput) (*domain.Summary, error) {

	if !events.Kind(in.Kind).Valid() {
		return nil, ErrInvalidKind
	}

	if in.From <= 0 || in.To <= 0 || in.From > in.To {
		return nil, ErrInvalidTimeRange
	}

	switch in.GroupBy {
	case "", "consumer", "flow", "brand", "node":
	case "time":
		if in.Interval != "hour" && in.Interval != "day" {
			return nil, ErrInvalidInterval
		}
	default:
		return nil, ErrInvalidGroupBy
	}

	filter := ports.SummaryFilter{
		Kind:     in.Kind,
		From:     in.From,
		To:       in.To,
		Brand:    in.Brand,
		GroupBy:  in.GroupBy,
		Interval: in.Interval,
	}

	return uc.reader.QuerySummary(ctx, filter)
}
