package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"maps"
	"slices"
	"time"

	"ivr-event-metrics/internal/events/core/domain"
	"ivr-event-metrics/internal/events/core/ports"
	"ivr-event-metrics/internal/events/core/schema"

	"github.com/rs/zerolog"
)

var (
	ErrInvalidBody = errors.New("request body must be a JSON object")
	ErrUnknownKind = errors.New("unknown event kind")
)

type RecordEventUseCase struct {
	metrics ports.MetricsRecorderPort
	archive ports.EventArchivePort
	logger  zerolog.Logger
	now     func() time.Time
}

type Option func(*RecordEventUseCase)

// WithArchive stores every accepted event after its metrics are emitted.
func WithArchive(a ports.EventArchivePort) Option {
	return func(uc *RecordEventUseCase) {
		uc.archive = a
	}
}

func WithClock(now func() time.Time) Option {
	return func(uc *RecordEventUseCase) {
		uc.now = now
	}
}

func NewRecordEventUseCase(metrics ports.MetricsRecorderPort, logger zerolog.Logger, opts ...Option) *RecordEventUseCase {
	uc := &RecordEventUseCase{
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

type RecordEventInput struct {
	Kind       domain.Kind
	Body       []byte
	ReceivedAt time.Time
	RequestID  string
}

type RecordEventResult struct {
	Event      *domain.Event
	AcceptedAt time.Time // UTC
}

func (uc *RecordEventUseCase) Execute(ctx context.Context, in RecordEventInput) (RecordEventResult, error) {
	if in.ReceivedAt.IsZero() {
		in.ReceivedAt = uc.now()
	}

	ev, err := uc.validate(in)
	if err != nil {
		uc.metrics.RequestFailed(in.Kind)
		uc.logger.Warn().
			Str("endpoint", string(in.Kind)).
			Str("request_id", in.RequestID).
			Str("description", err.Error()).
			Msg("event rejected")
		return RecordEventResult{}, err
	}

	uc.emit(ev)
	uc.logAccepted(ev, in.RequestID)

	if uc.archive != nil {
		if err := uc.archive.ArchiveEvent(ctx, ev, in.ReceivedAt); err != nil {
			uc.metrics.ArchiveFailed(ev.Kind)
			uc.logger.Error().
				Err(err).
				Str("endpoint", string(ev.Kind)).
				Str("request_id", in.RequestID).
				Msg("archive insert failed")
		}
	}

	accepted := uc.now()
	uc.metrics.RequestSucceeded(ev.Kind, accepted.Sub(in.ReceivedAt))

	return RecordEventResult{Event: ev, AcceptedAt: accepted.UTC()}, nil
}

func (uc *RecordEventUseCase) validate(in RecordEventInput) (*domain.Event, error) {
	s, ok := schema.ForKind(in.Kind)
	if !ok {
		return nil, ErrUnknownKind
	}

	rec, err := decodeRecord(in.Body)
	if err != nil {
		return nil, err
	}

	got, err := s.Validate(rec)
	if err != nil {
		return nil, err
	}

	return buildEvent(in.Kind, rec, got), nil
}

func (uc *RecordEventUseCase) emit(ev *domain.Event) {
	switch ev.Kind {
	case domain.KindStart:
		uc.metrics.FlowStarted(*ev.Start)
	case domain.KindEnd:
		uc.metrics.FlowEnded(*ev.End, *ev.Duration)
	case domain.KindServiceCall:
		uc.metrics.ServiceCalled(*ev.ServiceCall, *ev.Duration)
	}
}

func (uc *RecordEventUseCase) logAccepted(ev *domain.Event, requestID string) {
	set := ev.Labels()
	labels := zerolog.Dict()
	for _, k := range slices.Sorted(maps.Keys(set)) {
		labels.Str(k, set[k])
	}

	l := uc.logger.Info().
		Str("endpoint", string(ev.Kind)).
		Str("request_id", requestID).
		Str("time", ev.EventTime).
		Dict("labels", labels)
	if ev.Duration != nil {
		l = l.Float64("duration_seconds", *ev.Duration)
	}
	l.Msg("event recorded")
}

// decodeRecord accepts exactly one JSON object. Numbers keep their literal text.
func decodeRecord(body []byte) (domain.Record, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var rec domain.Record
	if err := dec.Decode(&rec); err != nil || rec == nil {
		return nil, ErrInvalidBody
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, ErrInvalidBody
	}

	return rec, nil
}

func buildEvent(kind domain.Kind, rec domain.Record, got schema.Values) *domain.Event {
	ev := &domain.Event{
		Kind:      kind,
		EventTime: got.String(schema.KeyTime),
		Record:    rec,
	}

	switch kind {
	case domain.KindStart:
		ev.Start = &domain.StartLabels{
			Consumer: got.String(schema.KeyConsumer),
			Flow:     got.String(schema.KeyFlow),
			Brand:    got.String(schema.KeyBrand),
			Node:     got.String(schema.KeyNode),
		}

	case domain.KindEnd:
		ev.End = &domain.EndLabels{
			Consumer:    got.String(schema.KeyConsumer),
			Flow:        got.String(schema.KeyFlow),
			Brand:       got.String(schema.KeyBrand),
			Node:        got.String(schema.KeyNode),
			CloseStatus: got.String(schema.KeyCloseStatus),
			DerivedTo:   got.String(schema.KeyDerivedTo),
		}
		d, _ := secondsBetween(got, schema.KeyInteractionStart, schema.KeyInteractionEnd)
		ev.Duration = &d

	case domain.KindServiceCall:
		ev.ServiceCall = &domain.ServiceCallLabels{
			Consumer:   got.String(schema.KeyConsumer),
			Flow:       got.String(schema.KeyFlow),
			Brand:      got.String(schema.KeyBrand),
			Node:       got.String(schema.KeyNode),
			Service:    got.String(schema.KeyService),
			ResultCode: got.String(schema.KeyResultCode),
			Timeout:    got.String(schema.KeyTimeout),
		}
		d, ok := secondsBetween(got, schema.KeyServiceCallStart, schema.KeyServiceCallEnd)
		if !ok {
			d, _ = got.Float(schema.KeyDuration)
		}
		ev.Duration = &d
	}

	return ev
}

// secondsBetween works on whole seconds. schema.Timestamp only accepts
// whole-second values, so the result is exact.
func secondsBetween(got schema.Values, startKey, endKey string) (float64, bool) {
	start, ok := got.Time(startKey)
	if !ok {
		return 0, false
	}
	end, ok := got.Time(endKey)
	if !ok {
		return 0, false
	}
	return float64(end.Unix() - start.Unix()), true
}
