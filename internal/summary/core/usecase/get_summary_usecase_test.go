package usecase_test

import (
	"context"
	"errors"
	"testing"

	"ivr-event-metrics/internal/summary/core/domain"
	"ivr-event-metrics/internal/summary/core/ports"
	"ivr-event-metrics/internal/summary/core/usecase"
)

// fakeSummaryReader fakes SummaryReaderPort for tests.
type fakeSummaryReader struct {
	QueryFn    func(ctx context.Context, f ports.SummaryFilter) (*domain.Summary, error)
	lastFilter ports.SummaryFilter
	called     bool
}

func (f *fakeSummaryReader) QuerySummary(ctx context.Context, flt ports.SummaryFilter) (*domain.Summary, error) {
	f.called = true
	f.lastFilter = flt
	if f.QueryFn != nil {
		return f.QueryFn(ctx, flt)
	}
	return nil, nil
}

// ------------------------------------------------------------
// SUCCESS (no group_by)
// ------------------------------------------------------------

func TestGetSummary_Success_NoGroupBy(t *testing.T) {
	reader := &fakeSummaryReader{
		QueryFn: func(ctx context.Context, flt ports.SummaryFilter) (*domain.Summary, error) {
			if flt.Kind != "end" {
				t.Fatalf("expected kind=end, got %s", flt.Kind)
			}
			if flt.From != 100 || flt.To != 200 {
				t.Fatalf("expected from=100,to=200, got from=%d,to=%d", flt.From, flt.To)
			}
			if flt.Brand != nil {
				t.Fatalf("expected brand=nil, got %v", *flt.Brand)
			}

			return &domain.Summary{
				Kind:               flt.Kind,
				From:               flt.From,
				To:                 flt.To,
				TotalCount:         150,
				AvgDurationSeconds: 42.5,
			}, nil
		},
	}

	uc := usecase.NewGetSummaryUseCase(reader)

	out, err := uc.Execute(context.Background(), usecase.GetSummaryInput{
		Kind: "end",
		From: 100,
		To:   200,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.TotalCount != 150 || out.AvgDurationSeconds != 42.5 {
		t.Fatalf("unexpected result: %+v", out)
	}
	if !reader.called {
		t.Fatalf("expected QuerySummary to be called")
	}
}

// ------------------------------------------------------------
// SUCCESS (group_by=flow, brand filter)
// ------------------------------------------------------------

func TestGetSummary_Success_GroupByFlowWithBrand(t *testing.T) {
	reader := &fakeSummaryReader{
		QueryFn: func(ctx context.Context, flt ports.SummaryFilter) (*domain.Summary, error) {
			return &domain.Summary{Kind: flt.Kind, GroupBy: flt.GroupBy}, nil
		},
	}

	uc := usecase.NewGetSummaryUseCase(reader)
	brand := "acme"

	out, err := uc.Execute(context.Background(), usecase.GetSummaryInput{
		Kind:    "service-call",
		From:    100,
		To:      200,
		Brand:   &brand,
		GroupBy: "flow",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.GroupBy != "flow" {
		t.Fatalf("expected group_by=flow, got %s", out.GroupBy)
	}
	if reader.lastFilter.Brand == nil || *reader.lastFilter.Brand != "acme" {
		t.Fatalf("expected brand filter to be forwarded")
	}
}

// ------------------------------------------------------------
// VALIDATION
// ------------------------------------------------------------

func TestGetSummary_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		in   usecase.GetSummaryInput
		want error
	}{
		{"missing kind", usecase.GetSummaryInput{From: 100, To: 200}, usecase.ErrInvalidKind},
		{"unknown kind", usecase.GetSummaryInput{Kind: "transfer", From: 100, To: 200}, usecase.ErrInvalidKind},
		{"zero from", usecase.GetSummaryInput{Kind: "end", From: 0, To: 200}, usecase.ErrInvalidTimeRange},
		{"from after to", usecase.GetSummaryInput{Kind: "end", From: 300, To: 200}, usecase.ErrInvalidTimeRange},
		{"bad group_by", usecase.GetSummaryInput{Kind: "end", From: 100, To: 200, GroupBy: "service"}, usecase.ErrInvalidGroupBy},
		{"time without interval", usecase.GetSummaryInput{Kind: "end", From: 100, To: 200, GroupBy: "time"}, usecase.ErrInvalidInterval},
		{"time with minute", usecase.GetSummaryInput{Kind: "end", From: 100, To: 200, GroupBy: "time", Interval: "minute"}, usecase.ErrInvalidInterval},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := &fakeSummaryReader{}
			uc := usecase.NewGetSummaryUseCase(reader)

			out, err := uc.Execute(context.Background(), tt.in)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if out != nil {
				t.Fatalf("expected nil result on error")
			}
			if reader.called {
				t.Fatalf("reader should not be called on invalid input")
			}
		})
	}
}

// ------------------------------------------------------------
// READER ERROR
// ------------------------------------------------------------

func TestGetSummary_ReaderError(t *testing.T) {
	reader := &fakeSummaryReader{
		QueryFn: func(ctx context.Context, flt ports.SummaryFilter) (*domain.Summary, error) {
			return nil, errors.New("db failure")
		},
	}

	uc := usecase.NewGetSummaryUseCase(reader)

	_, err := uc.Execute(context.Background(), usecase.GetSummaryInput{Kind: "start", From: 1, To: 2, GroupBy: "time", Interval: "day"})
	if err == nil || err.Error() != "db failure" {
		t.Fatalf("expected db failure, got %v", err)
	}
}
