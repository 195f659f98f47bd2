package fiber_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	httpadapter "ivr-event-metrics/internal/summary/adapters/http/fiber"
	"ivr-event-metrics/internal/summary/core/domain"
	"ivr-event-metrics/internal/summary/core/usecase"

	"github.com/gofiber/fiber/v2"
)

// Fake usecase implementing the interface that handler depends on.
type fakeGetSummaryUseCase struct {
	ExecuteFn func(ctx context.Context, in usecase.GetSummaryInput) (*domain.Summary, error)
	lastInput usecase.GetSummaryInput
	called    bool
}

func (f *fakeGetSummaryUseCase) Execute(ctx context.Context, in usecase.GetSummaryInput) (*domain.Summary, error) {
	f.called = true
	f.lastInput = in
	if f.ExecuteFn != nil {
		return f.ExecuteFn(ctx, in)
	}
	return nil, nil
}

func setupApp(t *testing.T, uc httpadapter.GetSummaryUseCase) *fiber.App {
	t.Helper()
	app := fiber.New()
	h := httpadapter.NewSummaryHandler(uc)
	app.Get("/summary", h.GetSummary)
	return app
}

func baseParams() url.Values {
	params := url.Values{}
	params.Set("kind", "end")
	params.Set("from", "100")
	params.Set("to", "200")
	return params
}

// ------------------------------------------------------------
// SUCCESS: no group_by
// ------------------------------------------------------------

func TestGetSummary_Success_NoGroupBy(t *testing.T) {
	uc := &fakeGetSummaryUseCase{
		ExecuteFn: func(ctx context.Context, in usecase.GetSummaryInput) (*domain.Summary, error) {
			if in.Kind != "end" {
				t.Fatalf("expected kind=end, got %s", in.Kind)
			}
			if in.From != 100 || in.To != 200 {
				t.Fatalf("expected from=100,to=200 got from=%d,to=%d", in.From, in.To)
			}
			if in.Brand != nil {
				t.Fatalf("expected no brand filter")
			}
			return &domain.Summary{
				Kind:               in.Kind,
				From:               in.From,
				To:                 in.To,
				TotalCount:         150,
				AvgDurationSeconds: 42.5,
			}, nil
		},
	}

	app := setupApp(t, uc)

	req := httptest.NewRequest(http.MethodGet, "/summary?"+baseParams().Encode(), nil)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	if !uc.called {
		t.Fatalf("expected usecase to be called")
	}

	var body httpadapter.SummaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.TotalCount != 150 || body.AvgDurationSeconds != 42.5 {
		t.Fatalf("unexpected body: %+v", body)
	}
}

// ------------------------------------------------------------
// SUCCESS: group_by=flow with brand
// ------------------------------------------------------------

func TestGetSummary_Success_GroupByFlowWithBrand(t *testing.T) {
	uc := &fakeGetSummaryUseCase{
		ExecuteFn: func(ctx context.Context, in usecase.GetSummaryInput) (*domain.Summary, error) {
			if in.GroupBy != "flow" {
				t.Fatalf("expected group_by=flow, got %s", in.GroupBy)
			}
			if in.Brand == nil || *in.Brand != "acme" {
				t.Fatalf("expected brand=acme")
			}
			return &domain.Summary{
				Kind:               in.Kind,
				From:               in.From,
				To:                 in.To,
				TotalCount:         40,
				AvgDurationSeconds: 20,
				GroupBy:            "flow",
				Groups: []domain.SummaryGroup{
					{Key: "billing", TotalCount: 30, AvgDurationSeconds: 10},
					{Key: "support", TotalCount: 10, AvgDurationSeconds: 50},
				},
			}, nil
		},
	}

	app := setupApp(t, uc)

	params := baseParams()
	params.Set("brand", "acme")
	params.Set("group_by", "flow")

	req := httptest.NewRequest(http.MethodGet, "/summary?"+params.Encode(), nil)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var body httpadapter.SummaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Groups) != 2 || body.Groups[0].Key != "billing" {
		t.Fatalf("unexpected groups: %+v", body.Groups)
	}
}

// ------------------------------------------------------------
// SUCCESS: group_by=time&interval=hour
// ------------------------------------------------------------

func TestGetSummary_Success_GroupByTime(t *testing.T) {
	uc := &fakeGetSummaryUseCase{
		ExecuteFn: func(ctx context.Context, in usecase.GetSummaryInput) (*domain.Summary, error) {
			if in.GroupBy != "time" || in.Interval != "hour" {
				t.Fatalf("expected group_by=time, interval=hour got group_by=%s, interval=%s", in.GroupBy, in.Interval)
			}
			return &domain.Summary{
				Kind:    in.Kind,
				GroupBy: "time",
				Groups: []domain.SummaryGroup{
					{Key: "2025-12-07T10:00:00Z", TotalCount: 100, AvgDurationSeconds: 12},
				},
			}, nil
		},
	}

	app := setupApp(t, uc)

	params := baseParams()
	params.Set("group_by", "time")
	params.Set("interval", "hour")

	req := httptest.NewRequest(http.MethodGet, "/summary?"+params.Encode(), nil)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
}

// ------------------------------------------------------------
// MISSING / INVALID QUERY PARAMS
// ------------------------------------------------------------

func TestGetSummary_InvalidQueryParams(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(url.Values)
	}{
		{"missing kind", func(v url.Values) { v.Del("kind") }},
		{"missing from", func(v url.Values) { v.Del("from") }},
		{"bad from", func(v url.Values) { v.Set("from", "abc") }},
		{"bad to", func(v url.Values) { v.Set("to", "1.5") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeGetSummaryUseCase{}
			app := setupApp(t, uc)

			params := baseParams()
			tt.mutate(params)

			req := httptest.NewRequest(http.MethodGet, "/summary?"+params.Encode(), nil)

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test error: %v", err)
			}
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", resp.StatusCode)
			}
			if uc.called {
				t.Fatalf("usecase should not be called on invalid query params")
			}
		})
	}
}

// ------------------------------------------------------------
// USECASE-LEVEL VALIDATION ERRORS -> 400
// ------------------------------------------------------------

func TestGetSummary_UsecaseValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		ucError error
	}{
		{"invalid_kind", usecase.ErrInvalidKind},
		{"invalid_time_range", usecase.ErrInvalidTimeRange},
		{"invalid_group_by", usecase.ErrInvalidGroupBy},
		{"invalid_interval", usecase.ErrInvalidInterval},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeGetSummaryUseCase{
				ExecuteFn: func(ctx context.Context, in usecase.GetSummaryInput) (*domain.Summary, error) {
					return nil, tt.ucError
				},
			}

			app := setupApp(t, uc)

			req := httptest.NewRequest(http.MethodGet, "/summary?"+baseParams().Encode(), nil)

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test error: %v", err)
			}
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", resp.StatusCode)
			}

			var body httpadapter.ErrorResponse
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if body.Message != tt.ucError.Error() {
				t.Fatalf("expected message %q, got %q", tt.ucError.Error(), body.Message)
			}
		})
	}
}

// ------------------------------------------------------------
// USECASE OTHER ERROR -> 500
// ------------------------------------------------------------

func TestGetSummary_InternalError(t *testing.T) {
	uc := &fakeGetSummaryUseCase{
		ExecuteFn: func(ctx context.Context, in usecase.GetSummaryInput) (*domain.Summary, error) {
			return nil, context.DeadlineExceeded
		},
	}

	app := setupApp(t, uc)

	req := httptest.NewRequest(http.MethodGet, "/summary?"+baseParams().Encode(), nil)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.StatusCode)
	}
}
