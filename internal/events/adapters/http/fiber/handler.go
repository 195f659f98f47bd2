package fiber

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"ivr-event-metrics/internal/events/core/domain"
	"ivr-event-metrics/internal/events/core/schema"
	"ivr-event-metrics/internal/events/core/usecase"

	"github.com/gofiber/fiber/v2"
)

type RecordEventUseCase interface {
	Execute(ctx context.Context, in usecase.RecordEventInput) (usecase.RecordEventResult, error)
}

type EventHandler struct {
	uc RecordEventUseCase
}

func NewEventHandler(uc RecordEventUseCase) *EventHandler {
	return &EventHandler{uc: uc}
}

var methods = []string{fiber.MethodGet, fiber.MethodPost, fiber.MethodPut}

// RegisterRoutes mounts the event endpoints and the legacy aliases for every accepted method.
func (h *EventHandler) RegisterRoutes(r fiber.Router) {
	routes := []struct {
		path    string
		handler fiber.Handler
	}{
		{"/start", h.RecordStart},
		{"/end", h.RecordEnd},
		{"/service-call", h.RecordServiceCall},
		{"/log_derivation", h.RecordEnd},
		{"/log_service_call", h.RecordServiceCall},
	}

	for _, rt := range routes {
		for _, m := range methods {
			r.Add(m, rt.path, rt.handler)
		}
	}
}

// RecordStart godoc
// @Summary Record a flow start
// @Description Validates consumer, flow, brand, node and time, then increments the flow start counter
// @Tags Events
// @Accept json
// @Produce json
// @Param request body object true "Start record"
// @Success 200 {object} OKResponse
// @Failure 200 {object} ErrorResponse
// @Router /start [post]
func (h *EventHandler) RecordStart(c *fiber.Ctx) error {
	return h.record(c, domain.KindStart)
}

// RecordEnd godoc
// @Summary Record a flow end
// @Description Validates the record, derives the interaction duration and records counter and histogram
// @Tags Events
// @Accept json
// @Produce json
// @Param request body object true "End record"
// @Success 200 {object} OKResponse
// @Failure 200 {object} ErrorResponse
// @Router /end [post]
func (h *EventHandler) RecordEnd(c *fiber.Ctx) error {
	return h.record(c, domain.KindEnd)
}

// RecordServiceCall godoc
// @Summary Record a downstream service call
// @Description Validates the record, derives the call duration and records counter and histogram
// @Tags Events
// @Accept json
// @Produce json
// @Param request body object true "Service call record"
// @Success 200 {object} OKResponse
// @Failure 200 {object} ErrorResponse
// @Router /service-call [post]
func (h *EventHandler) RecordServiceCall(c *fiber.Ctx) error {
	return h.record(c, domain.KindServiceCall)
}

func (h *EventHandler) record(c *fiber.Ctx, kind domain.Kind) error {
	in := usecase.RecordEventInput{
		Kind:       kind,
		Body:       recordBody(c),
		ReceivedAt: time.Now(),
		RequestID:  requestID(c),
	}

	res, err := h.uc.Execute(c.UserContext(), in)
	if err != nil {
		// Errors are reported in-band; callers rely on HTTP 200.
		return c.Status(http.StatusOK).JSON(ErrorResponse{
			Result:      ResultError,
			Description: describe(err),
		})
	}

	return c.Status(http.StatusOK).JSON(OKResponse{
		Result:    ResultOK,
		Timestamp: res.AcceptedAt.UTC().Format(TimestampLayout),
	})
}

func describe(err error) string {
	var fe *schema.FieldError
	switch {
	case errors.As(err, &fe):
		return fe.Error()
	case errors.Is(err, usecase.ErrInvalidBody):
		return "Request body must be a JSON object"
	default:
		return "Internal error"
	}
}

// recordBody returns the request body. A GET without a body carries the
// record in its query string instead.
func recordBody(c *fiber.Ctx) []byte {
	body := c.Body()
	if len(body) > 0 || c.Method() != fiber.MethodGet {
		return body
	}

	q := c.Queries()
	if len(q) == 0 {
		return body
	}

	b, err := json.Marshal(q)
	if err != nil {
		return body
	}
	return b
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals("requestid").(string)
	return id
}
