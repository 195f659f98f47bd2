package fiber

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"ivr-event-metrics/internal/summary/core/domain"
	"ivr-event-metrics/internal/summary/core/usecase"

	"github.com/gofiber/fiber/v2"
)

type GetSummaryUseCase interface {
	Execute(ctx context.Context, in usecase.GetSummaryInput) (*domain.Summary, error)
}

type SummaryHandler struct {
	uc GetSummaryUseCase
}

func NewSummaryHandler(uc GetSummaryUseCase) *SummaryHandler {
	return &SummaryHandler{uc: uc}
}

// GetSummary godoc
// @Summary Query archived interaction events
// @Description Returns event counts and average durations, optionally grouped by a label or time bucket
// @Tags Summary
// @Accept json
// @Produce json
// @Param kind query string true "Event kind: start | end | service-call"
// @Param from query int true "From timestamp"
// @Param to query int true "To timestamp"
// @Param brand query string false "Brand filter"
// @Param group_by query string false "Group by: consumer | flow | brand | node | time"
// @Param interval query string false "Interval: hour | day"
// @Success 200 {object} SummaryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /summary [get]
func (h *SummaryHandler) GetSummary(c *fiber.Ctx) error {
	kind := c.Query("kind", "")
	if kind == "" {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_query",
			Message: "kind is required",
		})
	}

	fromStr := c.Query("from", "")
	toStr := c.Query("to", "")
	if fromStr == "" || toStr == "" {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_query",
			Message: "from and to are required",
		})
	}

	from, err := strconv.ParseInt(fromStr, 10, 64)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_query",
			Message: "invalid 'from' parameter",
		})
	}
	to, err := strconv.ParseInt(toStr, 10, 64)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_query",
			Message: "invalid 'to' parameter",
		})
	}

	var brandPtr *string
	if brand := c.Query("brand", ""); brand != "" {
		brandPtr = &brand
	}

	in := usecase.GetSummaryInput{
		Kind:     kind,
		From:     from,
		To:       to,
		Brand:    brandPtr,
		GroupBy:  c.Query("group_by", ""),
		Interval: c.Query("interval", ""),
	}

	res, err := h.uc.Execute(c.UserContext(), in)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidKind),
			errors.Is(err, usecase.ErrInvalidTimeRange),
			errors.Is(err, usecase.ErrInvalidGroupBy),
			errors.Is(err, usecase.ErrInvalidInterval):
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid_query",
				Message: err.Error(),
			})
		default:
			return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
				Error: "internal_server_error",
			})
		}
	}

	resp := SummaryResponse{
		Kind:               res.Kind,
		From:               res.From,
		To:                 res.To,
		TotalCount:         res.TotalCount,
		AvgDurationSeconds: res.AvgDurationSeconds,
		GroupBy:            res.GroupBy,
		Groups:             make([]SummaryGroupResponse, 0, len(res.Groups)),
	}

	for _, g := range res.Groups {
		resp.Groups = append(resp.Groups, SummaryGroupResponse{
			Key:                g.Key,
			TotalCount:         g.TotalCount,
			AvgDurationSeconds: g.AvgDurationSeconds,
		})
	}

	return c.Status(http.StatusOK).JSON(resp)
}
