package postgres

import (
	"context"
	"fmt"
	"time"

	"ivr-event-metrics/internal/summary/core/domain"
	"ivr-event-metrics/internal/summary/core/ports"
)

type RowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

type DB interface {
	QueryContext(ctx context.Context, query string, args ...any) (RowScanner, error)
}

type SummaryRepository struct {
	db DB
}

func NewSummaryRepository(db DB) *SummaryRepository {
	return &SummaryRepository{db: db}
}

var _ ports.SummaryReaderPort = (*SummaryRepository)(nil)

// groupColumns maps group_by values to archive columns.
var groupColumns = map[string]string{
	"consumer": "consumer",
	"flow":     "flow",
	"brand":    "brand",
	"node":     "node",
}

func (r *SummaryRepository) QuerySummary(ctx context.Context, f ports.SummaryFilter) (*domain.Summary, error) {
	fromTime := time.Unix(f.From, 0).UTC()
	toTime := time.Unix(f.To, 0).UTC()

	where := "kind = $1 AND received_at BETWEEN $2 AND $3"
	args := []any{f.Kind, fromTime, toTime}

	if f.Brand != nil {
		where += fmt.Sprintf(" AND brand = $%d", len(args)+1)
		args = append(args, *f.Brand)
	}

	result := &domain.Summary{
		Kind:    f.Kind,
		From:    f.From,
		To:      f.To,
		GroupBy: f.GroupBy,
	}

	switch f.GroupBy {
	case "":
		return r.queryNoGroup(ctx, where, args, result)
	case "time":
		return r.queryGroupByTime(ctx, where, args, result, f.Interval)
	}

	column, ok := groupColumns[f.GroupBy]
	if !ok {
		// validated by the use case already
		return nil, fmt.Errorf("unsupported group_by: %s", f.GroupBy)
	}
	return r.queryGroupByColumn(ctx, where, args, result, column)
}

func (r *SummaryRepository) queryNoGroup(
	ctx context.Context,
	where string,
	args []any,
	res *domain.Summary,
) (*domain.Summary, error) {
	query := `
SELECT
    COUNT(*) AS total_count,
    COALESCE(AVG(duration_seconds), 0) AS avg_duration
FROM interaction_events
WHERE ` + where

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var total int64
		var avg float64
		if err := rows.Scan(&total, &avg); err != nil {
			return nil, err
		}
		res.TotalCount = total
		res.AvgDurationSeconds = avg
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return res, nil
}

func (r *SummaryRepository) queryGroupByColumn(
	ctx context.Context,
	where string,
	args []any,
	res *domain.Summary,
	column string,
) (*domain.Summary, error) {
	query := fmt.Sprintf(`
SELECT
    %[1]s,
    COUNT(*) AS total_count,
    COALESCE(AVG(duration_seconds), 0) AS avg_duration
FROM interaction_events
WHERE %[2]s
GROUP BY %[1]s
ORDER BY %[1]s`, column, where)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var total int64
		var avg float64

		if err := rows.Scan(&key, &total, &avg); err != nil {
			return nil, err
		}

		res.Groups = append(res.Groups, domain.SummaryGroup{
			Key:                key,
			TotalCount:         total,
			AvgDurationSeconds: avg,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	fillTotals(res)
	return res, nil
}

func (r *SummaryRepository) queryGroupByTime(
	ctx context.Context,
	where string,
	args []any,
	res *domain.Summary,
	interval string,
) (*domain.Summary, error) {
	query := fmt.Sprintf(`
SELECT
    date_trunc('%s', received_at AT TIME ZONE 'UTC') AS bucket,
    COUNT(*) AS total_count,
    COALESCE(AVG(duration_seconds), 0) AS avg_duration
FROM interaction_events
WHERE %s
GROUP BY bucket
ORDER BY bucket
`, interval, where)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var ts time.Time
		var total int64
		var avg float64

		if err := rows.Scan(&ts, &total, &avg); err != nil {
			return nil, err
		}

		res.Groups = append(res.Groups, domain.SummaryGroup{
			Key:                ts.UTC().Format(time.RFC3339),
			TotalCount:         total,
			AvgDurationSeconds: avg,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	fillTotals(res)
	return res, nil
}

// fillTotals sums group counts and weights group averages by their count.
func fillTotals(res *domain.Summary) {
	var total int64
	var weighted float64
	for _, g := range res.Groups {
		total += g.TotalCount
		weighted += g.AvgDurationSeconds * float64(g.TotalCount)
	}

	res.TotalCount = total
	if total > 0 {
		res.AvgDurationSeconds = weighted / float64(total)
	}
}
