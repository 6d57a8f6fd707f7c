package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

func (r *eventRepo) AppendRun(ctx context.Context, data RunEventData) (string, error) {
	runID := uuid.NewString()
	err := r.insertEvent(ctx, tableRunEvents,
		[]string{"run_id", "week", "day", "source", "output", "error", "duration_ms"},
		[]any{runID, data.Week, data.Day, data.Source, data.Output, data.Error, data.Duration.Milliseconds()},
	)
	if err != nil {
		return "", fmt.Errorf("save run event: %w", err)
	}
	return runID, nil
}

func (r *eventRepo) QueryRuns(ctx context.Context, opts QueryOpts) ([]RunEventRecord, error) {
	q, args := selectEvents(tableRunEvents, opts,
		"run_id", "week", "day", "source", "output", "error", "duration_ms")

	var rows entsql.Rows
	if err := r.drv.Query(ctx, q, args, &rows); err != nil {
		return nil, fmt.Errorf("query run events: %w", err)
	}
	defer rows.Close()

	var out []RunEventRecord
	for rows.Next() {
		var (
			rec       RunEventRecord
			ts, durMs int64
		)
		if err := rows.Scan(&rec.ID, &rec.Sequence, &ts, &rec.RunID, &rec.Week, &rec.Day,
			&rec.Source, &rec.Output, &rec.Error, &durMs); err != nil {
			return nil, fmt.Errorf("scan run event: %w", err)
		}
		rec.Timestamp = fromMillis(ts)
		rec.Duration = millis(durMs)
		out = append(out, rec)
	}
	return out, rows.Err()
}
