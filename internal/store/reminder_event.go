package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendReminder(ctx context.Context, data ReminderEventData) error {
	err := r.insertEvent(ctx, tableReminderEvents,
		[]string{"action", "callback_id", "trigger_at", "message", "error"},
		[]any{data.Action, data.CallbackID, toMillis(data.TriggerAt), data.Message, data.Error},
	)
	if err != nil {
		return fmt.Errorf("save reminder event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryReminders(ctx context.Context, opts QueryOpts) ([]ReminderEventRecord, error) {
	q, args := selectEvents(tableReminderEvents, opts,
		"action", "callback_id", "trigger_at", "message", "error")

	var rows entsql.Rows
	if err := r.drv.Query(ctx, q, args, &rows); err != nil {
		return nil, fmt.Errorf("query reminder events: %w", err)
	}
	defer rows.Close()

	var out []ReminderEventRecord
	for rows.Next() {
		var (
			rec           ReminderEventRecord
			ts, triggerAt int64
		)
		if err := rows.Scan(&rec.ID, &rec.Sequence, &ts, &rec.Action, &rec.CallbackID,
			&triggerAt, &rec.Message, &rec.Error); err != nil {
			return nil, fmt.Errorf("scan reminder event: %w", err)
		}
		rec.Timestamp = fromMillis(ts)
		rec.TriggerAt = fromMillis(triggerAt)
		out = append(out, rec)
	}
	return out, rows.Err()
}
