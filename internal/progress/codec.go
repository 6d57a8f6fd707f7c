package progress

import (
	"encoding/json"
	"fmt"
)

// fileRecord is the on-disk JSON shape. Pointer fields let a partially
// written file fall back per field.
type fileRecord struct {
	CurrentWeek   *string         `json:"current_week"`
	CurrentDay    *int            `json:"current_day"`
	CompletedDays map[string]bool `json:"completed_days"`
}

func encodeRecord(r Record) ([]byte, error) {
	days := r.CompletedDays
	if days == nil {
		days = map[string]bool{}
	}
	return json.Marshal(fileRecord{
		CurrentWeek:   &r.CurrentWeek,
		CurrentDay:    &r.CurrentDay,
		CompletedDays: days,
	})
}

func decodeRecord(data []byte) (Record, error) {
	var f fileRecord
	if err := json.Unmarshal(data, &f); err != nil {
		return Record{}, fmt.Errorf("decode progress: %w", err)
	}

	r := Default()
	if f.CurrentWeek != nil && *f.CurrentWeek != "" {
		r.CurrentWeek = *f.CurrentWeek
	}
	if f.CurrentDay != nil && *f.CurrentDay > 0 {
		r.CurrentDay = *f.CurrentDay
	}
	if f.CompletedDays != nil {
		r.CompletedDays = f.CompletedDays
	}
	return r, nil
}
