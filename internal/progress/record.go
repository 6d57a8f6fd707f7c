// Package progress owns the learner's curriculum position, per-day
// completion flags and notification preferences.
package progress

import (
	"maps"
	"strconv"
)

// Defaults for a fresh record.
const (
	DefaultWeek = "Week 1"
	DefaultDay  = 1
)

// Record is the persisted curriculum progress.
type Record struct {
	CurrentWeek string
	CurrentDay  int

	// CompletedDays is keyed by DayKey. Toggling only ever adds keys, so a
	// false entry means "was completed, then un-done".
	CompletedDays map[string]bool
}

// Default returns the record used on first run and after a reset.
func Default() Record {
	return Record{
		CurrentWeek:   DefaultWeek,
		CurrentDay:    DefaultDay,
		CompletedDays: map[string]bool{},
	}
}

// DayKey renders the completion key for week and day, e.g. "Week 1_3".
func DayKey(week string, day int) string {
	return week + "_" + strconv.Itoa(day)
}

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	out := r
	out.CompletedDays = make(map[string]bool, len(r.CompletedDays))
	maps.Copy(out.CompletedDays, r.CompletedDays)
	return out
}

// Equal reports whether two records hold the same position and flags.
func (r Record) Equal(o Record) bool {
	return r.CurrentWeek == o.CurrentWeek &&
		r.CurrentDay == o.CurrentDay &&
		maps.Equal(r.CompletedDays, o.CompletedDays)
}

// Toggle flips the completion flag of week/day and returns the updated
// copy. r is not modified; the caller persists the result. An empty week
// or a day below 1 leaves the copy unchanged.
func Toggle(r Record, week string, day int) Record {
	out := r.Clone()
	if week == "" || day < 1 {
		return out
	}
	key := DayKey(week, day)
	out.CompletedDays[key] = !r.CompletedDays[key]
	return out
}

// IsCompleted reports whether week/day is marked done. Absent keys are
// not completed.
func IsCompleted(r Record, week string, day int) bool {
	return r.CompletedDays[DayKey(week, day)]
}

// IsCurrent reports whether week/day is the learner's current position.
func IsCurrent(r Record, week string, day int) bool {
	return r.CurrentWeek == week && r.CurrentDay == day
}
