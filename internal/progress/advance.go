package progress

import (
	"slices"

	"github.com/abhisek/pylearn/internal/curriculum"
)

// CanProceed reports whether the current day has been completed.
func CanProceed(r Record) bool {
	return IsCompleted(r, r.CurrentWeek, r.CurrentDay)
}

// Advance moves r to the next day, or to day 1 of the following week when
// the current week is finished. It returns false, with r unchanged, when
// the learner is on the last day of the last week or the current week is
// not part of the curriculum. Completion flags are not touched.
func Advance(r Record, c curriculum.Provider) (Record, bool) {
	weeks := c.Weeks()
	idx := slices.IndexFunc(weeks, func(w curriculum.WeekInfo) bool {
		return w.Name == r.CurrentWeek
	})
	if idx < 0 {
		return r, false
	}

	out := r.Clone()
	if r.CurrentDay < weeks[idx].MaxDay {
		out.CurrentDay++
		return out, true
	}
	if idx == len(weeks)-1 {
		return r, false
	}
	out.CurrentWeek = weeks[idx+1].Name
	out.CurrentDay = 1
	return out, true
}
