package progress

import "github.com/abhisek/pylearn/internal/curriculum"

// WeekSummary counts the completed days of one week.
type WeekSummary struct {
	Week      curriculum.WeekInfo
	Completed int
	Current   bool
}

// Percent returns completion in [0, 100].
func (w WeekSummary) Percent() float64 {
	return percent(w.Completed, w.Week.MaxDay)
}

// Summary aggregates completion over the whole curriculum.
type Summary struct {
	Weeks     []WeekSummary
	Completed int
	Total     int
}

// Percent returns overall completion in [0, 100].
func (s Summary) Percent() float64 {
	return percent(s.Completed, s.Total)
}

// Summarize counts completed days per week. Keys for days outside the
// curriculum are ignored.
func Summarize(r Record, weeks []curriculum.WeekInfo) Summary {
	var s Summary
	for _, w := range weeks {
		ws := WeekSummary{Week: w, Current: w.Name == r.CurrentWeek}
		for day := 1; day <= w.MaxDay; day++ {
			if IsCompleted(r, w.Name, day) {
				ws.Completed++
			}
		}
		s.Completed += ws.Completed
		s.Total += w.MaxDay
		s.Weeks = append(s.Weeks, ws)
	}
	return s
}

func percent(n, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(n) * 100 / float64(total)
}
