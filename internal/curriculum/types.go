package curriculum

import "fmt"

// DefaultMaxDay is reported for weeks the provider cannot describe.
const DefaultMaxDay = 6

// WeekInfo describes one week of the curriculum.
type WeekInfo struct {
	Name   string
	Topic  string
	MaxDay int
}

// Label renders the week for display, e.g. "Week 1: Python basics".
func (w WeekInfo) Label() string {
	if w.Topic == "" {
		return w.Name
	}
	return fmt.Sprintf("%s: %s", w.Name, w.Topic)
}

// DayInfo is the lesson text for one day.
type DayInfo struct {
	Title    string `json:"title"`
	Theory   string `json:"theory"`
	Practice string `json:"practice"`
	Tasks    string `json:"tasks"`
}

// FallbackDayInfo is returned when a day is unknown or malformed.
func FallbackDayInfo(day int) DayInfo {
	return DayInfo{Title: fmt.Sprintf("Day %d", day)}
}

// Provider supplies the curriculum structure and lesson text. Lookups
// never fail: unknown weeks report DefaultMaxDay and unknown days report
// FallbackDayInfo.
type Provider interface {
	Weeks() []WeekInfo
	MaxDay(week string) int
	DayInfo(week string, day int) DayInfo
}
