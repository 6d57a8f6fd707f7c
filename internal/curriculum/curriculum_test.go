package curriculum

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCurriculum(t *testing.T) {
	c := Default()
	weeks := c.Weeks()
	require.Len(t, weeks, 8)

	assert.Equal(t, "Week 1", weeks[0].Name)
	assert.Equal(t, "Week 1: Python basics", weeks[0].Label())

	tests := []struct {
		week string
		max  int
	}{
		{"Week 1", 6},
		{"Week 3", 6},
		{"Week 4", 3},
		{"Week 8", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.max, c.MaxDay(tt.week), tt.week)
	}
	assert.Equal(t, 6*3+3*4+1, c.TotalDays())
}

func TestMaxDayUnknownWeekFallsBack(t *testing.T) {
	assert.Equal(t, DefaultMaxDay, Default().MaxDay("Week 99"))
}

func TestDayInfo(t *testing.T) {
	info := Default().DayInfo("Week 1", 4)
	assert.Equal(t, "Day 4: Loops", info.Title)
	assert.NotEmpty(t, info.Theory)
	assert.NotEmpty(t, info.Practice)
	assert.NotEmpty(t, info.Tasks)
}

func TestDayInfoFallbacks(t *testing.T) {
	c := Default()
	assert.Equal(t, DayInfo{Title: "Day 5"}, c.DayInfo("Week 8", 5))
	assert.Equal(t, DayInfo{Title: "Day 2"}, c.DayInfo("Nope", 2))
}

func TestParseDayInfo(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want DayInfo
	}{
		{"empty", "", DayInfo{Title: "Day 3"}},
		{"null", "null", DayInfo{Title: "Day 3"}},
		{"malformed", "{not json", DayInfo{Title: "Day 3"}},
		{"wrong type", `{"title": 7}`, DayInfo{Title: "Day 3"}},
		{"missing title", `{"theory": "loops"}`, DayInfo{Title: "Day 3", Theory: "loops"}},
		{"complete", `{"title": "T", "theory": "a", "practice": "b", "tasks": "c"}`, DayInfo{Title: "T", Theory: "a", Practice: "b", Tasks: "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDayInfo([]byte(tt.raw), 3))
		})
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "weeks"},
		{"no weeks", `{}`},
		{"empty weeks", `{"weeks": []}`},
		{"day zero", `{"weeks": [{"name": "W", "days": [{"day": 0}]}]}`},
		{"missing name", `{"weeks": [{"days": [{"day": 1}]}]}`},
		{"duplicate week", `{"weeks": [{"name": "W", "days": [{"day": 1}]}, {"name": "W", "days": [{"day": 1}]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestParseCustom(t *testing.T) {
	c, err := Parse([]byte(`{"weeks": [{"name": "Intro", "days": [{"day": 2, "title": "Two"}, {"day": 1}]}]}`))
	require.NoError(t, err)

	assert.Equal(t, 2, c.MaxDay("Intro"))
	assert.Equal(t, "Two", c.DayInfo("Intro", 2).Title)
	assert.Equal(t, "Day 1", c.DayInfo("Intro", 1).Title)

	w, ok := c.Week("Intro")
	require.True(t, ok)
	assert.Equal(t, "Intro", w.Label())
}

func TestResolve(t *testing.T) {
	assert.Same(t, Default(), Resolve("", nil))
	assert.Same(t, Default(), Resolve(filepath.Join(t.TempDir(), "missing.json"), nil))

	path := filepath.Join(t.TempDir(), "c.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"weeks": [{"name": "Solo", "days": [{"day": 1}]}]}`), 0o600))
	c := Resolve(path, nil)
	require.Len(t, c.Weeks(), 1)
	assert.Equal(t, "Solo", c.Weeks()[0].Name)
}
