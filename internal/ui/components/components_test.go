package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pickedMsg struct{ label string }

func pick(label string) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg { return pickedMsg{label} }
	}
}

func TestMenuSkipsDisabledItems(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "locked", Disabled: true},
		{Label: "one", Action: pick("one")},
		{Label: "locked too", Disabled: true},
		{Label: "two", Action: pick("two")},
	})
	assert.Equal(t, 1, m.Selected)

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 3, m.Selected)

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 3, m.Selected, "cursor stays on the last item")

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 1, m.Selected)
}

func TestMenuEnterRunsAction(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "one", Action: pick("one")}})

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, pickedMsg{"one"}, cmd())
}

func TestMenuSelect(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "a"}, {Label: "b", Disabled: true}, {Label: "c"}})
	m.Select(2)
	assert.Equal(t, 2, m.Selected)
	m.Select(1)
	assert.Equal(t, 2, m.Selected)
	m.Select(7)
	assert.Equal(t, 2, m.Selected)
}

func TestMenuViewShowsDetail(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "Week 1", Detail: "3/6"}})
	out := m.View()
	assert.Contains(t, out, "Week 1")
	assert.Contains(t, out, "3/6")
	assert.Contains(t, out, "▸")
}

func TestProgressBarPercentLabel(t *testing.T) {
	tests := []struct {
		done, total int
		want        string
	}{
		{0, 6, "0%"},
		{3, 6, "50%"},
		{6, 6, "100%"},
		{9, 6, "100%"},
		{1, 0, "0%"},
	}
	for _, tt := range tests {
		out := NewProgressBar("", tt.done, tt.total, 30).View()
		if !strings.Contains(out, tt.want) {
			t.Errorf("%d/%d: %q does not contain %q", tt.done, tt.total, out, tt.want)
		}
	}
}

func TestProgressBarOneCellPerDay(t *testing.T) {
	out := NewProgressBar("", 2, 6, 40).View()
	assert.Equal(t, 2, strings.Count(out, "▰"))
	assert.Equal(t, 4, strings.Count(out, "▱"))

	// 31 days do not fit in 20 columns, so the cells are scaled.
	out = NewProgressBar("", 31, 31, 20).View()
	assert.Zero(t, strings.Count(out, "▱"))
	assert.Less(t, strings.Count(out, "▰"), 31)
}

func TestButtonHotkey(t *testing.T) {
	pressed := 0
	b := NewButton("Yes", false, func() tea.Cmd { pressed++; return nil })
	b.Key = "y"

	b, _ = b.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Zero(t, pressed, "inactive buttons ignore enter")

	b, _ = b.Update(tea.KeyPressMsg{Code: 'y', Text: "y"})
	assert.Equal(t, 1, pressed)
	assert.True(t, b.Active)

	b, _ = b.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Equal(t, 2, pressed)
	assert.Contains(t, b.View(), "[y]")
}

func TestTextInputSubmitMark(t *testing.T) {
	ti := NewTextInput("name", 10)
	ti, _ = ti.Update(tea.KeyPressMsg{Code: 'a', Text: "a"})
	assert.Equal(t, "a", ti.Value())

	ti.Submit(false)
	assert.Contains(t, ti.View(), "✗")

	ti, _ = ti.Update(tea.KeyPressMsg{Code: 'b', Text: "b"})
	assert.NotContains(t, ti.View(), "✗")
	assert.Equal(t, "ab", ti.Value())
}
