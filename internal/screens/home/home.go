package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/pylearn/internal/curriculum"
	"github.com/abhisek/pylearn/internal/progress"
	"github.com/abhisek/pylearn/internal/router"
	"github.com/abhisek/pylearn/internal/screen"
	"github.com/abhisek/pylearn/internal/screens/day"
	"github.com/abhisek/pylearn/internal/screens/editor"
	"github.com/abhisek/pylearn/internal/screens/history"
	"github.com/abhisek/pylearn/internal/screens/settings"
	"github.com/abhisek/pylearn/internal/screens/week"
	"github.com/abhisek/pylearn/internal/ui/components"
	"github.com/abhisek/pylearn/internal/ui/layout"
)

// HomeScreen lists the curriculum weeks and the app's other sections.
type HomeScreen struct {
	env   *screen.Env
	weeks []curriculum.WeekInfo
	menu  components.Menu
	quote string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(env *screen.Env) *HomeScreen {
	h := &HomeScreen{
		env:   env,
		weeks: env.Curriculum.Weeks(),
	}
	if env.Quote != nil {
		h.quote = env.Quote()
	}

	items := []components.MenuItem{
		{Label: "Continue", Action: h.continueCurrent},
	}
	for _, w := range h.weeks {
		items = append(items, components.MenuItem{
			Label: w.Label(),
			Action: func() tea.Cmd {
				return router.Push(week.New(env, w))
			},
		})
	}
	items = append(items,
		components.MenuItem{Label: "Code editor", Action: func() tea.Cmd {
			return router.Push(editor.New(env, "", 0))
		}},
		components.MenuItem{Label: "Settings", Action: func() tea.Cmd {
			return router.Push(settings.New(env))
		}},
		components.MenuItem{Label: "History", Action: func() tea.Cmd {
			return router.Push(history.New(env.Events))
		}, Disabled: env.Events == nil},
		components.MenuItem{Label: "Exit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	)
	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) continueCurrent() tea.Cmd {
	r := h.env.Record()
	return router.Push(day.New(h.env, h.env.Week(r.CurrentWeek), r.CurrentDay))
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "c", Description: "Continue"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && kmsg.String() == "c" {
		return h, h.continueCurrent()
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompactHeight(height+layout.HeaderHeight+layout.FooterHeight) ||
		layout.IsCompactWidth(width)
	cw := contentWidth(width)

	r := h.env.Record()
	sum := progress.Summarize(r, h.weeks)

	reminder := "off"
	if h.env.Reminder != nil {
		if st := h.env.Reminder.Status(); st.Scheduled {
			reminder = st.Settings.TimeLabel()
		}
	}

	h.menu.Items[0].Label = fmt.Sprintf("Continue: %s · Day %d", r.CurrentWeek, r.CurrentDay)
	for i, ws := range sum.Weeks {
		h.menu.Items[i+1].Detail = fmt.Sprintf("%d/%d", ws.Completed, ws.Week.MaxDay)
	}

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact && h.quote != "" {
		sections = append(sections, renderQuote(h.quote, cw))
	}
	sections = append(sections, renderSummaryBar(sum, reminder, cw, compact))
	sections = append(sections, renderMenu(h.menu, sum, cw))

	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}
