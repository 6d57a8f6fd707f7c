package app

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/pylearn/internal/notify"
	"github.com/abhisek/pylearn/internal/progress"
	"github.com/abhisek/pylearn/internal/router"
	"github.com/abhisek/pylearn/internal/screen"
	"github.com/abhisek/pylearn/internal/screens/home"
	"github.com/abhisek/pylearn/internal/screens/welcome"
	"github.com/abhisek/pylearn/internal/ui/layout"
)

// ToastDuration is how long a toast stays in the footer.
const ToastDuration = 3 * time.Second

type clearToastMsg struct{ id int }

type notificationMsg notify.Notification

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	env    *screen.Env
	notes  <-chan notify.Notification

	toast    string
	toastErr bool
	toastID  int

	width  int
	height int
}

// Options configures the TUI.
type Options struct {
	// Notifications are shown as toasts while the TUI runs. May be nil.
	Notifications <-chan notify.Notification

	// SkipWelcome starts on the home screen.
	SkipWelcome bool
}

// newAppModel creates a new AppModel starting at the welcome screen.
func newAppModel(env *screen.Env, opts Options) AppModel {
	homeFactory := func() screen.Screen { return home.New(env) }

	var first screen.Screen
	if opts.SkipWelcome {
		first = homeFactory()
	} else {
		tagline := ""
		if env.Quote != nil {
			tagline = env.Quote()
		}
		first = welcome.New(homeFactory, tagline)
	}
	return AppModel{
		router: router.New(first),
		env:    env,
		notes:  opts.Notifications,
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.router.Active().Init(), m.waitForNotification())
}

func (m AppModel) waitForNotification() tea.Cmd {
	if m.notes == nil {
		return nil
	}
	ch := m.notes
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return notificationMsg(n)
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if c, ok := m.router.Active().(screen.InputCapturer); ok && c.CapturingInput() {
				break
			}
			if m.router.Depth() > 1 {
				return m, router.Pop
			}
			return m, nil
		}

	case screen.ToastMsg:
		m.toast = msg.Text
		m.toastErr = msg.Err
		m.toastID++
		id := m.toastID
		if msg.Err {
			m.env.Log().Debug("toast", zap.String("text", msg.Text))
		}
		cmd := m.router.Update(msg)
		return m, tea.Batch(cmd, tea.Tick(ToastDuration, func(time.Time) tea.Msg {
			return clearToastMsg{id: id}
		}))

	case clearToastMsg:
		if msg.id == m.toastID {
			m.toast = ""
		}
		return m, nil

	case notificationMsg:
		return m, tea.Batch(
			func() tea.Msg { return screen.ToastMsg{Text: "🔔 " + msg.Body} },
			m.waitForNotification(),
		)
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the whole frame as a string.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	r := m.env.Record()
	sum := progress.Summarize(r, m.env.Curriculum.Weeks())
	header := layout.RenderHeader(title, fmt.Sprintf("%s · Day %d", r.CurrentWeek, r.CurrentDay),
		sum.Completed, sum.Total, m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)
	if m.toast != "" {
		footer = layout.RenderToast(m.toast, m.toastErr, m.width) + "\n" + footer
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program and blocks until the user quits or
// ctx is cancelled.
func Run(ctx context.Context, env *screen.Env, opts Options) error {
	p := tea.NewProgram(newAppModel(env, opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
