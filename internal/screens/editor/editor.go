// Package editor is the code editor with its output pane.
package editor

import (
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/pylearn/internal/runner"
	"github.com/abhisek/pylearn/internal/screen"
	"github.com/abhisek/pylearn/internal/tutor"
	"github.com/abhisek/pylearn/internal/ui/components"
	"github.com/abhisek/pylearn/internal/ui/layout"
	"github.com/abhisek/pylearn/internal/ui/theme"
)

type runDoneMsg struct {
	Result runner.Result
}

type hintMsg struct {
	Text string
	Err  error
}

// EditorScreen lets the learner write, run and save a snippet.
type EditorScreen struct {
	env  *screen.Env
	week string
	day  int

	code       textarea.Model
	transcript *runner.Transcript
	running    bool

	naming   bool
	filename components.TextInput

	hinting  bool
	hint     string
	lastFail runner.Result
}

var _ screen.Screen = (*EditorScreen)(nil)
var _ screen.KeyHintProvider = (*EditorScreen)(nil)
var _ screen.InputCapturer = (*EditorScreen)(nil)

// New creates an editor bound to week/day. An empty week means a free
// scratch session.
func New(env *screen.Env, week string, day int) *EditorScreen {
	ta := textarea.New()
	ta.ShowLineNumbers = true
	ta.Placeholder = "print(\"Hello, world!\")"
	ta.SetValue(runner.DefaultSource)
	ta.Focus()

	return &EditorScreen{
		env:        env,
		week:       week,
		day:        day,
		code:       ta,
		transcript: runner.NewTranscript(),
	}
}

func (s *EditorScreen) Init() tea.Cmd {
	return s.code.Focus()
}

func (s *EditorScreen) Title() string {
	if s.week == "" {
		return "Editor"
	}
	return fmt.Sprintf("Editor · %s · Day %d", s.week, s.day)
}

func (s *EditorScreen) KeyHints() []layout.KeyHint {
	if s.naming {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "Ctrl+R", Description: "Run"},
		{Key: "Ctrl+S", Description: "Save"},
		{Key: "Ctrl+L", Description: "Clear output"},
	}
	if s.env.Tutor.Enabled() {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+T", Description: "Hint"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

// CapturingInput keeps Esc inside the screen while a file name is typed.
func (s *EditorScreen) CapturingInput() bool {
	return s.naming
}

// Source returns the editor contents.
func (s *EditorScreen) Source() string {
	return s.code.Value()
}

// SetSource replaces the editor contents.
func (s *EditorScreen) SetSource(src string) {
	s.code.SetValue(src)
}

// Output returns the output pane text.
func (s *EditorScreen) Output() string {
	return s.transcript.String()
}

// Running reports whether a run is in flight.
func (s *EditorScreen) Running() bool {
	return s.running
}

func (s *EditorScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case runDoneMsg:
		s.running = false
		s.transcript.Append(msg.Result)
		if msg.Result.Err != nil {
			s.lastFail = msg.Result
		} else {
			s.lastFail = runner.Result{}
		}
		return s, nil

	case hintMsg:
		s.hinting = false
		if msg.Err != nil {
			return s, func() tea.Msg { return screen.ToastMsg{Text: "Could not get a hint", Err: true} }
		}
		s.hint = msg.Text
		return s, nil

	case tea.KeyPressMsg:
		if s.naming {
			return s.updateNaming(msg)
		}
		switch msg.String() {
		case "ctrl+r":
			return s, s.run()
		case "ctrl+l":
			s.transcript.Clear()
			s.hint = ""
			return s, nil
		case "ctrl+s":
			s.naming = true
			s.filename = components.NewTextInput(s.defaultName(), 64)
			s.filename.Model.SetValue(s.defaultName())
			s.code.Blur()
			return s, s.filename.Init()
		case "ctrl+t":
			return s, s.askHint()
		}
	}

	var cmd tea.Cmd
	s.code, cmd = s.code.Update(msg)
	return s, cmd
}

func (s *EditorScreen) updateNaming(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.naming = false
		return s, s.code.Focus()
	case "enter":
		name := s.filename.Value()
		path, err := runner.SaveScript(s.env.ScriptsDir, name, s.code.Value())
		if err != nil {
			s.env.Log().Warn("save script failed", zap.String("name", name), zap.Error(err))
			text := "Could not save file"
			if errors.Is(err, runner.ErrEmptyName) {
				text = "Enter a file name"
			}
			s.filename.Submit(false)
			return s, func() tea.Msg { return screen.ToastMsg{Text: text, Err: true} }
		}
		s.naming = false
		return s, tea.Batch(s.code.Focus(), screen.Toast("Saved to "+path))
	}
	var cmd tea.Cmd
	s.filename, cmd = s.filename.Update(msg)
	return s, cmd
}

func (s *EditorScreen) defaultName() string {
	if s.week == "" {
		return "scratch.py"
	}
	w := strings.ToLower(strings.ReplaceAll(s.week, " ", ""))
	return fmt.Sprintf("%s_day%d.py", w, s.day)
}

func (s *EditorScreen) run() tea.Cmd {
	ch, err := s.env.Runner.Submit(s.env.Context(), runner.Request{
		Source: s.code.Value(),
		Week:   s.week,
		Day:    s.day,
	})
	if err != nil {
		return func() tea.Msg { return screen.ToastMsg{Text: err.Error(), Err: true} }
	}
	s.running = true
	s.hint = ""
	s.transcript.Begin()
	return func() tea.Msg {
		return runDoneMsg{Result: <-ch}
	}
}

func (s *EditorScreen) askHint() tea.Cmd {
	if !s.env.Tutor.Enabled() {
		return screen.Toast("Hints need an AI provider key")
	}
	if s.hinting {
		return nil
	}
	s.hinting = true
	req := tutor.HintRequest{
		Week:   s.week,
		Lesson: s.env.Curriculum.DayInfo(s.week, s.day),
		Source: s.code.Value(),
		Output: s.lastFail.Display(),
	}
	if s.lastFail.Err == nil {
		req.Output = ""
	}
	ctx := s.env.Context()
	t := s.env.Tutor
	return func() tea.Msg {
		text, err := t.Hint(ctx, req)
		return hintMsg{Text: text, Err: err}
	}
}

func (s *EditorScreen) View(width, height int) string {
	paneWidth := max(width-4, 20)
	codeHeight := max(height/2-2, 5)

	s.code.SetWidth(paneWidth - 4)
	s.code.SetHeight(codeHeight)

	codeStyle := theme.FocusedPane
	if s.naming {
		codeStyle = theme.Pane
	}
	codePane := codeStyle.Width(paneWidth).Render(s.code.View())

	status := ""
	switch {
	case s.running:
		status = theme.Current.Render("Running...")
	case s.hinting:
		status = theme.Current.Render("Thinking about a hint...")
	}

	outHeight := max(height-lipgloss.Height(codePane)-4, 3)
	out := tail(s.transcript.String(), outHeight)
	if s.hint != "" {
		out = tail(out+"\n"+theme.Label.Render("Hint: ")+s.hint, outHeight)
	}
	outPane := theme.Pane.Width(paneWidth).Render(lipgloss.NewStyle().Foreground(theme.Text).Render(out))

	parts := []string{codePane}
	if s.naming {
		parts = append(parts, "  "+theme.Label.Render("Save as: ")+s.filename.View())
	} else if status != "" {
		parts = append(parts, "  "+status)
	}
	parts = append(parts, outPane)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// tail keeps the last n lines of s.
func tail(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
