package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/pylearn/internal/ui/theme"
)

// Button is a dialog button. Enter presses it while it is active; Key,
// when set, focuses and presses it from anywhere in the dialog.
type Button struct {
	Label   string
	Key     string
	Active  bool
	Danger  bool
	OnPress func() tea.Cmd
}

// NewButton creates a button.
func NewButton(label string, active bool, onPress func() tea.Cmd) Button {
	return Button{
		Label:   label,
		Active:  active,
		OnPress: onPress,
	}
}

func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return b, nil
	}
	switch k := kmsg.String(); {
	case b.Key != "" && k == b.Key:
		b.Active = true
	case k == "enter" && b.Active:
	default:
		return b, nil
	}
	if b.OnPress == nil {
		return b, nil
	}
	return b, b.OnPress()
}

func (b Button) View() string {
	label := b.Label
	if b.Key != "" {
		label += " [" + b.Key + "]"
	}
	switch {
	case b.Active && b.Danger:
		return theme.ButtonDanger.Render(label)
	case b.Active:
		return theme.ButtonActive.Render(label)
	}
	return theme.ButtonInactive.Render(label)
}
