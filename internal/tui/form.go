package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const inputWidth = 40

// formInputs is a column of text inputs with exactly one focused.
type formInputs struct {
	inputs []textinput.Model
	focus  int
}

func newFormInputs(inputs ...textinput.Model) formInputs {
	f := formInputs{inputs: inputs}
	if len(f.inputs) > 0 {
		f.inputs[0].Focus()
	}
	return f
}

func newTextInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Width = inputWidth
	return in
}

func newPasswordInput(placeholder string) textinput.Model {
	in := newTextInput(placeholder, 256)
	in.EchoMode = textinput.EchoPassword
	in.EchoCharacter = '*'
	return in
}

func (f *formInputs) focusNext() {
	f.setFocus((f.focus + 1) % len(f.inputs))
}

func (f *formInputs) focusPrev() {
	f.setFocus((f.focus - 1 + len(f.inputs)) % len(f.inputs))
}

func (f *formInputs) setFocus(i int) {
	f.inputs[f.focus].Blur()
	f.focus = i
	f.inputs[f.focus].Focus()
}

// update forwards msg to the focused input.
func (f *formInputs) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// value returns the trimmed text of input i.
func (f formInputs) value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

// secret returns the text of input i as typed.
func (f formInputs) secret(i int) string {
	return f.inputs[i].Value()
}

func (f formInputs) row(i int, label string, labelWidth int) string {
	pad := labelWidth - len([]rune(label))
	if pad < 1 {
		pad = 1
	}
	return label + strings.Repeat(" ", pad) + "[" + f.inputs[i].View() + "]"
}
