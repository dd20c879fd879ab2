package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	signUpName = iota
	signUpEmail
	signUpPassword
	signUpConfirm
)

type signUpModel struct {
	form    formInputs
	request requestState
	errMsg  string
}

func newSignUpModel() signUpModel {
	return signUpModel{
		form: newFormInputs(
			newTextInput("opcional", 100),
			newTextInput("correo@ejemplo.com", 254),
			newPasswordInput("contraseña"),
			newPasswordInput("repetir contraseña"),
		),
	}
}

func (m *signUpModel) failed(err error) {
	m.request = requestDone(err)
	m.errMsg = signUpErrorMessage(err)
}

func (m signUpModel) View() string {
	var b strings.Builder
	b.WriteString(m.form.row(signUpName, "Nombre completo", 22))
	b.WriteString("\n")
	b.WriteString(m.form.row(signUpEmail, "Email", 22))
	b.WriteString("\n")
	b.WriteString(m.form.row(signUpPassword, "Contraseña", 22))
	b.WriteString("\n")
	b.WriteString(m.form.row(signUpConfirm, "Confirmar contraseña", 22))

	status := inlineMessage(m.errMsg, "")
	if m.request.inFlight() {
		status = "Creando..."
	}
	if status != "" {
		b.WriteString("\n\n")
		b.WriteString(status)
	}

	return renderPage("Crear cuenta", b.String(), "enter: crear cuenta  tab: siguiente campo  esc: volver")
}

func (m appModel) updateSignUp(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, m.signUp.form.update(msg)
	}
	if m.signUp.request.inFlight() {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.esc):
		m.currentScreen = screenLogin
		return m, nil
	case key.Matches(keyMsg, keys.nextField):
		m.signUp.form.focusNext()
		return m, nil
	case key.Matches(keyMsg, keys.prevField):
		m.signUp.form.focusPrev()
		return m, nil
	case key.Matches(keyMsg, keys.enter):
		name := m.signUp.form.value(signUpName)
		email := m.signUp.form.value(signUpEmail)
		password := m.signUp.form.secret(signUpPassword)
		if email == "" || password == "" {
			m.signUp.errMsg = msgSignUpMissing
			return m, nil
		}
		if password != m.signUp.form.secret(signUpConfirm) {
			m.signUp.errMsg = msgPasswordsDiffer
			return m, nil
		}
		m.signUp.errMsg = ""
		m.signUp.request = startRequest()
		return m, m.cmdSignUp(name, email, password)
	}

	return m, m.signUp.form.update(msg)
}

func (m appModel) cmdSignUp(name, email, password string) tea.Cmd {
	ctx := m.ctx
	gw := m.services.Gateway

	return func() tea.Msg {
		identity, err := gw.SignUp(ctx, name, email, password)
		return signedInMsg{identity: identity, err: err}
	}
}
