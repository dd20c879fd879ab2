// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/refugiapp/refugiapp/internal/gateway"
)

const (
	loginEmail = iota
	loginPassword
	loginAssertion
)

// loginModel is the sign-in screen: email and password, plus the assertion
// pasted from the Google sign-in page for the federated flow.
type loginModel struct {
	form    formInputs
	request requestState

	// mismatch is set when the email belongs to a Google-only account; the
	// screen then offers the reset email and the Google sign-in.
	mismatch bool
	errMsg   string
	notice   string
}

func newLoginModel() loginModel {
	return loginModel{
		form: newFormInputs(
			newTextInput("correo@ejemplo.com", 254),
			newPasswordInput("contraseña"),
			newTextInput("token de Google (opcional)", 4096),
		),
	}
}

func (m *loginModel) failed(err error, federated bool) {
	m.request = requestDone(err)
	m.notice = ""
	m.errMsg = signInErrorMessage(err, federated)

	var mismatch *gateway.AccountProviderMismatch
	m.mismatch = errors.As(err, &mismatch) && mismatch.CanResetPassword
}

func (m loginModel) View() string {
	var b strings.Builder
	b.WriteString(m.form.row(loginEmail, "Usuario (Email)", 20))
	b.WriteString("\n")
	b.WriteString(m.form.row(loginPassword, "Contraseña", 20))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("Iniciar con Google"))
	b.WriteString("\n")
	b.WriteString(m.form.row(loginAssertion, "Token", 20))

	status := inlineMessage(m.errMsg, m.notice)
	if m.request.inFlight() {
		status = "Ingresando..."
	}
	if status != "" {
		b.WriteString("\n\n")
		b.WriteString(status)
	}

	hotKeys := "enter: ingresar  ctrl+g: ingresar con Google  ctrl+n: registrarse  ctrl+r: restablecer contraseña  tab: siguiente campo"
	if m.mismatch {
		hotKeys = "ctrl+r: enviar correo de restablecimiento  ctrl+g: ingresar con Google  tab: siguiente campo"
	}
	return renderPage("Iniciar Sesión", b.String(), hotKeys)
}

func (m appModel) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, m.login.form.update(msg)
	}
	if m.login.request.inFlight() {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.nextField):
		m.login.form.focusNext()
		return m, nil
	case key.Matches(keyMsg, keys.prevField):
		m.login.form.focusPrev()
		return m, nil
	case key.Matches(keyMsg, keys.signUp):
		m.signUp = newSignUpModel()
		m.currentScreen = screenSignUp
		return m, nil
	case key.Matches(keyMsg, keys.enter):
		email := m.login.form.value(loginEmail)
		password := m.login.form.secret(loginPassword)
		if email == "" || password == "" {
			m.login.errMsg = msgMissingCredentials
			m.login.notice = ""
			return m, nil
		}
		m.login.errMsg, m.login.notice = "", ""
		m.login.request = startRequest()
		return m, m.cmdSignIn(email, password)
	case key.Matches(keyMsg, keys.google):
		if m.services.Identity != nil {
			m.services.Identity.Provide(m.login.form.value(loginAssertion))
		}
		m.login.errMsg, m.login.notice = "", ""
		m.login.request = startRequest()
		return m, m.cmdSignInInteractive()
	case key.Matches(keyMsg, keys.reset):
		email := m.login.form.value(loginEmail)
		if email == "" {
			m.login.errMsg = msgMissingEmail
			m.login.notice = ""
			return m, nil
		}
		m.login.errMsg, m.login.notice = "", ""
		m.login.request = startRequest()
		return m, m.cmdSendPasswordReset(email)
	}

	return m, m.login.form.update(msg)
}

func (m appModel) handleResetSent(msg resetSentMsg) (tea.Model, tea.Cmd) {
	m.login.request = requestDone(msg.err)
	if msg.err != nil {
		m.logger.Warn().Err(msg.err).Str("func", "appModel.handleResetSent").Msg("password reset failed")
		m.login.errMsg = humanizeServerUnavailableError(msg.err, msgResetFailed)
		m.login.notice = ""
		return m, nil
	}

	m.login.mismatch = false
	m.login.errMsg = ""
	m.login.notice = msgResetSent
	return m, nil
}

func (m appModel) cmdSignIn(email, password string) tea.Cmd {
	ctx := m.ctx
	gw := m.services.Gateway

	return func() tea.Msg {
		identity, err := gw.SignInWithPassword(ctx, email, password)
		return signedInMsg{identity: identity, err: err}
	}
}

func (m appModel) cmdSignInInteractive() tea.Cmd {
	ctx := m.ctx
	gw := m.services.Gateway

	return func() tea.Msg {
		identity, err := gw.SignInInteractive(ctx)
		return signedInMsg{identity: identity, federated: true, err: err}
	}
}

func (m appModel) cmdSendPasswordReset(email string) tea.Cmd {
	ctx := m.ctx
	gw := m.services.Gateway

	return func() tea.Msg {
		return resetSentMsg{err: gw.SendPasswordReset(ctx, email)}
	}
}
