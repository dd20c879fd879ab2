package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/refugiapp/refugiapp/internal/gateway"
	"github.com/refugiapp/refugiapp/internal/logger"
	"github.com/refugiapp/refugiapp/internal/service"
	"github.com/refugiapp/refugiapp/models"
)

type screen int

const (
	screenLogin screen = iota
	screenSignUp
	screenHome
	screenResidentForm
	screenReports
	screenBuildInfo

	// screenLogout is a navigation target only: it opens the sign-out
	// confirmation over the current screen.
	screenLogout
)

type appModel struct {
	ctx       context.Context
	services  *service.ClientServices
	buildInfo models.AppBuildInfo
	logger    *logger.Logger

	currentScreen screen
	identity      *models.Identity

	login    loginModel
	signUp   signUpModel
	home     homeModel
	resident residentFormModel
	reports  reportsModel

	showConfirm bool
	confirm     confirmModel

	feed        *itemFeed
	unsubscribe gateway.Unsubscribe

	quit bool
}

func newAppModel(ctx context.Context, services *service.ClientServices, buildInfo models.AppBuildInfo, logger *logger.Logger) appModel {
	return appModel{
		ctx:           ctx,
		services:      services,
		buildInfo:     buildInfo,
		logger:        logger,
		currentScreen: screenLogin,
		login:         newLoginModel(),
		signUp:        newSignUpModel(),
		resident:      newResidentFormModel(),
		confirm:       confirmModel{message: "¿Cerrar sesión?"},
	}
}

func (m appModel) Init() tea.Cmd {
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.quit) {
			m.quit = true
			return m, tea.Quit
		}
		if m.showConfirm {
			return m.updateConfirm(msg)
		}
	case signedInMsg:
		return m.handleSignedIn(msg)
	case signedOutMsg:
		return m.handleSignedOut(msg)
	case resetSentMsg:
		return m.handleResetSent(msg)
	case subscribedMsg:
		return m.handleSubscribed(msg)
	case itemsMsg:
		if msg.feed != m.feed {
			return m, nil
		}
		m.home.items = msg.items
		return m, waitForItems(m.feed)
	case residentSavedMsg:
		return m.handleResidentSaved(msg)
	case reportsLoadedMsg:
		m.reports.loaded(msg.reports)
		return m, nil
	case exportDoneMsg:
		m.reports.finished(msg.result, msg.err)
		if msg.err != nil {
			m.logger.Warn().Err(msg.err).Str("func", "appModel.Update").Msg("export failed")
		}
		return m, nil
	case tea.WindowSizeMsg:
		return m, nil
	}

	switch m.currentScreen {
	case screenLogin:
		return m.updateLogin(msg)
	case screenSignUp:
		return m.updateSignUp(msg)
	case screenHome:
		return m.updateHome(msg)
	case screenResidentForm:
		return m.updateResidentForm(msg)
	case screenReports:
		return m.updateReports(msg)
	case screenBuildInfo:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, keys.esc) {
			m.currentScreen = screenHome
		}
		return m, nil
	}

	return m, nil
}

func (m appModel) View() string {
	var body string
	switch m.currentScreen {
	case screenLogin:
		body = m.login.View()
	case screenSignUp:
		body = m.signUp.View()
	case screenHome:
		body = m.home.View(m.identity)
	case screenResidentForm:
		body = m.resident.View()
	case screenReports:
		body = m.reports.View()
	case screenBuildInfo:
		body = renderBuildInfoWindow(m.buildInfo)
	}

	if m.authenticated() && m.currentScreen != screenBuildInfo {
		body += "\n\n" + navBar(m.currentScreen)
	}
	if m.showConfirm {
		body += "\n\n" + m.confirm.View()
	}

	return appStyle.Render(body)
}

func (m appModel) authenticated() bool {
	return m.identity != nil
}

// navigate switches between the screens of the navigation bar.
func (m appModel) navigate(target screen) (tea.Model, tea.Cmd) {
	switch target {
	case screenLogout:
		m.showConfirm = true
		return m, nil
	case screenResidentForm:
		m.currentScreen = screenResidentForm
		m.resident.form.setFocus(0)
		return m, nil
	case screenReports:
		m.currentScreen = screenReports
		m.reports.startLoading()
		return m, m.cmdLoadReports()
	default:
		m.currentScreen = target
		return m, nil
	}
}

// updateNav handles the navigation bar keys. handled is false when msg is
// not one of them.
func (m appModel) updateNav(msg tea.KeyMsg, nav navKeyMap) (model tea.Model, cmd tea.Cmd, handled bool) {
	switch {
	case key.Matches(msg, nav.home):
		model, cmd = m.navigate(screenHome)
	case key.Matches(msg, nav.register):
		model, cmd = m.navigate(screenResidentForm)
	case key.Matches(msg, nav.reports):
		model, cmd = m.navigate(screenReports)
	case key.Matches(msg, nav.logout):
		model, cmd = m.navigate(screenLogout)
	default:
		return m, nil, false
	}
	return model, cmd, true
}

func (m appModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.yes):
		m.showConfirm = false
		m.stopSubscription()
		return m, m.cmdSignOut()
	case key.Matches(msg, keys.no), key.Matches(msg, keys.esc):
		m.showConfirm = false
	}
	return m, nil
}

func (m appModel) handleSignedIn(msg signedInMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Warn().Err(msg.err).Str("func", "appModel.handleSignedIn").Msg("sign-in failed")
		if m.currentScreen == screenSignUp {
			m.signUp.failed(msg.err)
		} else {
			m.login.failed(msg.err, msg.federated)
		}
		return m, nil
	}

	identity := msg.identity
	m.identity = &identity
	m.login = newLoginModel()
	m.signUp = newSignUpModel()
	m.resident = newResidentFormModel()
	m.home = homeModel{}
	m.reports = reportsModel{}
	m.currentScreen = screenHome

	m.logger.Info().Str("func", "appModel.handleSignedIn").Str("user", identity.ID).Msg("signed in")
	return m, m.cmdSubscribeItems()
}

func (m appModel) handleSignedOut(msg signedOutMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Warn().Err(msg.err).Str("func", "appModel.handleSignedOut").Msg("sign-out failed")
	}

	m.identity = nil
	m.login = newLoginModel()
	m.home = homeModel{}
	m.reports = reportsModel{}
	m.currentScreen = screenLogin
	return m, nil
}

func (m appModel) handleSubscribed(msg subscribedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Warn().Err(msg.err).Str("func", "appModel.handleSubscribed").Msg("items subscription failed")
		m.home.errMsg = humanizeServerUnavailableError(msg.err, msgItemsFailed)
		return m, nil
	}

	if !m.authenticated() {
		msg.unsubscribe()
		msg.feed.stop()
		return m, nil
	}

	m.stopSubscription()
	m.feed = msg.feed
	m.unsubscribe = msg.unsubscribe
	return m, waitForItems(m.feed)
}

// stopSubscription ends the item subscription, if any. The pending
// waitForItems command returns once the feed is stopped; late callbacks
// are dropped.
func (m *appModel) stopSubscription() {
	if m.unsubscribe == nil {
		return
	}
	m.unsubscribe()
	m.feed.stop()
	m.unsubscribe = nil
	m.feed = nil
}

func (m appModel) cmdSignOut() tea.Cmd {
	ctx := m.ctx
	gw := m.services.Gateway

	return func() tea.Msg {
		return signedOutMsg{err: gw.SignOut(ctx)}
	}
}

func (m appModel) cmdSubscribeItems() tea.Cmd {
	ctx := m.ctx
	gw := m.services.Gateway

	return func() tea.Msg {
		feed := newItemFeed()
		unsubscribe, err := gw.SubscribeItems(ctx, feed.offer)
		if err != nil {
			feed.stop()
			return subscribedMsg{err: err}
		}
		return subscribedMsg{feed: feed, unsubscribe: unsubscribe}
	}
}
