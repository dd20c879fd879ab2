package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/refugiapp/refugiapp/internal/export"
	"github.com/refugiapp/refugiapp/internal/gateway"
	"github.com/refugiapp/refugiapp/internal/logger"
	"github.com/refugiapp/refugiapp/internal/service"
	"github.com/refugiapp/refugiapp/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── fakes ──

type fakeGateway struct {
	gateway.Gateway

	mu sync.Mutex

	identity  models.Identity
	signInErr error
	createErr error
	resetErr  error
	signUpErr error

	signInCalls  int
	created      []models.Resident
	resetEmails  []string
	onChange     func([]models.Item)
	unsubscribed bool
	signedOut    bool
}

func (g *fakeGateway) SignInWithPassword(_ context.Context, email, _ string) (models.Identity, error) {
	g.signInCalls++
	if g.signInErr != nil {
		return models.Identity{}, g.signInErr
	}
	id := g.identity
	id.Email = email
	return id, nil
}

func (g *fakeGateway) SignInInteractive(context.Context) (models.Identity, error) {
	if g.signInErr != nil {
		return models.Identity{}, g.signInErr
	}
	return g.identity, nil
}

func (g *fakeGateway) SignUp(_ context.Context, displayName, email, _ string) (models.Identity, error) {
	if g.signUpErr != nil {
		return models.Identity{}, g.signUpErr
	}
	return models.Identity{ID: "new", Email: email, DisplayName: displayName}, nil
}

func (g *fakeGateway) SignOut(context.Context) error {
	g.signedOut = true
	return nil
}

func (g *fakeGateway) SendPasswordReset(_ context.Context, email string) error {
	g.resetEmails = append(g.resetEmails, email)
	return g.resetErr
}

func (g *fakeGateway) CreateResident(_ context.Context, r models.Resident) error {
	if g.createErr != nil {
		return g.createErr
	}
	g.created = append(g.created, r)
	return nil
}

func (g *fakeGateway) SubscribeItems(_ context.Context, onChange func([]models.Item)) (gateway.Unsubscribe, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onChange = onChange
	return func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		g.unsubscribed = true
	}, nil
}

type fakeExport struct {
	reports []models.Report
	result  models.ExportResult
	err     error

	exported   []string
	downloaded []string
}

func (e *fakeExport) ListReports(context.Context) []models.Report {
	return e.reports
}

func (e *fakeExport) ExportResidents(context.Context) (models.ExportResult, error) {
	e.exported = append(e.exported, residentsReportTitle)
	return e.result, e.err
}

func (e *fakeExport) ExportReport(_ context.Context, r models.Report) (models.ExportResult, error) {
	e.exported = append(e.exported, r.Title)
	return e.result, e.err
}

func (e *fakeExport) DownloadReport(_ context.Context, r models.Report, _ string) (models.ExportResult, error) {
	e.downloaded = append(e.downloaded, r.Title)
	return e.result, e.err
}

// ── helpers ──

func newTestModel(gw *fakeGateway, exp *fakeExport) appModel {
	services := &service.ClientServices{
		Gateway:       gw,
		ExportService: exp,
		Identity:      gateway.NewPendingAssertion(),
	}
	return newAppModel(context.Background(), services, models.NewAppBuildInfo("1.2.3", "", ""), logger.Nop())
}

func press(t *testing.T, m appModel, msg tea.KeyMsg) (appModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(appModel)
	require.True(t, ok)
	return model, cmd
}

// deliver runs cmd and feeds its message back into the model.
func deliver(t *testing.T, m appModel, cmd tea.Cmd) (appModel, tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	next, nextCmd := m.Update(cmd())
	model, ok := next.(appModel)
	require.True(t, ok)
	return model, nextCmd
}

func keyType(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func signedIn(t *testing.T, gw *fakeGateway, exp *fakeExport) appModel {
	t.Helper()
	m := newTestModel(gw, exp)
	m.login.form.inputs[loginEmail].SetValue("ana@example.com")
	m.login.form.inputs[loginPassword].SetValue("secret")

	m, cmd := press(t, m, keyType(tea.KeyEnter))
	m, _ = deliver(t, m, cmd)
	require.Equal(t, screenHome, m.currentScreen)
	return m
}

// ── login ──

func TestLogin_RequiresCredentials(t *testing.T) {
	gw := &fakeGateway{}
	m := newTestModel(gw, &fakeExport{})

	m, cmd := press(t, m, keyType(tea.KeyEnter))

	assert.Nil(t, cmd)
	assert.Equal(t, msgMissingCredentials, m.login.errMsg)
	assert.Equal(t, 0, gw.signInCalls)
}

func TestLogin_SuccessGoesHomeAndSubscribes(t *testing.T) {
	gw := &fakeGateway{identity: models.Identity{ID: "1", DisplayName: "Ana"}}
	m := newTestModel(gw, &fakeExport{})
	m.login.form.inputs[loginEmail].SetValue("  ana@example.com ")
	m.login.form.inputs[loginPassword].SetValue("secret")

	m, cmd := press(t, m, keyType(tea.KeyEnter))
	assert.True(t, m.login.request.inFlight())

	m, cmd = deliver(t, m, cmd)
	require.NotNil(t, m.identity)
	assert.Equal(t, "ana@example.com", m.identity.Email)
	assert.Equal(t, screenHome, m.currentScreen)
	assert.Contains(t, m.View(), "Hola, Ana")
	assert.Contains(t, m.View(), "Salir")

	m, cmd = deliver(t, m, cmd)
	require.NotNil(t, m.feed)
	require.NotNil(t, gw.onChange)

	gw.onChange([]models.Item{{ID: "i1", Title: "Frazadas"}})
	m, _ = deliver(t, m, cmd)
	require.Len(t, m.home.items, 1)
	assert.Contains(t, m.View(), "Frazadas")
}

func TestLogin_WrongCredentials(t *testing.T) {
	gw := &fakeGateway{signInErr: &gateway.AuthError{Op: "sign-in", Err: errors.New("client unauthorized")}}
	m := newTestModel(gw, &fakeExport{})
	m.login.form.inputs[loginEmail].SetValue("ana@example.com")
	m.login.form.inputs[loginPassword].SetValue("bad")

	m, cmd := press(t, m, keyType(tea.KeyEnter))
	m, _ = deliver(t, m, cmd)

	assert.Nil(t, m.identity)
	assert.Equal(t, screenLogin, m.currentScreen)
	assert.True(t, m.login.request.failed())
	assert.Equal(t, msgWrongCredentials, m.login.errMsg)
	assert.False(t, m.login.mismatch)
}

func TestLogin_ProviderMismatchOffersReset(t *testing.T) {
	gw := &fakeGateway{signInErr: &gateway.AccountProviderMismatch{Email: "ana@example.com", CanResetPassword: true}}
	m := newTestModel(gw, &fakeExport{})
	m.login.form.inputs[loginEmail].SetValue("ana@example.com")
	m.login.form.inputs[loginPassword].SetValue("secret")

	m, cmd := press(t, m, keyType(tea.KeyEnter))
	m, _ = deliver(t, m, cmd)

	assert.True(t, m.login.mismatch)
	assert.Equal(t, msgProviderMismatch, m.login.errMsg)
	assert.Contains(t, m.View(), "enviar correo de restablecimiento")

	m, cmd = press(t, m, keyType(tea.KeyCtrlR))
	m, _ = deliver(t, m, cmd)

	assert.Equal(t, []string{"ana@example.com"}, gw.resetEmails)
	assert.Equal(t, msgResetSent, m.login.notice)
	assert.Empty(t, m.login.errMsg)
	assert.False(t, m.login.mismatch)
}

func TestLogin_ResetFailure(t *testing.T) {
	gw := &fakeGateway{resetErr: &gateway.AuthError{Op: "password-reset", Err: errors.New("boom")}}
	m := newTestModel(gw, &fakeExport{})
	m.login.form.inputs[loginEmail].SetValue("ana@example.com")

	m, cmd := press(t, m, keyType(tea.KeyCtrlR))
	m, _ = deliver(t, m, cmd)

	assert.Equal(t, msgResetFailed, m.login.errMsg)
}

func TestLogin_GoogleProvidesAssertion(t *testing.T) {
	gw := &fakeGateway{identity: models.Identity{ID: "7", Email: "g@example.com", Provider: models.SignInMethodGoogle}}
	m := newTestModel(gw, &fakeExport{})
	m.login.form.inputs[loginAssertion].SetValue(" header.payload.sig ")

	m, cmd := press(t, m, keyType(tea.KeyCtrlG))

	assertion, err := m.services.Identity.Assertion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "header.payload.sig", assertion)

	m, _ = deliver(t, m, cmd)
	require.NotNil(t, m.identity)
	assert.Equal(t, "g@example.com", m.identity.Email)
}

func TestLogin_GoogleFailure(t *testing.T) {
	gw := &fakeGateway{signInErr: &gateway.AuthError{Op: "sign-in-interactive", Err: gateway.ErrNoAssertion}}
	m := newTestModel(gw, &fakeExport{})

	m, cmd := press(t, m, keyType(tea.KeyCtrlG))
	m, _ = deliver(t, m, cmd)

	assert.Equal(t, msgGoogleFailed, m.login.errMsg)
}

// ── sign-up ──

func TestSignUp_Validation(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		confirm  string
		want     string
	}{
		{name: "missing email", password: "a", confirm: "a", want: msgSignUpMissing},
		{name: "missing password", email: "a@b.c", want: msgSignUpMissing},
		{name: "passwords differ", email: "a@b.c", password: "a", confirm: "b", want: msgPasswordsDiffer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(&fakeGateway{}, &fakeExport{})
			m, _ = press(t, m, keyType(tea.KeyCtrlN))
			require.Equal(t, screenSignUp, m.currentScreen)

			m.signUp.form.inputs[signUpEmail].SetValue(tt.email)
			m.signUp.form.inputs[signUpPassword].SetValue(tt.password)
			m.signUp.form.inputs[signUpConfirm].SetValue(tt.confirm)

			m, cmd := press(t, m, keyType(tea.KeyEnter))
			assert.Nil(t, cmd)
			assert.Equal(t, tt.want, m.signUp.errMsg)
		})
	}
}

func TestSignUp_SuccessAndMismatch(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		m := newTestModel(&fakeGateway{}, &fakeExport{})
		m, _ = press(t, m, keyType(tea.KeyCtrlN))
		m.signUp.form.inputs[signUpName].SetValue("Ana")
		m.signUp.form.inputs[signUpEmail].SetValue("ana@example.com")
		m.signUp.form.inputs[signUpPassword].SetValue("secret")
		m.signUp.form.inputs[signUpConfirm].SetValue("secret")

		m, cmd := press(t, m, keyType(tea.KeyEnter))
		m, _ = deliver(t, m, cmd)

		require.NotNil(t, m.identity)
		assert.Equal(t, "Ana", m.identity.DisplayName)
		assert.Equal(t, screenHome, m.currentScreen)
	})

	t.Run("federated account", func(t *testing.T) {
		gw := &fakeGateway{signUpErr: &gateway.AccountProviderMismatch{Email: "ana@example.com"}}
		m := newTestModel(gw, &fakeExport{})
		m, _ = press(t, m, keyType(tea.KeyCtrlN))
		m.signUp.form.inputs[signUpEmail].SetValue("ana@example.com")
		m.signUp.form.inputs[signUpPassword].SetValue("secret")
		m.signUp.form.inputs[signUpConfirm].SetValue("secret")

		m, cmd := press(t, m, keyType(tea.KeyEnter))
		m, _ = deliver(t, m, cmd)

		assert.Nil(t, m.identity)
		assert.Equal(t, screenSignUp, m.currentScreen)
		assert.Equal(t, msgSignUpMismatch, m.signUp.errMsg)
	})
}

// ── resident form ──

func fillResident(m *appModel) {
	m.resident.form.inputs[0].SetValue("Juan Pérez")
	m.resident.form.inputs[1].SetValue("Juancho")
	m.resident.form.inputs[5].SetValue("Norte")
	m.resident.form.inputs[7].SetValue("duerme en la plaza")
}

func TestResidentForm_SexCyclesThroughEnum(t *testing.T) {
	m := newTestModel(&fakeGateway{}, &fakeExport{})
	m.resident.form.setFocus(residentSexField)

	m.resident.cycleSex(1)
	assert.Equal(t, string(models.Sexes[0]), m.resident.form.value(residentSexField))
	m.resident.cycleSex(1)
	assert.Equal(t, string(models.Sexes[1]), m.resident.form.value(residentSexField))
	m.resident.cycleSex(-1)
	m.resident.cycleSex(-1)
	assert.Equal(t, string(models.Sexes[len(models.Sexes)-1]), m.resident.form.value(residentSexField))
}

func TestResidentForm_RequiresFields(t *testing.T) {
	gw := &fakeGateway{identity: models.Identity{ID: "1"}}
	m := signedIn(t, gw, &fakeExport{})
	m, _ = press(t, m, keyType(tea.KeyF2))
	require.Equal(t, screenResidentForm, m.currentScreen)

	m.resident.form.inputs[0].SetValue("Juan")

	m, cmd := press(t, m, keyType(tea.KeyEnter))

	assert.Nil(t, cmd)
	assert.Equal(t, "Completá los campos obligatorios: Zona, Sexo.", m.resident.errMsg)
	assert.Empty(t, gw.created)
}

func TestResidentForm_SuccessNavigatesHome(t *testing.T) {
	gw := &fakeGateway{identity: models.Identity{ID: "1"}}
	m := signedIn(t, gw, &fakeExport{})
	m, _ = press(t, m, keyType(tea.KeyF2))
	fillResident(&m)
	m.resident.form.setFocus(residentSexField)
	m, _ = press(t, m, keyType(tea.KeyRight))
	m, _ = press(t, m, keyType(tea.KeyRight))

	m, cmd := press(t, m, keyType(tea.KeyEnter))
	require.True(t, m.resident.request.inFlight())
	m, _ = deliver(t, m, cmd)

	require.Len(t, gw.created, 1)
	got := gw.created[0]
	assert.Equal(t, "Juan Pérez", got.FullName)
	assert.Equal(t, "Juancho", got.Alias)
	assert.Equal(t, models.SexFemale, got.Sex)
	assert.Equal(t, "Norte", got.Zone)
	assert.Empty(t, got.BirthDate)

	assert.Equal(t, screenHome, m.currentScreen)
	assert.Contains(t, m.View(), msgResidentSaved)
	assert.Empty(t, m.resident.form.value(0))
}

func TestResidentForm_FailureKeepsValues(t *testing.T) {
	gw := &fakeGateway{
		identity:  models.Identity{ID: "1"},
		createErr: &gateway.PersistenceError{Op: "create-resident", Err: errors.New("write failed")},
	}
	m := signedIn(t, gw, &fakeExport{})
	m, _ = press(t, m, keyType(tea.KeyF2))
	fillResident(&m)
	m.resident.cycleSex(1)

	before := make([]string, len(residentFields))
	for i := range residentFields {
		before[i] = m.resident.form.secret(i)
	}

	m, cmd := press(t, m, keyType(tea.KeyEnter))
	m, _ = deliver(t, m, cmd)

	assert.Equal(t, screenResidentForm, m.currentScreen)
	assert.False(t, m.resident.request.inFlight())
	assert.True(t, m.resident.request.failed())
	for i := range residentFields {
		assert.Equal(t, before[i], m.resident.form.secret(i), residentFields[i].key)
	}
	assert.Equal(t, 1, strings.Count(m.View(), msgResidentFailed))
}

func TestResidentForm_IgnoresKeysWhileSaving(t *testing.T) {
	gw := &fakeGateway{identity: models.Identity{ID: "1"}}
	m := signedIn(t, gw, &fakeExport{})
	m, _ = press(t, m, keyType(tea.KeyF2))
	fillResident(&m)
	m.resident.cycleSex(1)

	m, cmd := press(t, m, keyType(tea.KeyEnter))
	require.NotNil(t, cmd)

	m, second := press(t, m, keyType(tea.KeyEnter))
	assert.Nil(t, second)
	m, _ = press(t, m, runes("x"))
	assert.Equal(t, "Juan Pérez", m.resident.form.value(0))
}

// ── reports ──

func TestReports_LoadsOnEntry(t *testing.T) {
	exp := &fakeExport{reports: []models.Report{{ID: "r1", Title: "Por zona"}}}
	m := signedIn(t, &fakeGateway{identity: models.Identity{ID: "1"}}, exp)

	m, cmd := press(t, m, keyType(tea.KeyF3))
	require.Equal(t, screenReports, m.currentScreen)
	assert.True(t, m.reports.loading)
	assert.Contains(t, m.View(), "Cargando...")

	m, _ = deliver(t, m, cmd)
	assert.False(t, m.reports.loading)
	view := m.View()
	assert.Contains(t, view, residentsReportTitle)
	assert.Contains(t, view, "Por zona")
}

func TestReports_ExportResidents(t *testing.T) {
	tests := []struct {
		name   string
		result models.ExportResult
		err    error
		want   string
	}{
		{
			name:   "saved",
			result: models.ExportResult{Path: "/tmp/habitantes.csv", Rows: 2},
			want:   "Reporte guardado en /tmp/habitantes.csv (2 filas)",
		},
		{name: "empty", result: models.ExportResult{Empty: true}, want: msgNothingToExport},
		{
			name: "save error",
			err:  &export.ExportError{Op: "save", Name: "habitantes.csv", Err: errors.New("disk full")},
			want: msgSaveFailed,
		},
		{
			name: "fetch error",
			err:  &export.ExportError{Op: "fetch", Name: "habitantes", Err: errors.New("boom")},
			want: msgExportFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exp := &fakeExport{result: tt.result, err: tt.err}
			m := signedIn(t, &fakeGateway{identity: models.Identity{ID: "1"}}, exp)
			m, cmd := press(t, m, keyType(tea.KeyF3))
			m, _ = deliver(t, m, cmd)

			m, cmd = press(t, m, runes("e"))
			m, _ = deliver(t, m, cmd)

			assert.Equal(t, []string{residentsReportTitle}, exp.exported)
			assert.Contains(t, m.View(), tt.want)
		})
	}
}

func TestReports_ServerReportActions(t *testing.T) {
	exp := &fakeExport{
		reports: []models.Report{{ID: "r1", Title: "Por zona"}},
		result:  models.ExportResult{Path: "/tmp/Por_zona.xlsx"},
	}
	m := signedIn(t, &fakeGateway{identity: models.Identity{ID: "1"}}, exp)
	m, cmd := press(t, m, keyType(tea.KeyF3))
	m, _ = deliver(t, m, cmd)

	m, cmd = press(t, m, runes("d"))
	assert.Nil(t, cmd)
	assert.Equal(t, msgDownloadOnly, m.reports.errMsg)

	m, _ = press(t, m, keyType(tea.KeyDown))
	m, cmd = press(t, m, runes("d"))
	m, _ = deliver(t, m, cmd)
	assert.Equal(t, []string{"Por zona"}, exp.downloaded)
	assert.Contains(t, m.View(), "Reporte guardado en /tmp/Por_zona.xlsx")

	m, cmd = press(t, m, keyType(tea.KeyEnter))
	m, _ = deliver(t, m, cmd)
	assert.Equal(t, []string{"Por zona"}, exp.exported)
}

func TestReports_RefreshReplacesList(t *testing.T) {
	exp := &fakeExport{}
	m := signedIn(t, &fakeGateway{identity: models.Identity{ID: "1"}}, exp)
	m, cmd := press(t, m, keyType(tea.KeyF3))
	m, _ = deliver(t, m, cmd)
	assert.Contains(t, m.View(), "no hay reportes en el servidor")

	exp.reports = []models.Report{{ID: "r2", Title: "Nuevo"}}
	m, cmd = press(t, m, runes("r"))
	m, _ = deliver(t, m, cmd)
	assert.Contains(t, m.View(), "Nuevo")
}

// ── navigation ──

func TestNavBar_OnlyWhenAuthenticated(t *testing.T) {
	m := newTestModel(&fakeGateway{identity: models.Identity{ID: "1"}}, &fakeExport{})
	assert.NotContains(t, m.View(), "F4 Salir")

	m = signedIn(t, &fakeGateway{identity: models.Identity{ID: "1"}}, &fakeExport{})
	assert.Contains(t, m.View(), "F4 Salir")
}

func TestNav_DigitsOnlyOutsideForms(t *testing.T) {
	m := signedIn(t, &fakeGateway{identity: models.Identity{ID: "1"}}, &fakeExport{})

	m, _ = press(t, m, runes("2"))
	require.Equal(t, screenResidentForm, m.currentScreen)

	m, _ = press(t, m, runes("1"))
	assert.Equal(t, screenResidentForm, m.currentScreen)
	assert.Equal(t, "1", m.resident.form.value(0))

	m, _ = press(t, m, keyType(tea.KeyF1))
	assert.Equal(t, screenHome, m.currentScreen)
}

func TestLogout_ConfirmStopsSubscription(t *testing.T) {
	gw := &fakeGateway{identity: models.Identity{ID: "1"}}
	m := newTestModel(gw, &fakeExport{})
	m.login.form.inputs[loginEmail].SetValue("ana@example.com")
	m.login.form.inputs[loginPassword].SetValue("secret")
	m, cmd := press(t, m, keyType(tea.KeyEnter))
	m, cmd = deliver(t, m, cmd)
	m, wait := deliver(t, m, cmd)
	require.NotNil(t, m.unsubscribe)

	m, cmd = press(t, m, keyType(tea.KeyF4))
	assert.Nil(t, cmd)
	assert.True(t, m.showConfirm)

	m, cmd = press(t, m, runes("n"))
	assert.Nil(t, cmd)
	assert.False(t, m.showConfirm)

	m, _ = press(t, m, keyType(tea.KeyF4))
	m, cmd = press(t, m, runes("s"))
	assert.True(t, gw.unsubscribed)
	assert.Nil(t, m.unsubscribe)
	assert.Nil(t, wait(), "pending item wait returns once the feed stops")

	m, _ = deliver(t, m, cmd)
	assert.True(t, gw.signedOut)
	assert.Nil(t, m.identity)
	assert.Equal(t, screenLogin, m.currentScreen)
}

func TestQuit(t *testing.T) {
	m := newTestModel(&fakeGateway{}, &fakeExport{})

	m, cmd := press(t, m, keyType(tea.KeyCtrlC))

	assert.True(t, m.quit)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestItemFeed_KeepsLatest(t *testing.T) {
	feed := newItemFeed()

	feed.offer([]models.Item{{ID: "a"}})
	feed.offer([]models.Item{{ID: "b"}})

	got := <-feed.updates
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)
}

func TestItemFeed_DropsAfterStop(t *testing.T) {
	feed := newItemFeed()
	feed.stop()
	feed.stop()

	assert.NotPanics(t, func() { feed.offer([]models.Item{{ID: "late"}}) })
	assert.Len(t, feed.updates, 0)
	assert.Nil(t, waitForItems(feed)())
}

func TestItemsMsg_FromStaleSubscriptionIgnored(t *testing.T) {
	m := signedIn(t, &fakeGateway{identity: models.Identity{ID: "1"}}, &fakeExport{})

	next, cmd := m.Update(itemsMsg{feed: newItemFeed(), items: []models.Item{{ID: "x"}}})

	assert.Nil(t, cmd)
	assert.Empty(t, next.(appModel).home.items)
}

func TestLogout_SimulatedGatewayDeliversAfterUnsubscribe(t *testing.T) {
	services := &service.ClientServices{
		Gateway:       gateway.NewSimulated(logger.Nop()),
		ExportService: &fakeExport{},
		Identity:      gateway.NewPendingAssertion(),
	}
	m := newAppModel(context.Background(), services, models.NewAppBuildInfo("1.2.3", "", ""), logger.Nop())
	m.login.form.inputs[loginEmail].SetValue("ana@example.com")
	m.login.form.inputs[loginPassword].SetValue("secret")

	m, cmd := press(t, m, keyType(tea.KeyEnter))
	m, cmd = deliver(t, m, cmd)
	require.Equal(t, screenHome, m.currentScreen)
	m, wait := deliver(t, m, cmd)
	feed := m.feed
	require.NotNil(t, feed)

	m, _ = press(t, m, keyType(tea.KeyF4))
	m, cmd = press(t, m, runes("s"))
	require.NotNil(t, cmd)
	assert.Nil(t, m.feed)

	// the simulated callback fires after its read delay regardless
	time.Sleep(2 * gateway.SimulatedReadDelay)

	assert.Len(t, feed.updates, 0)
	assert.Nil(t, wait())

	m, _ = deliver(t, m, cmd)
	assert.Equal(t, screenLogin, m.currentScreen)
}

func TestSubscribed_AfterSignOutStopsFeed(t *testing.T) {
	gw := &fakeGateway{}
	m := newTestModel(gw, &fakeExport{})
	feed := newItemFeed()
	unsubscribed := false

	next, cmd := m.Update(subscribedMsg{feed: feed, unsubscribe: func() { unsubscribed = true }})

	assert.Nil(t, cmd)
	assert.True(t, unsubscribed)
	assert.True(t, feed.stopped())
	assert.Nil(t, next.(appModel).feed)
	assert.NotPanics(t, func() { feed.offer([]models.Item{{ID: "late"}}) })
}
