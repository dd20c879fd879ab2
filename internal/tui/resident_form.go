package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/refugiapp/refugiapp/models"
)

type residentField struct {
	key         string
	label       string
	placeholder string
	required    bool
	limit       int
}

var residentFields = []residentField{
	{key: models.ResidentKeyFullName, label: "Nombre completo", required: true, limit: 120},
	{key: models.ResidentKeyAlias, label: "Alias", limit: 60},
	{key: models.ResidentKeyBirthDate, label: "Fecha de nacimiento", placeholder: "AAAA-MM-DD", limit: 10},
	{key: models.ResidentKeySex, label: "Sexo", required: true},
	{key: models.ResidentKeyNationality, label: "Nacionalidad", limit: 60},
	{key: models.ResidentKeyZone, label: "Zona", required: true, limit: 60},
	{key: models.ResidentKeyTimeOnStreet, label: "Tiempo en calle", placeholder: "p. ej. 2 años", limit: 60},
	{key: models.ResidentKeyNotes, label: "Notas", limit: 500},
}

// residentSexField is the index of the sex selector. It is rendered as an
// input but only changes by cycling through models.Sexes.
const residentSexField = 3

type residentFormModel struct {
	form    formInputs
	sexIdx  int
	request requestState
	errMsg  string
}

func newResidentFormModel() residentFormModel {
	inputs := make([]textinput.Model, len(residentFields))
	for i, f := range residentFields {
		inputs[i] = newTextInput(f.placeholder, f.limit)
	}
	inputs[residentSexField].Placeholder = "←/→ para elegir"

	return residentFormModel{
		form:   newFormInputs(inputs...),
		sexIdx: -1,
	}
}

// cycleSex moves the sex selector by delta, wrapping around.
func (m *residentFormModel) cycleSex(delta int) {
	n := len(models.Sexes)
	if m.sexIdx < 0 {
		m.sexIdx = 0
		if delta < 0 {
			m.sexIdx = n - 1
		}
	} else {
		m.sexIdx = (m.sexIdx + delta + n) % n
	}
	m.form.inputs[residentSexField].SetValue(string(models.Sexes[m.sexIdx]))
}

// resident collects the form into a document. Blank optional fields are
// left out.
func (m residentFormModel) resident() models.Resident {
	var rec models.Record
	for i, f := range residentFields {
		if v := m.form.value(i); v != "" {
			rec.Set(f.key, v)
		}
	}
	return models.ResidentFromRecord(rec)
}

// missingLabels names the required fields that are still blank.
func (m residentFormModel) missingLabels() []string {
	missing := m.resident().Missing()
	labels := make([]string, 0, len(missing))
	for _, k := range missing {
		for _, f := range residentFields {
			if f.key == k {
				labels = append(labels, f.label)
			}
		}
	}
	return labels
}

func (m residentFormModel) View() string {
	var b strings.Builder
	for i, f := range residentFields {
		label := f.label
		if f.required {
			label += " *"
		}
		b.WriteString(m.form.row(i, label, 22))
		b.WriteString("\n")
	}

	status := inlineMessage(m.errMsg, "")
	if m.request.inFlight() {
		status = "Guardando..."
	}
	if status != "" {
		b.WriteString("\n")
		b.WriteString(status)
	}

	return renderPage("Registrar habitante", b.String(), "enter: guardar  tab: siguiente campo  ←/→: elegir sexo  esc: volver")
}

func (m appModel) updateResidentForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, m.resident.form.update(msg)
	}
	if m.resident.request.inFlight() {
		return m, nil
	}
	if model, cmd, handled := m.updateNav(keyMsg, formNavKeys); handled {
		return model, cmd
	}

	switch {
	case key.Matches(keyMsg, keys.esc):
		m.currentScreen = screenHome
		return m, nil
	case key.Matches(keyMsg, keys.nextField):
		m.resident.form.focusNext()
		return m, nil
	case key.Matches(keyMsg, keys.prevField):
		m.resident.form.focusPrev()
		return m, nil
	case key.Matches(keyMsg, keys.enter):
		if missing := m.resident.missingLabels(); len(missing) > 0 {
			m.resident.errMsg = "Completá los campos obligatorios: " + strings.Join(missing, ", ") + "."
			return m, nil
		}
		m.resident.errMsg = ""
		m.resident.request = startRequest()
		return m, m.cmdCreateResident(m.resident.resident())
	}

	if m.resident.form.focus == residentSexField {
		switch {
		case key.Matches(keyMsg, keys.left):
			m.resident.cycleSex(-1)
		case key.Matches(keyMsg, keys.right):
			m.resident.cycleSex(1)
		}
		return m, nil
	}

	return m, m.resident.form.update(msg)
}

func (m appModel) handleResidentSaved(msg residentSavedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Warn().Err(msg.err).Str("func", "appModel.handleResidentSaved").Msg("create resident failed")
		m.resident.request = requestDone(msg.err)
		m.resident.errMsg = residentErrorMessage(msg.err)
		return m, nil
	}

	m.resident = newResidentFormModel()
	m.home.notice = msgResidentSaved
	m.currentScreen = screenHome
	return m, nil
}

func (m appModel) cmdCreateResident(resident models.Resident) tea.Cmd {
	ctx := m.ctx
	gw := m.services.Gateway

	return func() tea.Msg {
		return residentSavedMsg{err: gw.CreateResident(ctx, resident)}
	}
}
