package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/refugiapp/refugiapp/models"
)

const residentsReportTitle = "Reporte Habitantes"

// reportsModel lists the local residents export first, then the reports
// the server offers.
type reportsModel struct {
	reports []models.Report
	idx     int
	loading bool
	request requestState
	errMsg  string
	notice  string
}

func (m *reportsModel) startLoading() {
	m.loading = true
	m.errMsg = ""
}

func (m *reportsModel) loaded(reports []models.Report) {
	m.loading = false
	m.reports = reports
	if m.idx > len(m.reports) {
		m.idx = len(m.reports)
	}
}

func (m *reportsModel) finished(result models.ExportResult, err error) {
	m.request = requestDone(err)
	m.errMsg, m.notice = "", ""
	switch {
	case err != nil:
		m.errMsg = exportErrorMessage(err)
	case result.Empty:
		m.notice = msgNothingToExport
	case result.Rows > 0:
		m.notice = fmt.Sprintf("Reporte guardado en %s (%d filas)", result.Path, result.Rows)
	default:
		m.notice = "Reporte guardado en " + result.Path
	}
}

// selected returns the highlighted server report. ok is false when the
// residents export is highlighted.
func (m reportsModel) selected() (report models.Report, ok bool) {
	if m.idx == 0 || m.idx > len(m.reports) {
		return models.Report{}, false
	}
	return m.reports[m.idx-1], true
}

func (m reportsModel) View() string {
	var b strings.Builder

	b.WriteString(m.entry(0, residentsReportTitle, "todos los registros en CSV"))
	b.WriteString("\n\nReportes disponibles\n")
	switch {
	case m.loading:
		b.WriteString(helpStyle.Render("  Cargando..."))
		b.WriteString("\n")
	case len(m.reports) == 0:
		b.WriteString(helpStyle.Render("  no hay reportes en el servidor"))
		b.WriteString("\n")
	}
	if !m.loading {
		for i, r := range m.reports {
			b.WriteString(m.entry(i+1, fitText(r.Title, 40), formatDate(r.CreatedAt)))
			b.WriteString("\n")
		}
	}

	status := inlineMessage(m.errMsg, m.notice)
	if m.request.inFlight() {
		status = "Generando..."
	}
	if status != "" {
		b.WriteString("\n")
		b.WriteString(status)
	}

	return renderPage("Descargar reportes", b.String(), "↑/↓: elegir  e/enter: exportar CSV  d: descargar  r: actualizar")
}

func (m reportsModel) entry(i int, title, detail string) string {
	if i == m.idx {
		return selectedStyle.Render("> "+title) + "  " + helpStyle.Render(detail)
	}
	return "  " + title + "  " + helpStyle.Render(detail)
}

func (m appModel) updateReports(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if model, cmd, handled := m.updateNav(keyMsg, listNavKeys); handled {
		return model, cmd
	}

	switch {
	case key.Matches(keyMsg, keys.esc):
		m.currentScreen = screenHome
	case key.Matches(keyMsg, keys.up):
		if m.reports.idx > 0 {
			m.reports.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.reports.idx < len(m.reports.reports) {
			m.reports.idx++
		}
	case key.Matches(keyMsg, keys.refresh):
		if m.reports.loading {
			return m, nil
		}
		m.reports.startLoading()
		return m, m.cmdLoadReports()
	case key.Matches(keyMsg, keys.export):
		if m.reports.request.inFlight() {
			return m, nil
		}
		m.reports.request = startRequest()
		if report, ok := m.reports.selected(); ok {
			return m, m.cmdExportReport(report)
		}
		return m, m.cmdExportResidents()
	case key.Matches(keyMsg, keys.download):
		if m.reports.request.inFlight() {
			return m, nil
		}
		report, ok := m.reports.selected()
		if !ok {
			m.reports.errMsg, m.reports.notice = msgDownloadOnly, ""
			return m, nil
		}
		m.reports.request = startRequest()
		return m, m.cmdDownloadReport(report)
	}
	return m, nil
}

func (m appModel) cmdLoadReports() tea.Cmd {
	ctx := m.ctx
	svc := m.services.ExportService

	return func() tea.Msg {
		return reportsLoadedMsg{reports: svc.ListReports(ctx)}
	}
}

func (m appModel) cmdExportResidents() tea.Cmd {
	ctx := m.ctx
	svc := m.services.ExportService

	return func() tea.Msg {
		result, err := svc.ExportResidents(ctx)
		return exportDoneMsg{result: result, err: err}
	}
}

func (m appModel) cmdExportReport(report models.Report) tea.Cmd {
	ctx := m.ctx
	svc := m.services.ExportService

	return func() tea.Msg {
		result, err := svc.ExportReport(ctx, report)
		return exportDoneMsg{result: result, err: err}
	}
}

func (m appModel) cmdDownloadReport(report models.Report) tea.Cmd {
	ctx := m.ctx
	svc := m.services.ExportService

	return func() tea.Msg {
		result, err := svc.DownloadReport(ctx, report, "")
		return exportDoneMsg{result: result, err: err}
	}
}
