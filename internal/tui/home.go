package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/refugiapp/refugiapp/models"
)

type homeCard struct {
	title       string
	description string
	target      screen
}

var homeCards = []homeCard{
	{
		title:       "Registrar",
		description: "Añade un nuevo registro de habitante en la calle.",
		target:      screenResidentForm,
	},
	{
		title:       "Descargar/Generar Reportes",
		description: "Exporta los registros y descarga los reportes disponibles.",
		target:      screenReports,
	},
}

// homeModel shows the entry cards and the live item collection.
type homeModel struct {
	idx    int
	items  []models.Item
	errMsg string
	notice string
}

func (m homeModel) View(identity *models.Identity) string {
	var b strings.Builder
	if identity != nil {
		name := identity.DisplayName
		if name == "" {
			name = identity.Email
		}
		b.WriteString("Hola, " + name)
		b.WriteString("\n\n")
	}

	for i, card := range homeCards {
		line := "  " + card.title
		if i == m.idx {
			line = selectedStyle.Render("> " + card.title)
		}
		b.WriteString(line)
		b.WriteString("\n    ")
		b.WriteString(helpStyle.Render(card.description))
		b.WriteString("\n")
	}

	b.WriteString("\nElementos\n")
	if len(m.items) == 0 {
		b.WriteString(helpStyle.Render("  sin elementos"))
		b.WriteString("\n")
	}
	for _, item := range m.items {
		b.WriteString("  • ")
		b.WriteString(fitText(item.Title, 40))
		if item.Description != "" {
			b.WriteString("  ")
			b.WriteString(helpStyle.Render(fitText(item.Description, 60)))
		}
		b.WriteString("\n")
	}

	if status := inlineMessage(m.errMsg, m.notice); status != "" {
		b.WriteString("\n")
		b.WriteString(status)
	}

	return renderPage("Inicio", b.String(), "↑/↓: elegir  enter: abrir  v: versión")
}

func (m appModel) updateHome(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if model, cmd, handled := m.updateNav(keyMsg, listNavKeys); handled {
		return model, cmd
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		if m.home.idx > 0 {
			m.home.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.home.idx < len(homeCards)-1 {
			m.home.idx++
		}
	case key.Matches(keyMsg, keys.enter):
		m.home.notice = ""
		return m.navigate(homeCards[m.home.idx].target)
	case key.Matches(keyMsg, keys.version):
		m.currentScreen = screenBuildInfo
	}
	return m, nil
}
