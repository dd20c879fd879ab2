package tui

import (
	"strings"
	"time"

	"github.com/refugiapp/refugiapp/models"
)

const uiDivider = "──────────────────────────────────────────────────────"

func renderPage(title, data, hotKeys string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n\n")

	if strings.TrimSpace(data) != "" {
		lines := strings.Split(data, "\n")
		for _, line := range lines {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	} else {
		b.WriteString("  -\n")
	}

	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n")

	if strings.TrimSpace(hotKeys) != "" {
		b.WriteString("  ")
		b.WriteString(helpStyle.Render(hotKeys))
		b.WriteString("\n")
	}
	b.WriteString("  ")
	b.WriteString(helpStyle.Render("ctrl+c: salir"))

	return b.String()
}

type navEntry struct {
	screen screen
	label  string
}

var navEntries = []navEntry{
	{screen: screenHome, label: "Inicio"},
	{screen: screenResidentForm, label: "Registrar"},
	{screen: screenReports, label: "Reportes"},
	{screen: screenLogout, label: "Salir"},
}

// navBar renders the bottom navigation of authenticated screens.
func navBar(active screen) string {
	parts := make([]string, 0, len(navEntries))
	for i, e := range navEntries {
		label := "F" + string(rune('1'+i)) + " " + e.label
		if e.screen == active {
			parts = append(parts, navActiveStyle.Render(label))
			continue
		}
		parts = append(parts, navStyle.Render(label))
	}
	return "  " + strings.Join(parts, "   ")
}

// inlineMessage renders the single status line of a screen. Errors win
// over notices.
func inlineMessage(errMsg, notice string) string {
	switch {
	case errMsg != "":
		return errorStyle.Render(errMsg)
	case notice != "":
		return noticeStyle.Render(notice)
	default:
		return ""
	}
}

func formatDate(t models.ReportTime) string {
	switch {
	case !t.Time.IsZero() && len(t.Raw) == len(time.DateOnly):
		return t.Time.Format("02/01/2006")
	case !t.Time.IsZero():
		return t.Local().Format("02/01/2006 15:04")
	case t.Raw != "":
		return fitText(t.Raw, 24)
	default:
		return "-"
	}
}

func fitText(v string, max int) string {
	r := []rune(v)
	if max <= 0 || len(r) <= max {
		return v
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
