package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/quran-reels/internal/catalog"
	"github.com/handiism/quran-reels/internal/console"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#2A9D8F")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	focusStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F8B500"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(0, 1)

	alertStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FF6B6B")).
			Foreground(lipgloss.Color("#FF6B6B")).
			Padding(0, 1)

	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#2A9D8F")).
			Padding(0, 2)

	disabledButtonStyle = buttonStyle.
				Background(lipgloss.Color("#6C757D"))

	logPrefixStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#2A9D8F"))

	logLineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E0E0E0"))
)

// View renders the model.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render(m.texts.Text(console.KeyAppTitle)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.texts.Text(console.KeyAppSubtitle)))
	b.WriteString("\n\n")

	b.WriteString(m.viewForm())
	b.WriteString("\n")
	if m.rangeHint.inverted {
		b.WriteString(errorStyle.Render(m.texts.Text(console.KeyAyahRange)))
		b.WriteString("\n")
	}
	b.WriteString(m.viewButtons())
	b.WriteString("\n\n")

	if m.state.StatusVisible {
		b.WriteString(m.viewStatus())
		b.WriteString("\n")
	}

	if m.state.PreviewVisible {
		b.WriteString(m.viewPreview())
		b.WriteString("\n")
	}

	if m.alert != nil {
		b.WriteString(alertStyle.Render(m.alert.Message))
		b.WriteString("\n")
	}

	if m.notice != "" {
		b.WriteString(infoStyle.Render(m.notice))
		b.WriteString("\n")
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m Model) viewForm() string {
	rows := []struct {
		field Field
		label string
		value string
	}{
		{FieldSurah, console.KeySurah, m.surahLabel()},
		{FieldStartAyah, console.KeyStartAyah, fmt.Sprintf("%d / %d", m.form.StartAyah.Value(), m.form.StartAyah.Max())},
		{FieldEndAyah, console.KeyEndAyah, fmt.Sprintf("%d / %d", m.form.EndAyah.Value(), m.form.EndAyah.Max())},
		{FieldReciter, console.KeyReciter, m.form.Reciter.Label()},
		{FieldQuality, console.KeyQuality, m.form.Quality.Label()},
		{FieldTemplate, console.KeyTemplate, m.form.Template.Label()},
		{FieldFormat, console.KeyFormat, m.form.Format.Label()},
		{FieldFont, console.KeyFont, m.form.Font.Label()},
		{FieldPersonName, console.KeyPersonName, m.nameInput.View()},
	}

	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteString("\n")
		}
		label := fmt.Sprintf("%-14s", m.texts.Text(row.label))
		if row.field == m.focus {
			b.WriteString(focusStyle.Render("▸ " + label))
			if row.field != FieldPersonName {
				b.WriteString(focusStyle.Render("‹ " + row.value + " ›"))
				continue
			}
		} else {
			b.WriteString(dimStyle.Render("  " + label))
		}
		b.WriteString(row.value)
	}
	return boxStyle.Render(b.String())
}

func (m Model) surahLabel() string {
	s, ok := catalog.Lookup(m.form.Surah())
	if !ok {
		return fmt.Sprint(m.form.Surah())
	}
	return s.Label()
}

func (m Model) viewButtons() string {
	label := m.state.GenerateLabel
	if label == "" {
		label = m.texts.Text(console.KeyGenerate)
	}

	var generate string
	if m.state.Busy {
		generate = disabledButtonStyle.Render(m.spinner.View() + " " + label)
	} else {
		generate = buttonStyle.Render(label)
	}
	preview := buttonStyle.Render(m.texts.Text(console.KeyPreview))
	return lipgloss.JoinHorizontal(lipgloss.Top, generate, "  ", preview)
}

func (m Model) viewStatus() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render(m.texts.Text(console.KeyStatus)))
	b.WriteString("\n")
	b.WriteString(m.progress.View())
	b.WriteString(fmt.Sprintf(" %.0f%%", m.state.Percent))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(m.state.Status))
	b.WriteString("\n")

	if m.state.JobError != "" {
		b.WriteString(errorStyle.Render(m.state.JobError))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render(m.texts.Text(console.KeyLog)))
	b.WriteString("\n")
	b.WriteString(boxStyle.Render(m.logView.View()))

	return b.String()
}

func (m Model) viewPreview() string {
	var b strings.Builder
	b.WriteString(successStyle.Render(m.texts.Text(console.KeyVideoReady)))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(m.state.PreviewURL))
	if m.saving {
		b.WriteString("\n")
		b.WriteString(m.spinner.View())
	}
	return b.String()
}
