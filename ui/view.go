package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	selectedCardStyle = cardStyle.
				BorderForeground(lipgloss.Color("62"))

	noteTitleStyle = lipgloss.NewStyle().Bold(true)

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	savingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

const contentPreviewLen = 80

func preview(content string) string {
	content = strings.ReplaceAll(content, "\n", " ")
	if len(content) > contentPreviewLen {
		return content[:contentPreviewLen] + "…"
	}
	return content
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Notes"))
	if m.activeFilter != "" {
		b.WriteString(metaStyle.Render(fmt.Sprintf("  filter: %q", m.activeFilter)))
	}
	b.WriteString("\n\n")

	switch m.mode {
	case modeFilter:
		b.WriteString("Filter: " + m.filter.View() + "\n")
		b.WriteString(helpStyle.Render("enter apply · esc cancel"))
		return b.String()

	case modeCreate, modeEdit:
		header := "New note"
		if m.mode == modeEdit {
			header = "Edit note"
		}
		b.WriteString(noteTitleStyle.Render(header) + "\n\n")
		b.WriteString("Title:   " + m.form.title.View() + "\n")
		b.WriteString("Content:\n" + m.form.content.View() + "\n")
		if m.form.saving {
			b.WriteString(savingStyle.Render("saving…") + "\n")
		}
		if m.form.err != "" {
			b.WriteString(errStyle.Render(m.form.err) + "\n")
		}
		b.WriteString(helpStyle.Render("tab switch field · ctrl+s save · esc cancel"))
		return b.String()
	}

	if m.loading {
		b.WriteString(metaStyle.Render("loading…") + "\n")
	}
	if m.err != "" {
		b.WriteString(errStyle.Render(m.err) + "\n")
	}

	if len(m.cards) == 0 && !m.loading {
		b.WriteString(metaStyle.Render("no notes") + "\n")
	}

	for i, card := range m.cards {
		style := cardStyle
		if i == m.cursor {
			style = selectedCardStyle
		}

		var lines []string
		lines = append(lines, noteTitleStyle.Render(card.note.Title))
		if card.note.Content != "" {
			lines = append(lines, preview(card.note.Content))
		}
		meta := card.note.UpdatedAt.Format("2006-01-02 15:04")
		if n := len(card.note.Images); n > 0 {
			meta += fmt.Sprintf(" · %d image(s)", n)
		}
		lines = append(lines, metaStyle.Render(meta))
		if card.saving {
			lines = append(lines, savingStyle.Render("saving…"))
		}
		if card.err != "" {
			lines = append(lines, errStyle.Render(card.err))
		}

		b.WriteString(style.Render(strings.Join(lines, "\n")) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("n new · enter edit · d delete · / filter · r reload · q quit"))
	return b.String()
}
