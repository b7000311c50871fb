// This file contains view rendering for the presenter TUI: slide
// area, header, footer and the speaker-notes panel.
package present

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model.
func (m *Model) View() string {
	if !m.ready {
		return "Loading deck..."
	}

	header := m.renderHeader()
	content := m.styles.Content.Render(m.viewport.View())
	footer := m.renderFooter()

	parts := []string{header, content}
	if m.showNote {
		parts = append(parts, m.renderNotes())
	}
	if m.err != nil {
		parts = append(parts, m.styles.Error.Render("! "+m.err.Error()))
	}
	parts = append(parts, footer)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) renderHeader() string {
	title := m.deck.Title()
	if title == "" {
		title = "untitled deck"
	}

	left := m.styles.Header.Render(" " + title + " ")
	if m.watcher != nil && m.watcher.IsWatching() {
		left = lipgloss.JoinHorizontal(lipgloss.Center, left, " ", m.styles.Badge.Render("watching"))
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		left,
		m.styles.RenderDivider(m.width),
	)
}

func (m *Model) renderFooter() string {
	position := fmt.Sprintf("%d/%d", m.current+1, m.deck.SlideCount())

	var extras []string
	if m.deck.Paginated(m.current) {
		extras = append(extras, fmt.Sprintf("page %d", m.current+1))
	}
	if m.deck.Front.Footer != "" {
		extras = append(extras, m.deck.Front.Footer)
	}
	if m.deck.Slides[m.current].Notes != "" && !m.showNote {
		extras = append(extras, "[n] notes")
	}

	line := position
	if len(extras) > 0 {
		line += " | " + strings.Join(extras, " | ")
	}

	if m.gotoMode {
		line = m.gotoInput.View()
	}

	return m.styles.Footer.Render(line) + "\n" + m.help.View(m.keys)
}

func (m *Model) renderNotes() string {
	notes := m.deck.Slides[m.current].Notes
	if notes == "" {
		notes = "no notes on this slide"
	}
	return m.styles.Notes.Width(m.width - 4).Render(notes)
}
