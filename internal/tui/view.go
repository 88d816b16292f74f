package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"mcpchat/internal/tui/render"
)

var (
	headerBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D7A85"))
	noteStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#dc2626"))
	paneStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5E6472")).
			Padding(0, 1)
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1).
			BorderForeground(lipgloss.Color("#FFB454"))
)

func (m *Model) View() string {
	header := m.renderHeader()
	chat := paneStyle.Width(m.width).Render(m.viewport.View())
	composer := paneStyle.Width(m.width).Render(m.textarea.View())
	status := m.renderStatus()
	hints := m.renderHints()
	content := lipgloss.JoinVertical(lipgloss.Left, header, chat, composer, status, hints)

	if m.picking {
		return lipgloss.JoinVertical(lipgloss.Left, content, m.renderPicker())
	}
	return content
}

func (m *Model) renderHeader() string {
	title := titleStyle.Render("AI MCP AGENT")
	info := []string{}
	if m.llmModel != "" {
		info = append(info, m.llmModel)
	}
	info = append(info,
		strings.ToUpper(string(m.controller.Mode())),
		fmt.Sprintf("MCP Tools (%d)", m.serverCount),
	)
	right := subtleStyle.Render(strings.Join(info, " • "))
	line := lipgloss.JoinHorizontal(lipgloss.Top, title, lipgloss.NewStyle().PaddingLeft(2).Render(right))
	return headerBorder.Width(maxInt(40, m.width)).Render(line)
}

func (m *Model) renderStatus() string {
	parts := []string{subtleStyle.Render(fmt.Sprintf("session %s", m.controller.SessionID()))}
	if m.controller.Sending() {
		parts = append(parts, m.spin.View()+" "+subtleStyle.Render(m.timer.Hint()))
	}
	if m.note != "" {
		parts = append(parts, noteStyle.Render(m.note))
	}
	if m.err != nil {
		parts = append(parts, errStyle.Render(render.TruncateToWidth(m.err.Error(), maxInt(20, m.width/2))))
	}
	return lipgloss.NewStyle().Padding(0, 1).Width(maxInt(20, m.width)).Render(strings.Join(parts, " • "))
}

func (m *Model) renderHints() string {
	hint := "Enter send • Ctrl+R rerun • Ctrl+E edit • Ctrl+L clear • Ctrl+G mode • Ctrl+T servers • Ctrl+Y copy • Ctrl+C quit"
	return subtleStyle.Padding(0, 1).Width(maxInt(20, m.width)).Render(hint)
}

func (m *Model) renderPicker() string {
	lines := []string{titleStyle.Render("MCP Servers"), "filter: " + m.picker.Query()}
	matches := m.picker.Matches()
	if len(matches) == 0 {
		lines = append(lines, subtleStyle.Render("(no matches)"))
	}
	for i, s := range matches {
		if i >= 8 {
			lines = append(lines, subtleStyle.Render(fmt.Sprintf("… %d more", len(matches)-i)))
			break
		}
		marker := "  "
		if i == m.picker.selected {
			marker = "> "
		}
		key := ""
		if s.HasAPIKey {
			key = " [key]"
		}
		lines = append(lines, fmt.Sprintf("%s%s  %s%s", marker, s.Name, subtleStyle.Render(s.URL), key))
	}
	return modalStyle.Render(strings.Join(lines, "\n"))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
