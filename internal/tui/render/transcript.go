// Package render 将对话记录渲染为终端行。只做纯函数式的文本装配，
// 滚动与布局交给上层的 viewport。
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"mcpchat/internal/chat"
)

var (
	userPrefixStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#22C55E"))
	userIndentStyle      = lipgloss.NewStyle().Faint(true)
	assistantPrefixStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))
	assistantIndentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))
	toolBadgeStyle       = lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("#FFB454"))
	errorStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("#dc2626"))
	pendingStyle         = lipgloss.NewStyle().Faint(true)
)

// Entries 渲染整个对话记录。pending 非空时在末尾的在途条目后追加等待指示。
func Entries(entries []chat.Entry, width int, pending string) []string {
	if width <= 0 {
		width = 80
	}
	out := []string{}
	for i, e := range entries {
		inflight := pending != "" && i == len(entries)-1
		out = append(out, renderEntry(e, width, inflight, pending)...)
	}
	return out
}

func renderEntry(e chat.Entry, width int, inflight bool, pending string) []string {
	switch e.Role {
	case chat.RoleUser:
		return renderUser(e.Content, width)
	case chat.RoleAssistant:
		return renderAssistant(e, width, inflight, pending)
	default:
		return wrapText(e.Content, width)
	}
}

func renderUser(content string, width int) []string {
	wrapWidth := width - 2
	if wrapWidth < 1 {
		wrapWidth = width
	}
	body := wrapText(content, wrapWidth)
	out := make([]string, 0, len(body)+1)
	out = append(out, "")
	for i, l := range body {
		if i == 0 {
			out = append(out, userPrefixStyle.Render("› ")+l)
			continue
		}
		out = append(out, userIndentStyle.Render("  ")+l)
	}
	return out
}

func renderAssistant(e chat.Entry, width int, inflight bool, pending string) []string {
	wrapWidth := width - 2
	if wrapWidth < 1 {
		wrapWidth = width
	}
	out := []string{""}
	for _, name := range e.Tools {
		out = append(out, toolBadgeStyle.Render("⚙ "+name))
	}

	content := strings.TrimRight(e.Content, "\n")
	isError := strings.HasPrefix(content, "Error:") || strings.HasPrefix(content, "Sorry, I encountered an error")
	body := wrapText(content, wrapWidth)
	if content == "" {
		body = nil
	}
	for i, l := range body {
		if isError {
			l = errorStyle.Render(l)
		}
		if i == 0 {
			out = append(out, assistantPrefixStyle.Render("• ")+l)
			continue
		}
		out = append(out, assistantIndentStyle.Render("  ")+l)
	}
	if inflight {
		out = append(out, pendingStyle.Render(pending))
	} else if content == "" && len(e.Tools) == 0 {
		out = append(out, assistantPrefixStyle.Render("• "))
	}
	return out
}
