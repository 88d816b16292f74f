package render

import (
	"strings"
	"testing"

	"mcpchat/internal/chat"
)

func TestEntriesRendersRoles(t *testing.T) {
	entries := []chat.Entry{
		{Role: chat.RoleAssistant, Content: "Hello! How can I help you today?"},
		{Role: chat.RoleUser, Content: "hi"},
		{Role: chat.RoleAssistant, Content: "Hi there", Tools: []string{"search"}},
	}
	lines := Entries(entries, 60, "")
	joined := strings.Join(lines, "\n")
	if !strings.Contains(joined, "hi") {
		t.Fatalf("user content missing:\n%s", joined)
	}
	if !strings.Contains(joined, "Hi there") {
		t.Fatalf("assistant content missing:\n%s", joined)
	}
	if !strings.Contains(joined, "search") {
		t.Fatalf("tool badge missing:\n%s", joined)
	}
}

func TestEntriesToolBadgeBeforeContent(t *testing.T) {
	entries := []chat.Entry{
		{Role: chat.RoleAssistant, Content: "answer", Tools: []string{"fetch"}},
	}
	lines := Entries(entries, 60, "")
	badge, content := -1, -1
	for i, l := range lines {
		if strings.Contains(l, "fetch") {
			badge = i
		}
		if strings.Contains(l, "answer") {
			content = i
		}
	}
	if badge < 0 || content < 0 || badge > content {
		t.Fatalf("badge=%d content=%d lines=%v", badge, content, lines)
	}
}

func TestEntriesPendingIndicatorOnLast(t *testing.T) {
	entries := []chat.Entry{
		{Role: chat.RoleUser, Content: "q"},
		{Role: chat.RoleAssistant, Content: ""},
	}
	lines := Entries(entries, 60, "thinking…")
	if !strings.Contains(strings.Join(lines, "\n"), "thinking…") {
		t.Fatalf("pending indicator missing: %v", lines)
	}
}
