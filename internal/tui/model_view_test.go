package tui

import (
	"context"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"mcpchat/internal/api"
	"mcpchat/internal/chat"
)

// scriptedBackend 用固定帧序列响应每次流式请求。
type scriptedBackend struct {
	frames string
}

func (b scriptedBackend) StreamChat(context.Context, api.ChatRequest) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(b.frames)), nil
}

func (b scriptedBackend) DeleteSession(context.Context, string) error { return nil }

func seededController(t *testing.T, m *Model) *chat.Controller {
	t.Helper()
	ctrl := chat.NewController(chat.Options{
		Backend:  scriptedBackend{frames: "data: {\"chunk\": \"hi\"}\ndata: {\"done\": true}\n"},
		OnUpdate: m.signalUpdate,
	})
	if err := ctrl.Submit(context.Background(), "hello there"); err != nil {
		t.Fatalf("seed turn: %v", err)
	}
	return ctrl
}

func testModel(t *testing.T) *Model {
	t.Helper()
	m := New(Options{Client: api.New("http://127.0.0.1:1"), Mode: api.ModeAgent})
	m.resize(100, 30)
	return m
}

func TestViewShowsHeaderAndHints(t *testing.T) {
	m := testModel(t)
	out := m.View()
	if !strings.Contains(out, "AI MCP AGENT") {
		t.Fatalf("header missing:\n%s", out)
	}
	if !strings.Contains(out, "AGENT") {
		t.Fatalf("mode missing:\n%s", out)
	}
	if !strings.Contains(out, "Ctrl+R rerun") {
		t.Fatalf("hints missing:\n%s", out)
	}
}

func TestViewShowsGreeting(t *testing.T) {
	m := testModel(t)
	if !strings.Contains(m.View(), "AI assistant") {
		t.Fatalf("greeting missing:\n%s", m.View())
	}
}

func TestModeToggleUpdatesHeader(t *testing.T) {
	m := testModel(t)
	model, _ := m.updateKey(tea.KeyMsg{Type: tea.KeyCtrlG})
	m = model.(*Model)
	if m.controller.Mode() != api.ModeRAG {
		t.Fatalf("mode=%s", m.controller.Mode())
	}
	if !strings.Contains(m.View(), "RAG") {
		t.Fatalf("header did not follow mode:\n%s", m.View())
	}
}

func TestPickerOverlayRendered(t *testing.T) {
	m := testModel(t)
	m.picker = newServerPicker(testServers())
	m.picking = true
	out := m.View()
	if !strings.Contains(out, "MCP Servers") || !strings.Contains(out, "weather") {
		t.Fatalf("picker overlay missing:\n%s", out)
	}
	model, _ := m.updateKey(tea.KeyMsg{Type: tea.KeyEsc})
	m = model.(*Model)
	if m.picking {
		t.Fatalf("esc did not close the picker")
	}
}

func TestEditRecallsLastInput(t *testing.T) {
	m := testModel(t)
	m.controller = seededController(t, m)
	m.refreshTranscript()

	model, _ := m.updateKey(tea.KeyMsg{Type: tea.KeyCtrlE})
	m = model.(*Model)
	if got := m.textarea.Value(); got != "hello there" {
		t.Fatalf("textarea=%q", got)
	}
}
