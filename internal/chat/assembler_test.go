package chat

import (
	"strings"
	"testing"

	"mcpchat/internal/stream"
)

func newInFlight(t *testing.T) *Transcript {
	t.Helper()
	tr := NewTranscript()
	tr.Append(Entry{Role: RoleUser, Content: "q"})
	tr.Append(Entry{Role: RoleAssistant, Content: ""})
	return tr
}

func lastEntry(t *testing.T, tr *Transcript) Entry {
	t.Helper()
	snap := tr.Snapshot()
	return snap[len(snap)-1]
}

func TestAssemblerConcatenatesChunksInOrder(t *testing.T) {
	t.Parallel()

	tr := newInFlight(t)
	asm := NewAssembler(tr)
	parts := []string{"He", "l", "", "lo", " world"}
	for _, p := range parts {
		asm.Apply(stream.Event{Kind: stream.KindChunk, Text: p})
	}
	if got := lastEntry(t, tr).Content; got != strings.Join(parts, "") {
		t.Fatalf("content=%q", got)
	}
}

func TestAssemblerToolsPreserveOrderAndDuplicates(t *testing.T) {
	t.Parallel()

	tr := newInFlight(t)
	asm := NewAssembler(tr)
	for _, name := range []string{"search", "fetch", "search"} {
		asm.Apply(stream.Event{Kind: stream.KindTool, Tool: name})
	}
	got := lastEntry(t, tr).Tools
	want := []string{"search", "fetch", "search"}
	if len(got) != len(want) {
		t.Fatalf("tools=%v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tools[%d]=%q want=%q", i, got[i], want[i])
		}
	}
}

func TestAssemblerToolVisibleBeforeAnyContent(t *testing.T) {
	t.Parallel()

	tr := newInFlight(t)
	asm := NewAssembler(tr)
	asm.Apply(stream.Event{Kind: stream.KindTool, Tool: "search"})
	entry := lastEntry(t, tr)
	if entry.Content != "" || len(entry.Tools) != 1 {
		t.Fatalf("tool badge not visible before content: %+v", entry)
	}
}

func TestAssemblerExampleScenario(t *testing.T) {
	t.Parallel()

	tr := newInFlight(t)
	asm := NewAssembler(tr)
	events := []stream.Event{
		{Kind: stream.KindChunk, Text: "Hel"},
		{Kind: stream.KindChunk, Text: "lo"},
		{Kind: stream.KindTool, Tool: "search"},
		{Kind: stream.KindChunk, Text: "!"},
		{Kind: stream.KindDone},
	}
	for _, ev := range events {
		asm.Apply(ev)
	}
	entry := lastEntry(t, tr)
	if entry.Content != "Hello!" {
		t.Fatalf("content=%q", entry.Content)
	}
	if len(entry.Tools) != 1 || entry.Tools[0] != "search" {
		t.Fatalf("tools=%v", entry.Tools)
	}
	if !asm.Done() || tr.InFlight() {
		t.Fatalf("turn not sealed")
	}
}

func TestAssemblerFailureOverwritesAndClearsTools(t *testing.T) {
	t.Parallel()

	tr := newInFlight(t)
	asm := NewAssembler(tr)
	asm.Apply(stream.Event{Kind: stream.KindChunk, Text: "part"})
	asm.Apply(stream.Event{Kind: stream.KindTool, Tool: "search"})
	asm.Apply(stream.Event{Kind: stream.KindFailed, Message: "model not found"})

	entry := lastEntry(t, tr)
	if len(entry.Tools) != 0 {
		t.Fatalf("tools must be cleared on failure: %v", entry.Tools)
	}
	if !strings.Contains(entry.Content, "model not found") {
		t.Fatalf("diagnostic missing backend message: %q", entry.Content)
	}
	if !strings.Contains(entry.Content, "Please check") {
		t.Fatalf("diagnostic missing hints: %q", entry.Content)
	}
	if !asm.Done() {
		t.Fatalf("failure must terminate the turn")
	}
}

func TestAssemblerIgnoresEventsAfterTerminal(t *testing.T) {
	t.Parallel()

	tr := newInFlight(t)
	asm := NewAssembler(tr)
	asm.Apply(stream.Event{Kind: stream.KindChunk, Text: "final"})
	asm.Apply(stream.Event{Kind: stream.KindDone})
	asm.Apply(stream.Event{Kind: stream.KindChunk, Text: " late"})
	asm.Apply(stream.Event{Kind: stream.KindTool, Tool: "late"})

	entry := lastEntry(t, tr)
	if entry.Content != "final" || len(entry.Tools) != 0 {
		t.Fatalf("post-terminal events leaked in: %+v", entry)
	}
}

func TestAssemblerFailAfterPartialContent(t *testing.T) {
	t.Parallel()

	tr := newInFlight(t)
	asm := NewAssembler(tr)
	asm.Apply(stream.Event{Kind: stream.KindChunk, Text: "part"})
	asm.Fail(StreamEndDiagnostic())

	entry := lastEntry(t, tr)
	if strings.Contains(entry.Content, "part") {
		t.Fatalf("partial content must be replaced: %q", entry.Content)
	}
	if len(entry.Tools) != 0 {
		t.Fatalf("tools=%v", entry.Tools)
	}

	// A second Fail (or any event) after the terminal step is a no-op.
	before := lastEntry(t, tr).Content
	asm.Fail("other")
	if lastEntry(t, tr).Content != before {
		t.Fatalf("Fail after terminal mutated the entry")
	}
}
