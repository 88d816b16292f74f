package chat

import (
	"errors"
	"testing"
)

func TestNewTranscriptStartsWithGreeting(t *testing.T) {
	t.Parallel()

	tr := NewTranscript()
	snap := tr.Snapshot()
	if len(snap) != 1 {
		t.Fatalf("len=%d want 1", len(snap))
	}
	if snap[0].Role != RoleAssistant || snap[0].Content != Greeting {
		t.Fatalf("unexpected greeting entry: %+v", snap[0])
	}
	if tr.InFlight() {
		t.Fatalf("greeting must not be in flight")
	}
}

func TestAppendPlaceholderBecomesInFlight(t *testing.T) {
	t.Parallel()

	tr := NewTranscript()
	tr.Append(Entry{Role: RoleUser, Content: "hi"})
	if tr.InFlight() {
		t.Fatalf("user entry must not be in flight")
	}
	tr.Append(Entry{Role: RoleAssistant, Content: ""})
	if !tr.InFlight() {
		t.Fatalf("empty assistant entry must be in flight")
	}

	if err := tr.UpdateLast("partial", []string{"search"}); err != nil {
		t.Fatalf("UpdateLast: %v", err)
	}
	snap := tr.Snapshot()
	last := snap[len(snap)-1]
	if last.Content != "partial" || len(last.Tools) != 1 {
		t.Fatalf("update not applied: %+v", last)
	}

	tr.Seal()
	if err := tr.UpdateLast("late", nil); !errors.Is(err, ErrInvariant) {
		t.Fatalf("update after seal: err=%v want ErrInvariant", err)
	}
}

func TestUpdateLastWithoutInFlight(t *testing.T) {
	t.Parallel()

	tr := NewTranscript()
	if err := tr.UpdateLast("x", nil); !errors.Is(err, ErrInvariant) {
		t.Fatalf("err=%v want ErrInvariant", err)
	}
}

func TestTruncateToRoundTrip(t *testing.T) {
	t.Parallel()

	tr := NewTranscript()
	tr.Append(Entry{Role: RoleUser, Content: "q1"})
	tr.Append(Entry{Role: RoleAssistant, Content: "a1"})
	tr.Append(Entry{Role: RoleUser, Content: "q2"})
	tr.Append(Entry{Role: RoleAssistant, Content: "a2"})

	for k := tr.Len(); k >= 0; k-- {
		tr2 := NewTranscript()
		tr2.Append(Entry{Role: RoleUser, Content: "q1"})
		tr2.Append(Entry{Role: RoleAssistant, Content: "a1"})
		tr2.Append(Entry{Role: RoleUser, Content: "q2"})
		tr2.Append(Entry{Role: RoleAssistant, Content: "a2"})
		if err := tr2.TruncateTo(k); err != nil {
			t.Fatalf("TruncateTo(%d): %v", k, err)
		}
		if got := len(tr2.Snapshot()); got != k {
			t.Fatalf("TruncateTo(%d): len=%d", k, got)
		}
	}

	if err := tr.TruncateTo(tr.Len() + 1); err == nil {
		t.Fatalf("expected range error")
	}
	if err := tr.TruncateTo(-1); err == nil {
		t.Fatalf("expected range error")
	}
}

func TestClearResetsToSingleGreeting(t *testing.T) {
	t.Parallel()

	tr := NewTranscript()
	tr.Append(Entry{Role: RoleUser, Content: "q"})
	tr.Append(Entry{Role: RoleAssistant, Content: ""})
	tr.Clear()

	snap := tr.Snapshot()
	if len(snap) != 1 || snap[0].Content != ClearedGreeting {
		t.Fatalf("unexpected transcript after clear: %+v", snap)
	}
	if tr.InFlight() {
		t.Fatalf("clear must drop the in-flight mark")
	}
}

func TestSnapshotIsIsolated(t *testing.T) {
	t.Parallel()

	tr := NewTranscript()
	tr.Append(Entry{Role: RoleAssistant, Content: ""})
	if err := tr.UpdateLast("a", []string{"t1"}); err != nil {
		t.Fatalf("UpdateLast: %v", err)
	}

	snap := tr.Snapshot()
	snap[1].Tools[0] = "mutated"
	snap[1].Content = "mutated"

	fresh := tr.Snapshot()
	if fresh[1].Tools[0] != "t1" || fresh[1].Content != "a" {
		t.Fatalf("snapshot mutation leaked into store: %+v", fresh[1])
	}
}
