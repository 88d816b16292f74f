package tui

import (
	"testing"
	"time"
)

func TestFmtElapsedCompact(t *testing.T) {
	cases := []struct {
		secs uint64
		want string
	}{
		{0, "0s"},
		{59, "59s"},
		{60, "1m 00s"},
		{61, "1m 01s"},
		{3599, "59m 59s"},
		{3600, "1h 00m 00s"},
		{3725, "1h 02m 05s"},
	}
	for _, c := range cases {
		if got := fmtElapsedCompact(c.secs); got != c.want {
			t.Errorf("fmtElapsedCompact(%d) = %q, want %q", c.secs, got, c.want)
		}
	}
}

func TestTurnTimerHint(t *testing.T) {
	now := time.Unix(1000, 0)
	timer := &turnTimer{clock: func() time.Time { return now }}
	if timer.Hint() != "" {
		t.Fatalf("idle timer produced a hint")
	}
	timer.Start()
	now = now.Add(75 * time.Second)
	if got := timer.Hint(); got != "(1m 15s • esc to cancel)" {
		t.Fatalf("hint=%q", got)
	}
	timer.Stop()
	if timer.Hint() != "" {
		t.Fatalf("stopped timer produced a hint")
	}
}
