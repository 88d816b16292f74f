package tui

import (
	"fmt"
	"time"
)

// turnTimer 跟踪在途轮次的耗时，供状态行显示。
type turnTimer struct {
	startedAt time.Time
	running   bool
	clock     func() time.Time
}

func newTurnTimer() *turnTimer {
	return &turnTimer{clock: time.Now}
}

func (t *turnTimer) Start() {
	t.startedAt = t.clock()
	t.running = true
}

func (t *turnTimer) Stop() {
	t.running = false
}

func (t *turnTimer) Running() bool {
	return t.running
}

// Hint 生成 "(12s • esc to cancel)" 形态的提示；未计时返回空串。
func (t *turnTimer) Hint() string {
	if !t.running {
		return ""
	}
	elapsed := uint64(t.clock().Sub(t.startedAt).Seconds())
	return fmt.Sprintf("(%s • esc to cancel)", fmtElapsedCompact(elapsed))
}

func fmtElapsedCompact(elapsedSecs uint64) string {
	switch {
	case elapsedSecs < 60:
		return fmt.Sprintf("%ds", elapsedSecs)
	case elapsedSecs < 3600:
		return fmt.Sprintf("%dm %02ds", elapsedSecs/60, elapsedSecs%60)
	default:
		return fmt.Sprintf("%dh %02dm %02ds", elapsedSecs/3600, (elapsedSecs%3600)/60, elapsedSecs%60)
	}
}
