package chat

import (
	"errors"
	"fmt"
	"time"

	"mcpchat/internal/logger"
)

// Role 标识消息归属。
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Greeting 是新会话的欢迎语；ClearedGreeting 用于清空会话后。
const (
	Greeting = "Hello! I'm your AI assistant. I can help you with coding questions, " +
		"explain concepts, and provide guidance on web development topics. " +
		"What would you like to know?"
	ClearedGreeting = "Chat cleared. How can I help you?"
)

// ErrInvariant 表示对话记录的内部不变量被破坏（编程错误，记录后忽略该次变更）。
var ErrInvariant = errors.New("transcript invariant violated")

// Entry 是对话记录中的一条消息。进行中的 assistant 条目内容会被增量扩展，
// 终结后不再变化。
type Entry struct {
	Role      Role
	Content   string
	Tools     []string
	CreatedAt time.Time
}

// Transcript 持有有序的对话历史，并保证任一时刻至多存在一条进行中的
// 条目，且它总是最后一条 assistant 条目。
type Transcript struct {
	entries  []Entry
	inflight int
	log      *logger.LogEntry
}

// NewTranscript 创建带欢迎语的对话记录。
func NewTranscript() *Transcript {
	t := &Transcript{inflight: -1, log: logger.Named("transcript")}
	t.entries = append(t.entries, Entry{
		Role:      RoleAssistant,
		Content:   Greeting,
		CreatedAt: time.Now(),
	})
	return t
}

// Append 追加一条消息。按约定：role 为 assistant 且内容为空的条目成为
// 进行中的占位条目。
func (t *Transcript) Append(e Entry) {
	if t.inflight >= 0 {
		// 不应出现：上一轮未终结就追加新条目。封存旧条目后继续。
		t.log.Warnf("append while an entry is still in flight; sealing index %d", t.inflight)
		t.inflight = -1
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	t.entries = append(t.entries, e)
	if e.Role == RoleAssistant && e.Content == "" {
		t.inflight = len(t.entries) - 1
	}
}

// UpdateLast 替换进行中条目的内容与工具列表。
func (t *Transcript) UpdateLast(content string, tools []string) error {
	if len(t.entries) == 0 {
		return fmt.Errorf("%w: update on empty transcript", ErrInvariant)
	}
	last := len(t.entries) - 1
	if t.inflight != last {
		return fmt.Errorf("%w: last entry is not in flight (inflight=%d last=%d)", ErrInvariant, t.inflight, last)
	}
	t.entries[last].Content = content
	t.entries[last].Tools = append([]string(nil), tools...)
	return nil
}

// Seal 终结进行中的条目；此后它只读。
func (t *Transcript) Seal() {
	t.inflight = -1
}

// InFlight 报告是否存在进行中的条目。
func (t *Transcript) InFlight() bool {
	return t.inflight >= 0
}

// TruncateTo 丢弃自 index 起的全部条目；index 必须落在 [0, len] 内。
func (t *Transcript) TruncateTo(index int) error {
	if index < 0 || index > len(t.entries) {
		return fmt.Errorf("truncate index %d out of range [0, %d]", index, len(t.entries))
	}
	t.entries = t.entries[:index]
	if t.inflight >= index {
		t.log.Warnf("truncate dropped the in-flight entry at %d", t.inflight)
		t.inflight = -1
	}
	return nil
}

// Clear 重置为只含一条新欢迎语的记录。
func (t *Transcript) Clear() {
	t.entries = []Entry{{
		Role:      RoleAssistant,
		Content:   ClearedGreeting,
		CreatedAt: time.Now(),
	}}
	t.inflight = -1
}

// Len 返回条目数量。
func (t *Transcript) Len() int {
	return len(t.entries)
}

// Snapshot 返回当前条目的不可变副本，供展示层使用。
func (t *Transcript) Snapshot() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	for i := range out {
		out[i].Tools = append([]string(nil), t.entries[i].Tools...)
	}
	return out
}
