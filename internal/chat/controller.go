package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"mcpchat/internal/api"
	"mcpchat/internal/logger"
	"mcpchat/internal/stream"
)

// ErrBusy 表示已有一轮对话在途；提交被拒绝。
var ErrBusy = errors.New("a turn is already in flight")

// Backend 抽象控制器需要的后端能力，便于测试替换。*api.Client 满足该接口。
type Backend interface {
	StreamChat(ctx context.Context, req api.ChatRequest) (io.ReadCloser, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

var _ Backend = (*api.Client)(nil)

// Controller 编排一个逻辑会话：会话标识、在途轮次门控、编辑/重跑/清空
// 命令，以及把对话记录状态暴露给展示层。
type Controller struct {
	mu        sync.Mutex
	sending   bool
	mode      api.Mode
	sessionID string

	transcript *Transcript
	backend    Backend
	onUpdate   func()
	log        *logger.LogEntry
}

// Options 配置控制器。
type Options struct {
	Backend Backend
	Mode    api.Mode
	// OnUpdate 在每次对话记录变更后调用（含每个折叠步骤），可为 nil。
	OnUpdate func()
}

// NewController 创建控制器。会话标识取自创建时刻，在单个进程内单调可辨。
func NewController(opts Options) *Controller {
	mode := opts.Mode
	if mode == "" {
		mode = api.ModeAgent
	}
	return &Controller{
		mode:       mode,
		sessionID:  fmt.Sprintf("session-%d", time.Now().UnixMilli()),
		transcript: NewTranscript(),
		backend:    opts.Backend,
		onUpdate:   opts.OnUpdate,
		log:        logger.Named("controller"),
	}
}

// SessionID 返回会话标识；它在会话生命周期内保持稳定。
func (c *Controller) SessionID() string {
	return c.sessionID
}

// Mode 返回当前应答模式。
func (c *Controller) Mode() api.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// SetMode 切换应答模式；在途时拒绝。
func (c *Controller) SetMode(mode api.Mode) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sending {
		return ErrBusy
	}
	c.mode = mode
	return nil
}

// Sending 报告是否有在途轮次。
func (c *Controller) Sending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sending
}

// Snapshot 返回对话记录的展示副本。
func (c *Controller) Snapshot() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transcript.Snapshot()
}

// Submit 发起一轮对话并驱动其到终结。空白输入与在途状态下均为拒绝；
// 后者返回 ErrBusy（界面应禁用提交，这里独立兜底）。
func (c *Controller) Submit(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	c.mu.Lock()
	if c.sending {
		c.mu.Unlock()
		return ErrBusy
	}
	c.sending = true
	mode := c.mode
	c.transcript.Append(Entry{Role: RoleUser, Content: text})
	c.transcript.Append(Entry{Role: RoleAssistant, Content: ""})
	c.mu.Unlock()
	c.notify()

	defer func() {
		c.mu.Lock()
		c.sending = false
		c.mu.Unlock()
	}()

	req := api.ChatRequest{Message: text, SessionID: c.sessionID, Mode: mode}
	logger.StreamLog.Request(c.sessionID, string(mode), len(text))

	asm := NewAssembler(c.transcript)
	body, err := c.backend.StreamChat(ctx, req)
	if err != nil {
		logger.StreamLog.Error(c.sessionID, err)
		c.finalize(asm, TransportDiagnostic(err))
		return err
	}
	defer body.Close()

	dec := stream.NewDecoder(body)
	seq := 0
	for !asm.Done() {
		ev, err := dec.Next()
		if err == io.EOF {
			// 流在无终结事件时关闭：按失败处理（取更严格的解释）。
			logger.StreamLog.Error(c.sessionID, errors.New("stream closed without terminal event"))
			c.finalize(asm, StreamEndDiagnostic())
			return nil
		}
		if err != nil {
			logger.StreamLog.Error(c.sessionID, err)
			c.finalize(asm, TransportDiagnostic(err))
			return err
		}
		switch ev.Kind {
		case stream.KindChunk:
			logger.StreamLog.Chunk(c.sessionID, ev.Text, seq)
		case stream.KindTool:
			logger.StreamLog.Tool(c.sessionID, ev.Tool)
		}
		seq++
		c.apply(asm, ev)
	}
	logger.StreamLog.Complete(c.sessionID, asm.Events())
	return nil
}

func (c *Controller) apply(asm *Assembler, ev stream.Event) {
	c.mu.Lock()
	asm.Apply(ev)
	c.mu.Unlock()
	c.notify()
}

func (c *Controller) finalize(asm *Assembler, diag string) {
	c.mu.Lock()
	asm.Fail(diag)
	c.mu.Unlock()
	c.notify()
}

// Edit 为重新编辑定位并取出 user 输入：index 指向 user 条目时取其本身，
// 指向 assistant 条目时取其前一条。自定位处截断后返回原文。仅限空闲时。
func (c *Controller) Edit(index int) (string, error) {
	c.mu.Lock()
	if c.sending {
		c.mu.Unlock()
		return "", ErrBusy
	}
	userIdx, err := c.resolveUserEntry(index)
	if err != nil {
		c.mu.Unlock()
		return "", err
	}
	content := c.transcript.entries[userIdx].Content
	if err := c.transcript.TruncateTo(userIdx); err != nil {
		c.mu.Unlock()
		return "", err
	}
	c.mu.Unlock()
	c.notify()
	return content, nil
}

// Rerun 重跑 index 所在的一组问答：截断旧的交换后用原输入重新提交。
// 完成后条目数与重跑前一致。仅限空闲时。
func (c *Controller) Rerun(ctx context.Context, index int) error {
	c.mu.Lock()
	if c.sending {
		c.mu.Unlock()
		return ErrBusy
	}
	userIdx, err := c.resolveUserEntry(index)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	content := c.transcript.entries[userIdx].Content
	if err := c.transcript.TruncateTo(userIdx); err != nil {
		c.mu.Unlock()
		return err
	}
	c.mu.Unlock()
	c.notify()
	return c.Submit(ctx, content)
}

// ClearSession 请求后端丢弃服务端会话状态（尽力而为，失败只记日志），
// 并将对话记录重置为欢迎语。会话标识保持不变。仅限空闲时。
func (c *Controller) ClearSession(ctx context.Context) error {
	c.mu.Lock()
	if c.sending {
		c.mu.Unlock()
		return ErrBusy
	}
	c.mu.Unlock()

	if err := c.backend.DeleteSession(ctx, c.sessionID); err != nil {
		c.log.Warnf("clear session %s: %v", c.sessionID, err)
	}

	c.mu.Lock()
	c.transcript.Clear()
	c.mu.Unlock()
	c.notify()
	return nil
}

// resolveUserEntry 把任意条目下标归一到所属交换的 user 条目下标。
// 调用方持锁。
func (c *Controller) resolveUserEntry(index int) (int, error) {
	entries := c.transcript.entries
	if index < 0 || index >= len(entries) {
		return 0, fmt.Errorf("entry index %d out of range [0, %d)", index, len(entries))
	}
	if entries[index].Role == RoleUser {
		return index, nil
	}
	if index == 0 || entries[index-1].Role != RoleUser {
		return 0, fmt.Errorf("entry %d has no associated user message", index)
	}
	return index - 1, nil
}

func (c *Controller) notify() {
	if c.onUpdate != nil {
		c.onUpdate()
	}
}
