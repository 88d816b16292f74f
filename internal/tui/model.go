// Package tui 实现交互式聊天界面。布局自上而下为标题栏、对话视口、
// 输入框、状态行与快捷键提示；流式轮次由 chat.Controller 在后台驱动，
// 这里只消费快照。
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mcpchat/internal/api"
	"mcpchat/internal/chat"
	"mcpchat/internal/history"
	"mcpchat/internal/logger"
	"mcpchat/internal/tui/render"
)

type Options struct {
	Client        *api.Client
	Mode          api.Mode
	History       *history.Store
	InitialPrompt string
}

// transcriptMsg 通知对话记录有更新，内容通过控制器快照获取。
type transcriptMsg struct{}

// turnDoneMsg 表示一个流式轮次已终结。
type turnDoneMsg struct {
	err error
}

type metaMsg struct {
	llm     api.LLMConfig
	servers []api.MCPServer
	err     error
}

type serversMsg struct {
	servers []api.MCPServer
	err     error
}

type noteMsg struct {
	text string
}

type Model struct {
	textarea   textarea.Model
	viewport   viewport.Model
	spin       spinner.Model
	controller *chat.Controller
	client     *api.Client
	hist       *history.Store
	promptHist promptHistory

	updates    chan struct{}
	cancelTurn context.CancelFunc
	timer      *turnTimer

	picker  *serverPicker
	picking bool

	llmModel    string
	serverCount int

	initSend string
	note     string
	err      error
	width    int
	height   int
	ready    bool

	log *logger.LogEntry
}

func New(opts Options) *Model {
	ti := textarea.New()
	ti.Placeholder = "Type your message…"
	ti.Prompt = "› "
	ti.CharLimit = 0
	ti.SetWidth(90)
	ti.SetHeight(1)
	ti.ShowLineNumbers = false
	ti.Focus()

	vp := viewport.New(90, 16)

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))

	m := &Model{
		textarea: ti,
		viewport: vp,
		spin:     spin,
		client:   opts.Client,
		hist:     opts.History,
		updates:  make(chan struct{}, 16),
		timer:    newTurnTimer(),
		initSend: opts.InitialPrompt,
		width:    90,
		height:   24,
		log:      logger.Named("tui"),
	}
	m.controller = chat.NewController(chat.Options{
		Backend:  opts.Client,
		Mode:     opts.Mode,
		OnUpdate: m.signalUpdate,
	})
	if opts.History != nil {
		if texts, err := opts.History.LoadTexts(); err == nil {
			m.promptHist.Set(texts)
		} else {
			m.log.Warnf("load prompt history: %v", err)
		}
	}
	m.refreshTranscript()
	return m
}

// signalUpdate 由控制器在任意 goroutine 调用；满载时丢弃是安全的，
// 消费侧总是读快照而非增量。
func (m *Model) signalUpdate() {
	select {
	case m.updates <- struct{}{}:
	default:
	}
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.listenUpdates(), m.spin.Tick, m.loadMeta()}
	if prompt := strings.TrimSpace(m.initSend); prompt != "" {
		cmds = append(cmds, m.startTurn(prompt))
	}
	return tea.Batch(cmds...)
}

func (m *Model) listenUpdates() tea.Cmd {
	return func() tea.Msg {
		<-m.updates
		return transcriptMsg{}
	}
}

func (m *Model) loadMeta() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		llm, err := client.LLMConfig(ctx)
		if err != nil {
			return metaMsg{err: err}
		}
		servers, err := client.MCPServers(ctx)
		if err != nil {
			return metaMsg{llm: llm.Config, err: err}
		}
		return metaMsg{llm: llm.Config, servers: servers.Servers}
	}
}

func (m *Model) loadServers() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		resp, err := client.MCPServers(ctx)
		if err != nil {
			return serversMsg{err: err}
		}
		return serversMsg{servers: resp.Servers}
	}
}

func (m *Model) startTurn(text string) tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelTurn = cancel
	m.timer.Start()
	m.note = ""
	m.err = nil
	if m.hist != nil {
		if err := m.hist.Append(text, string(m.controller.Mode())); err != nil {
			m.log.Warnf("append prompt history: %v", err)
		}
	}
	m.promptHist.Add(text)
	ctrl := m.controller
	return func() tea.Msg {
		return turnDoneMsg{err: ctrl.Submit(ctx, text)}
	}
}

func (m *Model) rerunLast() tea.Cmd {
	idx, ok := m.lastUserIndex()
	if !ok {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelTurn = cancel
	m.timer.Start()
	m.note = ""
	ctrl := m.controller
	return func() tea.Msg {
		return turnDoneMsg{err: ctrl.Rerun(ctx, idx)}
	}
}

func (m *Model) lastUserIndex() (int, bool) {
	snap := m.controller.Snapshot()
	for i := len(snap) - 1; i >= 0; i-- {
		if snap[i].Role == chat.RoleUser {
			return i, true
		}
	}
	return 0, false
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case transcriptMsg:
		m.refreshTranscript()
		return m, m.listenUpdates()
	case turnDoneMsg:
		m.timer.Stop()
		m.cancelTurn = nil
		if msg.err != nil && msg.err != chat.ErrBusy {
			m.err = msg.err
		}
		m.refreshTranscript()
		return m, nil
	case metaMsg:
		if msg.err != nil {
			m.err = msg.err
		}
		m.llmModel = msg.llm.Model
		m.serverCount = len(msg.servers)
		return m, nil
	case serversMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.serverCount = len(msg.servers)
		m.picker = newServerPicker(msg.servers)
		m.picking = true
		return m, nil
	case noteMsg:
		m.note = msg.text
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		if m.controller.Sending() {
			m.refreshTranscript()
		}
		return m, cmd
	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	m.setComposerHeight()
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter && msg.Alt {
		// Alt+Enter 换行，交给输入框处理。
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(tea.KeyMsg{Type: tea.KeyEnter})
		m.setComposerHeight()
		return m, cmd
	}

	if m.picking {
		return m.updatePickerKey(msg)
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.controller.Sending() && m.cancelTurn != nil {
			m.cancelTurn()
		}
		return m, nil
	case "enter":
		if m.controller.Sending() {
			return m, nil
		}
		input := strings.TrimSpace(m.textarea.Value())
		if input == "" {
			return m, nil
		}
		m.textarea.Reset()
		m.setComposerHeight()
		m.promptHist.ResetBrowsing()
		return m, m.startTurn(input)
	case "ctrl+r":
		if m.controller.Sending() {
			return m, nil
		}
		return m, m.rerunLast()
	case "ctrl+e":
		if m.controller.Sending() {
			return m, nil
		}
		idx, ok := m.lastUserIndex()
		if !ok {
			return m, nil
		}
		content, err := m.controller.Edit(idx)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.textarea.SetValue(content)
		m.setComposerHeight()
		m.refreshTranscript()
		return m, nil
	case "ctrl+l":
		if m.controller.Sending() {
			return m, nil
		}
		ctrl := m.controller
		return m, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := ctrl.ClearSession(ctx); err != nil {
				return noteMsg{text: fmt.Sprintf("clear failed: %v", err)}
			}
			return noteMsg{text: ""}
		}
	case "ctrl+g":
		next := api.ModeRAG
		if m.controller.Mode() == api.ModeRAG {
			next = api.ModeAgent
		}
		if err := m.controller.SetMode(next); err != nil {
			m.err = err
			return m, nil
		}
		m.note = fmt.Sprintf("mode: %s", next)
		return m, nil
	case "ctrl+y":
		if text, ok := m.lastAssistantReply(); ok {
			if err := clipboard.WriteAll(text); err != nil {
				m.err = err
			} else {
				m.note = "reply copied to clipboard"
			}
		}
		return m, nil
	case "ctrl+t":
		return m, m.loadServers()
	case "up":
		if m.textarea.Value() == "" || m.promptHist.Browsing() {
			if text, ok := m.promptHist.Prev(m.textarea.Value()); ok {
				m.textarea.SetValue(text)
				m.textarea.CursorEnd()
			}
			return m, nil
		}
	case "down":
		if m.promptHist.Browsing() {
			if text, ok := m.promptHist.Next(); ok || text == "" {
				m.textarea.SetValue(text)
				m.textarea.CursorEnd()
			}
			return m, nil
		}
	case "pgup":
		m.viewport.HalfViewUp()
		return m, nil
	case "pgdown":
		m.viewport.HalfViewDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	m.setComposerHeight()
	return m, cmd
}

func (m *Model) updatePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c", "ctrl+t":
		m.picking = false
		return m, nil
	case "enter":
		if sel, ok := m.picker.Selected(); ok {
			m.note = fmt.Sprintf("server: %s (%s)", sel.Name, sel.URL)
		}
		m.picking = false
		return m, nil
	case "up":
		m.picker.MoveUp()
		return m, nil
	case "down":
		m.picker.MoveDown()
		return m, nil
	case "backspace":
		q := m.picker.Query()
		if q != "" {
			m.picker.SetQuery(q[:len(q)-1])
		}
		return m, nil
	}
	if msg.Type == tea.KeyRunes {
		m.picker.SetQuery(m.picker.Query() + string(msg.Runes))
	}
	return m, nil
}

func (m *Model) lastAssistantReply() (string, bool) {
	snap := m.controller.Snapshot()
	for i := len(snap) - 1; i >= 0; i-- {
		if snap[i].Role == chat.RoleAssistant && snap[i].Content != "" {
			return snap[i].Content, true
		}
	}
	return "", false
}

func (m *Model) refreshTranscript() {
	pending := ""
	if m.controller.Sending() {
		pending = m.spin.View() + " " + m.timer.Hint()
	}
	lines := render.Entries(m.controller.Snapshot(), m.viewport.Width, pending)
	m.viewport.SetContent(strings.Join(lines, "\n"))
	m.viewport.GotoBottom()
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.ready = true
	composerHeight := m.textarea.Height() + 2
	headerHeight := 4
	statusHeight := 1
	hintsHeight := 1
	mainHeight := height - composerHeight - headerHeight - statusHeight - hintsHeight - 2
	if mainHeight < 4 {
		mainHeight = 4
	}
	m.viewport.Width = width - 2
	m.viewport.Height = mainHeight
	m.textarea.SetWidth(width - 4)
	m.refreshTranscript()
}

func (m *Model) setComposerHeight() {
	lines := strings.Count(m.textarea.Value(), "\n") + 1
	if lines < 1 {
		lines = 1
	}
	if lines > 6 {
		lines = 6
	}
	if m.textarea.Height() != lines {
		m.textarea.SetHeight(lines)
		if m.ready {
			m.resize(m.width, m.height)
		}
	}
}

// SessionID 暴露当前会话标识，供退出时打印。
func (m *Model) SessionID() string {
	return m.controller.SessionID()
}
