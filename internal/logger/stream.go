package logger

import (
	"github.com/sirupsen/logrus"
)

// StreamLogger 负责输出与后端流式对话相关的请求、事件与错误信息。
type StreamLogger interface {
	Request(sessionID string, mode string, messageLen int)
	Chunk(sessionID string, text string, index int)
	Tool(sessionID string, name string)
	Complete(sessionID string, events int)
	Error(sessionID string, err error)
}

// StreamLog 是全局唯一的流式日志器实例。
var StreamLog StreamLogger = NewStreamLogger(nil)

// SetStreamLogger 覆盖全局流式日志实例，传入 nil 将重置为默认实现。
func SetStreamLogger(l StreamLogger) {
	if l == nil {
		l = NewStreamLogger(nil)
	}
	StreamLog = l
}

// StdStreamLogger 使用 logrus 输出日志。
type StdStreamLogger struct {
	logger *logrus.Entry
}

// NewStreamLogger 构造默认的流式日志记录器。
func NewStreamLogger(l *Logger) *StdStreamLogger {
	if l == nil {
		l = root()
	}
	return &StdStreamLogger{logger: logrus.NewEntry(l).WithField("component", "stream")}
}

// Request 记录一次流式请求的发起。
func (l *StdStreamLogger) Request(sessionID string, mode string, messageLen int) {
	l.printf("-> stream request session=%s mode=%s message_len=%d", sessionID, mode, messageLen)
}

// Chunk 记录收到的单个内容分片。
func (l *StdStreamLogger) Chunk(sessionID string, text string, index int) {
	l.printf("<- chunk session=%s seq=%d len=%d", sessionID, index, len(text))
}

// Tool 记录一次工具调用标记。
func (l *StdStreamLogger) Tool(sessionID string, name string) {
	l.printf("<- tool session=%s name=%s", sessionID, name)
}

// Complete 记录流式响应完成。
func (l *StdStreamLogger) Complete(sessionID string, events int) {
	l.printf("<- stream completed session=%s events=%d", sessionID, events)
}

// Error 记录流式请求错误。
func (l *StdStreamLogger) Error(sessionID string, err error) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.Errorf("!! stream error session=%s err=%v", sessionID, err)
}

func (l *StdStreamLogger) printf(format string, args ...any) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.Infof(format, args...)
}

// NoopStreamLogger 忽略所有日志输出。
type NoopStreamLogger struct{}

func (NoopStreamLogger) Request(sessionID string, mode string, messageLen int) {}
func (NoopStreamLogger) Chunk(sessionID string, text string, index int)       {}
func (NoopStreamLogger) Tool(sessionID string, name string)                   {}
func (NoopStreamLogger) Complete(sessionID string, events int)                {}
func (NoopStreamLogger) Error(sessionID string, err error)                    {}
