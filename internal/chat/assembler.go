package chat

import (
	"fmt"
	"strings"

	"mcpchat/internal/logger"
	"mcpchat/internal/stream"
)

// failedHints 附在后端报告的失败信息之后，提示常见的配置问题。
const failedHints = "\n\nPlease check:\n" +
	"- Ollama is running (if using Ollama)\n" +
	"- Base URL is correct (for Docker, try http://host.docker.internal:11434)\n" +
	"- Model name is correct"

// genericFailure 在拿不到具体诊断信息时使用（传输错误、流意外关闭）。
const genericFailure = "Sorry, I encountered an error processing your request"

// Assembler 将一轮的事件序列折叠进进行中的对话条目。每个事件折叠后
// 立即写入 Transcript，再处理下一个事件，从不合并或延迟更新。
type Assembler struct {
	transcript *Transcript
	content    strings.Builder
	tools      []string
	events     int
	done       bool
	log        *logger.LogEntry
}

func NewAssembler(t *Transcript) *Assembler {
	return &Assembler{transcript: t, log: logger.Named("assembler")}
}

// Apply 折叠一个事件。终结之后到达的事件被忽略（防御异常的事件源）。
func (a *Assembler) Apply(ev stream.Event) {
	if a.done {
		return
	}
	a.events++
	switch ev.Kind {
	case stream.KindChunk:
		a.content.WriteString(ev.Text)
		a.push(a.content.String(), a.tools)
	case stream.KindTool:
		a.tools = append(a.tools, ev.Tool)
		// 工具徽标在内容到达前就要可见。
		a.push(a.content.String(), a.tools)
	case stream.KindDone:
		a.done = true
		a.transcript.Seal()
	case stream.KindFailed:
		a.fail(FailedDiagnostic(ev.Message))
	}
}

// Fail 以给定诊断信息终结本轮；用于传输错误与无终结事件的流关闭。
func (a *Assembler) Fail(diag string) {
	if a.done {
		return
	}
	a.fail(diag)
}

func (a *Assembler) fail(diag string) {
	a.tools = nil
	a.push(diag, nil)
	a.done = true
	a.transcript.Seal()
}

// Done 报告本轮是否已终结。
func (a *Assembler) Done() bool {
	return a.done
}

// Events 返回已折叠的事件数。
func (a *Assembler) Events() int {
	return a.events
}

// push 写入对话记录；不变量冲突按缺陷记录日志后忽略，不中断宿主。
func (a *Assembler) push(content string, tools []string) {
	if err := a.transcript.UpdateLast(content, tools); err != nil {
		a.log.Warnf("dropping fold update: %v", err)
	}
}

// FailedDiagnostic 把后端报告的失败原样呈现并附加排查提示。
func FailedDiagnostic(message string) string {
	return fmt.Sprintf("Error: %s%s", message, failedHints)
}

// TransportDiagnostic 为传输层失败生成对话内可读的诊断文本。
func TransportDiagnostic(err error) string {
	return fmt.Sprintf("%s: %v", genericFailure, err)
}

// StreamEndDiagnostic 用于流在无终结事件的情况下关闭。
func StreamEndDiagnostic() string {
	return genericFailure + ": the response stream ended unexpectedly"
}
