package tui

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"mcpchat/internal/api"
)

// serverPicker 是 MCP 服务器列表弹窗的过滤状态。
// 输入为模糊匹配，空查询按注册顺序全量返回。
type serverPicker struct {
	servers  []api.MCPServer
	query    string
	selected int
}

func newServerPicker(servers []api.MCPServer) *serverPicker {
	return &serverPicker{servers: servers}
}

func (p *serverPicker) SetQuery(q string) {
	p.query = q
	p.selected = 0
}

func (p *serverPicker) Query() string {
	return p.query
}

// Matches 返回按匹配得分排序的服务器。
func (p *serverPicker) Matches() []api.MCPServer {
	trimmed := strings.TrimSpace(p.query)
	if trimmed == "" {
		return append([]api.MCPServer(nil), p.servers...)
	}
	keys := make([]string, len(p.servers))
	for i, s := range p.servers {
		keys[i] = strings.ToLower(s.Name + " " + s.URL)
	}
	results := fuzzy.Find(strings.ToLower(trimmed), keys)
	out := make([]api.MCPServer, 0, len(results))
	for _, res := range results {
		out = append(out, p.servers[res.Index])
	}
	return out
}

func (p *serverPicker) MoveUp() {
	if p.selected > 0 {
		p.selected--
	}
}

func (p *serverPicker) MoveDown() {
	if p.selected < len(p.Matches())-1 {
		p.selected++
	}
}

// Selected 返回当前高亮的服务器。
func (p *serverPicker) Selected() (api.MCPServer, bool) {
	matches := p.Matches()
	if p.selected < 0 || p.selected >= len(matches) {
		return api.MCPServer{}, false
	}
	return matches[p.selected], true
}
