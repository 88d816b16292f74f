package api

// Mode selects how the backend answers a turn.
type Mode string

const (
	ModeAgent Mode = "agent"
	ModeRAG   Mode = "rag"
)

// ParseMode normalizes a mode string, defaulting to agent.
func ParseMode(s string) Mode {
	if s == string(ModeRAG) {
		return ModeRAG
	}
	return ModeAgent
}

// ChatRequest is the body of POST /api/chat and /api/chat/stream.
// It is built once per submitted turn and never mutated.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
	Mode      Mode   `json:"mode"`
}

// ChatResponse is the non-streaming answer of POST /api/chat.
type ChatResponse struct {
	Response  string   `json:"response"`
	SessionID string   `json:"session_id"`
	Mode      string   `json:"mode"`
	ToolsUsed []string `json:"tools_used"`
}

// ChatMessage is one stored message in a server-side session.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SessionInfo is the answer of GET /api/session/{id}.
type SessionInfo struct {
	SessionID    string        `json:"session_id"`
	MessageCount int           `json:"message_count"`
	Messages     []ChatMessage `json:"messages"`
}

// SessionSummary is one element of GET /api/sessions.
type SessionSummary struct {
	SessionID    string `json:"session_id"`
	MessageCount int    `json:"message_count"`
}

// SessionsResponse is the answer of GET /api/sessions.
type SessionsResponse struct {
	Sessions []SessionSummary `json:"sessions"`
}

// MCPServer is one registered tool-server endpoint.
type MCPServer struct {
	Name      string `json:"name"`
	URL       string `json:"url"`
	APIKey    string `json:"api_key,omitempty"`
	HasAPIKey bool   `json:"has_api_key,omitempty"`
}

// MCPServersResponse is the answer of GET /api/mcp-servers.
type MCPServersResponse struct {
	Status  string      `json:"status"`
	Count   int         `json:"count"`
	Servers []MCPServer `json:"servers"`
}

// ToolInfo describes one tool exposed by a registered MCP server.
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Server      string `json:"server,omitempty"`
}

// ToolsResponse is the answer of GET /api/tools.
type ToolsResponse struct {
	Count int        `json:"count"`
	Tools []ToolInfo `json:"tools"`
}

// LLMConfig is the provider credential record of /api/llm-config.
type LLMConfig struct {
	Type    string `json:"type"`
	Model   string `json:"model"`
	APIKey  string `json:"api_key,omitempty"`
	BaseURL string `json:"base_url,omitempty"`
	APIBase string `json:"api_base,omitempty"`
}

// LLMConfigResponse is the answer of GET /api/llm-config.
type LLMConfigResponse struct {
	Status    string    `json:"status"`
	Config    LLMConfig `json:"config"`
	HasAPIKey bool      `json:"has_api_key"`
}

// LLMConfigSaveResponse is the answer of POST /api/llm-config.
type LLMConfigSaveResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Config  struct {
		Type      string `json:"type"`
		Model     string `json:"model"`
		HasAPIKey bool   `json:"has_api_key"`
	} `json:"config"`
}
