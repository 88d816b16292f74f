package api

import (
	"context"
	"io"
	"net/http"
	"net/url"
)

// Chat sends one turn over the non-streaming path.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	var out ChatResponse
	err := c.do(ctx, http.MethodPost, "/api/chat", req, &out)
	return out, err
}

// StreamChat opens the streaming path for one turn. The returned body
// is a sequence of newline-delimited event records.
func (c *Client) StreamChat(ctx context.Context, req ChatRequest) (io.ReadCloser, error) {
	return c.OpenStream(ctx, "/api/chat/stream", req)
}

// Session fetches one server-side session.
func (c *Client) Session(ctx context.Context, sessionID string) (SessionInfo, error) {
	var out SessionInfo
	err := c.do(ctx, http.MethodGet, "/api/session/"+url.PathEscape(sessionID), nil, &out)
	return out, err
}

// DeleteSession discards the server-side state of one session.
func (c *Client) DeleteSession(ctx context.Context, sessionID string) error {
	return c.do(ctx, http.MethodDelete, "/api/session/"+url.PathEscape(sessionID), nil, nil)
}

// Sessions lists all server-side sessions.
func (c *Client) Sessions(ctx context.Context) (SessionsResponse, error) {
	var out SessionsResponse
	err := c.do(ctx, http.MethodGet, "/api/sessions", nil, &out)
	return out, err
}

// Tools lists every tool exposed across the registered MCP servers.
func (c *Client) Tools(ctx context.Context) (ToolsResponse, error) {
	var out ToolsResponse
	err := c.do(ctx, http.MethodGet, "/api/tools", nil, &out)
	return out, err
}

// LLMConfig fetches the provider credential record.
func (c *Client) LLMConfig(ctx context.Context) (LLMConfigResponse, error) {
	var out LLMConfigResponse
	err := c.do(ctx, http.MethodGet, "/api/llm-config", nil, &out)
	return out, err
}

// SetLLMConfig replaces the provider credential record.
func (c *Client) SetLLMConfig(ctx context.Context, cfg LLMConfig) (LLMConfigSaveResponse, error) {
	var out LLMConfigSaveResponse
	err := c.do(ctx, http.MethodPost, "/api/llm-config", cfg, &out)
	return out, err
}

// MCPServers lists the registered tool-server endpoints.
func (c *Client) MCPServers(ctx context.Context) (MCPServersResponse, error) {
	var out MCPServersResponse
	err := c.do(ctx, http.MethodGet, "/api/mcp-servers", nil, &out)
	return out, err
}

// AddMCPServer registers a tool-server endpoint.
func (c *Client) AddMCPServer(ctx context.Context, server MCPServer) error {
	return c.do(ctx, http.MethodPost, "/api/mcp-servers", server, nil)
}

// UpdateMCPServer replaces a registered tool-server endpoint.
func (c *Client) UpdateMCPServer(ctx context.Context, name string, server MCPServer) error {
	return c.do(ctx, http.MethodPut, "/api/mcp-servers/"+url.PathEscape(name), server, nil)
}

// DeleteMCPServer removes a registered tool-server endpoint.
func (c *Client) DeleteMCPServer(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodDelete, "/api/mcp-servers/"+url.PathEscape(name), nil, nil)
}
