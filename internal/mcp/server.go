// Package mcp exposes scenarios and practice sessions as MCP tools so an
// agent can drive a roleplay over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/salesdojo/salesdojo/internal/catalog"
	"github.com/salesdojo/salesdojo/internal/session"
)

// Server wraps the catalog and session manager and exposes them as MCP
// tools.
type Server struct {
	catalog  catalog.Catalog
	sessions *session.Manager
}

// NewServer creates the MCP server wrapper.
func NewServer(cat catalog.Catalog, mgr *session.Manager) *Server {
	return &Server{
		catalog:  cat,
		sessions: mgr,
	}
}

// MCPServer returns a configured mcp-go server with all tools registered.
func (s *Server) MCPServer() *server.MCPServer {
	srv := server.NewMCPServer("salesdojo", "1.0.0", server.WithToolCapabilities(true))

	srv.AddTool(s.listScenariosTool())
	srv.AddTool(s.startSessionTool())
	srv.AddTool(s.sendMessageTool())
	srv.AddTool(s.endSessionTool())
	srv.AddTool(s.getSessionTool())

	return srv
}

// ServeStdio starts the stdio transport, blocking until ctx is cancelled.
func (s *Server) ServeStdio(ctx context.Context) error {
	srv := s.MCPServer()
	stdioServer := server.NewStdioServer(srv)
	return stdioServer.Listen(ctx, os.Stdin, os.Stdout)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// ---------------------------------------------------------------------------
// Tool definitions and handlers
// ---------------------------------------------------------------------------

// salesdojo_list_scenarios
func (s *Server) listScenariosTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("salesdojo_list_scenarios",
		mcp.WithDescription("List available practice scenarios. Returns a JSON array with id, title, description, prospect identity, initial mood, and difficulty."),
	)
	return tool, s.handleListScenarios
}

func (s *Server) handleListScenarios(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	scenarios, err := s.catalog.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list scenarios: %v", err)), nil
	}
	return jsonResult(scenarios)
}

// salesdojo_start_session
func (s *Server) startSessionTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("salesdojo_start_session",
		mcp.WithDescription("Start a practice conversation against a scenario. Returns the new session id, the prospect identity, and the starting mood."),
		mcp.WithString("scenario_id", mcp.Required(), mcp.Description("Scenario id, e.g. cold-call-vp-eng")),
	)
	return tool, s.handleStartSession
}

func (s *Server) handleStartSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	scenarioID, err := request.RequireString("scenario_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: scenario_id"), nil
	}

	state, err := s.sessions.Start(ctx, scenarioID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to start session: %v", err)), nil
	}

	return jsonResult(map[string]any{
		"session_id":    state.SessionID,
		"scenario":      state.Scenario.Title,
		"prospect_name": state.Scenario.ProspectName,
		"prospect_role": state.Scenario.ProspectRole,
		"company":       state.Scenario.Company,
		"mood":          state.Mood,
	})
}

// salesdojo_send_message
func (s *Server) sendMessageTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("salesdojo_send_message",
		mcp.WithDescription("Send the salesperson's next message to a session. Returns the prospect's reply plus the updated phase, mood, and topics."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id returned by salesdojo_start_session")),
		mcp.WithString("message", mcp.Required(), mcp.Description("The salesperson's utterance")),
	)
	return tool, s.handleSendMessage
}

func (s *Server) handleSendMessage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: session_id"), nil
	}
	message, err := request.RequireString("message")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: message"), nil
	}

	result, err := s.sessions.Turn(ctx, sessionID, message)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to send message: %v", err)), nil
	}

	return jsonResult(map[string]any{
		"prospect_response": result.Reply,
		"phase":             result.State.Phase,
		"mood":              result.State.Mood,
		"key_topics":        result.State.Topics,
	})
}

// salesdojo_end_session
func (s *Server) endSessionTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("salesdojo_end_session",
		mcp.WithDescription("End a practice session and return the performance summary: key moments, strengths, improvement areas, and overall feedback."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id to end")),
	)
	return tool, s.handleEndSession
}

func (s *Server) handleEndSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: session_id"), nil
	}

	summary, err := s.sessions.End(ctx, sessionID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to end session: %v", err)), nil
	}
	return jsonResult(summary)
}

// salesdojo_get_session
func (s *Server) getSessionTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("salesdojo_get_session",
		mcp.WithDescription("Get the full state of a session: history, phase, mood, topics, objections, and coaching notes."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id to inspect")),
	)
	return tool, s.handleGetSession
}

func (s *Server) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: session_id"), nil
	}

	state, err := s.sessions.Get(sessionID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get session: %v", err)), nil
	}
	return jsonResult(state)
}
