// Package mcp exposes the brain to AI assistants over the Model Context
// Protocol (stdio transport).
package mcp

import (
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/mindbackup/mindbackup/internal/brain"
	"github.com/mindbackup/mindbackup/internal/gateway"
)

// Server wires the brain and gateway into MCP tool handlers.
type Server struct {
	brain  *brain.Brain
	gw     *gateway.Gateway
	userID string
	log    zerolog.Logger
	newID  func() string
	now    func() time.Time
}

// NewServer creates the MCP server facade for one user.
func NewServer(b *brain.Brain, gw *gateway.Gateway, userID string, log zerolog.Logger) *Server {
	return &Server{
		brain:  b,
		gw:     gw,
		userID: userID,
		log:    log,
		newID:  uuid.NewString,
		now:    time.Now,
	}
}

// Serve registers the tools and blocks serving MCP over stdio.
func (s *Server) Serve(version string) error {
	srv := server.NewMCPServer("mindbackup", version,
		server.WithToolCapabilities(false),
	)

	srv.AddTool(mcp.NewTool("capture",
		mcp.WithDescription("Capture a note, task, event, or location into the user's second brain. The text is classified automatically."),
		mcp.WithString("text", mcp.Required(), mcp.Description("The raw text to capture")),
		mcp.WithString("type", mcp.Description("Force a memory type: NOTE, TASK, LOCATION, EVENT (skips classification)")),
	), s.handleCapture)

	srv.AddTool(mcp.NewTool("search_memories",
		mcp.WithDescription("Search the user's memories by substring of content or tags."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search text")),
		mcp.WithString("type", mcp.Description("Filter by memory type")),
	), s.handleSearch)

	srv.AddTool(mcp.NewTool("list_tasks",
		mcp.WithDescription("List the user's pending tasks, newest first."),
	), s.handleListTasks)

	srv.AddTool(mcp.NewTool("complete_task",
		mcp.WithDescription("Mark a task done (or pending again if already done)."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Memory ID of the task")),
	), s.handleCompleteTask)

	srv.AddTool(mcp.NewTool("get_stats",
		mcp.WithDescription("Get the user's productivity stats and current assistant personality."),
	), s.handleStats)

	srv.AddTool(mcp.NewTool("generate_schedule",
		mcp.WithDescription("Generate a day plan from the user's pending tasks."),
	), s.handleSchedule)

	return server.ServeStdio(srv)
}
