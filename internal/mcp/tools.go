package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mindbackup/mindbackup/internal/brain"
)

func (s *Server) handleCapture(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: text"), nil
	}

	typeStr := req.GetString("type", "")
	forced := brain.MemoryType(typeStr)
	if typeStr != "" && !brain.ValidMemoryType(forced) {
		return mcp.NewToolResultError(fmt.Sprintf("invalid type %q (valid: NOTE, TASK, LOCATION, EVENT, DOCUMENT)", typeStr)), nil
	}

	var m brain.Memory
	if forced != "" {
		md := &brain.Metadata{Priority: brain.PriorityMedium}
		if forced == brain.TypeTask {
			md.Status = brain.StatusPending
		}
		m = brain.Memory{
			ID:        s.newID(),
			Content:   text,
			Type:      forced,
			Tags:      []string{},
			CreatedAt: s.now(),
			Metadata:  md,
		}
	} else {
		c := s.gw.Classify(ctx, text)
		m = brain.Memory{
			ID:        s.newID(),
			Content:   c.Content,
			Type:      c.Type,
			Tags:      c.Tags,
			CreatedAt: s.now(),
			Metadata:  c.Metadata,
		}
	}

	if err := s.brain.AddMemory(s.userID, m); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to store memory: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Captured as %s (id: %s): %s", m.Type, m.ID, m.Content)), nil
}

func (s *Server) handleSearch(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	typeStr := req.GetString("type", "")
	typeFilter := brain.MemoryType(typeStr)
	if typeStr != "" && !brain.ValidMemoryType(typeFilter) {
		return mcp.NewToolResultError(fmt.Sprintf("invalid type %q", typeStr)), nil
	}

	memories := s.brain.Memories.Find(s.userID, query, typeFilter)
	if len(memories) == 0 {
		return mcp.NewToolResultText("No memories matched."), nil
	}

	out, _ := json.MarshalIndent(memories, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) handleListTasks(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tasks := s.brain.Memories.PendingTasks(s.userID)
	if len(tasks) == 0 {
		return mcp.NewToolResultText("No pending tasks."), nil
	}

	out, _ := json.MarshalIndent(tasks, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) handleCompleteTask(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: id"), nil
	}

	changed, err := s.brain.ToggleTask(s.userID, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to toggle task: %v", err)), nil
	}
	if !changed {
		return mcp.NewToolResultText("Nothing toggled: unknown id or the memory has no metadata."), nil
	}

	m, _ := s.brain.Memories.Get(s.userID, id)
	return mcp.NewToolResultText(fmt.Sprintf("Task %q is now %s.", m.Content, m.Metadata.Status)), nil
}

func (s *Server) handleStats(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats := s.brain.Stats(s.userID)
	personality := brain.SelectPersonality(stats)

	out, _ := json.MarshalIndent(map[string]any{
		"stats":       stats,
		"personality": personality,
	}, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) handleSchedule(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tasks := s.brain.Memories.PendingTasks(s.userID)
	profile := s.brain.Profiles.Load(s.userID)

	sched := s.gw.Schedule(ctx, tasks, profile)
	if sched == nil {
		return mcp.NewToolResultText("No schedule: there are no pending tasks (or the planner is offline)."), nil
	}

	out, _ := json.MarshalIndent(sched, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}
