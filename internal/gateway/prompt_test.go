package gateway

import (
	"fmt"
	"strings"
	"testing"

	"github.com/mindbackup/mindbackup/internal/brain"
)

func TestBuildChatPrompt_Windows(t *testing.T) {
	g := setupGateway(t, &stubCompleter{})

	var memories []brain.Memory
	for i := 0; i < 30; i++ {
		memories = append(memories, brain.Memory{
			ID: fmt.Sprintf("m%d", i), Type: brain.TypeNote,
			Content: fmt.Sprintf("memory number %d", i),
		})
	}
	var history []brain.ChatMessage
	for i := 0; i < 12; i++ {
		history = append(history, brain.ChatMessage{
			Role: "user", Text: fmt.Sprintf("turn %d", i),
		})
	}

	prompt := g.buildChatPrompt("what's up", memories, history, brain.DefaultProfile(), brain.PersonalityFriendly)

	// 20 most recent memories only: the list arrives newest-first, so the
	// cut keeps 0..19 and drops 20..29.
	if !strings.Contains(prompt, "memory number 19") {
		t.Error("memory 19 should be in the window")
	}
	if strings.Contains(prompt, "memory number 20") {
		t.Error("memory 20 should be outside the window")
	}

	// Last 8 turns only.
	if !strings.Contains(prompt, "turn 4") || strings.Contains(prompt, "turn 3") {
		t.Error("history window should be turns 4..11")
	}

	if !strings.Contains(prompt, `NEW INPUT: "what's up"`) {
		t.Error("query must appear quoted in the prompt")
	}
}

func TestBuildChatPrompt_ProfileAndPersonality(t *testing.T) {
	g := setupGateway(t, &stubCompleter{})

	profile := brain.DefaultProfile()
	profile.WakeTime = "05:45"
	prompt := g.buildChatPrompt("q", nil, nil, profile, brain.PersonalityStrict)

	if !strings.Contains(prompt, "Wake: 05:45") {
		t.Error("profile values must be rendered")
	}
	if !strings.Contains(prompt, "PERSONALITY MODE: STRICT") {
		t.Error("personality mode must be rendered")
	}
	if !strings.Contains(prompt, "No fluff") {
		t.Error("strict mode directive missing")
	}
}

func TestBuildChatPrompt_MemoryLocationAnnotation(t *testing.T) {
	g := setupGateway(t, &stubCompleter{})

	memories := []brain.Memory{{
		Type: brain.TypeLocation, Content: "Passport",
		Metadata: &brain.Metadata{Location: "blue drawer"},
	}}
	prompt := g.buildChatPrompt("where is my passport", memories, nil, brain.DefaultProfile(), brain.PersonalityFriendly)

	if !strings.Contains(prompt, "[LOCATION] Passport @ blue drawer") {
		t.Error("location annotation missing from memory bank")
	}
}

func TestStripCodeFence(t *testing.T) {
	fenced := "```json\n{\"a\":1}\n```"
	if got := stripCodeFence(fenced); got != `{"a":1}` {
		t.Errorf("got %q", got)
	}
	if got := stripCodeFence(`{"a":1}`); got != `{"a":1}` {
		t.Errorf("plain text must pass through, got %q", got)
	}
}
