package gateway

import (
	"testing"

	anthropic "github.com/liushuangls/go-anthropic/v2"
)

func TestClaudeContent_TextOnly(t *testing.T) {
	blocks := claudeContent("hello", nil)
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0].Type != anthropic.MessagesContentTypeText {
		t.Errorf("type: got %s", blocks[0].Type)
	}
	if blocks[0].GetText() != "hello" {
		t.Errorf("text: got %q", blocks[0].GetText())
	}
}

func TestClaudeContent_WithImage(t *testing.T) {
	img := &ImagePayload{MimeType: "image/png", Base64: "aGVsbG8="}
	blocks := claudeContent("describe this", img)
	if len(blocks) != 2 {
		t.Fatalf("expected image + text blocks, got %d", len(blocks))
	}

	if blocks[0].Type != anthropic.MessagesContentTypeImage {
		t.Errorf("first block type: got %s", blocks[0].Type)
	}
	src := blocks[0].Source
	if src == nil {
		t.Fatal("image block has no source")
	}
	if src.Type != "base64" || src.MediaType != "image/png" {
		t.Errorf("source: got type %q mediaType %q", src.Type, src.MediaType)
	}
	if data, ok := src.Data.(string); !ok || data != "aGVsbG8=" {
		t.Errorf("source data: got %v", src.Data)
	}

	if blocks[1].GetText() != "describe this" {
		t.Errorf("text block: got %q", blocks[1].GetText())
	}
}
