package gateway

import (
	"context"
	"fmt"
	"os"
	"strings"

	anthropic "github.com/liushuangls/go-anthropic/v2"
)

const claudeModel = "claude-sonnet-4-5"

// claudeCompleter implements Completer for Anthropic Claude. Claude has no
// native response-schema mode, so structured calls carry the schema in the
// prompt and the reply is stripped of code fences before parsing.
type claudeCompleter struct {
	client *anthropic.Client
}

// NewClaude creates a Claude completer. If apiKey is empty,
// ANTHROPIC_API_KEY is used.
func NewClaude(apiKey string) Completer {
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	return &claudeCompleter{client: anthropic.NewClient(apiKey)}
}

func (c *claudeCompleter) Name() string { return ProviderClaude }

func (c *claudeCompleter) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 4096
	}

	prompt := req.Prompt
	if req.ResponseSchema != nil {
		prompt += fmt.Sprintf("\n\nRespond with a single JSON object matching this schema, and nothing else:\n%s", req.ResponseSchema)
	}

	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:     claudeModel,
		Messages:  []anthropic.Message{{Role: anthropic.RoleUser, Content: claudeContent(prompt, req.Image)}},
		MaxTokens: maxTokens,
		System:    req.System,
	})
	if err != nil {
		return "", fmt.Errorf("claude: %w", err)
	}
	if len(resp.Content) == 0 {
		return "", fmt.Errorf("claude: empty response")
	}

	text := resp.Content[0].GetText()
	if req.ResponseSchema != nil {
		text = stripCodeFence(text)
	}
	return text, nil
}

// claudeContent builds the user message blocks: an optional base64 image
// source followed by the prompt text.
func claudeContent(prompt string, img *ImagePayload) []anthropic.MessageContent {
	content := []anthropic.MessageContent{}
	if img != nil {
		content = append(content, anthropic.NewImageMessageContent(
			anthropic.NewMessageContentImageSource("base64", img.MimeType, img.Base64),
		))
	}
	return append(content, anthropic.NewTextMessageContent(prompt))
}

// stripCodeFence removes a surrounding ```json fence, which models without
// a JSON response mode sometimes add despite instructions.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
