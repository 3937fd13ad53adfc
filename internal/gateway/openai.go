package gateway

import (
	"context"
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

const openaiModel = "gpt-4o"

// openaiCompleter implements Completer for OpenAI. Structured calls use
// JSON response format with the schema carried in the prompt; images ride
// as data-URL vision parts.
type openaiCompleter struct {
	client *openai.Client
}

// NewOpenAI creates an OpenAI completer. If apiKey is empty,
// OPENAI_API_KEY is used.
func NewOpenAI(apiKey string) Completer {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	return &openaiCompleter{client: openai.NewClient(apiKey)}
}

func (o *openaiCompleter) Name() string { return ProviderOpenAI }

func (o *openaiCompleter) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 4096
	}

	prompt := req.Prompt
	if req.ResponseSchema != nil {
		prompt += fmt.Sprintf("\n\nRespond with a single JSON object matching this schema, and nothing else:\n%s", req.ResponseSchema)
	}

	messages := []openai.ChatCompletionMessage{}
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}

	userMsg := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser}
	if req.Image != nil {
		userMsg.MultiContent = []openai.ChatMessagePart{
			{
				Type: openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{
					URL: fmt.Sprintf("data:%s;base64,%s", req.Image.MimeType, req.Image.Base64),
				},
			},
			{Type: openai.ChatMessagePartTypeText, Text: prompt},
		}
	} else {
		userMsg.Content = prompt
	}
	messages = append(messages, userMsg)

	chatReq := openai.ChatCompletionRequest{
		Model:     openaiModel,
		Messages:  messages,
		MaxTokens: maxTokens,
	}
	if req.ResponseSchema != nil {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := o.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: empty response")
	}
	return resp.Choices[0].Message.Content, nil
}
