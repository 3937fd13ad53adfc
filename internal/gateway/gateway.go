// Package gateway is the boundary to the external generative-completion
// service. It exposes four operations (classify, chat, schedule, image
// analysis), each with a single attempt and a deterministic local fallback,
// so the rest of the app never observes an unhandled failure.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mindbackup/mindbackup/internal/brain"
)

// Provider name constants.
const (
	ProviderGemini = "gemini"
	ProviderClaude = "claude"
	ProviderOpenAI = "openai"
)

// ImagePayload is a base64-encoded image sent to a vision-capable model.
type ImagePayload struct {
	MimeType string
	Base64   string
}

// CompletionRequest holds the parameters for one completion call.
type CompletionRequest struct {
	System string
	Prompt string
	// ResponseSchema, when non-nil, requires a structured JSON response
	// matching the schema (declared in the Gemini schema dialect; other
	// providers enforce it by prompt contract plus JSON mode).
	ResponseSchema json.RawMessage
	Image          *ImagePayload
	MaxTokens      int
}

// Completer is the low-level provider seam. Production implementations talk
// to a remote completion endpoint; tests return canned or forced-failure
// responses.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	Name() string
}

// New constructs the Completer for the named provider.
func New(provider, apiKey string) (Completer, error) {
	switch provider {
	case ProviderGemini, "":
		return NewGemini(apiKey), nil
	case ProviderClaude:
		return NewClaude(apiKey), nil
	case ProviderOpenAI:
		return NewOpenAI(apiKey), nil
	default:
		return nil, fmt.Errorf("gateway: unknown provider %q; valid providers: gemini, claude, openai", provider)
	}
}

// Classification is the structured result of classifying raw captured text.
type Classification struct {
	Type     brain.MemoryType
	Content  string
	Tags     []string
	Metadata *brain.Metadata
}

// ImageAnalysis is the result of analysing a scanned image.
type ImageAnalysis struct {
	Text string   `json:"text"`
	Tags []string `json:"tags"`
}

// OfflineChatNotice is returned from Chat when the completion call fails.
const OfflineChatNotice = "**Offline Mode Active**\n\nI can't access the cloud brain right now, but I've noted your input locally. We will sync when online."

// offlineImageText is the AnalyzeImage fallback description.
const offlineImageText = "Offline: Image queued for analysis."

// Gateway wraps a Completer with the four request contracts and their
// fallbacks. Failure policy for all four: no retries, no backoff; the error
// is logged, never surfaced as a crash.
type Gateway struct {
	completer Completer
	tok       *Tokenizer
	log       zerolog.Logger
	now       func() time.Time

	// maxContextTokens bounds the memory-bank section of chat prompts.
	maxContextTokens int
}

// NewGateway creates a Gateway over the given completer. A nil tokenizer is
// allowed; context truncation then falls back to line counting only.
func NewGateway(c Completer, tok *Tokenizer, maxContextTokens int, log zerolog.Logger) *Gateway {
	if maxContextTokens <= 0 {
		maxContextTokens = 4000
	}
	return &Gateway{
		completer:        c,
		tok:              tok,
		log:              log,
		now:              time.Now,
		maxContextTokens: maxContextTokens,
	}
}

// SetClock overrides the time source. Tests only.
func (g *Gateway) SetClock(now func() time.Time) { g.now = now }

// FallbackClassification is the deterministic result used when
// classification fails: the raw text is kept verbatim as a NOTE.
func FallbackClassification(raw string) Classification {
	return Classification{
		Type:     brain.TypeNote,
		Content:  raw,
		Tags:     []string{"offline-capture"},
		Metadata: &brain.Metadata{Priority: brain.PriorityMedium},
	}
}

// classifySchema constrains the classification response. DOCUMENT is absent
// on purpose: documents only enter through the image scanner.
var classifySchema = json.RawMessage(`{
  "type": "OBJECT",
  "properties": {
    "type": {"type": "STRING", "enum": ["NOTE", "TASK", "LOCATION", "EVENT"]},
    "refinedContent": {"type": "STRING"},
    "tags": {"type": "ARRAY", "items": {"type": "STRING"}},
    "metadata": {
      "type": "OBJECT",
      "properties": {
        "location": {"type": "STRING", "nullable": true},
        "deadline": {"type": "STRING", "nullable": true},
        "priority": {"type": "STRING", "enum": ["LOW", "MEDIUM", "HIGH", "CRITICAL"], "nullable": true}
      }
    }
  }
}`)

// Classify structures raw captured text into a typed memory. Any transport
// or schema failure degrades to FallbackClassification.
func (g *Gateway) Classify(ctx context.Context, raw string) Classification {
	prompt := fmt.Sprintf(`Analyze input for the 'MindBackup' second-brain app. Input: %q.
Classify: LOCATION (where things are), TASK (todos), EVENT (calendar), NOTE (ideas).
Extract priority and deadline if applicable.`, raw)

	text, err := g.completer.Complete(ctx, CompletionRequest{
		Prompt:         prompt,
		ResponseSchema: classifySchema,
	})
	if err != nil {
		g.log.Warn().Err(err).Str("provider", g.completer.Name()).Str("op", "classify").Msg("gateway call failed, using fallback")
		return FallbackClassification(raw)
	}

	var resp struct {
		Type           string   `json:"type"`
		RefinedContent string   `json:"refinedContent"`
		Tags           []string `json:"tags"`
		Metadata       struct {
			Location string `json:"location"`
			Deadline string `json:"deadline"`
			Priority string `json:"priority"`
		} `json:"metadata"`
	}
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		g.log.Warn().Err(err).Str("op", "classify").Msg("unparseable gateway response, using fallback")
		return FallbackClassification(raw)
	}

	// Enumerated fields only: out-of-enum values are schema failures.
	mt := brain.MemoryType(resp.Type)
	if !ValidClassifiedType(mt) {
		g.log.Warn().Str("type", resp.Type).Str("op", "classify").Msg("response type outside schema, using fallback")
		return FallbackClassification(raw)
	}

	priority := brain.Priority(resp.Metadata.Priority)
	if priority == "" {
		priority = brain.PriorityMedium
	}
	if !brain.ValidPriority(priority) {
		g.log.Warn().Str("priority", resp.Metadata.Priority).Str("op", "classify").Msg("response priority outside schema, using fallback")
		return FallbackClassification(raw)
	}

	content := resp.RefinedContent
	if content == "" {
		content = raw
	}
	tags := resp.Tags
	if tags == nil {
		tags = []string{}
	}

	md := &brain.Metadata{
		Location: resp.Metadata.Location,
		Deadline: resp.Metadata.Deadline,
		Priority: priority,
	}
	if mt == brain.TypeTask {
		md.Status = brain.StatusPending
	}

	return Classification{Type: mt, Content: content, Tags: tags, Metadata: md}
}

// ValidClassifiedType reports whether t may come back from Classify.
func ValidClassifiedType(t brain.MemoryType) bool {
	switch t {
	case brain.TypeNote, brain.TypeTask, brain.TypeLocation, brain.TypeEvent:
		return true
	}
	return false
}

// Chat sends one conversation turn with persona, memory context, and recent
// history. On any failure it returns OfflineChatNotice.
func (g *Gateway) Chat(ctx context.Context, query string, memories []brain.Memory, history []brain.ChatMessage, profile brain.UserProfile, personality brain.PersonalityMode) string {
	prompt := g.buildChatPrompt(query, memories, history, profile, personality)

	text, err := g.completer.Complete(ctx, CompletionRequest{Prompt: prompt})
	if err != nil {
		g.log.Warn().Err(err).Str("provider", g.completer.Name()).Str("op", "chat").Msg("gateway call failed, using offline notice")
		return OfflineChatNotice
	}
	if text == "" {
		return "Thinking process interrupted."
	}
	return text
}

// scheduleSchema constrains the day-plan response.
var scheduleSchema = json.RawMessage(`{
  "type": "OBJECT",
  "properties": {
    "date": {"type": "STRING"},
    "slots": {
      "type": "ARRAY",
      "items": {
        "type": "OBJECT",
        "properties": {
          "time": {"type": "STRING"},
          "task": {"type": "STRING"},
          "type": {"type": "STRING", "enum": ["work", "break", "personal"]}
        }
      }
    }
  }
}`)

// Schedule generates a day plan from the user's pending tasks. With no
// pending tasks it returns nil immediately, without a network call. Any
// failure also yields nil.
func (g *Gateway) Schedule(ctx context.Context, tasks []brain.Memory, profile brain.UserProfile) *brain.DaySchedule {
	pending := make([]brain.Memory, 0, len(tasks))
	for _, t := range tasks {
		if t.Type == brain.TypeTask && t.Metadata != nil && t.Metadata.Status == brain.StatusPending {
			pending = append(pending, t)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	taskList := ""
	for _, t := range pending {
		priority := brain.PriorityMedium
		if t.Metadata != nil && t.Metadata.Priority != "" {
			priority = t.Metadata.Priority
		}
		taskList += fmt.Sprintf("- %s (Priority: %s)\n", t.Content, priority)
	}

	prompt := fmt.Sprintf(`Create a daily schedule.
User Profile: Work starts %s, Wake %s, Break every %s.
Tasks:
%s
Output JSON only.`, profile.WorkStart, profile.WakeTime, profile.BreakInterval, taskList)

	text, err := g.completer.Complete(ctx, CompletionRequest{
		Prompt:         prompt,
		ResponseSchema: scheduleSchema,
	})
	if err != nil {
		g.log.Warn().Err(err).Str("provider", g.completer.Name()).Str("op", "schedule").Msg("gateway call failed")
		return nil
	}

	var sched brain.DaySchedule
	if err := json.Unmarshal([]byte(text), &sched); err != nil {
		g.log.Warn().Err(err).Str("op", "schedule").Msg("unparseable gateway response")
		return nil
	}
	for _, slot := range sched.Slots {
		if !brain.ValidSlotType(slot.Type) {
			g.log.Warn().Str("slotType", string(slot.Type)).Str("op", "schedule").Msg("response slot type outside schema")
			return nil
		}
	}
	if sched.Date == "" {
		sched.Date = g.now().Format("2006-01-02")
	}
	return &sched
}

// imageSchema constrains the image-analysis response.
var imageSchema = json.RawMessage(`{
  "type": "OBJECT",
  "properties": {
    "text": {"type": "STRING"},
    "tags": {"type": "ARRAY", "items": {"type": "STRING"}}
  }
}`)

// AnalyzeImage extracts a description and tags from an image. On failure it
// reports the image as queued for later analysis.
func (g *Gateway) AnalyzeImage(ctx context.Context, img ImagePayload) ImageAnalysis {
	text, err := g.completer.Complete(ctx, CompletionRequest{
		Prompt:         "Analyze this image. Return JSON with 'text' (description/ocr) and 'tags'.",
		ResponseSchema: imageSchema,
		Image:          &img,
	})
	if err != nil {
		g.log.Warn().Err(err).Str("provider", g.completer.Name()).Str("op", "analyzeImage").Msg("gateway call failed, using fallback")
		return ImageAnalysis{Text: offlineImageText, Tags: []string{"offline"}}
	}

	var result ImageAnalysis
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		g.log.Warn().Err(err).Str("op", "analyzeImage").Msg("unparseable gateway response, using fallback")
		return ImageAnalysis{Text: offlineImageText, Tags: []string{"offline"}}
	}
	if result.Tags == nil {
		result.Tags = []string{}
	}
	return result
}
