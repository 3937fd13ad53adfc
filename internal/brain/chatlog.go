package brain

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mindbackup/mindbackup/internal/storage"
)

// maxStoredChatMessages caps the persisted transcript. The prompt window
// only ever uses the last few turns, so old history is trimmed on append.
const maxStoredChatMessages = 200

// ChatLog persists the assistant conversation transcript per user, oldest
// first. Like the other stores, reads never fail.
type ChatLog struct {
	kv  storage.KV
	log zerolog.Logger
	mu  sync.Mutex
}

// NewChatLog creates a ChatLog over the given KV backend.
func NewChatLog(kv storage.KV, log zerolog.Logger) *ChatLog {
	return &ChatLog{kv: kv, log: log}
}

// Load returns the full stored transcript, oldest first.
func (c *ChatLog) Load(userID string) []ChatMessage {
	raw, found, err := c.kv.Get(storage.Key(userID, "chat"))
	if err != nil {
		c.log.Warn().Err(err).Str("user", userID).Msg("chat log read failed, starting empty")
		return []ChatMessage{}
	}
	if !found {
		return []ChatMessage{}
	}

	var list []ChatMessage
	if err := json.Unmarshal(raw, &list); err != nil {
		c.log.Warn().Err(err).Str("user", userID).Msg("chat log corrupt, starting empty")
		return []ChatMessage{}
	}
	if list == nil {
		list = []ChatMessage{}
	}
	return list
}

// Append adds messages to the transcript and persists.
func (c *ChatLog) Append(userID string, msgs ...ChatMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	list := append(c.Load(userID), msgs...)
	if len(list) > maxStoredChatMessages {
		list = list[len(list)-maxStoredChatMessages:]
	}

	data, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.kv.Set(storage.Key(userID, "chat"), data)
}

// Recent returns the last n messages, oldest first.
func (c *ChatLog) Recent(userID string, n int) []ChatMessage {
	list := c.Load(userID)
	if n <= 0 || len(list) <= n {
		return list
	}
	return list[len(list)-n:]
}
