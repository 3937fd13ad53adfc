// Package inbox captures files dropped into a watched folder: text files
// go through gateway classification, images through the scanner path.
// Processed files are moved into a processed/ subdirectory.
package inbox

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mindbackup/mindbackup/internal/brain"
	"github.com/mindbackup/mindbackup/internal/gateway"
)

// processedDir is where handled files are moved, relative to the inbox.
const processedDir = "processed"

// Processor turns a dropped file into a stored memory.
type Processor struct {
	brain  *brain.Brain
	gw     *gateway.Gateway
	userID string
	log    zerolog.Logger
	newID  func() string
	now    func() time.Time
}

// NewProcessor creates a Processor capturing into the given user's brain.
func NewProcessor(b *brain.Brain, gw *gateway.Gateway, userID string, log zerolog.Logger) *Processor {
	return &Processor{
		brain:  b,
		gw:     gw,
		userID: userID,
		log:    log,
		newID:  uuid.NewString,
		now:    time.Now,
	}
}

// ProcessFile captures one file. Text extensions are classified; image
// extensions are analysed as scanned documents. Anything else is skipped
// with an error.
func (p *Processor) ProcessFile(ctx context.Context, path string) (brain.Memory, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		return p.processText(ctx, path)
	case ".jpg", ".jpeg", ".png":
		return p.processImage(ctx, path)
	default:
		return brain.Memory{}, fmt.Errorf("inbox: unsupported file type %q", filepath.Ext(path))
	}
}

func (p *Processor) processText(ctx context.Context, path string) (brain.Memory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return brain.Memory{}, fmt.Errorf("inbox: read %s: %w", path, err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return brain.Memory{}, fmt.Errorf("inbox: %s is empty", path)
	}

	c := p.gw.Classify(ctx, text)
	m := brain.Memory{
		ID:        p.newID(),
		Content:   c.Content,
		Type:      c.Type,
		Tags:      append(c.Tags, "inbox"),
		CreatedAt: p.now(),
		Metadata:  c.Metadata,
	}
	if err := p.brain.AddMemory(p.userID, m); err != nil {
		return brain.Memory{}, err
	}
	return m, nil
}

func (p *Processor) processImage(ctx context.Context, path string) (brain.Memory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return brain.Memory{}, fmt.Errorf("inbox: read %s: %w", path, err)
	}

	mime := "image/jpeg"
	if strings.EqualFold(filepath.Ext(path), ".png") {
		mime = "image/png"
	}

	analysis := p.gw.AnalyzeImage(ctx, gateway.ImagePayload{
		MimeType: mime,
		Base64:   base64.StdEncoding.EncodeToString(data),
	})

	m := brain.Memory{
		ID:        p.newID(),
		Content:   analysis.Text,
		Type:      brain.TypeDocument,
		Tags:      append(analysis.Tags, "scanned-doc"),
		CreatedAt: p.now(),
		Metadata: &brain.Metadata{
			DocumentURL: filepath.Base(path),
			Priority:    brain.PriorityMedium,
		},
	}
	if err := p.brain.AddMemory(p.userID, m); err != nil {
		return brain.Memory{}, err
	}
	return m, nil
}

// Watch monitors dir until ctx is cancelled. File events are debounced so
// a burst of drops is handled as one batch.
func Watch(ctx context.Context, dir string, debounce time.Duration, p *Processor, log zerolog.Logger) error {
	if err := os.MkdirAll(filepath.Join(dir, processedDir), 0o755); err != nil {
		return fmt.Errorf("inbox: create processed dir: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("inbox: create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("inbox: watch %s: %w", dir, err)
	}

	// Catch up on files that were dropped while the watcher was not
	// running.
	pending := map[string]struct{}{}
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if !e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			pending[filepath.Join(dir, e.Name())] = struct{}{}
		}
	}

	timer := time.NewTimer(debounce)
	if len(pending) == 0 {
		timer.Stop()
	}

	log.Info().Str("dir", dir).Dur("debounce", debounce).Msg("inbox watching")

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			name := filepath.Base(event.Name)
			if strings.HasPrefix(name, ".") {
				continue
			}
			if info, err := os.Stat(event.Name); err != nil || info.IsDir() {
				continue
			}
			pending[event.Name] = struct{}{}
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("inbox watch error")

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			batch := pending
			pending = map[string]struct{}{}

			for path := range batch {
				m, err := p.ProcessFile(ctx, path)
				if err != nil {
					log.Warn().Err(err).Str("file", path).Msg("inbox skipped file")
					continue
				}
				log.Info().Str("file", filepath.Base(path)).Str("type", string(m.Type)).Str("id", m.ID).Msg("inbox captured")

				dest := filepath.Join(dir, processedDir, filepath.Base(path))
				if err := os.Rename(path, dest); err != nil {
					log.Warn().Err(err).Str("file", path).Msg("inbox could not move processed file")
				}
			}
		}
	}
}
