// Package notify provides the online/offline signal the UI surfaces
// subscribe to. Stores never consult it: writes succeed locally while
// offline, and the signal only drives user-facing notices.
package notify

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Notifier is the connectivity collaborator injected into the surfaces.
type Notifier interface {
	// Online reports the last observed state.
	Online() bool
	// Subscribe registers fn to run on every transition. The returned
	// cancel removes the subscription.
	Subscribe(fn func(online bool)) (cancel func())
}

// Static is a fixed-state Notifier for tests and one-shot commands that
// don't need a background probe.
type Static bool

func (s Static) Online() bool                       { return bool(s) }
func (s Static) Subscribe(func(online bool)) func() { return func() {} }

// Monitor polls a probe URL and fires subscribers on transitions.
type Monitor struct {
	probeURL string
	interval time.Duration
	client   *http.Client
	log      zerolog.Logger

	mu     sync.Mutex
	online bool
	subs   map[int]func(bool)
	nextID int
}

// NewMonitor creates a Monitor that HEADs probeURL every interval. The
// initial state is online; the first failed probe flips it.
func NewMonitor(probeURL string, interval time.Duration, log zerolog.Logger) *Monitor {
	if probeURL == "" {
		probeURL = "https://clients3.google.com/generate_204"
	}
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Monitor{
		probeURL: probeURL,
		interval: interval,
		client:   &http.Client{Timeout: 5 * time.Second},
		log:      log,
		online:   true,
		subs:     make(map[int]func(bool)),
	}
}

func (m *Monitor) Online() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

func (m *Monitor) Subscribe(fn func(online bool)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	m.subs[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs, id)
	}
}

// Run polls until ctx is cancelled.
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.set(m.probe(ctx))
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.set(m.probe(ctx))
		}
	}
}

func (m *Monitor) probe(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, m.probeURL, nil)
	if err != nil {
		return false
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return true
}

// set records the new state and fires subscribers on a transition.
func (m *Monitor) set(online bool) {
	m.mu.Lock()
	if m.online == online {
		m.mu.Unlock()
		return
	}
	m.online = online
	fns := make([]func(bool), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	m.log.Info().Bool("online", online).Msg("connectivity changed")
	for _, fn := range fns {
		fn(online)
	}
}
