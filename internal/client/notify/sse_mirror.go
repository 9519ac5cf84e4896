package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/r3labs/sse/v2"
	"gopkg.in/cenkalti/backoff.v1"

	"github.com/yungbote/cablehouse-backend/internal/platform/logger"
	"github.com/yungbote/cablehouse-backend/internal/realtime"
)

const (
	streamPath       = "/api/realtime/stream"
	reconnectBackoff = time.Second
	maxReconnectWait = 15 * time.Second
)

// SSEMirror listens to the server's change stream. The server already
// broadcasts every committed mutation, so Send does nothing; incoming events
// that carry this bus' own origin are skipped.
type SSEMirror struct {
	log     *logger.Logger
	baseURL string
	http    *http.Client

	connectedOnce sync.Once
	connected     chan struct{}
}

// NewSSEMirror needs an http.Client without a total timeout; streams are
// long-lived.
func NewSSEMirror(log *logger.Logger, baseURL string, hc *http.Client) *SSEMirror {
	if hc == nil {
		hc = &http.Client{}
	}
	return &SSEMirror{
		log:       log.With("component", "SSEMirror"),
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      hc,
		connected: make(chan struct{}),
	}
}

// Connected is closed once the first stream is open.
func (m *SSEMirror) Connected() <-chan struct{} { return m.connected }

func (m *SSEMirror) Send(*Bus, realtime.Change) {}

func (m *SSEMirror) Join(b *Bus) func() {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		m.run(ctx, b)
	}()
	return func() {
		cancel()
		<-done
	}
}

func (m *SSEMirror) newStreamClient(b *Bus) *sse.Client {
	c := sse.NewClient(m.baseURL + streamPath)
	c.Connection = m.http
	c.Headers["X-Client-Origin"] = b.Origin()
	c.ResponseValidator = func(_ *sse.Client, resp *http.Response) error {
		if resp.StatusCode != http.StatusOK {
			_ = resp.Body.Close()
			return fmt.Errorf("stream status %d", resp.StatusCode)
		}
		m.connectedOnce.Do(func() { close(m.connected) })
		return nil
	}
	c.ReconnectNotify = func(err error, wait time.Duration) {
		m.log.Warn("Change stream dropped", "error", err, "retry_in", wait)
	}
	return c
}

func newReconnectStrategy(ctx context.Context) backoff.BackOff {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = reconnectBackoff
	eb.MaxInterval = maxReconnectWait
	eb.MaxElapsedTime = 0
	return backoff.WithContext(eb, ctx)
}

// run keeps one subscription open until ctx ends. The stream client retries
// failed connections itself; a stream the server closes cleanly is reopened
// here after the same backoff.
func (m *SSEMirror) run(ctx context.Context, b *Bus) {
	client := m.newStreamClient(b)
	strategy := newReconnectStrategy(ctx)
	client.ReconnectStrategy = strategy
	for {
		err := client.SubscribeRawWithContext(ctx, func(ev *sse.Event) {
			m.dispatch(b, string(ev.Event), ev.Data)
		})
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			m.log.Warn("Change stream gave up", "error", err)
		}
		wait := strategy.NextBackOff()
		if wait == backoff.Stop {
			return
		}
		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return
		case <-t.C:
		}
	}
}

func (m *SSEMirror) dispatch(b *Bus, event string, data []byte) {
	if realtime.SSEEvent(event) != realtime.SSEEventDataChanged || len(data) == 0 {
		return
	}
	var msg struct {
		Channel string          `json:"channel"`
		Data    realtime.Change `json:"data"`
	}
	if err := json.Unmarshal(data, &msg); err != nil {
		m.log.Warn("Dropping malformed change event", "error", err)
		return
	}
	if msg.Data.Origin != "" && msg.Data.Origin == b.Origin() {
		return
	}
	b.deliver(msg.Data)
}
