// Package realtime fans board events out to connected clients. Publishing is
// best effort: a missing or failing transport never fails the mutation that
// produced the event.
package realtime

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/yukikurage/retro-board-api/internal/events"
	"github.com/yukikurage/retro-board-api/internal/metrics"
)

// ErrTransportNotConfigured is returned where a configured transport is required.
var ErrTransportNotConfigured = errors.New("realtime transport is not configured")

// Transport delivers one named event to one channel.
type Transport interface {
	Name() string
	Trigger(ctx context.Context, channel string, event events.Name, payload any) error
}

// Broadcaster publishes board events to every configured transport.
type Broadcaster struct {
	transports []Transport
	log        *zap.Logger
	metrics    *metrics.Metrics
	production bool
	warnOnce   sync.Once

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewBroadcaster creates a Broadcaster. nil transports are ignored; with none
// left every publish is skipped.
func NewBroadcaster(log *zap.Logger, m *metrics.Metrics, production bool, transports ...Transport) *Broadcaster {
	b := &Broadcaster{
		log:        log,
		metrics:    m,
		production: production,
	}
	for _, t := range transports {
		if t != nil {
			b.transports = append(b.transports, t)
		}
	}
	return b
}

// Enabled reports whether at least one transport is configured.
func (b *Broadcaster) Enabled() bool {
	return len(b.transports) > 0
}

// Publish sends event to the board's channel on each transport, trying each
// once. It reports whether at least one transport accepted the event.
func (b *Broadcaster) Publish(ctx context.Context, boardID string, event events.Name, payload any) (delivered bool) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("Panic while publishing board event",
				zap.String("board_id", boardID),
				zap.String("event", string(event)),
				zap.Any("panic", r),
			)
			b.metrics.RecordBroadcast(string(event), metrics.OutcomeFailed)
			delivered = false
		}
	}()

	if !b.Enabled() {
		if !b.production {
			b.warnOnce.Do(func() {
				b.log.Warn("Realtime transport is not configured; board events will not be delivered")
			})
		}
		b.metrics.RecordBroadcast(string(event), metrics.OutcomeSkipped)
		return false
	}

	channel := events.ChannelName(boardID)
	for _, t := range b.transports {
		if err := t.Trigger(ctx, channel, event, payload); err != nil {
			b.log.Warn("Failed to publish board event",
				zap.String("board_id", boardID),
				zap.String("event", string(event)),
				zap.String("transport", t.Name()),
				zap.Error(err),
			)
			b.metrics.RecordTransportError(t.Name())
			continue
		}
		delivered = true
	}

	if delivered {
		b.metrics.RecordBroadcast(string(event), metrics.OutcomeDelivered)
	} else {
		b.metrics.RecordBroadcast(string(event), metrics.OutcomeFailed)
	}
	return delivered
}

// Notify publishes in the background. The caller never waits for delivery.
func (b *Broadcaster) Notify(boardID string, event events.Name, payload any) {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		b.log.Debug("Broadcaster closed; dropping board event",
			zap.String("board_id", boardID),
			zap.String("event", string(event)),
		)
		return
	}
	b.wg.Add(1)
	b.mu.RUnlock()

	go func() {
		defer b.wg.Done()
		b.Publish(context.Background(), boardID, event, payload)
	}()
}

// Close stops accepting events and waits for in-flight publishes or ctx.
func (b *Broadcaster) Close(ctx context.Context) error {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
