package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/aretw0/cellfill/pkg/domain"
)

// ResyncSignal is delivered to a subscriber that lost messages to a full
// buffer, in place of the next message. It is never valid JSON, so it cannot
// be confused with a diff payload.
const ResyncSignal = "resync"

// StreamManager handles active SSE connections.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan string]*subscriber // SessionID -> subscribers
	logger      *slog.Logger
}

type subscriber struct {
	ch     chan string
	missed atomic.Bool
}

// NewStreamManager creates an empty manager.
func NewStreamManager(logger *slog.Logger) *StreamManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &StreamManager{
		subscribers: make(map[string]map[chan string]*subscriber),
		logger:      logger,
	}
}

// Subscribe registers a buffered channel for sessionID. The returned func
// unregisters and closes it.
func (sm *StreamManager) Subscribe(sessionID string) (chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	if _, ok := sm.subscribers[sessionID]; !ok {
		sm.subscribers[sessionID] = make(map[chan string]*subscriber)
	}
	sm.subscribers[sessionID][ch] = &subscriber{ch: ch}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if subs, ok := sm.subscribers[sessionID]; ok {
			if _, ok := subs[ch]; !ok {
				return
			}
			delete(subs, ch)
			close(ch)
			if len(subs) == 0 {
				delete(sm.subscribers, sessionID)
			}
		}
	}
}

// Subscribers returns the number of open streams for sessionID.
func (sm *StreamManager) Subscribers(sessionID string) int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers[sessionID])
}

// Broadcast sends msg to every subscriber of sessionID without blocking.
// A subscriber whose buffer is full misses msg; the next Broadcast that finds
// room sends it ResyncSignal instead, after which it should reload the session.
func (sm *StreamManager) Broadcast(sessionID string, msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	subs, ok := sm.subscribers[sessionID]
	if !ok {
		return
	}
	sm.logger.Debug("StreamManager: Broadcasting", "session_id", sessionID, "subscribers", len(subs), "payload_size", len(msg))
	for _, sub := range subs {
		if sub.missed.Load() {
			select {
			case sub.ch <- ResyncSignal:
				sub.missed.Store(false)
			default:
			}
			continue
		}
		select {
		case sub.ch <- msg:
		default:
			// Slow client: it resyncs once it drains.
			sub.missed.Store(true)
			sm.logger.Warn("SSE: Client buffer full, dropping message", "session_id", sessionID)
		}
	}
}

// BroadcastDiff publishes diff to the session's SSE subscribers.
// Its signature matches session.WithDiffListener.
func (sm *StreamManager) BroadcastDiff(_ context.Context, diff *domain.SequenceDiff) {
	bytes, err := json.Marshal(diff)
	if err != nil {
		sm.logger.Error("Failed to encode diff", "session_id", diff.SessionID, "err", err)
		return
	}
	sm.Broadcast(diff.SessionID, string(bytes))
}
