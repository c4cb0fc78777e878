package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventAppend EventType = "append"
	EventSpawn  EventType = "spawn"
	EventPrune  EventType = "prune"
)

// CellEvent is emitted after a create action has been reduced.
type CellEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id,omitempty"`
	Outcome   Outcome   `json:"outcome"`
	Length    int       `json:"length"` // Sequence length after the reduction
}

// LifecycleHooks defines callbacks for generator observability.
// OnAppend fires for every create; OnSpawn and OnPrune only when their rule matched.
type LifecycleHooks struct {
	OnAppend func(context.Context, *CellEvent)
	OnSpawn  func(context.Context, *CellEvent)
	OnPrune  func(context.Context, *CellEvent)
}

// Emit dispatches the hooks matching the outcome.
func (h LifecycleHooks) Emit(ctx context.Context, sessionID string, outcome Outcome, length int) {
	base := CellEvent{
		Timestamp: time.Now(),
		SessionID: sessionID,
		Outcome:   outcome,
		Length:    length,
	}
	if h.OnAppend != nil {
		e := base
		e.Type = EventAppend
		h.OnAppend(ctx, &e)
	}
	switch outcome.Rule {
	case RuleSpawn:
		if h.OnSpawn != nil {
			e := base
			e.Type = EventSpawn
			h.OnSpawn(ctx, &e)
		}
	case RulePrune:
		if h.OnPrune != nil {
			e := base
			e.Type = EventPrune
			h.OnPrune(ctx, &e)
		}
	}
}

// Merge combines two hook sets so both run, h first.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnAppend: chain(h.OnAppend, other.OnAppend),
		OnSpawn:  chain(h.OnSpawn, other.OnSpawn),
		OnPrune:  chain(h.OnPrune, other.OnPrune),
	}
}

func chain(a, b func(context.Context, *CellEvent)) func(context.Context, *CellEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *CellEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}
