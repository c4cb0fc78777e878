package cellfill

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/cellfill/internal/logging"
	"github.com/aretw0/cellfill/pkg/domain"
	"github.com/aretw0/cellfill/pkg/ports"
	"github.com/aretw0/cellfill/pkg/random"
)

// Generator owns the sequence of one session and is its only writer.
// It is not safe for concurrent use: hosts serving several goroutines
// serialize access through session.Manager.
type Generator struct {
	source    ports.DrawSource
	sessionID string
	cells     domain.Sequence
	created   int
	startedAt time.Time
	updatedAt time.Time
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
}

// Option defines a functional option for configuring the Generator.
type Option func(*Generator)

// WithSource injects the random draw source. Defaults to a clock-seeded source.
func WithSource(src ports.DrawSource) Option {
	return func(g *Generator) {
		g.source = src
	}
}

// WithSessionID labels the generator for hooks and logs.
func WithSessionID(id string) Option {
	return func(g *Generator) {
		g.sessionID = id
	}
}

// WithSnapshot resumes from a persisted snapshot.
func WithSnapshot(snap *domain.Snapshot) Option {
	return func(g *Generator) {
		if snap == nil {
			return
		}
		g.sessionID = snap.SessionID
		g.cells = snap.Cells.Clone()
		g.created = snap.Created
		g.startedAt = snap.StartedAt
		g.updatedAt = snap.UpdatedAt
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(g *Generator) {
		g.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// New creates a generator with an empty sequence unless WithSnapshot is given.
func New(opts ...Option) *Generator {
	g := &Generator{}
	for _, opt := range opts {
		opt(g)
	}

	if g.source == nil {
		g.source = random.NewTime()
	}
	if g.logger == nil {
		g.logger = logging.NewNop()
	}
	if g.cells == nil {
		g.cells = domain.Sequence{}
	}
	if g.startedAt.IsZero() {
		g.startedAt = time.Now().UTC()
		g.updatedAt = g.startedAt
	}
	if g.sessionID != "" {
		g.logger = g.logger.With("session_id", g.sessionID)
	}
	return g
}

// Create performs one create action: draw, append and reduce.
// It only fails when ctx is already done; the reduction itself is total.
func (g *Generator) Create(ctx context.Context) (domain.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return domain.Outcome{}, err
	}

	next, outcome := domain.Reduce(g.cells, g.source.Draw())
	g.cells = next
	g.created++
	g.updatedAt = time.Now().UTC()

	g.logger.Debug("cell created",
		"drawn", outcome.Drawn,
		"rule", outcome.Rule,
		"removed", outcome.Removed,
		"length", len(g.cells),
	)
	g.hooks.Emit(ctx, g.sessionID, outcome, len(g.cells))

	return outcome, nil
}

// Cells returns a copy of the current sequence.
func (g *Generator) Cells() domain.Sequence {
	return g.cells.Clone()
}

// Len returns the current sequence length.
func (g *Generator) Len() int {
	return len(g.cells)
}

// LastIndex returns the index the view scrolls to after a create, or -1 when empty.
func (g *Generator) LastIndex() int {
	return g.cells.LastIndex()
}

// SessionID returns the label given with WithSessionID or WithSnapshot.
func (g *Generator) SessionID() string {
	return g.sessionID
}

// Snapshot returns the persistable form of the current session.
func (g *Generator) Snapshot() *domain.Snapshot {
	return &domain.Snapshot{
		SessionID: g.sessionID,
		Cells:     g.cells.Clone(),
		Created:   g.created,
		StartedAt: g.startedAt,
		UpdatedAt: g.updatedAt,
	}
}
