package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/cellfill"
	"github.com/aretw0/cellfill/internal/presentation/tui"
	"github.com/aretw0/cellfill/pkg/domain"
	"github.com/aretw0/cellfill/pkg/ports"
	"github.com/aretw0/cellfill/pkg/random"
	"golang.org/x/term"
)

// headerRows is the screen space taken by the title, button and status lines.
const headerRows = 6

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	SessionID string // When set, the sequence is resumed from and saved to Store
	Store     ports.SequenceStore
	Locale    domain.Locale
	Seed      uint64 // 0 seeds from the clock
	Height    int    // Visible rows; 0 follows the terminal
	Color     bool
	Banner    bool
	Hooks     domain.LifecycleHooks
	Logger    *slog.Logger
}

// Session is one interactive run: a generator and the screen it draws on.
type Session struct {
	gen      *cellfill.Generator
	theme    *tui.Theme
	viewport *tui.Viewport
	out      io.Writer
	clear    bool
	store    ports.SequenceStore
	logger   *slog.Logger
	last     *domain.Outcome
}

// NewSession prepares a session writing to out. A stored snapshot named by
// opts.SessionID is resumed when present.
func NewSession(ctx context.Context, out io.Writer, opts RunOptions) (*Session, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var src ports.DrawSource
	if opts.Seed != 0 {
		src = random.New(opts.Seed)
	} else {
		src = random.NewTime()
	}

	genOpts := []cellfill.Option{
		cellfill.WithSource(src),
		cellfill.WithLifecycleHooks(opts.Hooks),
		cellfill.WithLogger(logger),
	}

	if opts.SessionID != "" && opts.Store != nil {
		snap, err := opts.Store.Load(ctx, opts.SessionID)
		switch {
		case err == nil:
			logger.Info("Session resumed", "session_id", opts.SessionID, "cells", len(snap.Cells))
			genOpts = append(genOpts, cellfill.WithSnapshot(snap))
		case errors.Is(err, domain.ErrSessionNotFound):
			genOpts = append(genOpts, cellfill.WithSessionID(opts.SessionID))
		default:
			return nil, fmt.Errorf("failed to load session: %w", err)
		}
	}

	return &Session{
		gen:      cellfill.New(genOpts...),
		theme:    tui.NewTheme(out, opts.Locale, 0, opts.Color),
		viewport: tui.NewViewport(opts.Height),
		out:      out,
		store:    opts.Store,
		logger:   logger,
	}, nil
}

// Generator exposes the underlying generator.
func (s *Session) Generator() *cellfill.Generator {
	return s.gen
}

// Loop reads actions until quit, EOF or ctx cancellation, redrawing after each create.
func (s *Session) Loop(ctx context.Context, in ActionReader) error {
	// Keep the banner and help on screen until the first create.
	redraw := s.clear
	s.clear = false
	s.Draw()
	s.clear = redraw

	in = NewInterruptibleReader(ctx, in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		action, err := in.Next()
		if err != nil {
			return err
		}
		switch action {
		case ActionQuit:
			return nil
		case ActionCreate:
			if err := s.Create(ctx); err != nil {
				return err
			}
			s.Draw()
		}
	}
}

// Create performs one create action and persists the snapshot when a session ID is set.
func (s *Session) Create(ctx context.Context) error {
	outcome, err := s.gen.Create(ctx)
	if err != nil {
		return err
	}
	s.last = &outcome

	if s.store != nil && s.gen.SessionID() != "" {
		if err := s.store.Save(ctx, s.gen.SessionID(), s.gen.Snapshot()); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
	}
	return nil
}

// Draw renders the list scrolled to the last cell, then the button and status line.
func (s *Session) Draw() {
	var sb strings.Builder
	if s.clear {
		sb.WriteString("\x1b[H\x1b[2J")
	}
	sb.WriteString("  " + tui.Title + "\n\n")
	sb.WriteString(s.theme.List(s.gen.Cells(), s.viewport))
	sb.WriteString(s.theme.Button())
	sb.WriteString("\n")
	sb.WriteString(s.status())
	sb.WriteString("\n")
	io.WriteString(s.out, sb.String())
}

func (s *Session) status() string {
	n := s.gen.Len()
	if s.last == nil {
		return fmt.Sprintf("cells: %d", n)
	}
	msg := fmt.Sprintf("cells: %d  drawn: %s", n, s.last.Drawn)
	switch s.last.Rule {
	case domain.RuleSpawn:
		msg += "  → life!"
	case domain.RulePrune:
		msg += fmt.Sprintf("  → pruned %d", s.last.Removed)
	}
	return msg
}

// RunSession executes an interactive session on the process terminal.
func RunSession(opts RunOptions) error {
	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	var out io.Writer = os.Stdout
	if opts.Banner {
		tui.PrintBanner(out, cellfill.Version)
	}

	fd := int(os.Stdin.Fd())
	interactive := term.IsTerminal(fd)

	if interactive {
		render := tui.NewRenderer(opts.Color)
		if help, err := render(tui.HelpMarkdown); err == nil {
			fmt.Fprint(out, help)
		}
		if opts.Height == 0 {
			if _, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && h > headerRows+1 {
				opts.Height = h - headerRows
			}
		}
	}

	var reader ActionReader = NewLineReader(os.Stdin)
	if interactive {
		oldState, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("failed to enter raw mode: %w", err)
		}
		defer term.Restore(fd, oldState)
		// Raw mode disables output post-processing.
		out = &crlfWriter{w: os.Stdout}
		reader = NewKeyReader(os.Stdin)
	}

	sess, err := NewSession(sigCtx, out, opts)
	if err != nil {
		return err
	}
	sess.clear = interactive

	err = sess.Loop(sigCtx, reader)
	if errors.Is(err, context.Canceled) {
		err = nil // Exit 0 for interruptions
	}

	fmt.Fprint(out, farewell(sigCtx.Signal(), sess.gen.Len()))
	return err
}

// farewell is the last line printed, naming the signal that ended the session if any.
func farewell(sig os.Signal, cells int) string {
	switch sig {
	case nil:
		return fmt.Sprintf("Bye! %d cells.\n", cells)
	case os.Interrupt:
		return fmt.Sprintf("[CTRL+C] Interrupted. %d cells.\n", cells)
	default:
		return fmt.Sprintf("Interrupted by %s. %d cells.\n", sig, cells)
	}
}

// crlfWriter translates \n to \r\n for terminals in raw mode.
type crlfWriter struct {
	w io.Writer
}

func (c *crlfWriter) Write(p []byte) (int, error) {
	s := strings.ReplaceAll(string(p), "\n", "\r\n")
	if _, err := io.WriteString(c.w, s); err != nil {
		return 0, err
	}
	return len(p), nil
}
