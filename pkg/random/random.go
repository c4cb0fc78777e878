// Package random provides draw sources for the cell generator.
package random

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"
)

// ErrScriptExhausted is reported by a Script that was asked for more draws than it holds.
var ErrScriptExhausted = errors.New("draw script exhausted")

// Source is a uniform boolean source (P=0.5) backed by a PCG generator.
// Safe for concurrent use.
type Source struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a source with a fixed seed. Equal seeds yield equal draws.
func New(seed uint64) *Source {
	return &Source{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewTime creates a source seeded from the wall clock.
func NewTime() *Source {
	return New(uint64(time.Now().UnixNano()))
}

// Draw returns the next independent boolean.
func (s *Source) Draw() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(2) == 1
}

// Script replays a fixed list of draws. Safe for concurrent use.
type Script struct {
	mu    sync.Mutex
	draws []bool
	pos   int
	err   error
}

// NewScript creates a script that replays draws in order.
func NewScript(draws ...bool) *Script {
	return &Script{draws: draws}
}

// ParseScript parses a draw script such as "AADD" or "1100".
// A, 1, t and + mean true; D, 0, f and - mean false. Spaces, commas and
// underscores are ignored.
func ParseScript(s string) (*Script, error) {
	var draws []bool
	for i, r := range strings.ToLower(s) {
		switch r {
		case 'a', '1', 't', '+':
			draws = append(draws, true)
		case 'd', '0', 'f', '-':
			draws = append(draws, false)
		case ' ', ',', '_', '\t', '\n':
		default:
			return nil, fmt.Errorf("invalid draw %q at position %d", r, i)
		}
	}
	return NewScript(draws...), nil
}

// Draw returns the next scripted draw, or false once the script is exhausted.
func (s *Script) Draw() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pos >= len(s.draws) {
		s.err = ErrScriptExhausted
		return false
	}
	d := s.draws[s.pos]
	s.pos++
	return d
}

// Len returns the total number of scripted draws.
func (s *Script) Len() int {
	return len(s.draws)
}

// Remaining returns how many draws are left.
func (s *Script) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.draws) - s.pos
}

// Err returns ErrScriptExhausted if Draw was called past the end.
func (s *Script) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Func adapts a plain function to a draw source.
type Func func() bool

// Draw calls f.
func (f Func) Draw() bool { return f() }
