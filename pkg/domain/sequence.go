package domain

import "time"

// WindowSize is the number of trailing cells inspected after each append.
const WindowSize = 3

// Sequence is the ordered list of cells of one session.
type Sequence []Tag

// Clone returns an independent copy of s. A nil sequence stays nil.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}

// LastIndex is the index the presentation layer scrolls to, or -1 when empty.
func (s Sequence) LastIndex() int {
	return len(s) - 1
}

// Window returns the last WindowSize cells, or nil when s is shorter.
func (s Sequence) Window() Sequence {
	if len(s) < WindowSize {
		return nil
	}
	return s[len(s)-WindowSize:]
}

// Count returns how many cells carry tag t.
func (s Sequence) Count(t Tag) int {
	n := 0
	for _, c := range s {
		if c == t {
			n++
		}
	}
	return n
}

// Snapshot is the persisted record of a session.
type Snapshot struct {
	SessionID string    `json:"session_id" yaml:"session_id"`
	Cells     Sequence  `json:"cells" yaml:"cells"`
	Created   int       `json:"created" yaml:"created"` // Number of create actions applied
	StartedAt time.Time `json:"started_at" yaml:"started_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// NewSnapshot creates an empty snapshot for a fresh session.
func NewSnapshot(sessionID string) *Snapshot {
	now := time.Now().UTC()
	return &Snapshot{
		SessionID: sessionID,
		Cells:     Sequence{},
		StartedAt: now,
		UpdatedAt: now,
	}
}

// Copy returns a deep copy of the snapshot.
func (s *Snapshot) Copy() *Snapshot {
	if s == nil {
		return nil
	}
	out := *s
	out.Cells = s.Cells.Clone()
	if out.Cells == nil {
		out.Cells = Sequence{}
	}
	return &out
}
