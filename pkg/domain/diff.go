package domain

// SequenceDiff represents the change between two versions of a sequence.
// It is designed to be serialized to JSON for partial updates on the client:
// drop Truncate cells from the end, then append Appended.
type SequenceDiff struct {
	// SessionID is always present to identify the target.
	SessionID string `json:"session_id"`

	// Truncate is the number of trailing cells the client must drop.
	Truncate int `json:"truncate,omitempty"`

	// Appended holds the cells to add after truncation.
	Appended Sequence `json:"appended,omitempty"`

	// Length is the resulting length, also the scroll target plus one.
	Length int `json:"length"`

	// Created is the session's create counter after this change. Clients
	// holding a snapshot skip diffs whose Created is not above the snapshot's.
	Created int `json:"created"`
}

// Diff calculates the difference between oldSeq and newSeq.
// It keeps the longest common prefix and returns nil when nothing changed.
func Diff(sessionID string, oldSeq, newSeq Sequence) *SequenceDiff {
	prefix := 0
	for prefix < len(oldSeq) && prefix < len(newSeq) && oldSeq[prefix] == newSeq[prefix] {
		prefix++
	}

	diff := &SequenceDiff{
		SessionID: sessionID,
		Truncate:  len(oldSeq) - prefix,
		Length:    len(newSeq),
	}
	if prefix < len(newSeq) {
		diff.Appended = newSeq[prefix:].Clone()
	}

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *SequenceDiff) IsEmpty() bool {
	return d.Truncate == 0 && len(d.Appended) == 0
}

// Apply replays the diff on seq and returns the result.
func (d *SequenceDiff) Apply(seq Sequence) Sequence {
	keep := len(seq) - d.Truncate
	if keep < 0 {
		keep = 0
	}
	out := make(Sequence, 0, keep+len(d.Appended))
	out = append(out, seq[:keep]...)
	return append(out, d.Appended...)
}
