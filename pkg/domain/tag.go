package domain

import (
	"fmt"
	"strings"
)

// Tag is the state carried by a single cell.
type Tag uint8

const (
	// Alive is produced by a true draw.
	Alive Tag = iota + 1
	// Dead is produced by a false draw.
	Dead
	// Life is derived: it is appended after three consecutive Alive cells.
	Life
)

// Tags lists every valid tag in display order.
var Tags = []Tag{Alive, Dead, Life}

var tagNames = map[Tag]string{
	Alive: "alive",
	Dead:  "dead",
	Life:  "life",
}

// FromDraw maps a random draw to the tag it generates.
func FromDraw(draw bool) Tag {
	if draw {
		return Alive
	}
	return Dead
}

// Valid reports whether t is one of Alive, Dead or Life.
func (t Tag) Valid() bool {
	_, ok := tagNames[t]
	return ok
}

// String returns the lowercase name of the tag.
func (t Tag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return fmt.Sprintf("tag(%d)", uint8(t))
}

// ParseTag parses the lowercase name of a tag. Matching is case-insensitive.
func ParseTag(s string) (Tag, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for t, n := range tagNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTag, s)
}

// MarshalText encodes the tag as its name. JSON and YAML both go through it.
func (t Tag) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTag, uint8(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText decodes a tag name.
func (t *Tag) UnmarshalText(text []byte) error {
	parsed, err := ParseTag(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
