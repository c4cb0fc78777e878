package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrUnknownTag is returned when decoding a tag name that is not alive, dead or life.
var ErrUnknownTag = errors.New("unknown tag")
