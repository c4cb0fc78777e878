/*
Package session implements session management and persistence orchestration.

A cellfill sequence has exactly one writer. When several callers (HTTP
requests, MCP tool calls, replicas) share a session, Manager serializes every
create on that session with a reference-counted local mutex and, optionally, a
distributed lock, so each create runs to completion before the next one
observes the sequence.
*/
package session
