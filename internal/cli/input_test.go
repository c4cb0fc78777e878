package cli

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineReader(t *testing.T) {
	r := NewLineReader(strings.NewReader("\ncreate\nwhat\n+\nQUIT\n"))

	want := []Action{ActionCreate, ActionCreate, ActionNone, ActionCreate, ActionQuit}
	for i, w := range want {
		got, err := r.Next()
		require.NoError(t, err)
		assert.Equal(t, w, got, "line %d", i)
	}

	got, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, ActionQuit, got, "EOF quits")
}

func TestLineReader_LastLineWithoutNewline(t *testing.T) {
	r := NewLineReader(strings.NewReader("c"))

	got, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, ActionCreate, got)
}

func TestKeyReader(t *testing.T) {
	r := NewKeyReader(strings.NewReader("\r x\nq\x03"))

	want := []Action{ActionCreate, ActionCreate, ActionNone, ActionCreate, ActionQuit, ActionQuit, ActionQuit}
	for i, w := range want {
		got, err := r.Next()
		require.NoError(t, err)
		assert.Equal(t, w, got, "key %d", i)
	}
}

func TestInterruptibleReader(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	r := NewInterruptibleReader(ctx, NewLineReader(pr))

	go func() { _, _ = pw.Write([]byte("c\n")) }()
	got, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, ActionCreate, got)

	errCh := make(chan error, 1)
	go func() {
		_, err := r.Next()
		errCh <- err
	}()

	cancel()
	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Next still blocked after cancel")
	}
}
