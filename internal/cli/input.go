package cli

import (
	"bufio"
	"context"
	"io"
	"strings"
)

// Action is a user command decoded from the terminal.
type Action int

const (
	ActionNone Action = iota
	ActionCreate
	ActionQuit
)

// ActionReader yields one action per user input.
type ActionReader interface {
	Next() (Action, error)
}

// lineReader decodes whole lines. Used when stdin is not a terminal.
type lineReader struct {
	r *bufio.Reader
}

// NewLineReader reads actions line by line: an empty line, "c" or "create"
// creates; "q", "quit" or "exit" quits. EOF quits.
func NewLineReader(r io.Reader) ActionReader {
	return &lineReader{r: bufio.NewReader(r)}
}

func (l *lineReader) Next() (Action, error) {
	line, err := l.r.ReadString('\n')
	if err != nil && line == "" {
		if err == io.EOF {
			return ActionQuit, nil
		}
		return ActionQuit, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "", "c", "create", "+":
		return ActionCreate, nil
	case "q", "quit", "exit":
		return ActionQuit, nil
	default:
		return ActionNone, nil
	}
}

// keyReader decodes single key presses from a terminal in raw mode.
type keyReader struct {
	r   io.Reader
	buf [1]byte
}

// NewKeyReader reads one byte per action: Enter or Space creates; q, Ctrl-C
// or Ctrl-D quits.
func NewKeyReader(r io.Reader) ActionReader {
	return &keyReader{r: r}
}

func (k *keyReader) Next() (Action, error) {
	n, err := k.r.Read(k.buf[:])
	if err != nil {
		if err == io.EOF {
			return ActionQuit, nil
		}
		return ActionQuit, err
	}
	if n == 0 {
		return ActionNone, nil
	}
	switch k.buf[0] {
	case '\r', '\n', ' ':
		return ActionCreate, nil
	case 'q', 'Q', 0x03, 0x04:
		return ActionQuit, nil
	default:
		return ActionNone, nil
	}
}

type actionResult struct {
	action Action
	err    error
}

// InterruptibleReader returns actions from base until ctx is done. Reads on
// base run in a goroutine, so cancellation unblocks Next even while base is
// waiting on stdin. A read abandoned by cancellation is left to process exit.
type InterruptibleReader struct {
	base    ActionReader
	ctx     context.Context
	results chan actionResult
}

// NewInterruptibleReader wraps base so that Next returns ctx.Err() once ctx is done.
func NewInterruptibleReader(ctx context.Context, base ActionReader) *InterruptibleReader {
	return &InterruptibleReader{
		base:    base,
		ctx:     ctx,
		results: make(chan actionResult, 1),
	}
}

func (r *InterruptibleReader) Next() (Action, error) {
	if err := r.ctx.Err(); err != nil {
		return ActionQuit, err
	}
	go func() {
		action, err := r.base.Next()
		r.results <- actionResult{action: action, err: err}
	}()
	select {
	case res := <-r.results:
		return res.action, res.err
	case <-r.ctx.Done():
		return ActionQuit, r.ctx.Err()
	}
}
