package session

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aretw0/cellfill/pkg/adapters/memory"
	"github.com/aretw0/cellfill/pkg/ports"
)

func TestManager_LockLifecycle(t *testing.T) {
	mgr := NewManager(memory.NewStore())
	ctx := context.Background()
	count := 10000

	for i := 0; i < count; i++ {
		sid := fmt.Sprintf("session-%d", i)
		_, _ = mgr.StartWithID(ctx, sid)
		_ = mgr.Delete(ctx, sid)
	}

	if lockCount := len(mgr.locks); lockCount != 0 {
		t.Errorf("Memory Leak Detected: %d locks remaining in memory after Delete", lockCount)
	}
}

type recordingLocker struct {
	locked   []string
	released int
	fail     error
}

func (l *recordingLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	if l.fail != nil {
		return nil, l.fail
	}
	l.locked = append(l.locked, key)
	return func(ctx context.Context) error {
		l.released++
		return nil
	}, nil
}

func TestManager_DistributedLocker(t *testing.T) {
	locker := &recordingLocker{}
	mgr := NewManager(memory.NewStore(), WithLocker(locker), WithLockTTL(time.Second))
	ctx := context.Background()

	if _, err := mgr.StartWithID(ctx, "d"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, _, err := mgr.Create(ctx, "d"); err != nil {
		t.Fatalf("create: %v", err)
	}

	if len(locker.locked) != 2 || locker.released != 2 {
		t.Errorf("expected 2 lock/unlock pairs, got %d/%d", len(locker.locked), locker.released)
	}

	locker.fail = errors.New("boom")
	if _, _, err := mgr.Create(ctx, "d"); err == nil {
		t.Error("expected error when distributed lock fails")
	}
}
