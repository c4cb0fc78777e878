package cli

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/cellfill/internal/config"
	"github.com/aretw0/cellfill/internal/logging"
	"github.com/aretw0/cellfill/pkg/domain"
	"github.com/aretw0/cellfill/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStore_Backends(t *testing.T) {
	mr := miniredis.RunT(t)

	tests := []struct {
		name       string
		cfg        config.StoreConfig
		wantLocker bool
	}{
		{"memory", config.StoreConfig{Backend: config.StoreMemory}, false},
		{"file", config.StoreConfig{Backend: config.StoreFile, Dir: t.TempDir()}, false},
		{"redis", config.StoreConfig{Backend: config.StoreRedis, Redis: config.RedisConfig{Addr: mr.Addr(), Prefix: "test:"}, LockTTL: time.Second}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := OpenStore(context.Background(), tt.cfg, logging.NewNop())
			require.NoError(t, err)
			defer p.Close()

			assert.Equal(t, tt.wantLocker, p.Locker != nil)
			assert.Len(t, p.ManagerOptions(tt.cfg), map[bool]int{true: 2, false: 0}[tt.wantLocker])
			ports.RunSequenceStoreContract(t, p.Store)
		})
	}
}

func TestOpenStore_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := OpenStore(context.Background(), config.StoreConfig{Backend: config.StoreRedis, Redis: config.RedisConfig{Addr: addr}}, logging.NewNop())
	assert.Error(t, err)
}

func TestOpenStore_UnknownBackend(t *testing.T) {
	_, err := OpenStore(context.Background(), config.StoreConfig{Backend: "tape"}, logging.NewNop())
	assert.Error(t, err)
}

func TestOpenStore_FileSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	cfg := config.StoreConfig{Backend: config.StoreFile, Dir: t.TempDir()}

	p, err := OpenStore(ctx, cfg, logging.NewNop())
	require.NoError(t, err)
	snap := domain.NewSnapshot("kept")
	snap.Cells = domain.Sequence{domain.Alive, domain.Dead}
	require.NoError(t, p.Store.Save(ctx, "kept", snap))

	p2, err := OpenStore(ctx, cfg, logging.NewNop())
	require.NoError(t, err)
	got, err := p2.Store.Load(ctx, "kept")
	require.NoError(t, err)
	assert.Equal(t, snap.Cells, got.Cells)
}
