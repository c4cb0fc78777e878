package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/cellfill/internal/config"
	"github.com/aretw0/cellfill/pkg/adapters/file"
	"github.com/aretw0/cellfill/pkg/adapters/memory"
	"github.com/aretw0/cellfill/pkg/adapters/redis"
	"github.com/aretw0/cellfill/pkg/persistence/middleware"
	"github.com/aretw0/cellfill/pkg/ports"
	"github.com/aretw0/cellfill/pkg/session"
)

// Persistence bundles the configured store with its optional locker.
type Persistence struct {
	Store  ports.SequenceStore
	Locker ports.DistributedLocker
	close  func() error
}

// Close releases backend connections.
func (p *Persistence) Close() error {
	if p.close == nil {
		return nil
	}
	return p.close()
}

// ManagerOptions returns session options matching the backend.
func (p *Persistence) ManagerOptions(cfg config.StoreConfig) []session.Option {
	var opts []session.Option
	if p.Locker != nil {
		opts = append(opts, session.WithLocker(p.Locker))
		if cfg.LockTTL > 0 {
			opts = append(opts, session.WithLockTTL(cfg.LockTTL))
		}
	}
	return opts
}

// OpenStore builds the store selected by cfg.Backend, logged and wrapped in mws.
func OpenStore(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger, mws ...middleware.Middleware) (*Persistence, error) {
	p, err := openBackend(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	mws = append([]middleware.Middleware{middleware.NewLoggingMiddleware(logger)}, mws...)
	p.Store = middleware.Chain(p.Store, mws...)
	return p, nil
}

func openBackend(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (*Persistence, error) {
	switch cfg.Backend {
	case config.StoreMemory, "":
		return &Persistence{Store: memory.NewStore()}, nil

	case config.StoreFile:
		logger.Debug("Using file store", "dir", cfg.Dir)
		return &Persistence{Store: file.New(cfg.Dir)}, nil

	case config.StoreRedis:
		store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithPrefix(cfg.Redis.Prefix),
			redis.WithTTL(cfg.Redis.TTL),
		)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("redis %s unreachable: %w", cfg.Redis.Addr, err)
		}
		logger.Debug("Using redis store", "addr", cfg.Redis.Addr, "prefix", cfg.Redis.Prefix)
		return &Persistence{
			Store:  store,
			Locker: redis.NewLocker(store.Client(), store.Prefix()),
			close:  store.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
