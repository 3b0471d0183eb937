package cli

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/stepwise/internal/adapters/file"
	"github.com/aretw0/stepwise/internal/config"
	"github.com/aretw0/stepwise/pkg/adapters/memory"
	"github.com/aretw0/stepwise/pkg/adapters/redis"
	"github.com/aretw0/stepwise/pkg/persistence/middleware"
	"github.com/aretw0/stepwise/pkg/ports"
	"github.com/aretw0/stepwise/pkg/session"
)

// lockPrefix namespaces distributed session locks in Redis.
const lockPrefix = "stepwise:"

// Backend is the session storage selected by configuration.
type Backend struct {
	Kind   string
	Store  ports.StateStore
	Locker ports.DistributedLocker
	close  func() error
}

// OpenBackend creates the store named by cfg.Store, encrypted when an
// encryption key is configured.
func OpenBackend(cfg config.Config) (*Backend, error) {
	backend, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.EncryptionKey == "" {
		return backend, nil
	}
	keys, err := middleware.ParseKeys(cfg.EncryptionKey, cfg.FallbackKeys...)
	if err != nil {
		_ = backend.Close()
		return nil, fmt.Errorf("invalid encryption config: %w", err)
	}
	encrypt, err := middleware.NewEncryptionMiddleware(keys)
	if err != nil {
		_ = backend.Close()
		return nil, err
	}
	backend.Store = middleware.Chain(backend.Store, encrypt)
	return backend, nil
}

func openStore(cfg config.Config) (*Backend, error) {
	switch cfg.Store {
	case config.StoreMemory, "":
		store, err := memory.NewStoreWithCapacity(cfg.MaxSessions)
		if err != nil {
			return nil, err
		}
		return &Backend{Kind: config.StoreMemory, Store: store}, nil

	case config.StoreFile:
		return &Backend{Kind: config.StoreFile, Store: file.New(cfg.SessionDir)}, nil

	case config.StoreRedis:
		store := redis.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, redis.WithTTL(cfg.SessionTTL))
		return &Backend{
			Kind:   config.StoreRedis,
			Store:  store,
			Locker: redis.NewLocker(store.Client(), lockPrefix),
			close:  store.Close,
		}, nil
	}
	return nil, fmt.Errorf("unknown store %q", cfg.Store)
}

// Sessions wraps the store in a session manager, with distributed locking
// when the backend supports it.
func (b *Backend) Sessions(logger *slog.Logger) *session.Manager {
	opts := []session.Option{session.WithLogger(logger)}
	if b.Locker != nil {
		opts = append(opts, session.WithLocker(b.Locker))
	}
	return session.NewManager(b.Store, opts...)
}

// Close releases backend connections.
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}
