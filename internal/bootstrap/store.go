package bootstrap

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/argenis972/portfolio-backend/config"
	"github.com/argenis972/portfolio-backend/internal/portfolio/repository"

	"github.com/redis/go-redis/v9"
)

// Store is the opened dataset source plus the hooks the process needs
// around it.
type Store struct {
	Source repository.Source
	Ping   func(ctx context.Context) error
	close  func()
}

// Repository wraps the source in the validating document repository.
func (s *Store) Repository() *repository.DocumentRepository {
	return repository.NewDocumentRepository(s.Source)
}

// Writer returns the source as a writable store, when it is one.
func (s *Store) Writer() (repository.Writer, bool) {
	w, ok := s.Source.(repository.Writer)
	return w, ok
}

func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}

// OpenStore connects the source selected by STORE_DRIVER.
func OpenStore(ctx context.Context, cfg config.StoreConfig) (*Store, error) {
	switch cfg.Driver {
	case config.DriverFile:
		return openFileStore(cfg.DataDir)
	case config.DriverRedis:
		return openRedisStore(ctx, cfg.Redis)
	case config.DriverPostgres:
		return openPostgresStore(ctx, cfg.Database)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

func openFileStore(dir string) (*Store, error) {
	src := repository.NewFileSource(dir)
	ping := func(ctx context.Context) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		info, err := os.Stat(src.Dir())
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("%s is not a directory", src.Dir())
		}
		return nil
	}
	return &Store{Source: src, Ping: ping}, nil
}

func openRedisStore(ctx context.Context, cfg config.RedisConfig) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &Store{
		Source: repository.NewRedisSource(client, cfg.KeyPrefix),
		Ping:   func(ctx context.Context) error { return client.Ping(ctx).Err() },
		close:  func() { _ = client.Close() },
	}, nil
}

func openPostgresStore(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	pool, err := OpenDB(ctx, DBOptions{DSN: cfg.DSN, MaxConns: 4})
	if err != nil {
		return nil, err
	}

	src := repository.NewPostgresSource(pool)
	if err := src.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return &Store{
		Source: src,
		Ping:   pool.Ping,
		close:  pool.Close,
	}, nil
}
