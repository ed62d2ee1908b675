package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const dbApplicationName = "portfolio-backend"

// DBOptions tunes the pool behind the postgres dataset store.
type DBOptions struct {
	DSN            string
	MaxConns       int32
	ConnectTimeout time.Duration
	PingTimeout    time.Duration
}

func (o DBOptions) withDefaults() DBOptions {
	if o.MaxConns <= 0 {
		o.MaxConns = 4
	}
	if o.ConnectTimeout <= 0 {
		o.ConnectTimeout = 5 * time.Second
	}
	if o.PingTimeout <= 0 {
		o.PingTimeout = 2 * time.Second
	}
	return o
}

func (o DBOptions) poolConfig() (*pgxpool.Config, error) {
	if o.DSN == "" {
		return nil, fmt.Errorf("postgres store: DB_DSN is not set")
	}
	cfg, err := pgxpool.ParseConfig(o.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgres store: parse DB_DSN: %w", err)
	}
	cfg.MaxConns = o.MaxConns
	if cfg.ConnConfig.RuntimeParams == nil {
		cfg.ConnConfig.RuntimeParams = map[string]string{}
	}
	if cfg.ConnConfig.RuntimeParams["application_name"] == "" {
		cfg.ConnConfig.RuntimeParams["application_name"] = dbApplicationName
	}
	return cfg, nil
}

// OpenDB builds the pool for the dataset table and fails fast when the
// database does not answer a ping.
func OpenDB(ctx context.Context, opt DBOptions) (*pgxpool.Pool, error) {
	opt = opt.withDefaults()
	cfg, err := opt.poolConfig()
	if err != nil {
		return nil, err
	}

	connectCtx, cancel := context.WithTimeout(ctx, opt.ConnectTimeout)
	defer cancel()
	pool, err := pgxpool.NewWithConfig(connectCtx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres store: connect: %w", err)
	}

	pingCtx, cancelPing := context.WithTimeout(ctx, opt.PingTimeout)
	defer cancelPing()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres store: ping: %w", err)
	}
	return pool, nil
}
