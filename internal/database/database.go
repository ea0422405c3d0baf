package database

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool is the subset of pgxpool.Pool the rest of the app depends on
type Pool interface {
	Ping(ctx context.Context) error
	Close()
}

// NewPool opens the connection pool for the remote farm store and verifies
// connectivity before returning. The app serves a single device, so the pool
// idles at one connection and grows only under concurrent count queries.
func NewPool(connString string, maxConns int, maxIdle, maxLife time.Duration) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgBadConnString, err)
	}

	if maxConns < MinConnections {
		maxConns = MinConnections
	}
	if maxConns > math.MaxInt32 {
		maxConns = math.MaxInt32
	}
	cfg.MaxConns = int32(maxConns)
	cfg.MinConns = MinConnections
	cfg.MaxConnLifetime = maxLife
	cfg.MaxConnIdleTime = maxIdle

	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgPoolOpenFailed, err)
	}

	pingCtx, cancel := context.WithTimeout(context.Background(), PingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgStoreUnreachable, err)
	}

	slog.Default().Info(LogMsgRemoteStoreConnected, "max_conns", cfg.MaxConns)
	return pool, nil
}
