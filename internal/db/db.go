package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"inkwell-api/internal/config"
)

const startupPingTimeout = 5 * time.Second

// Connect abre el pool y exige que la base responda antes de servir trafico.
// Si cfg.RunMigrations esta activo aplica tambien las migraciones.
func Connect(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	pool, err := NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("db pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, startupPingTimeout)
	defer cancel()
	if err := Ping(pingCtx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	if cfg.RunMigrations {
		if err := Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
	}
	return pool, nil
}

// NewPool construye un pool de conexiones para databaseURL.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}

	// Un backend chico: pocas conexiones, vida corta.
	poolCfg.MaxConns = 10
	poolCfg.MinConns = 1
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute
	poolCfg.HealthCheckPeriod = 30 * time.Second
	poolCfg.ConnConfig.ConnectTimeout = 5 * time.Second

	return pgxpool.NewWithConfig(ctx, poolCfg)
}

// Ping verifica conectividad con la base de datos.
func Ping(ctx context.Context, pool *pgxpool.Pool) error {
	return pool.Ping(ctx)
}
