package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"

	"github.com/jhoicas/catalog-api/pkg/config"
	"github.com/jhoicas/catalog-api/pkg/logger"
)

// NewPool crea un pool de conexiones PostgreSQL usando la configuración de la app.
// Si está definido DATABASE_URL se usa tal cual; si no, se construye el DSN desde DB_HOST, DB_PORT, etc.
// Con log != nil las consultas se registran a nivel debug.
func NewPool(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	maxConns := cfg.MaxConns
	if maxConns <= 0 {
		maxConns = 25
	}
	poolConfig.MaxConns = int32(maxConns)
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	if log != nil {
		poolConfig.ConnConfig.Tracer = &tracelog.TraceLog{
			Logger:   queryLogger(log),
			LogLevel: tracelog.LogLevelDebug,
		}
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

// queryLogger adapta el tracer de pgx a zerolog. Todo lo que no es error o warn va a debug.
func queryLogger(log *logger.Logger) tracelog.Logger {
	return tracelog.LoggerFunc(func(_ context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
		ev := log.Debug()
		switch level {
		case tracelog.LogLevelError:
			ev = log.Error()
		case tracelog.LogLevelWarn:
			ev = log.Warn()
		}
		ev.Fields(data).Msg("pgx: " + msg)
	})
}
