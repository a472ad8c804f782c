package postgres

import (
	"context"
	"fmt"
	"slices"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/catalog-api/internal/application/catalog"
)

// Ensure TxRunner implements catalog.TxRunner.
var _ catalog.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL con
// bloqueo consultivo por clave natural.
type TxRunner struct {
	pool      *pgxpool.Pool
	serialize bool
}

// NewTxRunner construye el runner con el pool. Con serialize en false no hay
// transacción ni bloqueo: cada sentencia se ejecuta directamente sobre el pool.
func NewTxRunner(pool *pgxpool.Pool, serialize bool) *TxRunner {
	return &TxRunner{pool: pool, serialize: serialize}
}

// Run inicia una transacción, toma pg_advisory_xact_lock por cada clave (en orden),
// ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, keys []string, fn func(repos catalog.Repos) error) error {
	if !r.serialize {
		return fn(NewRepos(r.pool))
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, key := range lockOrder(keys) {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, key); err != nil {
			return fmt.Errorf("advisory lock %q: %w", key, err)
		}
	}

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// lockOrder ordena y deduplica las claves para que dos escrituras no se bloqueen mutuamente.
func lockOrder(keys []string) []string {
	out := slices.Clone(keys)
	slices.Sort(out)
	return slices.Compact(out)
}
