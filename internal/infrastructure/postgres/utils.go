package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/catalog-api/internal/application/catalog"
	"github.com/jhoicas/catalog-api/internal/domain"
)

// Querier subconjunto común de *pgxpool.Pool y pgx.Tx; los repos aceptan cualquiera de los dos.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// NewRepos devuelve los repositorios del catálogo sobre q (pool o tx).
func NewRepos(q Querier) catalog.Repos {
	return catalog.Repos{
		Categories: NewCategoryRepository(q),
		Products:   NewProductRepository(q),
		Prices:     NewPriceRepository(q),
	}
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return hasCode(err, "23505")
}

// isForeignKeyViolation verifica si un error es una violación de clave foránea (23503).
func isForeignKeyViolation(err error) bool {
	return hasCode(err, "23503")
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return strings.Contains(err.Error(), code)
}

// saveError traduce errores de INSERT/UPDATE a errores de dominio.
func saveError(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w", op, domain.ErrDuplicate)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%s: referencia inexistente: %w", op, domain.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// deleteError traduce errores de DELETE a errores de dominio.
func deleteError(op string, err error) error {
	if isForeignKeyViolation(err) {
		return fmt.Errorf("%s: %w", op, domain.ErrInUse)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// nullableID convierte 0 en NULL.
func nullableID(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}
