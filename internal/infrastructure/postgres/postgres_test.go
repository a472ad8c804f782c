package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/domain/query"
)

func TestFilters(t *testing.T) {
	tests := []struct {
		name      string
		build     func(query.Token) (string, []any)
		raw       string
		parse     func(string) (query.Token, error)
		wantWhere string
		wantArgs  []any
	}{
		{"categoría por id", categoryFilter, "7", query.ParseCategory, "c.id = $1", []any{int64(7)}},
		{"categoría por nombre", categoryFilter, "Jackets", query.ParseCategory, "c.name = $1", []any{"Jackets"}},
		{"producto por categoría", productFilter, "category_id-3", query.ParseProduct, "pr.category_id = $1", []any{int64(3)}},
		{"producto por nombre", productFilter, "Vest", query.ParseProduct, "pr.name = $1", []any{"Vest"}},
		{"precio por rango", priceFilter, "price_range-99-110", query.ParsePrice, "pc.amount > $1 AND pc.amount < $2", []any{int64(99), int64(110)}},
		{"precio por moneda", priceFilter, "currency-BYN", query.ParsePrice, "pc.currency = $1", []any{"BYN"}},
		{"precio por id", priceFilter, "+12", query.ParsePrice, "pc.id = $1", []any{int64(12)}},
		{"precio por producto", priceFilter, "Jacket", query.ParsePrice, "pr.name = $1", []any{"Jacket"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, err := tt.parse(tt.raw)
			require.NoError(t, err)
			where, args := tt.build(tok)
			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestFilters_KindAjenoNoCoincide(t *testing.T) {
	where, args := categoryFilter(query.Token{Kind: query.KindCurrency, Currency: "BYN"})
	assert.Equal(t, "FALSE", where)
	assert.Nil(t, args)
}

func TestPageClause(t *testing.T) {
	clause, err := pageClause(priceSortColumns, "pc.id", query.PageRequest{Page: 2, Size: 10, SortBy: "amount"})
	require.NoError(t, err)
	assert.Equal(t, " ORDER BY pc.amount, pc.id LIMIT 10 OFFSET 20", clause)

	clause, err = pageClause(categorySortColumns, "c.id", query.PageRequest{Size: 10, SortBy: "id"})
	require.NoError(t, err)
	assert.Equal(t, " ORDER BY c.id LIMIT 10 OFFSET 0", clause)

	_, err = pageClause(categorySortColumns, "c.id", query.PageRequest{Size: 10, SortBy: "name; DROP TABLE x"})
	assert.Error(t, err)
}

func TestLockOrder(t *testing.T) {
	keys := []string{"category:b", "category:a", "category:b"}
	assert.Equal(t, []string{"category:a", "category:b"}, lockOrder(keys))
	assert.Equal(t, []string{"category:b", "category:a", "category:b"}, keys, "no modifica la entrada")
}

func TestErrorMapping(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505"}
	fk := &pgconn.PgError{Code: "23503"}
	other := errors.New("conexión cerrada")

	assert.ErrorIs(t, saveError("insert category", fmt.Errorf("wrap: %w", unique)), domain.ErrDuplicate)
	assert.ErrorIs(t, saveError("insert product", fk), domain.ErrNotFound)
	assert.ErrorIs(t, deleteError("delete category", fk), domain.ErrInUse)

	err := saveError("insert price", other)
	assert.ErrorIs(t, err, other)
	assert.NotErrorIs(t, err, domain.ErrDuplicate)
}

func TestMigrationFiles(t *testing.T) {
	files, err := migrationFiles()
	require.NoError(t, err)
	require.NotEmpty(t, files)
	assert.Equal(t, "001_init.sql", files[0])
}
