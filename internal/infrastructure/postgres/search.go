package postgres

import (
	"fmt"

	"github.com/jhoicas/catalog-api/internal/domain/query"
)

// Condiciones SQL equivalentes a query.Token.Match*. Los alias de tabla son
// los de las consultas base: c (categoría), pr (producto), pc (precio).

func categoryFilter(tok query.Token) (string, []any) {
	switch tok.Kind {
	case query.KindID:
		return "c.id = $1", []any{tok.ID}
	case query.KindName:
		return "c.name = $1", []any{tok.Raw}
	}
	return "FALSE", nil
}

func productFilter(tok query.Token) (string, []any) {
	switch tok.Kind {
	case query.KindID:
		return "pr.id = $1", []any{tok.ID}
	case query.KindCategoryID:
		return "pr.category_id = $1", []any{tok.CategoryID}
	case query.KindName:
		return "pr.name = $1", []any{tok.Raw}
	}
	return "FALSE", nil
}

func priceFilter(tok query.Token) (string, []any) {
	switch tok.Kind {
	case query.KindID:
		return "pc.id = $1", []any{tok.ID}
	case query.KindPriceRange:
		return "pc.amount > $1 AND pc.amount < $2", []any{tok.Min, tok.Max}
	case query.KindCurrency:
		return "pc.currency = $1", []any{tok.Currency}
	case query.KindName:
		return "pr.name = $1", []any{tok.Raw}
	}
	return "FALSE", nil
}

var (
	categorySortColumns = map[string]string{"id": "c.id", "name": "c.name"}
	productSortColumns  = map[string]string{"id": "pr.id", "name": "pr.name"}
	priceSortColumns    = map[string]string{"id": "pc.id", "amount": "pc.amount", "currency": "pc.currency"}
)

// pageClause arma ORDER BY/LIMIT/OFFSET. Solo acepta columnas de la lista blanca;
// idColumn desempata para que el orden sea estable entre páginas.
func pageClause(columns map[string]string, idColumn string, req query.PageRequest) (string, error) {
	col, ok := columns[req.SortBy]
	if !ok {
		return "", fmt.Errorf("columna de orden no permitida %q", req.SortBy)
	}
	order := col
	if col != idColumn {
		order += ", " + idColumn
	}
	return fmt.Sprintf(" ORDER BY %s LIMIT %d OFFSET %d", order, req.Size, req.Offset()), nil
}
