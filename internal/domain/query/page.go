package query

import (
	"fmt"
	"slices"

	"github.com/jhoicas/catalog-api/internal/domain"
)

// Campos de orden permitidos por entidad.
var (
	CategorySortFields = []string{"id", "name"}
	ProductSortFields  = []string{"id", "name"}
	PriceSortFields    = []string{"id", "amount", "currency"}
)

// PageRequest página (base 0) de tamaño fijo ordenada ascendentemente por SortBy.
type PageRequest struct {
	Page   int
	Size   int
	SortBy string
}

// NewPageRequest normaliza la petición y valida el campo de orden.
func NewPageRequest(page, size int, sortBy string, allowed []string) (PageRequest, error) {
	if page < 0 {
		page = 0
	}
	if sortBy == "" {
		sortBy = "id"
	}
	if !slices.Contains(allowed, sortBy) {
		return PageRequest{}, fmt.Errorf("%w: no se puede ordenar por %q", domain.ErrInvalidInput, sortBy)
	}
	return PageRequest{Page: page, Size: size, SortBy: sortBy}, nil
}

// Offset devuelve el desplazamiento de la página.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// Page resultado paginado.
type Page[T any] struct {
	Items []T
	Total int64
	PageRequest
}

// TotalPages número de páginas para Total elementos.
func (p Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return int((p.Total + int64(p.Size) - 1) / int64(p.Size))
}
