package catalog

import (
	"strconv"

	"github.com/jhoicas/catalog-api/internal/application/dto"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
)

func itoa(n int64) string { return strconv.FormatInt(n, 10) }

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	return &dto.CategoryResponse{
		ID:     c.ID,
		Name:   c.Name,
		Parent: toCategoryResponse(c.Parent.Ref()),
	}
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:       p.ID,
		Name:     p.Name,
		Category: toCategoryResponse(p.Category),
	}
}

func toPriceResponse(p *entity.Price) *dto.PriceResponse {
	if p == nil {
		return nil
	}
	return &dto.PriceResponse{
		ID:       p.ID,
		Product:  toProductResponse(p.Product),
		Amount:   p.Amount,
		Currency: p.Currency,
	}
}

func mapSlice[E any, R any](in []E, fn func(E) *R) []R {
	out := make([]R, 0, len(in))
	for _, e := range in {
		out = append(out, *fn(e))
	}
	return out
}
