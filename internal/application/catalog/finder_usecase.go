package catalog

import (
	"context"

	"github.com/jhoicas/catalog-api/internal/application/dto"
	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/domain/query"
)

// FinderUseCase lecturas del catálogo: búsqueda por valor y listados paginados.
type FinderUseCase struct {
	repos    Repos
	pageSize int
}

// NewFinderUseCase construye el caso de uso. pageSize es el tamaño fijo de página de los listados.
func NewFinderUseCase(repos Repos, pageSize int) *FinderUseCase {
	return &FinderUseCase{repos: repos, pageSize: pageSize}
}

// FindCategories resuelve el valor según las reglas de query.ParseCategory.
// La búsqueda por ID devuelve solo id y nombre.
func (uc *FinderUseCase) FindCategories(ctx context.Context, raw string) ([]dto.CategoryResponse, error) {
	tok, err := query.ParseCategory(raw)
	if err != nil {
		return nil, err
	}
	if tok.Kind == query.KindID {
		c, err := uc.repos.Categories.GetByID(ctx, tok.ID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, domain.ErrNotFound
		}
		return []dto.CategoryResponse{{ID: c.ID, Name: c.Name}}, nil
	}
	list, err := uc.repos.Categories.Search(ctx, tok)
	if err != nil {
		return nil, err
	}
	return mapSlice(list, toCategoryResponse), nil
}

// FindProducts resuelve el valor según las reglas de query.ParseProduct.
func (uc *FinderUseCase) FindProducts(ctx context.Context, raw string) ([]dto.ProductResponse, error) {
	tok, err := query.ParseProduct(raw)
	if err != nil {
		return nil, err
	}
	if tok.Kind == query.KindID {
		p, err := uc.repos.Products.GetByID(ctx, tok.ID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrNotFound
		}
		return []dto.ProductResponse{*toProductResponse(p)}, nil
	}
	list, err := uc.repos.Products.Search(ctx, tok)
	if err != nil {
		return nil, err
	}
	return mapSlice(list, toProductResponse), nil
}

// FindPrices resuelve el valor según las reglas de query.ParsePrice.
func (uc *FinderUseCase) FindPrices(ctx context.Context, raw string) ([]dto.PriceResponse, error) {
	tok, err := query.ParsePrice(raw)
	if err != nil {
		return nil, err
	}
	if tok.Kind == query.KindID {
		p, err := uc.repos.Prices.GetByID(ctx, tok.ID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrNotFound
		}
		return []dto.PriceResponse{*toPriceResponse(p)}, nil
	}
	list, err := uc.repos.Prices.Search(ctx, tok)
	if err != nil {
		return nil, err
	}
	return mapSlice(list, toPriceResponse), nil
}

// ListCategories página page (base 0) ordenada por sortBy.
func (uc *FinderUseCase) ListCategories(ctx context.Context, page int, sortBy string) (*dto.PageResponse[dto.CategoryResponse], error) {
	req, err := query.NewPageRequest(page, uc.pageSize, sortBy, query.CategorySortFields)
	if err != nil {
		return nil, err
	}
	res, err := uc.repos.Categories.List(ctx, req)
	if err != nil {
		return nil, err
	}
	return toPageResponse(res, toCategoryResponse), nil
}

// ListProducts página page (base 0) ordenada por sortBy.
func (uc *FinderUseCase) ListProducts(ctx context.Context, page int, sortBy string) (*dto.PageResponse[dto.ProductResponse], error) {
	req, err := query.NewPageRequest(page, uc.pageSize, sortBy, query.ProductSortFields)
	if err != nil {
		return nil, err
	}
	res, err := uc.repos.Products.List(ctx, req)
	if err != nil {
		return nil, err
	}
	return toPageResponse(res, toProductResponse), nil
}

// ListPrices página page (base 0) ordenada por sortBy.
func (uc *FinderUseCase) ListPrices(ctx context.Context, page int, sortBy string) (*dto.PageResponse[dto.PriceResponse], error) {
	req, err := query.NewPageRequest(page, uc.pageSize, sortBy, query.PriceSortFields)
	if err != nil {
		return nil, err
	}
	res, err := uc.repos.Prices.List(ctx, req)
	if err != nil {
		return nil, err
	}
	return toPageResponse(res, toPriceResponse), nil
}

func toPageResponse[E any, R any](p query.Page[E], fn func(E) *R) *dto.PageResponse[R] {
	return &dto.PageResponse[R]{
		Content:       mapSlice(p.Items, fn),
		Page:          p.Page,
		Size:          p.Size,
		TotalElements: p.Total,
		TotalPages:    p.TotalPages(),
	}
}
