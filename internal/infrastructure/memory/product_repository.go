package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/domain/catalog"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/domain/query"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	s *Store
}

func (r *ProductRepo) FindAll(_ context.Context) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return hydrateAll(r.s.products, r.s.product), nil
}

func (r *ProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.product(id), nil
}

func (r *ProductRepo) GetByName(ctx context.Context, name string) (*entity.Product, error) {
	all, _ := r.FindAll(ctx)
	return catalog.MatchProductByName(name, all), nil
}

func (r *ProductRepo) Search(ctx context.Context, tok query.Token) ([]*entity.Product, error) {
	all, _ := r.FindAll(ctx)
	out := make([]*entity.Product, 0)
	for _, p := range all {
		if tok.MatchProduct(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *ProductRepo) List(ctx context.Context, req query.PageRequest) (query.Page[*entity.Product], error) {
	all, _ := r.FindAll(ctx)
	return paginate(all, req, func(p *entity.Product, field string) (string, int64) {
		if field == "name" {
			return p.Name, 0
		}
		return "", p.ID
	}, func(p *entity.Product) int64 { return p.ID }), nil
}

func (r *ProductRepo) Save(_ context.Context, p *entity.Product) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.categories[p.CategoryID()]; !ok {
		return nil, fmt.Errorf("save product %q: categoría no persistida: %w", p.Name, domain.ErrNotFound)
	}
	row := productRow{id: p.ID, name: p.Name, categoryID: p.CategoryID()}
	if row.id != 0 {
		if _, ok := r.s.products[row.id]; !ok {
			return nil, fmt.Errorf("save product %d: %w", row.id, domain.ErrNotFound)
		}
	} else {
		row.id = r.s.nextID(productsTable)
	}
	r.s.products[row.id] = row
	return r.s.product(row.id), nil
}

func (r *ProductRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, p := range r.s.prices {
		if p.productID == id {
			return fmt.Errorf("delete product %d: %w", id, domain.ErrInUse)
		}
	}
	delete(r.s.products, id)
	return nil
}
