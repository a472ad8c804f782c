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

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación en memoria de CategoryRepository.
type CategoryRepo struct {
	s *Store
}

func (r *CategoryRepo) FindAll(_ context.Context) ([]*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return hydrateAll(r.s.categories, r.s.category), nil
}

func (r *CategoryRepo) GetByID(_ context.Context, id int64) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.category(id), nil
}

func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	all, _ := r.FindAll(ctx)
	return catalog.MatchCategory(&entity.Category{Name: name}, all), nil
}

func (r *CategoryRepo) ListChildren(ctx context.Context, parent *entity.Category) ([]*entity.Category, error) {
	all, _ := r.FindAll(ctx)
	return catalog.ChildrenOf(parent, all), nil
}

func (r *CategoryRepo) Search(ctx context.Context, tok query.Token) ([]*entity.Category, error) {
	all, _ := r.FindAll(ctx)
	out := make([]*entity.Category, 0)
	for _, c := range all {
		if tok.MatchCategory(c) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *CategoryRepo) List(ctx context.Context, req query.PageRequest) (query.Page[*entity.Category], error) {
	all, _ := r.FindAll(ctx)
	return paginate(all, req, func(c *entity.Category, field string) (string, int64) {
		if field == "name" {
			return c.Name, 0
		}
		return "", c.ID
	}, func(c *entity.Category) int64 { return c.ID }), nil
}

func (r *CategoryRepo) Save(_ context.Context, c *entity.Category) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row := categoryRow{id: c.ID, name: c.Name}
	if c.Parent != nil {
		if _, ok := r.s.categories[c.Parent.ID]; !ok {
			return nil, fmt.Errorf("save category: padre %q no persistido: %w", c.Parent.Name, domain.ErrNotFound)
		}
		row.parentID = c.Parent.ID
	}
	if row.id != 0 {
		if _, ok := r.s.categories[row.id]; !ok {
			return nil, fmt.Errorf("save category %d: %w", row.id, domain.ErrNotFound)
		}
	}
	for _, other := range r.s.categories {
		if other.name == row.name && other.id != row.id {
			return nil, fmt.Errorf("save category %q: %w", row.name, domain.ErrDuplicate)
		}
	}
	if row.id == 0 {
		row.id = r.s.nextID(categoriesTable)
	}
	r.s.categories[row.id] = row
	return r.s.category(row.id), nil
}

func (r *CategoryRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, c := range r.s.categories {
		if c.parentID == id {
			return fmt.Errorf("delete category %d: %w", id, domain.ErrInUse)
		}
	}
	for _, p := range r.s.products {
		if p.categoryID == id {
			return fmt.Errorf("delete category %d: %w", id, domain.ErrInUse)
		}
	}
	delete(r.s.categories, id)
	return nil
}
