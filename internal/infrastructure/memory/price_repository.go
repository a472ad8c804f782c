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

var _ repository.PriceRepository = (*PriceRepo)(nil)

// PriceRepo implementación en memoria de PriceRepository.
type PriceRepo struct {
	s *Store
}

func (r *PriceRepo) FindAll(_ context.Context) ([]*entity.Price, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return hydrateAll(r.s.prices, r.s.price), nil
}

func (r *PriceRepo) GetByID(_ context.Context, id int64) (*entity.Price, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.price(id), nil
}

func (r *PriceRepo) GetByProductAndCurrency(ctx context.Context, product *entity.Product, currency string) (*entity.Price, error) {
	all, _ := r.FindAll(ctx)
	return catalog.MatchPrice(product, currency, all), nil
}

func (r *PriceRepo) Search(ctx context.Context, tok query.Token) ([]*entity.Price, error) {
	all, _ := r.FindAll(ctx)
	out := make([]*entity.Price, 0)
	for _, p := range all {
		if tok.MatchPrice(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *PriceRepo) List(ctx context.Context, req query.PageRequest) (query.Page[*entity.Price], error) {
	all, _ := r.FindAll(ctx)
	return paginate(all, req, func(p *entity.Price, field string) (string, int64) {
		switch field {
		case "amount":
			return "", p.Amount
		case "currency":
			return p.Currency, 0
		}
		return "", p.ID
	}, func(p *entity.Price) int64 { return p.ID }), nil
}

func (r *PriceRepo) Save(_ context.Context, p *entity.Price) (*entity.Price, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if p.Product == nil {
		return nil, fmt.Errorf("save price: producto requerido: %w", domain.ErrInvalidInput)
	}
	if _, ok := r.s.products[p.Product.ID]; !ok {
		return nil, fmt.Errorf("save price: producto %q no persistido: %w", p.Product.Name, domain.ErrNotFound)
	}
	row := priceRow{id: p.ID, productID: p.Product.ID, amount: p.Amount, currency: p.Currency}
	if row.id != 0 {
		if _, ok := r.s.prices[row.id]; !ok {
			return nil, fmt.Errorf("save price %d: %w", row.id, domain.ErrNotFound)
		}
	}
	for _, other := range r.s.prices {
		if other.productID == row.productID && other.currency == row.currency && other.id != row.id {
			return nil, fmt.Errorf("save price (%d, %s): %w", row.productID, row.currency, domain.ErrDuplicate)
		}
	}
	if row.id == 0 {
		row.id = r.s.nextID(pricesTable)
	}
	r.s.prices[row.id] = row
	return r.s.price(row.id), nil
}

func (r *PriceRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.prices, id)
	return nil
}
