package repository

import (
	"context"

	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/domain/query"
)

// PriceRepository define el puerto de persistencia para Price (DIP).
type PriceRepository interface {
	FindAll(ctx context.Context) ([]*entity.Price, error)
	GetByID(ctx context.Context, id int64) (*entity.Price, error)
	// GetByProductAndCurrency busca por clave natural (nombre de producto, moneda),
	// prefiriendo el precio del propio producto sobre el de un homónimo.
	GetByProductAndCurrency(ctx context.Context, product *entity.Product, currency string) (*entity.Price, error)
	Search(ctx context.Context, tok query.Token) ([]*entity.Price, error)
	List(ctx context.Context, page query.PageRequest) (query.Page[*entity.Price], error)
	Save(ctx context.Context, price *entity.Price) (*entity.Price, error)
	Delete(ctx context.Context, id int64) error
}
