package repository

import (
	"context"

	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/domain/query"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	FindAll(ctx context.Context) ([]*entity.Product, error)
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// GetByName devuelve el primer producto (menor ID) con ese nombre.
	GetByName(ctx context.Context, name string) (*entity.Product, error)
	Search(ctx context.Context, tok query.Token) ([]*entity.Product, error)
	List(ctx context.Context, page query.PageRequest) (query.Page[*entity.Product], error)
	Save(ctx context.Context, product *entity.Product) (*entity.Product, error)
	Delete(ctx context.Context, id int64) error
}
