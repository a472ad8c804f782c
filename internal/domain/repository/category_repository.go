package repository

import (
	"context"

	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/domain/query"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
// Los Get* devuelven (nil, nil) si no existe el registro.
type CategoryRepository interface {
	FindAll(ctx context.Context) ([]*entity.Category, error)
	GetByID(ctx context.Context, id int64) (*entity.Category, error)
	// GetByName busca por clave natural (nombre exacto).
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	// ListChildren devuelve las categorías cuyo padre es parent.
	ListChildren(ctx context.Context, parent *entity.Category) ([]*entity.Category, error)
	Search(ctx context.Context, tok query.Token) ([]*entity.Category, error)
	List(ctx context.Context, page query.PageRequest) (query.Page[*entity.Category], error)
	// Save inserta si ID == 0; si no, reemplaza el registro con ese ID. El padre debe estar persistido.
	Save(ctx context.Context, category *entity.Category) (*entity.Category, error)
	Delete(ctx context.Context, id int64) error
}
