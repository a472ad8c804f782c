package catalog

import (
	"context"
	"fmt"

	"github.com/jhoicas/catalog-api/internal/application/dto"
	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/domain/query"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
	"github.com/jhoicas/catalog-api/pkg/logger"
)

// CategoryUseCase escrituras sobre categorías: reconciliación por nombre y
// mantenimiento de la jerarquía (un único padre por categoría).
type CategoryUseCase struct {
	tx  TxRunner
	log *logger.Logger
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(tx TxRunner, log *logger.Logger) *CategoryUseCase {
	return &CategoryUseCase{tx: tx, log: log}
}

// CreateOrUpdate crea la categoría o, si ya existe una con el mismo nombre, la actualiza en su lugar.
//
// El padre declarado se resuelve contra las categorías persistidas por nombre y
// se guarda siempre (así un padre nuevo se crea en el primer uso). En el camino
// de actualización el nombre no cambia y el padre se fusiona con el guardado.
// El llamador no distingue ambos caminos: la API responde 201 en los dos.
func (uc *CategoryUseCase) CreateOrUpdate(ctx context.Context, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	incoming := &entity.Category{Name: in.Name}
	keys := []string{categoryKey(in.Name)}
	if in.Parent != nil {
		incoming.Parent = &entity.Category{Name: in.Parent.Name}
		keys = append(keys, categoryKey(in.Parent.Name))
	}

	var (
		out    *entity.Category
		merged bool
	)
	err := uc.tx.Run(ctx, keys, func(r Repos) error {
		if incoming.HasParent() {
			parent, err := resolveDeclaredParent(ctx, r.Categories, incoming.Parent)
			if err != nil {
				return err
			}
			incoming.Parent = parent
		}

		stored, err := r.Categories.GetByName(ctx, incoming.Name)
		if err != nil {
			return err
		}
		if stored == nil {
			out, err = r.Categories.Save(ctx, incoming)
			return err
		}

		merged = true
		incoming.Name = stored.Name
		if stored.HasParent() {
			incoming.Parent = mergeParent(stored.Parent, incoming.Parent)
		}
		stored.Name = incoming.Name
		stored.Parent = incoming.Parent
		out, err = r.Categories.Save(ctx, stored)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Int64("id", out.ID).Str("name", out.Name).Bool("merged", merged).Msg("categoría creada")
	return toCategoryResponse(out), nil
}

// UpdateByID reemplaza nombre y padre de la categoría id.
// Si alguna categoría ya tiene el nombre pedido (incluida ella misma) el nombre se conserva.
// El padre se busca por nombre entre las persistidas; nil la deja como raíz.
func (uc *CategoryUseCase) UpdateByID(ctx context.Context, id int64, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	extra := []string{categoryKey(in.Name)}
	if in.Parent != nil {
		extra = append(extra, categoryKey(in.Parent.Name))
	}

	var out *entity.Category
	err := uc.runOnCategory(ctx, id, extra, func(r Repos, stored *entity.Category) error {
		name := in.Name
		clash, err := r.Categories.GetByName(ctx, name)
		if err != nil {
			return err
		}
		if clash != nil {
			name = stored.Name
		}

		var parent *entity.Category
		if in.Parent != nil {
			parent, err = r.Categories.GetByName(ctx, in.Parent.Name)
			if err != nil {
				return err
			}
			if parent == nil {
				return fmt.Errorf("%w: categoría padre %q", domain.ErrNotFound, in.Parent.Name)
			}
		}

		stored.Name = name
		stored.Parent = parent
		out, err = r.Categories.Save(ctx, stored)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Int64("id", out.ID).Str("name", out.Name).Msg("categoría actualizada")
	return toCategoryResponse(out), nil
}

// DeleteByID elimina la categoría id. Sus hijas directas quedan sin padre;
// no hay reasignación ni borrado en cascada. Con productos asociados falla
// con ErrInUse antes de tocar las hijas.
func (uc *CategoryUseCase) DeleteByID(ctx context.Context, id int64) (*dto.CategoryResponse, error) {
	var (
		out      *entity.Category
		detached int
	)
	err := uc.runOnCategory(ctx, id, nil, func(r Repos, stored *entity.Category) error {
		used, err := r.Products.Search(ctx, query.Token{Kind: query.KindCategoryID, CategoryID: id})
		if err != nil {
			return err
		}
		if len(used) > 0 {
			return fmt.Errorf("%w: categoría %d tiene %d productos", domain.ErrInUse, id, len(used))
		}

		children, err := r.Categories.ListChildren(ctx, stored)
		if err != nil {
			return err
		}
		for _, child := range children {
			child.Parent = nil
			if _, err := r.Categories.Save(ctx, child); err != nil {
				return fmt.Errorf("desasociar categoría %d: %w", child.ID, err)
			}
		}
		detached = len(children)

		if err := r.Categories.Delete(ctx, id); err != nil {
			return err
		}
		out = stored
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Int64("id", id).Int("detached", detached).Msg("categoría eliminada")
	return toCategoryResponse(out), nil
}

// runOnCategory ejecuta fn sobre la categoría id bloqueando su clave por ID,
// la de su nombre actual y extra. El nombre se lee en una primera pasada; si
// cambió antes de tomar los bloqueos se vuelve a leer.
func (uc *CategoryUseCase) runOnCategory(ctx context.Context, id int64, extra []string, fn func(r Repos, stored *entity.Category) error) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var name string
		err := uc.tx.Run(ctx, []string{categoryIDKey(id)}, func(r Repos) error {
			stored, err := r.Categories.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if stored == nil {
				return domain.ErrNotFound
			}
			name = stored.Name
			return nil
		})
		if err != nil {
			return err
		}

		keys := append([]string{categoryIDKey(id), categoryKey(name)}, extra...)
		renamed := false
		err = uc.tx.Run(ctx, keys, func(r Repos) error {
			stored, err := r.Categories.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if stored == nil {
				return domain.ErrNotFound
			}
			if stored.Name != name {
				renamed = true
				return nil
			}
			return fn(r, stored)
		})
		if err != nil || !renamed {
			return err
		}
	}
}

// resolveDeclaredParent sustituye el padre declarado por la fila persistida con
// el mismo nombre, si existe, y lo guarda en cualquier caso.
func resolveDeclaredParent(ctx context.Context, repo repository.CategoryRepository, declared *entity.Category) (*entity.Category, error) {
	parent := declared
	existing, err := repo.GetByName(ctx, declared.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		parent = existing
	}
	saved, err := repo.Save(ctx, parent)
	if err != nil {
		return nil, fmt.Errorf("guardar categoría padre %q: %w", parent.Name, err)
	}
	return saved, nil
}

// mergeParent combina el padre guardado (no nil) con el entrante.
// Mismo nombre: se conserva el guardado. Distinto: la unión de ambos
// colapsa a un único padre y prevalece el declarado; sin padre declarado
// la unión es el guardado.
func mergeParent(stored, incoming *entity.Category) *entity.Category {
	if incoming == nil || stored.Equal(incoming) {
		return stored
	}
	return incoming
}
