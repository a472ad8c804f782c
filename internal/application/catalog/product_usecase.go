package catalog

import (
	"context"
	"fmt"

	"github.com/jhoicas/catalog-api/internal/application/dto"
	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/pkg/logger"
)

// ProductUseCase escrituras sobre productos. Sin deduplicación por nombre.
type ProductUseCase struct {
	tx  TxRunner
	log *logger.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(tx TxRunner, log *logger.Logger) *ProductUseCase {
	return &ProductUseCase{tx: tx, log: log}
}

// Create inserta un producto en la categoría indicada por nombre. Si la categoría no existe, ErrNotFound.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Category == nil {
		return nil, fmt.Errorf("%w: categoría requerida", domain.ErrInvalidInput)
	}

	var out *entity.Product
	err := uc.tx.Run(ctx, []string{categoryKey(in.Category.Name)}, func(r Repos) error {
		category, err := r.Categories.GetByName(ctx, in.Category.Name)
		if err != nil {
			return err
		}
		if category == nil {
			return fmt.Errorf("%w: categoría %q", domain.ErrNotFound, in.Category.Name)
		}
		out, err = r.Products.Save(ctx, &entity.Product{Name: in.Name, Category: category})
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Int64("id", out.ID).Str("name", out.Name).Int64("category_id", out.CategoryID()).Msg("producto creado")
	return toProductResponse(out), nil
}

// UpdateByID cambia el nombre del producto id; la categoría queda fija.
func (uc *ProductUseCase) UpdateByID(ctx context.Context, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	var out *entity.Product
	err := uc.tx.Run(ctx, []string{productIDKey(id)}, func(r Repos) error {
		stored, err := r.Products.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if stored == nil {
			return domain.ErrNotFound
		}
		stored.Name = in.Name
		out, err = r.Products.Save(ctx, stored)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Int64("id", out.ID).Str("name", out.Name).Msg("producto actualizado")
	return toProductResponse(out), nil
}

// DeleteByID elimina el producto id y lo devuelve. Falla si aún tiene precios.
func (uc *ProductUseCase) DeleteByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	var out *entity.Product
	err := uc.tx.Run(ctx, []string{productIDKey(id)}, func(r Repos) error {
		stored, err := r.Products.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if stored == nil {
			return domain.ErrNotFound
		}
		if err := r.Products.Delete(ctx, id); err != nil {
			return err
		}
		out = stored
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Int64("id", id).Msg("producto eliminado")
	return toProductResponse(out), nil
}
