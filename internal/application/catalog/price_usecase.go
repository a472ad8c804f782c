package catalog

import (
	"context"
	"fmt"

	"github.com/jhoicas/catalog-api/internal/application/dto"
	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/pkg/logger"
)

// PriceUseCase escrituras sobre precios. Un precio se identifica por (nombre de producto, moneda).
type PriceUseCase struct {
	tx  TxRunner
	log *logger.Logger
}

// NewPriceUseCase construye el caso de uso.
func NewPriceUseCase(tx TxRunner, log *logger.Logger) *PriceUseCase {
	return &PriceUseCase{tx: tx, log: log}
}

// CreateOrUpdate fija el precio del producto en la moneda indicada.
// El producto se busca por nombre (el primero gana); si no existe, ErrNotFound.
// Si ya hay precio para (producto, moneda) se sobrescribe en su lugar; si no, se inserta.
// Con productos homónimos se prefiere el precio del producto resuelto.
func (uc *PriceUseCase) CreateOrUpdate(ctx context.Context, in dto.CreatePriceRequest) (*dto.PriceResponse, error) {
	if in.Product == nil {
		return nil, fmt.Errorf("%w: producto requerido", domain.ErrInvalidInput)
	}
	productName := in.Product.Name

	var (
		out    *entity.Price
		merged bool
	)
	err := uc.tx.Run(ctx, []string{priceKey(productName, in.Currency)}, func(r Repos) error {
		product, err := r.Products.GetByName(ctx, productName)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("%w: producto %q", domain.ErrNotFound, productName)
		}

		price := &entity.Price{Product: product, Amount: in.Amount, Currency: in.Currency}
		stored, err := r.Prices.GetByProductAndCurrency(ctx, product, in.Currency)
		if err != nil {
			return err
		}
		if stored != nil {
			merged = true
			price.ID = stored.ID
		}
		out, err = r.Prices.Save(ctx, price)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Int64("id", out.ID).
		Str("product", productName).
		Str("currency", out.Currency).
		Int64("amount", out.Amount).
		Bool("merged", merged).
		Msg("precio creado")
	return toPriceResponse(out), nil
}

// UpdateByID reemplaza monto y moneda del precio id; el producto queda fijo.
// Si el producto ya tiene precio en la nueva moneda, ErrDuplicate.
func (uc *PriceUseCase) UpdateByID(ctx context.Context, id int64, in dto.UpdatePriceRequest) (*dto.PriceResponse, error) {
	var out *entity.Price
	err := uc.tx.Run(ctx, []string{priceIDKey(id)}, func(r Repos) error {
		stored, err := r.Prices.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if stored == nil {
			return domain.ErrNotFound
		}
		stored.Amount = in.Amount
		stored.Currency = in.Currency
		out, err = r.Prices.Save(ctx, stored)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Int64("id", out.ID).Str("currency", out.Currency).Int64("amount", out.Amount).Msg("precio actualizado")
	return toPriceResponse(out), nil
}

// DeleteByID elimina el precio id y lo devuelve.
func (uc *PriceUseCase) DeleteByID(ctx context.Context, id int64) (*dto.PriceResponse, error) {
	var out *entity.Price
	err := uc.tx.Run(ctx, []string{priceIDKey(id)}, func(r Repos) error {
		stored, err := r.Prices.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if stored == nil {
			return domain.ErrNotFound
		}
		if err := r.Prices.Delete(ctx, id); err != nil {
			return err
		}
		out = stored
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Int64("id", id).Msg("precio eliminado")
	return toPriceResponse(out), nil
}
