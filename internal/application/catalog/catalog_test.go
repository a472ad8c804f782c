package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalog-api/internal/application/catalog"
	"github.com/jhoicas/catalog-api/internal/application/dto"
	"github.com/jhoicas/catalog-api/internal/infrastructure/memory"
	"github.com/jhoicas/catalog-api/pkg/logger"
)

// fixture agrupa los casos de uso sobre un almacén en memoria recién creado.
type fixture struct {
	store      *memory.Store
	categories *catalog.CategoryUseCase
	products   *catalog.ProductUseCase
	prices     *catalog.PriceUseCase
	finder     *catalog.FinderUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	tx := memory.NewTxRunner(store, true)
	log := logger.Nop()
	return &fixture{
		store:      store,
		categories: catalog.NewCategoryUseCase(tx, log),
		products:   catalog.NewProductUseCase(tx, log),
		prices:     catalog.NewPriceUseCase(tx, log),
		finder:     catalog.NewFinderUseCase(store.Repos(), 10),
	}
}

func (f *fixture) category(t *testing.T, name, parent string) *dto.CategoryResponse {
	t.Helper()
	in := dto.CategoryRequest{Name: name}
	if parent != "" {
		in.Parent = &dto.CategoryRef{Name: parent}
	}
	out, err := f.categories.CreateOrUpdate(context.Background(), in)
	require.NoError(t, err)
	return out
}

func (f *fixture) product(t *testing.T, name, category string) *dto.ProductResponse {
	t.Helper()
	out, err := f.products.Create(context.Background(), dto.CreateProductRequest{
		Name:     name,
		Category: &dto.CategoryRef{Name: category},
	})
	require.NoError(t, err)
	return out
}

func (f *fixture) price(t *testing.T, product string, amount int64, currency string) *dto.PriceResponse {
	t.Helper()
	out, err := f.prices.CreateOrUpdate(context.Background(), dto.CreatePriceRequest{
		Product:  &dto.ProductRef{Name: product},
		Amount:   amount,
		Currency: currency,
	})
	require.NoError(t, err)
	return out
}
