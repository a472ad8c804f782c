package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalog-api/internal/application/dto"
	"github.com/jhoicas/catalog-api/internal/domain"
)

func TestPriceCreateOrUpdate_SobrescribeParProductoMoneda(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.category(t, "Jackets", "")
	f.product(t, "Jacket", "Jackets")

	first := f.price(t, "Jacket", 100, "BYN")
	second := f.price(t, "Jacket", 150, "BYN")
	usd := f.price(t, "Jacket", 40, "USD")

	assert.Equal(t, first.ID, second.ID)
	assert.NotEqual(t, first.ID, usd.ID)

	byn, err := f.finder.FindPrices(ctx, "currency-BYN")
	require.NoError(t, err)
	require.Len(t, byn, 1)
	assert.Equal(t, int64(150), byn[0].Amount)
}

func TestPriceCreateOrUpdate_ProductoInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.prices.CreateOrUpdate(context.Background(), dto.CreatePriceRequest{
		Product:  &dto.ProductRef{Name: "Ghost"},
		Amount:   1,
		Currency: "BYN",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPriceUpdateByID_ProductoFijo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.category(t, "Jackets", "")
	f.product(t, "Jacket", "Jackets")
	p := f.price(t, "Jacket", 100, "BYN")

	got, err := f.prices.UpdateByID(ctx, p.ID, dto.UpdatePriceRequest{Amount: 90, Currency: "USD"})
	require.NoError(t, err)
	assert.Equal(t, int64(90), got.Amount)
	assert.Equal(t, "USD", got.Currency)
	assert.Equal(t, "Jacket", got.Product.Name)

	_, err = f.prices.UpdateByID(ctx, 999, dto.UpdatePriceRequest{Amount: 1, Currency: "USD"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPriceCreateOrUpdate_HomonimoUsaSuPropioPrecio(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.category(t, "Outwear", "")
	coat := f.product(t, "Coat", "Outwear")
	f.product(t, "Jacket", "Outwear")
	jacketUsd := f.price(t, "Jacket", 50, "USD")
	coatUsd := f.price(t, "Coat", 40, "USD")

	_, err := f.products.UpdateByID(ctx, coat.ID, dto.UpdateProductRequest{Name: "Jacket"})
	require.NoError(t, err)

	// "Jacket" resuelve al primer producto (el antiguo Coat), que ya tiene precio en USD
	got, err := f.prices.CreateOrUpdate(ctx, dto.CreatePriceRequest{
		Product:  &dto.ProductRef{Name: "Jacket"},
		Amount:   99,
		Currency: "USD",
	})
	require.NoError(t, err)
	assert.Equal(t, coatUsd.ID, got.ID)
	assert.Equal(t, coat.ID, got.Product.ID)
	assert.Equal(t, int64(99), got.Amount)

	usd, err := f.finder.FindPrices(ctx, "currency-USD")
	require.NoError(t, err)
	require.Len(t, usd, 2)
	for _, p := range usd {
		if p.ID == jacketUsd.ID {
			assert.Equal(t, int64(50), p.Amount)
		}
	}
}

func TestPriceUpdateByID_MonedaOcupada(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.category(t, "Jackets", "")
	f.product(t, "Jacket", "Jackets")
	f.price(t, "Jacket", 100, "BYN")
	usd := f.price(t, "Jacket", 30, "USD")

	_, err := f.prices.UpdateByID(ctx, usd.ID, dto.UpdatePriceRequest{Amount: 30, Currency: "BYN"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	byn, err := f.finder.FindPrices(ctx, "currency-BYN")
	require.NoError(t, err)
	require.Len(t, byn, 1)
	assert.Equal(t, int64(100), byn[0].Amount)
}

func TestPriceDeleteByID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.category(t, "Jackets", "")
	f.product(t, "Jacket", "Jackets")
	p := f.price(t, "Jacket", 100, "BYN")

	deleted, err := f.prices.DeleteByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, deleted.ID)

	_, err = f.prices.DeleteByID(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
