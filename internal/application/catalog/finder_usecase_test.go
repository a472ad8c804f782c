package catalog_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalog-api/internal/domain"
)

func TestFindPrices_RangoExclusivo(t *testing.T) {
	f := newFixture(t)
	f.category(t, "Jackets", "")
	f.product(t, "Jacket", "Jackets")
	f.product(t, "Vest", "Jackets")
	f.price(t, "Jacket", 100, "BYN")
	f.price(t, "Vest", 99, "BYN")
	f.price(t, "Vest", 110, "USD")

	got, err := f.finder.FindPrices(context.Background(), "price_range-99-110")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(100), got[0].Amount)
}

func TestFindProducts_PorCategoria(t *testing.T) {
	f := newFixture(t)
	jackets := f.category(t, "Jackets", "Outwear")
	f.product(t, "Jacket", "Jackets")
	f.product(t, "Vest", "Outwear")

	got, err := f.finder.FindProducts(context.Background(), "category_id-"+itoa(jackets.ID))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Jacket", got[0].Name)
}

func TestFindCategories(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	jackets := f.category(t, "Jackets", "Outwear")

	byID, err := f.finder.FindCategories(ctx, "+"+itoa(jackets.ID))
	require.NoError(t, err)
	require.Len(t, byID, 1)
	assert.Equal(t, "Jackets", byID[0].Name)
	assert.Nil(t, byID[0].Parent, "por ID solo se devuelven id y nombre")

	byName, err := f.finder.FindCategories(ctx, "Jackets")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	require.NotNil(t, byName[0].Parent)

	none, err := f.finder.FindCategories(ctx, "Shoes")
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = f.finder.FindCategories(ctx, "999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFind_TokenMalformado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.finder.FindProducts(ctx, "category_id-abc")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.finder.FindPrices(ctx, "price_range-10")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListCategories_Paginado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, name := range []string{"c", "a", "b"} {
		f.category(t, name, "")
	}

	page, err := f.finder.ListCategories(ctx, 0, "name")
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.TotalElements)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 10, page.Size)
	require.Len(t, page.Content, 3)
	assert.Equal(t, "a", page.Content[0].Name)

	_, err = f.finder.ListCategories(ctx, 0, "parent")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
