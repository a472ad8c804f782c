package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalog-api/internal/application/catalog"
	"github.com/jhoicas/catalog-api/internal/application/dto"
	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/infrastructure/memory"
	"github.com/jhoicas/catalog-api/pkg/logger"
)

func TestCategoryCreateOrUpdate_CreaPadreEnPrimerUso(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	jackets := f.category(t, "Jackets", "Outwear")
	require.NotNil(t, jackets.Parent)
	assert.Equal(t, "Outwear", jackets.Parent.Name)
	assert.NotZero(t, jackets.Parent.ID)

	all, err := f.store.Repos().Categories.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCategoryCreateOrUpdate_MismoNombreActualizaEnSitio(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.category(t, "Jackets", "Outwear")
	second := f.category(t, "Jackets", "Outwear")

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Parent.ID, second.Parent.ID)

	all, err := f.store.Repos().Categories.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2, "no se duplica ni la categoría ni su padre")
}

func TestCategoryCreateOrUpdate_FusionDePadre(t *testing.T) {
	tests := []struct {
		name       string
		first      string
		second     string
		wantParent string
	}{
		{name: "mismo padre se conserva", first: "Outwear", second: "Outwear", wantParent: "Outwear"},
		{name: "sin padre declarado conserva el guardado", first: "Outwear", second: "", wantParent: "Outwear"},
		{name: "padre distinto prevalece el declarado", first: "Outwear", second: "Sale", wantParent: "Sale"},
		{name: "raíz adopta el padre declarado", first: "", second: "Sale", wantParent: "Sale"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			first := f.category(t, "Jackets", tt.first)
			got := f.category(t, "Jackets", tt.second)

			assert.Equal(t, first.ID, got.ID)
			require.NotNil(t, got.Parent)
			assert.Equal(t, tt.wantParent, got.Parent.Name)
		})
	}
}

func TestCategoryCreateOrUpdate_SinPadreQuedaRaiz(t *testing.T) {
	f := newFixture(t)
	got := f.category(t, "Outwear", "")
	assert.Nil(t, got.Parent)
}

func TestCategoryUpdateByID_NombreExistenteSeIgnora(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.category(t, "Outwear", "")
	f.category(t, "Sale", "")
	jackets := f.category(t, "Jackets", "Outwear")

	got, err := f.categories.UpdateByID(ctx, jackets.ID, dto.CategoryRequest{
		Name:   "Outwear",
		Parent: &dto.CategoryRef{Name: "Sale"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Jackets", got.Name)
	require.NotNil(t, got.Parent)
	assert.Equal(t, "Sale", got.Parent.Name)
}

func TestCategoryUpdateByID_Renombra(t *testing.T) {
	f := newFixture(t)
	jackets := f.category(t, "Jackets", "Outwear")

	got, err := f.categories.UpdateByID(context.Background(), jackets.ID, dto.CategoryRequest{Name: "Coats"})
	require.NoError(t, err)
	assert.Equal(t, "Coats", got.Name)
	assert.Nil(t, got.Parent, "sin padre en la petición la categoría queda como raíz")
}

func TestCategoryUpdateByID_Errores(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	jackets := f.category(t, "Jackets", "")

	_, err := f.categories.UpdateByID(ctx, 999, dto.CategoryRequest{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.categories.UpdateByID(ctx, jackets.ID, dto.CategoryRequest{
		Name:   "Jackets",
		Parent: &dto.CategoryRef{Name: "Ghost"},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategoryDeleteByID_DesasociaHijas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	jackets := f.category(t, "Jackets", "Outwear")
	vests := f.category(t, "Vests", "Outwear")
	f.category(t, "Parkas", "Jackets")
	outwearID := jackets.Parent.ID

	deleted, err := f.categories.DeleteByID(ctx, outwearID)
	require.NoError(t, err)
	assert.Equal(t, "Outwear", deleted.Name)

	repos := f.store.Repos()
	for _, id := range []int64{jackets.ID, vests.ID} {
		c, err := repos.Categories.GetByID(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, c, "las hijas no se borran")
		assert.Nil(t, c.Parent)
	}

	parkas, err := repos.Categories.GetByName(ctx, "Parkas")
	require.NoError(t, err)
	require.NotNil(t, parkas)
	assert.Equal(t, "Jackets", parkas.Parent.Name, "las nietas no cambian")

	gone, err := repos.Categories.GetByID(ctx, outwearID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestCategoryDeleteByID_NoExiste(t *testing.T) {
	f := newFixture(t)
	_, err := f.categories.DeleteByID(context.Background(), 7)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategoryDeleteByID_ConProductosNoTocaHijas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	jackets := f.category(t, "Jackets", "Outwear")
	outwearID := jackets.Parent.ID
	f.product(t, "Anorak", "Outwear")

	_, err := f.categories.DeleteByID(ctx, outwearID)
	assert.ErrorIs(t, err, domain.ErrInUse)

	repos := f.store.Repos()
	got, err := repos.Categories.GetByID(ctx, jackets.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Parent, "la hija conserva su padre")
	assert.Equal(t, outwearID, got.Parent.ID)

	outwear, err := repos.Categories.GetByID(ctx, outwearID)
	require.NoError(t, err)
	assert.NotNil(t, outwear)
}

// keysRecorder anota las claves de cada unidad de trabajo.
type keysRecorder struct {
	next catalog.TxRunner
	runs [][]string
}

func (k *keysRecorder) Run(ctx context.Context, keys []string, fn func(r catalog.Repos) error) error {
	k.runs = append(k.runs, append([]string(nil), keys...))
	return k.next.Run(ctx, keys, fn)
}

func TestCategoryWritesByID_BloqueanNombreActual(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	jackets := f.category(t, "Jackets", "Outwear")
	f.category(t, "Vests", "")

	rec := &keysRecorder{next: memory.NewTxRunner(f.store, true)}
	uc := catalog.NewCategoryUseCase(rec, logger.Nop())

	_, err := uc.UpdateByID(ctx, jackets.ID, dto.CategoryRequest{Name: "Coats", Parent: &dto.CategoryRef{Name: "Vests"}})
	require.NoError(t, err)
	require.NotEmpty(t, rec.runs)
	assert.ElementsMatch(t,
		[]string{"category#" + itoa(jackets.ID), "category:Jackets", "category:Coats", "category:Vests"},
		rec.runs[len(rec.runs)-1])

	rec.runs = nil
	_, err = uc.DeleteByID(ctx, jackets.ID)
	require.NoError(t, err)
	require.NotEmpty(t, rec.runs)
	assert.ElementsMatch(t,
		[]string{"category#" + itoa(jackets.ID), "category:Coats"},
		rec.runs[len(rec.runs)-1])
}
