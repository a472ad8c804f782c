// Package memory implementa los repositorios del catálogo en memoria.
// Se usa con STORE_DRIVER=memory (desarrollo) y como doble de pruebas.
// Las búsquedas por clave natural recorren el conjunto persistido con las
// funciones de internal/domain/catalog, igual que el índice único en SQL.
package memory

import (
	"cmp"
	"slices"
	"sync"

	"github.com/jhoicas/catalog-api/internal/application/catalog"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/domain/query"
)

type categoryRow struct {
	id       int64
	name     string
	parentID int64
}

type productRow struct {
	id         int64
	name       string
	categoryID int64
}

type priceRow struct {
	id        int64
	productID int64
	amount    int64
	currency  string
}

// Store conjunto de tablas en memoria. Seguro para uso concurrente;
// cada operación de repositorio es atómica por sí sola.
type Store struct {
	mu         sync.RWMutex
	seq        map[string]int64 // un contador por tabla, como BIGSERIAL
	categories map[int64]categoryRow
	products   map[int64]productRow
	prices     map[int64]priceRow
	users      map[string]*entity.User
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		seq:        make(map[string]int64),
		categories: make(map[int64]categoryRow),
		products:   make(map[int64]productRow),
		prices:     make(map[int64]priceRow),
		users:      make(map[string]*entity.User),
	}
}

// Repos devuelve los repositorios del catálogo sobre este almacén.
func (s *Store) Repos() catalog.Repos {
	return catalog.Repos{
		Categories: &CategoryRepo{s: s},
		Products:   &ProductRepo{s: s},
		Prices:     &PriceRepo{s: s},
	}
}

const (
	categoriesTable = "categories"
	productsTable   = "products"
	pricesTable     = "prices"
	usersTable      = "users"
)

// nextID siguiente ID de table. Requiere s.mu.
func (s *Store) nextID(table string) int64 {
	s.seq[table]++
	return s.seq[table]
}

// category hidrata la fila id con la referencia (id, nombre) a su padre. Requiere s.mu.
func (s *Store) category(id int64) *entity.Category {
	row, ok := s.categories[id]
	if !ok {
		return nil
	}
	c := &entity.Category{ID: row.id, Name: row.name}
	if p, ok := s.categories[row.parentID]; ok {
		c.Parent = &entity.Category{ID: p.id, Name: p.name}
	}
	return c
}

func (s *Store) product(id int64) *entity.Product {
	row, ok := s.products[id]
	if !ok {
		return nil
	}
	return &entity.Product{ID: row.id, Name: row.name, Category: s.category(row.categoryID)}
}

func (s *Store) price(id int64) *entity.Price {
	row, ok := s.prices[id]
	if !ok {
		return nil
	}
	return &entity.Price{ID: row.id, Product: s.product(row.productID), Amount: row.amount, Currency: row.currency}
}

// hydrateAll materializa todas las filas de una tabla en orden de ID.
func hydrateAll[R any, E any](rows map[int64]R, fn func(int64) E) []E {
	ids := make([]int64, 0, len(rows))
	for id := range rows {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]E, 0, len(ids))
	for _, id := range ids {
		out = append(out, fn(id))
	}
	return out
}

// paginate ordena ascendentemente por el campo pedido (desempate por ID) y recorta la página.
func paginate[E any](all []E, req query.PageRequest, key func(E, string) (string, int64), id func(E) int64) query.Page[E] {
	slices.SortStableFunc(all, func(a, b E) int {
		as, an := key(a, req.SortBy)
		bs, bn := key(b, req.SortBy)
		return cmp.Or(cmp.Compare(as, bs), cmp.Compare(an, bn), cmp.Compare(id(a), id(b)))
	})

	page := query.Page[E]{Total: int64(len(all)), PageRequest: req, Items: []E{}}
	from := min(req.Offset(), len(all))
	to := min(from+req.Size, len(all))
	page.Items = append(page.Items, all[from:to]...)
	return page
}
