// Package catalog contiene las reglas de igualdad por clave natural del
// catálogo. Son funciones puras sobre el conjunto persistido; el almacén en
// memoria las usa directamente y el de PostgreSQL las expresa en SQL.
package catalog

import "github.com/jhoicas/catalog-api/internal/domain/entity"

// MatchCategory devuelve la primera categoría persistida igual (por nombre) al candidato.
func MatchCategory(candidate *entity.Category, persisted []*entity.Category) *entity.Category {
	if candidate == nil {
		return nil
	}
	for _, c := range persisted {
		if c.Equal(candidate) {
			return c
		}
	}
	return nil
}

// MatchProductByName devuelve el primer producto persistido con ese nombre.
func MatchProductByName(name string, persisted []*entity.Product) *entity.Product {
	for _, p := range persisted {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// MatchPrice devuelve el precio persistido para (product, currency).
// Gana el precio del propio producto (mismo ID); si no lo hay, el primero
// de un producto homónimo.
func MatchPrice(product *entity.Product, currency string, persisted []*entity.Price) *entity.Price {
	if product == nil {
		return nil
	}
	var byName *entity.Price
	for _, p := range persisted {
		if p.Currency != currency || p.ProductName() != product.Name {
			continue
		}
		if product.ID != 0 && p.Product.ID == product.ID {
			return p
		}
		if byName == nil {
			byName = p
		}
	}
	return byName
}

// ChildrenOf devuelve las categorías cuyo padre es igual (por nombre) a parent.
func ChildrenOf(parent *entity.Category, persisted []*entity.Category) []*entity.Category {
	var out []*entity.Category
	for _, c := range persisted {
		if c.HasParent() && c.Parent.Equal(parent) {
			out = append(out, c)
		}
	}
	return out
}
