package entity

// Product representa un producto del catálogo. Pertenece siempre a una categoría persistida.
// No redefine igualdad: dos productos con el mismo nombre son registros distintos.
type Product struct {
	ID       int64
	Name     string
	Category *Category
}

// CategoryID devuelve el ID de la categoría o 0 si no tiene.
func (p *Product) CategoryID() int64 {
	if p == nil || p.Category == nil {
		return 0
	}
	return p.Category.ID
}
