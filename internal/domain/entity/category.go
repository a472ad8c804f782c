package entity

// Category representa una categoría del catálogo (jerárquica, un único padre opcional).
// La clave natural es Name: dos categorías son "la misma" si comparten nombre,
// sin importar ID ni padre.
type Category struct {
	ID     int64
	Name   string
	Parent *Category // nil si es raíz
}

// Equal compara por nombre únicamente.
func (c *Category) Equal(other *Category) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.Name == other.Name
}

// HasParent indica si la categoría tiene padre asignado.
func (c *Category) HasParent() bool {
	return c != nil && c.Parent != nil
}

// Ref devuelve una copia superficial (ID y nombre) apta para usar como referencia.
func (c *Category) Ref() *Category {
	if c == nil {
		return nil
	}
	return &Category{ID: c.ID, Name: c.Name}
}
