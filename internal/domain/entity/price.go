package entity

// Price representa el precio de un producto en una moneda.
// Amount se expresa en unidades convencionales (entero).
// Clave natural: (Product.Name, Currency).
type Price struct {
	ID       int64
	Product  *Product
	Amount   int64
	Currency string
}

// ProductName devuelve el nombre del producto o "" si no tiene.
func (p *Price) ProductName() string {
	if p == nil || p.Product == nil {
		return ""
	}
	return p.Product.Name
}
