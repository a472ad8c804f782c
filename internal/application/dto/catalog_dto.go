package dto

// CategoryRef referencia a una categoría por nombre (clave natural).
type CategoryRef struct {
	Name string `json:"name" validate:"required,max=255"`
}

// CategoryRequest entrada para crear/actualizar una categoría.
// Parent nil = categoría raíz (o, en PUT, desasociar el padre).
type CategoryRequest struct {
	Name   string       `json:"name" validate:"required,max=255"`
	Parent *CategoryRef `json:"parent"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID     int64             `json:"id"`
	Name   string            `json:"name"`
	Parent *CategoryResponse `json:"parent,omitempty"`
}

// ProductRef referencia a un producto por nombre.
type ProductRef struct {
	Name string `json:"name" validate:"required,max=255"`
}

// CreateProductRequest entrada para crear un producto; la categoría debe existir.
type CreateProductRequest struct {
	Name     string       `json:"name" validate:"required,max=255"`
	Category *CategoryRef `json:"category" validate:"required"`
}

// UpdateProductRequest entrada para actualizar un producto. La categoría no se puede cambiar por esta vía.
type UpdateProductRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID       int64             `json:"id"`
	Name     string            `json:"name"`
	Category *CategoryResponse `json:"category,omitempty"`
}

// CreatePriceRequest entrada para crear (o sobrescribir) el precio de un producto en una moneda.
type CreatePriceRequest struct {
	Product  *ProductRef `json:"product" validate:"required"`
	Amount   int64       `json:"amount"`
	Currency string      `json:"currency" validate:"required,max=16"`
}

// UpdatePriceRequest entrada para actualizar un precio. El producto no se puede cambiar por esta vía.
type UpdatePriceRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency" validate:"required,max=16"`
}

// PriceResponse salida de un precio.
type PriceResponse struct {
	ID       int64            `json:"id"`
	Product  *ProductResponse `json:"product,omitempty"`
	Amount   int64            `json:"amount"`
	Currency string           `json:"currency"`
}
