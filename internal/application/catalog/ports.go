package catalog

import (
	"context"
	"time"

	"github.com/jhoicas/catalog-api/internal/domain/repository"
)

// Repos agrupa los repositorios del catálogo atados a una misma unidad de trabajo.
type Repos struct {
	Categories repository.CategoryRepository
	Products   repository.ProductRepository
	Prices     repository.PriceRepository
}

// TxRunner ejecuta fn con repositorios atados a una unidad de trabajo.
// keys son las claves naturales que la escritura lee y puede crear; la
// implementación decide si las bloquea (transacción + lock por clave) o
// llama directamente sin bloqueo.
type TxRunner interface {
	Run(ctx context.Context, keys []string, fn func(r Repos) error) error
}

// PriceListLine una fila del listado de precios.
type PriceListLine struct {
	Product  string
	Category string
	Currency string
	Amount   int64
}

// PriceListPDFGenerator genera la representación PDF del listado de precios.
type PriceListPDFGenerator interface {
	GeneratePriceListPDF(ctx context.Context, title string, generatedAt time.Time, lines []PriceListLine) ([]byte, error)
}

func categoryKey(name string) string { return "category:" + name }

func categoryIDKey(id int64) string { return "category#" + itoa(id) }

func priceKey(product, currency string) string { return "price:" + product + "|" + currency }

func priceIDKey(id int64) string { return "price#" + itoa(id) }

func productIDKey(id int64) string { return "product#" + itoa(id) }
