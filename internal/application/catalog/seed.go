package catalog

import (
	"context"
	"fmt"

	"github.com/jhoicas/catalog-api/internal/application/dto"
	"github.com/jhoicas/catalog-api/pkg/logger"
)

// SeedData contenido de un catálogo a importar o exportar, expresado con los
// mismos requests que usa la API (referencias por nombre).
type SeedData struct {
	Categories []dto.CategoryRequest
	Products   []dto.CreateProductRequest
	Prices     []dto.CreatePriceRequest
}

// SeedResult resumen de una importación.
type SeedResult struct {
	Categories      int
	Products        int
	SkippedProducts int
	Prices          int
}

// Seeder importa y exporta catálogos completos pasando por los casos de uso,
// de modo que la carga respeta las mismas reglas de reconciliación que la API.
type Seeder struct {
	repos      Repos
	categories *CategoryUseCase
	products   *ProductUseCase
	prices     *PriceUseCase
	log        *logger.Logger
}

// NewSeeder construye el importador.
func NewSeeder(repos Repos, categories *CategoryUseCase, products *ProductUseCase, prices *PriceUseCase, log *logger.Logger) *Seeder {
	return &Seeder{repos: repos, categories: categories, products: products, prices: prices, log: log}
}

// Apply carga data: categorías (crear o actualizar por nombre), productos
// (se omiten los que ya existen con el mismo nombre) y precios (se sobrescriben
// por producto y moneda). Se detiene en el primer error.
func (s *Seeder) Apply(ctx context.Context, data SeedData) (SeedResult, error) {
	var res SeedResult
	for _, in := range data.Categories {
		if _, err := s.categories.CreateOrUpdate(ctx, in); err != nil {
			return res, fmt.Errorf("seed: categoría %q: %w", in.Name, err)
		}
		res.Categories++
	}

	for _, in := range data.Products {
		existing, err := s.repos.Products.GetByName(ctx, in.Name)
		if err != nil {
			return res, fmt.Errorf("seed: producto %q: %w", in.Name, err)
		}
		if existing != nil {
			res.SkippedProducts++
			continue
		}
		if _, err := s.products.Create(ctx, in); err != nil {
			return res, fmt.Errorf("seed: producto %q: %w", in.Name, err)
		}
		res.Products++
	}

	for _, in := range data.Prices {
		if _, err := s.prices.CreateOrUpdate(ctx, in); err != nil {
			return res, fmt.Errorf("seed: precio %s: %w", in.Currency, err)
		}
		res.Prices++
	}

	s.log.Info().
		Int("categories", res.Categories).
		Int("products", res.Products).
		Int("skipped_products", res.SkippedProducts).
		Int("prices", res.Prices).
		Msg("catálogo importado")
	return res, nil
}

// Snapshot lee el catálogo persistido en el mismo formato que acepta Apply.
func (s *Seeder) Snapshot(ctx context.Context) (SeedData, error) {
	var data SeedData

	categories, err := s.repos.Categories.FindAll(ctx)
	if err != nil {
		return data, fmt.Errorf("snapshot: categorías: %w", err)
	}
	for _, c := range categories {
		in := dto.CategoryRequest{Name: c.Name}
		if c.HasParent() {
			in.Parent = &dto.CategoryRef{Name: c.Parent.Name}
		}
		data.Categories = append(data.Categories, in)
	}

	products, err := s.repos.Products.FindAll(ctx)
	if err != nil {
		return data, fmt.Errorf("snapshot: productos: %w", err)
	}
	for _, p := range products {
		in := dto.CreateProductRequest{Name: p.Name}
		if p.Category != nil {
			in.Category = &dto.CategoryRef{Name: p.Category.Name}
		}
		data.Products = append(data.Products, in)
	}

	prices, err := s.repos.Prices.FindAll(ctx)
	if err != nil {
		return data, fmt.Errorf("snapshot: precios: %w", err)
	}
	for _, p := range prices {
		data.Prices = append(data.Prices, dto.CreatePriceRequest{
			Product:  &dto.ProductRef{Name: p.ProductName()},
			Amount:   p.Amount,
			Currency: p.Currency,
		})
	}
	return data, nil
}

// DemoCatalog catálogo de ejemplo para entornos de desarrollo.
func DemoCatalog() SeedData {
	cat := func(name, parent string) dto.CategoryRequest {
		in := dto.CategoryRequest{Name: name}
		if parent != "" {
			in.Parent = &dto.CategoryRef{Name: parent}
		}
		return in
	}
	prod := func(name, category string) dto.CreateProductRequest {
		return dto.CreateProductRequest{Name: name, Category: &dto.CategoryRef{Name: category}}
	}
	price := func(product string, amount int64, currency string) dto.CreatePriceRequest {
		return dto.CreatePriceRequest{Product: &dto.ProductRef{Name: product}, Amount: amount, Currency: currency}
	}

	return SeedData{
		Categories: []dto.CategoryRequest{
			cat("Electrónica", ""),
			cat("Computadores", "Electrónica"),
			cat("Celulares", "Electrónica"),
			cat("Hogar", ""),
			cat("Cocina", "Hogar"),
		},
		Products: []dto.CreateProductRequest{
			prod("Portátil 14", "Computadores"),
			prod("Monitor 27", "Computadores"),
			prod("Teléfono básico", "Celulares"),
			prod("Licuadora", "Cocina"),
		},
		Prices: []dto.CreatePriceRequest{
			price("Portátil 14", 3_200_000, "COP"),
			price("Portátil 14", 850, "USD"),
			price("Monitor 27", 1_150_000, "COP"),
			price("Teléfono básico", 420_000, "COP"),
			price("Licuadora", 260_000, "COP"),
			price("Licuadora", 70, "USD"),
		},
	}
}
