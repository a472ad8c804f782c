package http

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalog-api/internal/application/auth"
	"github.com/jhoicas/catalog-api/internal/application/catalog"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	Finder      *catalog.FinderUseCase
	CategoryUC  *catalog.CategoryUseCase
	ProductUC   *catalog.ProductUseCase
	PriceUC     *catalog.PriceUseCase
	PriceListUC *catalog.PriceListUseCase
	JWTSecret   string
}

// Router registra las rutas de la API. Lecturas requieren USER y escrituras ADMIN.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	authn := AuthMiddleware(deps.JWTSecret)
	read := RequireRole(entity.RoleUser)
	write := RequireRole(entity.RoleAdmin)

	// Categories
	categories := api.Group("/categories", authn)
	categoryHandler := NewCategoryHandler(deps.Finder, deps.CategoryUC)
	categories.Get("/", read, categoryHandler.List)
	categories.Get("/:value", read, categoryHandler.GetByValue)
	categories.Post("/", write, categoryHandler.Create)
	categories.Put("/:id", write, categoryHandler.Update)
	categories.Delete("/:id", write, categoryHandler.Delete)

	// Products
	products := api.Group("/products", authn)
	productHandler := NewProductHandler(deps.Finder, deps.ProductUC)
	products.Get("/", read, productHandler.List)
	products.Get("/:value", read, productHandler.GetByValue)
	products.Post("/", write, productHandler.Create)
	products.Put("/:id", write, productHandler.Update)
	products.Delete("/:id", write, productHandler.Delete)

	// Prices (report.pdf antes de /:value)
	prices := api.Group("/prices", authn)
	priceHandler := NewPriceHandler(deps.Finder, deps.PriceUC, deps.PriceListUC)
	prices.Get("/report.pdf", read, priceHandler.Report)
	prices.Get("/", read, priceHandler.List)
	prices.Get("/:value", read, priceHandler.GetByValue)
	prices.Post("/", write, priceHandler.Create)
	prices.Put("/:id", write, priceHandler.Update)
	prices.Delete("/:id", write, priceHandler.Delete)
}

// pathValue devuelve :value decodificado (los nombres pueden llevar espacios o acentos).
func pathValue(c *fiber.Ctx) string {
	raw := c.Params("value")
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}
