package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/catalog-api/internal/bootstrap"
	httpRouter "github.com/jhoicas/catalog-api/internal/interfaces/http"
	"github.com/jhoicas/catalog-api/pkg/config"
	"github.com/jhoicas/catalog-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.App.StoreDriver).
		Bool("serialize_writes", cfg.Catalog.SerializeWrites).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}

	ctx := context.Background()
	store, err := bootstrap.OpenStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacén")
	}
	defer store.Close()

	svc := bootstrap.NewServices(cfg, store, log)
	if err := svc.EnsureBootstrapUsers(ctx, cfg.Auth); err != nil {
		log.Fatal().Err(err).Msg("usuarios iniciales")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Named("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: cfg.App.SwaggerFile,
		Path:     "docs",
		Title:    "Catalog API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.App.StoreDriver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      svc.Auth,
		Finder:      svc.Finder,
		CategoryUC:  svc.Categories,
		ProductUC:   svc.Products,
		PriceUC:     svc.Prices,
		PriceListUC: svc.PriceList,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
