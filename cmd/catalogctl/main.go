// catalogctl tareas de operación sobre el catálogo: migraciones, usuarios y
// carga o exportación del catálogo en XML.
//
// Uso:
//
//	catalogctl migrate
//	catalogctl create-user --username ana --password secreto [--admin]
//	catalogctl seed [--file catalogo.xml]
//	catalogctl export --file catalogo.xml [--canonical]
package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/jhoicas/catalog-api/internal/application/auth"
	"github.com/jhoicas/catalog-api/internal/application/catalog"
	"github.com/jhoicas/catalog-api/internal/bootstrap"
	"github.com/jhoicas/catalog-api/internal/infrastructure/catalogxml"
	"github.com/jhoicas/catalog-api/internal/infrastructure/postgres"
	"github.com/jhoicas/catalog-api/pkg/config"
	"github.com/jhoicas/catalog-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	cmd := &cli.Command{
		Name:  "catalogctl",
		Usage: "Operación del catálogo",
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "Aplicar migraciones pendientes de PostgreSQL",
				Action: func(ctx context.Context, c *cli.Command) error {
					pool, err := postgres.NewPool(ctx, cfg.DB, nil)
					if err != nil {
						return err
					}
					defer pool.Close()
					applied, err := postgres.Migrate(ctx, pool, log)
					if err != nil {
						return err
					}
					if len(applied) == 0 {
						fmt.Println("Sin migraciones pendientes")
						return nil
					}
					fmt.Printf("Aplicadas: %s\n", strings.Join(applied, ", "))
					return nil
				},
			},
			{
				Name:  "create-user",
				Usage: "Crear o actualizar un usuario",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Usage: "nombre de usuario", Required: true},
					&cli.StringFlag{Name: "password", Usage: "contraseña", Required: true},
					&cli.BoolFlag{Name: "admin", Usage: "otorgar rol ADMIN además de USER"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return withServices(ctx, cfg, log, func(svc *bootstrap.Services) error {
						user, err := svc.Auth.EnsureUser(ctx, c.String("username"), c.String("password"), auth.RolesFor(c.Bool("admin")))
						if err != nil {
							return err
						}
						fmt.Printf("Usuario %s (id %d) roles %v\n", user.Username, user.ID, user.Roles)
						return nil
					})
				},
			},
			{
				Name:  "seed",
				Usage: "Cargar un catálogo XML (sin --file, el catálogo de ejemplo)",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Usage: "ruta del XML a importar"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					data := catalog.DemoCatalog()
					if path := c.String("file"); path != "" {
						f, err := os.Open(path)
						if err != nil {
							return fmt.Errorf("abrir XML: %w", err)
						}
						defer f.Close()
						if data, err = catalogxml.Decode(f); err != nil {
							return err
						}
					}
					return withServices(ctx, cfg, log, func(svc *bootstrap.Services) error {
						res, err := svc.Seeder.Apply(ctx, data)
						if err != nil {
							return err
						}
						fmt.Printf("Categorías: %d, productos: %d (omitidos %d), precios: %d\n",
							res.Categories, res.Products, res.SkippedProducts, res.Prices)
						return nil
					})
				},
			},
			{
				Name:  "export",
				Usage: "Exportar el catálogo a XML",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Usage: "ruta de salida", Required: true},
					&cli.BoolFlag{Name: "canonical", Usage: "escribir la forma canónica (C14N) e imprimir su SHA-256"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return withServices(ctx, cfg, log, func(svc *bootstrap.Services) error {
						data, err := svc.Seeder.Snapshot(ctx)
						if err != nil {
							return err
						}
						var buf bytes.Buffer
						if err := catalogxml.Encode(&buf, data); err != nil {
							return err
						}
						out := buf.Bytes()
						if c.Bool("canonical") {
							canon, digest, err := catalogxml.Canonical(out)
							if err != nil {
								return err
							}
							out = canon
							fmt.Printf("SHA-256: %s\n", digest)
						}
						if err := os.WriteFile(c.String("file"), out, 0o644); err != nil {
							return fmt.Errorf("escribir XML: %w", err)
						}
						fmt.Printf("Exportado %s: %d categorías, %d productos, %d precios\n",
							c.String("file"), len(data.Categories), len(data.Products), len(data.Prices))
						return nil
					})
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Error().Err(err).Msg("catalogctl")
		os.Exit(1)
	}
}

func withServices(ctx context.Context, cfg *config.Config, log *logger.Logger, fn func(*bootstrap.Services) error) error {
	store, err := bootstrap.OpenStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(bootstrap.NewServices(cfg, store, log))
}
