// Package bootstrap arma el grafo de dependencias compartido por la API y catalogctl.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/catalog-api/internal/application/auth"
	"github.com/jhoicas/catalog-api/internal/application/catalog"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
	"github.com/jhoicas/catalog-api/internal/infrastructure/memory"
	"github.com/jhoicas/catalog-api/internal/infrastructure/pdf"
	"github.com/jhoicas/catalog-api/internal/infrastructure/postgres"
	"github.com/jhoicas/catalog-api/pkg/config"
	"github.com/jhoicas/catalog-api/pkg/logger"
)

const priceListTitle = "Lista de precios"

// Store persistencia elegida por STORE_DRIVER.
type Store struct {
	Repos catalog.Repos
	Tx    catalog.TxRunner
	Users repository.UserRepository
	// Pool nil con el driver memory.
	Pool *pgxpool.Pool
}

// OpenStore abre la persistencia. Con postgres aplica las migraciones pendientes.
func OpenStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Store, error) {
	serialize := cfg.Catalog.SerializeWrites

	switch cfg.App.StoreDriver {
	case "memory":
		mem := memory.NewStore()
		log.Warn().Msg("almacén en memoria: los datos se pierden al reiniciar")
		return &Store{
			Repos: mem.Repos(),
			Tx:    memory.NewTxRunner(mem, serialize),
			Users: memory.NewUserRepository(mem),
		}, nil
	case "postgres":
		var queryLog *logger.Logger
		if cfg.App.LogLevel == "debug" || cfg.App.LogLevel == "trace" {
			queryLog = log.Named("pgx")
		}
		pool, err := postgres.NewPool(ctx, cfg.DB, queryLog)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if _, err := postgres.Migrate(ctx, pool, log); err != nil {
			pool.Close()
			return nil, err
		}
		return &Store{
			Repos: postgres.NewRepos(pool),
			Tx:    postgres.NewTxRunner(pool, serialize),
			Users: postgres.NewUserRepository(pool),
			Pool:  pool,
		}, nil
	}
	return nil, fmt.Errorf("store driver desconocido %q", cfg.App.StoreDriver)
}

// Close libera el pool si existe.
func (s *Store) Close() {
	if s.Pool != nil {
		s.Pool.Close()
	}
}

// Services casos de uso sobre un Store.
type Services struct {
	Auth       *auth.AuthUseCase
	Finder     *catalog.FinderUseCase
	Categories *catalog.CategoryUseCase
	Products   *catalog.ProductUseCase
	Prices     *catalog.PriceUseCase
	PriceList  *catalog.PriceListUseCase
	Seeder     *catalog.Seeder
}

// NewServices construye los casos de uso.
func NewServices(cfg *config.Config, store *Store, log *logger.Logger) *Services {
	catalogLog := log.Named("catalog")
	categories := catalog.NewCategoryUseCase(store.Tx, catalogLog)
	products := catalog.NewProductUseCase(store.Tx, catalogLog)
	prices := catalog.NewPriceUseCase(store.Tx, catalogLog)

	return &Services{
		Auth: auth.NewAuthUseCase(store.Users, auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		}, log.Named("auth")),
		Finder:     catalog.NewFinderUseCase(store.Repos, cfg.Catalog.PageSize),
		Categories: categories,
		Products:   products,
		Prices:     prices,
		PriceList:  catalog.NewPriceListUseCase(store.Repos, pdf.NewMarotoPDFGenerator(), priceListTitle),
		Seeder:     catalog.NewSeeder(store.Repos, categories, products, prices, catalogLog),
	}
}

// EnsureBootstrapUsers crea o actualiza las cuentas configuradas en AUTH_BOOTSTRAP_*.
// Una cuenta sin username o sin password se ignora.
func (s *Services) EnsureBootstrapUsers(ctx context.Context, cfg config.AuthConfig) error {
	accounts := []struct {
		username, password string
		admin              bool
	}{
		{cfg.AdminUsername, cfg.AdminPassword, true},
		{cfg.UserUsername, cfg.UserPassword, false},
	}
	for _, a := range accounts {
		if a.username == "" || a.password == "" {
			continue
		}
		if _, err := s.Auth.EnsureUser(ctx, a.username, a.password, auth.RolesFor(a.admin)); err != nil {
			return fmt.Errorf("usuario inicial %q: %w", a.username, err)
		}
	}
	return nil
}
