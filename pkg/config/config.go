package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	DB      DBConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	Catalog CatalogConfig
	Auth    AuthConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env         string // development, staging, production
	Name        string
	LogLevel    string // trace, debug, info, warn, error
	StoreDriver string // postgres, memory
	SwaggerFile string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// CatalogConfig parámetros del motor de catálogo.
type CatalogConfig struct {
	PageSize int
	// SerializeWrites activa el bloqueo por clave natural alrededor de lectura+escritura.
	// En false se conserva el comportamiento original (sin transacción ni bloqueo).
	SerializeWrites bool
}

// AuthConfig cuentas iniciales que se crean al arrancar (vacías = no se crean).
type AuthConfig struct {
	AdminUsername string
	AdminPassword string
	UserUsername  string
	UserPassword  string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, JWT_SECRET, CATALOG_PAGE_SIZE, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:         getString(v, "APP_ENV", "development"),
			Name:        getString(v, "APP_NAME", "catalog-api"),
			LogLevel:    getString(v, "LOG_LEVEL", "info"),
			StoreDriver: getString(v, "STORE_DRIVER", "postgres"),
			SwaggerFile: getString(v, "SWAGGER_FILE", "./docs/swagger.json"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "catalog"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 25),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "catalog-api"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Catalog: CatalogConfig{
			PageSize:        getInt(v, "CATALOG_PAGE_SIZE", 10),
			SerializeWrites: getBool(v, "CATALOG_SERIALIZE_WRITES", true),
		},
		Auth: AuthConfig{
			AdminUsername: getString(v, "AUTH_BOOTSTRAP_ADMIN_USERNAME", ""),
			AdminPassword: getString(v, "AUTH_BOOTSTRAP_ADMIN_PASSWORD", ""),
			UserUsername:  getString(v, "AUTH_BOOTSTRAP_USER_USERNAME", ""),
			UserPassword:  getString(v, "AUTH_BOOTSTRAP_USER_PASSWORD", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate revisa valores que no tienen un default razonable.
func (c *Config) Validate() error {
	switch c.App.StoreDriver {
	case "postgres", "memory":
	default:
		return fmt.Errorf("config: STORE_DRIVER inválido %q (postgres | memory)", c.App.StoreDriver)
	}
	if c.Catalog.PageSize <= 0 {
		return fmt.Errorf("config: CATALOG_PAGE_SIZE debe ser mayor que 0")
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		b, err := strconv.ParseBool(v.GetString(key))
		if err != nil {
			return def
		}
		return b
	}
	return def
}
