package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Backends de persistencia soportados.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Storage StorageConfig
	DB      DBConfig
	Redis   RedisConfig
	WMS     WMSConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host     string
	Port     int
	DocsPath string // swagger.json servido en /docs si existe
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StorageConfig selecciona dónde se persiste el almacén.
type StorageConfig struct {
	Driver string // memory, postgres, redis
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
	AppName     string
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
		RawQuery: "sslmode=" + c.SSLMode,
	}
	return u.String()
}

// RedisConfig configuración del backend Redis.
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// WMSConfig parámetros del almacén.
type WMSConfig struct {
	Aisles             string  // "Rua A:20,Rua B:12"; vacío = diseño por defecto
	SeedRate           float64 // probabilidad de ocupar cada estantería al inicializar
	Seed               int64   // semilla del generador; 0 = según la hora
	RecentTransactions int
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, STORAGE_DRIVER, WMS_AISLES, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo .env o config.env
	v.SetConfigType("env")
	for _, name := range []string{".env", "config"} {
		v.SetConfigName(name)
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		_ = v.MergeInConfig() // ignoramos error si no existe
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	appName := getString(v, "APP_NAME", "wms-estanterias")
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     appName,
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host:     getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:     getInt(v, "HTTP_PORT", 8080),
			DocsPath: getString(v, "DOCS_PATH", "./docs/swagger.json"),
		},
		Storage: StorageConfig{
			Driver: strings.ToLower(getString(v, "STORAGE_DRIVER", StorageMemory)),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "wms"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 10),
			AppName:     appName,
		},
		Redis: RedisConfig{
			Addr:      getString(v, "REDIS_ADDR", "localhost:6379"),
			Password:  getString(v, "REDIS_PASSWORD", ""),
			DB:        getInt(v, "REDIS_DB", 0),
			KeyPrefix: getString(v, "REDIS_KEY_PREFIX", "wms:"),
		},
		WMS: WMSConfig{
			Aisles:             getString(v, "WMS_AISLES", ""),
			SeedRate:           getFloat(v, "WMS_SEED_RATE", 0),
			Seed:               int64(getInt(v, "WMS_SEED", 0)),
			RecentTransactions: getInt(v, "WMS_RECENT_TRANSACTIONS", 50),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rechaza combinaciones que impedirían arrancar.
func (c *Config) Validate() error {
	var errs []error
	switch c.Storage.Driver {
	case StorageMemory, StoragePostgres, StorageRedis:
	default:
		errs = append(errs, fmt.Errorf("STORAGE_DRIVER %q no soportado (memory, postgres, redis)", c.Storage.Driver))
	}
	if c.WMS.SeedRate < 0 || c.WMS.SeedRate > 1 {
		errs = append(errs, fmt.Errorf("WMS_SEED_RATE %v fuera de [0,1]", c.WMS.SeedRate))
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("HTTP_PORT %d inválido", c.HTTP.Port))
	}
	if c.WMS.RecentTransactions <= 0 {
		errs = append(errs, errors.New("WMS_RECENT_TRANSACTIONS debe ser positivo"))
	}
	if c.Storage.Driver == StoragePostgres && c.DB.MaxConns <= 0 {
		errs = append(errs, errors.New("DB_MAX_CONNS debe ser positivo"))
	}
	return errors.Join(errs...)
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
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
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

func getFloat(v *viper.Viper, key string, def float64) float64 {
	if v.IsSet(key) {
		f, err := strconv.ParseFloat(strings.TrimSpace(v.GetString(key)), 64)
		if err != nil {
			return def
		}
		return f
	}
	return def
}
