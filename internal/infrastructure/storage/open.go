// Package storage elige el backend de persistencia del almacén según la configuración.
package storage

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/wms-estanterias/internal/domain/repository"
	"github.com/jhoicas/wms-estanterias/internal/infrastructure/postgres"
	redisrepo "github.com/jhoicas/wms-estanterias/internal/infrastructure/redis"
	"github.com/jhoicas/wms-estanterias/pkg/config"
)

// Backend repositorio abierto y la función que libera sus conexiones.
// Repo es nil con el driver memory.
type Backend struct {
	Driver string
	Repo   repository.StateRepository
	Close  func()
}

// Open conecta con el backend configurado. Para PostgreSQL además aplica el esquema.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Backend, error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory, "":
		log.Warn().Msg("almacenamiento en memoria: el estado se pierde al reiniciar")
		return &Backend{Driver: config.StorageMemory, Close: func() {}}, nil

	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Str("host", cfg.DB.Host).Str("db", cfg.DB.DBName).Msg("PostgreSQL listo")
		return &Backend{Driver: config.StoragePostgres, Repo: postgres.NewStateRepository(pool), Close: pool.Close}, nil

	case config.StorageRedis:
		client, err := redisrepo.New(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("conexión a Redis: %w", err)
		}
		log.Info().Str("addr", cfg.Redis.Addr).Str("prefix", cfg.Redis.KeyPrefix).Msg("Redis listo")
		return &Backend{
			Driver: config.StorageRedis,
			Repo:   redisrepo.NewStateRepository(client, cfg.Redis.KeyPrefix),
			Close:  func() { _ = client.Close() },
		}, nil
	}
	return nil, fmt.Errorf("STORAGE_DRIVER %q no soportado", cfg.Storage.Driver)
}
