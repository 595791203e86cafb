package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wms-estanterias/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("HTTP_PORT", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "wms-estanterias", cfg.App.Name)
	assert.Equal(t, config.StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "wms:", cfg.Redis.KeyPrefix)
	assert.Equal(t, 50, cfg.WMS.RecentTransactions)
	assert.Zero(t, cfg.WMS.SeedRate)
}

func TestLoad_EnvSobrescribe(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "Redis")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("REDIS_ADDR", "cache:6380")
	t.Setenv("WMS_AISLES", "Rua A:3")
	t.Setenv("WMS_SEED_RATE", "0.25")
	t.Setenv("WMS_SEED", "42")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.StorageRedis, cfg.Storage.Driver)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
	assert.Equal(t, "cache:6380", cfg.Redis.Addr)
	assert.Equal(t, "Rua A:3", cfg.WMS.Aisles)
	assert.InDelta(t, 0.25, cfg.WMS.SeedRate, 1e-9)
	assert.Equal(t, int64(42), cfg.WMS.Seed)
}

func TestLoad_DriverDesconocido(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "mongo")

	_, err := config.Load()
	assert.ErrorContains(t, err, "STORAGE_DRIVER")
}

func TestLoad_TasaFueraDeRango(t *testing.T) {
	t.Setenv("WMS_SEED_RATE", "1.5")

	_, err := config.Load()
	assert.ErrorContains(t, err, "WMS_SEED_RATE")
}

func TestDBConfig_ConnectionString(t *testing.T) {
	db := config.DBConfig{Host: "db", Port: 5432, User: "wms", Password: "p@ss", DBName: "wms", SSLMode: "disable"}
	assert.Equal(t, "postgres://wms:p%40ss@db:5432/wms?sslmode=disable", db.ConnectionString())

	db.DatabaseURL = "postgres://otro/url"
	assert.Equal(t, "postgres://otro/url", db.ConnectionString())
}
