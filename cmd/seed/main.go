// seed reinicia el almacén persistido con el diseño de calles configurado y,
// opcionalmente, lo puebla con productos de demostración.
//
// Uso: STORAGE_DRIVER=postgres go run ./cmd/seed [-rate 0.25] [-seed 42] [-aisles "Rua A:20,Rua B:20"]
// Las banderas tienen prioridad sobre WMS_SEED_RATE, WMS_SEED y WMS_AISLES.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/jhoicas/wms-estanterias/internal/application/warehouse"
	"github.com/jhoicas/wms-estanterias/internal/infrastructure/storage"
	"github.com/jhoicas/wms-estanterias/pkg/config"
	"github.com/jhoicas/wms-estanterias/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	rate := flag.Float64("rate", cfg.WMS.SeedRate, "probabilidad de ocupar cada estantería [0,1]")
	seed := flag.Int64("seed", cfg.WMS.Seed, "semilla del generador (0 = según la hora)")
	layout := flag.String("aisles", cfg.WMS.Aisles, `calles "Nombre:góndolas,..." (vacío = Rua A..F × 20)`)
	flag.Parse()

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "wms-seed"})

	if cfg.Storage.Driver == config.StorageMemory {
		fmt.Fprintln(os.Stderr, "STORAGE_DRIVER=memory: nada que sembrar, use postgres o redis")
		os.Exit(2)
	}

	if err := run(cfg, log, *layout, *rate, *seed); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// run reinicia y siembra el backend; devuelve el error para que se cierre la conexión.
func run(cfg *config.Config, log *logger.Logger, layout string, rate float64, seed int64) error {
	aisles, err := warehouse.ParseAisles(layout)
	if err != nil {
		return fmt.Errorf("calles: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	backend, err := storage.Open(ctx, cfg, log.Component("storage"))
	if err != nil {
		return fmt.Errorf("abrir almacenamiento: %w", err)
	}
	defer backend.Close()

	store := warehouse.NewStore(backend.Repo, warehouse.Options{})
	if err := store.Initialize(ctx, aisles); err != nil {
		return fmt.Errorf("inicializar: %w", err)
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	seeded, err := store.Seed(ctx, rate, rand.New(rand.NewPCG(uint64(seed), 0x9e3779b97f4a7c15)))
	if err != nil {
		return fmt.Errorf("sembrar: %w", err)
	}

	stats := store.Snapshot().Stats
	fmt.Printf("OK: %d estanterías en %d calles, %d ocupadas (%s%%), semilla %d\n",
		stats.Total, len(aisles), seeded, stats.OccupancyRate.StringFixed(1), seed)
	return nil
}
