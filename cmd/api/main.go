package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/wms-estanterias/internal/application/warehouse"
	"github.com/jhoicas/wms-estanterias/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/wms-estanterias/internal/interfaces/http"
	"github.com/jhoicas/wms-estanterias/pkg/config"
	"github.com/jhoicas/wms-estanterias/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	if err := run(cfg, log); err != nil {
		log.Error().Err(err).Msg("aplicación finalizada con error")
		os.Exit(1)
	}
	log.Info().Msg("aplicación detenida")
}

// run arranca el servidor y bloquea hasta una señal de apagado.
// Devuelve el error en lugar de salir para que se ejecuten los defer (cierre del backend).
func run(cfg *config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	aisles, err := warehouse.ParseAisles(cfg.WMS.Aisles)
	if err != nil {
		return fmt.Errorf("WMS_AISLES inválido: %w", err)
	}

	backend, err := storage.Open(ctx, cfg, log.Component("storage"))
	if err != nil {
		return fmt.Errorf("abrir almacenamiento: %w", err)
	}
	defer backend.Close()

	store := warehouse.NewStore(backend.Repo, warehouse.Options{RecentTransactions: cfg.WMS.RecentTransactions})
	loaded, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("cargar almacén: %w", err)
	}
	if loaded {
		stats := store.Snapshot().Stats
		log.Info().Int("shelves", stats.Total).Int("occupied", stats.Occupied).Msg("almacén restaurado")
	} else {
		if err := store.Initialize(ctx, aisles); err != nil {
			return fmt.Errorf("inicializar almacén: %w", err)
		}
		seeded, err := store.Seed(ctx, cfg.WMS.SeedRate, newRand(cfg.WMS.Seed))
		if err != nil {
			return fmt.Errorf("sembrar almacén: %w", err)
		}
		log.Info().Int("aisles", len(aisles)).Int("seeded", seeded).Msg("almacén inicializado")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		Immutable:    true,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.DocsPath); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.DocsPath,
			Path:     "docs",
			Title:    "WMS Estanterías API",
		}))
	} else {
		log.Warn().Str("path", cfg.HTTP.DocsPath).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Store:  store,
		Logger: log.Component("http"),
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTP.Addr()).Msg("servidor HTTP escuchando")
		return app.Listen(cfg.HTTP.Addr())
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("señal de apagado recibida, cerrando servidor...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("servidor HTTP: %w", err)
	}
	return nil
}

// newRand devuelve un generador con la semilla indicada, o una basada en la hora si es 0.
func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewPCG(uint64(seed), 0x9e3779b97f4a7c15))
}
