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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	_ "github.com/jhoicas/catalog-admin/docs"
	"github.com/jhoicas/catalog-admin/internal/application/admin"
	"github.com/jhoicas/catalog-admin/internal/application/catalog"
	"github.com/jhoicas/catalog-admin/internal/domain/entity"
	"github.com/jhoicas/catalog-admin/internal/domain/repository"
	"github.com/jhoicas/catalog-admin/internal/infrastructure/exchange"
	"github.com/jhoicas/catalog-admin/internal/infrastructure/media"
	"github.com/jhoicas/catalog-admin/internal/infrastructure/memory"
	"github.com/jhoicas/catalog-admin/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/catalog-admin/internal/infrastructure/pdf"
	"github.com/jhoicas/catalog-admin/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/catalog-admin/internal/interfaces/http"
	"github.com/jhoicas/catalog-admin/pkg/config"
	"github.com/jhoicas/catalog-admin/pkg/logger"
)

// @title                       Catálogo API
// @version                     1.0
// @description                 Panel de administración del catálogo: categorías, productos y reseñas.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @description                 Token JWT: Bearer <token>
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
		Str("store", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	models := entity.CatalogModels()

	var (
		stores repository.Stores
		tx     repository.TxRunner
	)
	switch cfg.DB.Driver {
	case config.StoreMemory:
		db := memory.NewDatabase(models...)
		stores, tx = db, db
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB, postgres.WithQueryLog(log.Component("postgres")))
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.DB.Migrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
		}
		stores = postgres.NewStores(pool, models...)
		tx = postgres.NewTxRunner(pool, models...)
	}

	mediaStore, err := media.NewLocalStorage(cfg.Media.Root)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de media")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder, err := metrics.NewRecorder(registry)
	if err != nil {
		log.Fatal().Err(err).Msg("métricas")
	}

	codecs := append(exchange.Codecs(), infrapdf.NewChangeListPDF())
	site := admin.NewSite(admin.SiteConfig{
		Title:       cfg.Admin.SiteTitle,
		Header:      cfg.Admin.SiteHeader,
		IndexTitle:  cfg.Admin.IndexTitle,
		ListPerPage: cfg.Admin.ListPerPage,
		MaxShowAll:  cfg.Admin.MaxShowAll,
		InlineExtra: cfg.Admin.InlineExtra,
	}, stores, tx,
		admin.WithLogger(log.Component("admin")),
		admin.WithCodecs(codecs...),
		admin.WithMedia(mediaStore),
		admin.WithRecorder(recorder),
	)
	// Un descriptor inválido es un error de programación: no se arranca.
	if err := catalog.Register(site, catalog.Options{MediaURL: cfg.Media.URL}); err != nil {
		log.Fatal().Err(err).Msg("registro del panel")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    media.MaxUploadBytes + 1<<20,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    cfg.Admin.SiteTitle + " API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Static(cfg.Media.URL, cfg.Media.Root)

	httpRouter.Router(app, httpRouter.RouterDeps{
		Site:          site,
		JWTSecret:     cfg.JWT.Secret,
		JWTIssuer:     cfg.JWT.Issuer,
		Gatherer:      registry,
		Log:           log.Component("http"),
		CharsetReader: exchange.NewReader,
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
