// seed_catalog carga categorías, productos o reseñas desde un archivo de exportación
// (csv, json, yaml o xml) usando el mismo camino de importación del panel.
//
// Uso: go run ./cmd/seed_catalog [-dry-run] [-encoding latin-1] <modelo> <archivo>
// El formato se deduce de la extensión del archivo.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jhoicas/catalog-admin/internal/application/admin"
	"github.com/jhoicas/catalog-admin/internal/application/catalog"
	"github.com/jhoicas/catalog-admin/internal/domain/entity"
	"github.com/jhoicas/catalog-admin/internal/infrastructure/exchange"
	"github.com/jhoicas/catalog-admin/internal/infrastructure/postgres"
	"github.com/jhoicas/catalog-admin/pkg/config"
	"github.com/jhoicas/catalog-admin/pkg/logger"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "validar sin guardar")
	encoding := flag.String("encoding", "", "codificación del archivo (utf-8, latin-1, windows-1252)")
	flag.Parse()
	if flag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "uso: seed_catalog [-dry-run] [-encoding latin-1] <modelo> <archivo>")
		os.Exit(2)
	}
	model, path := flag.Arg(0), flag.Arg(1)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	if cfg.DB.Driver != config.StorePostgres {
		fmt.Fprintln(os.Stderr, "seed_catalog requiere STORE_DRIVER=postgres")
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
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

	models := entity.CatalogModels()
	site := admin.NewSite(admin.SiteConfig{
		Title:       cfg.Admin.SiteTitle,
		ListPerPage: cfg.Admin.ListPerPage,
		MaxShowAll:  cfg.Admin.MaxShowAll,
		InlineExtra: cfg.Admin.InlineExtra,
	}, postgres.NewStores(pool, models...), postgres.NewTxRunner(pool, models...),
		admin.WithLogger(log.Component("seed")),
		admin.WithCodecs(exchange.Codecs()...),
	)
	if err := catalog.Register(site, catalog.Options{MediaURL: cfg.Media.URL}); err != nil {
		log.Fatal().Err(err).Msg("registro del panel")
	}

	f, err := os.Open(path)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("abrir archivo")
	}
	defer f.Close()
	r, err := exchange.NewReader(f, *encoding)
	if err != nil {
		log.Fatal().Err(err).Msg("codificación")
	}

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if format == "yml" {
		format = "yaml"
	}
	rep, err := site.Import(ctx, model, format, r, *dryRun)
	if err != nil {
		log.Fatal().Err(err).Str("model", model).Msg("importar")
	}
	for _, e := range rep.Errors {
		log.Warn().Int("row", e.Row).Str("field", e.Field).Msg(e.Reason)
	}
	log.Info().
		Str("batch_id", rep.BatchID).
		Bool("dry_run", rep.DryRun).
		Int("total", rep.TotalRows).
		Int("created", rep.Created).
		Int("updated", rep.Updated).
		Int("failed", rep.Failed).
		Msg("importación terminada")
	if rep.Failed > 0 {
		os.Exit(1)
	}
}
