package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"gorm.io/gorm"

	"github.com/totegamma/oairepo/internal/config"
	"github.com/totegamma/oairepo/internal/format"
	"github.com/totegamma/oairepo/internal/infra/database"
	"github.com/totegamma/oairepo/internal/infra/repository"
	"github.com/totegamma/oairepo/internal/infra/tokenstore"
	"github.com/totegamma/oairepo/internal/infra/tracing"
	"github.com/totegamma/oairepo/internal/oaiset"
	"github.com/totegamma/oairepo/internal/present/rest"
	"github.com/totegamma/oairepo/internal/usecase"
)

func main() {
	configPath := flag.String("config", "/etc/oairepo/config.yaml", "path to the configuration file")
	flag.Parse()

	conf, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()), slog.String("module", "main"))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if conf.Server.EnableTrace {
		shutdown, err := tracing.Setup(ctx, "oairepo", conf.Server.TraceEndpoint)
		if err != nil {
			panic("failed to setup tracing: " + err.Error())
		}
		defer shutdown(context.Background())
	}

	db, err := database.Open(conf.Server.DatabaseDsn)
	if err != nil {
		panic("failed to connect database")
	}

	err = database.Migrate(db)
	if err != nil {
		panic("failed to migrate database")
	}

	items := repository.NewItemRepository(db)
	itemSets := repository.NewItemSetRepository(db)

	tokens, err := newTokenStore(ctx, conf.Server, db)
	if err != nil {
		panic(err)
	}
	go tokenstore.Sweep(ctx, tokens, conf.Server.Sweep())

	formats, err := format.NewRegistry(conf.Repository.MetadataFormats, conf.Repository.FormatParams())
	if err != nil {
		panic(err)
	}

	sets, err := oaiset.Build(ctx, conf.Repository.SetFormat, itemSets, conf.Repository.StaticSets())
	if err != nil {
		panic("failed to load sets: " + err.Error())
	}

	dispatcher := usecase.NewDispatcher(conf.Repository.Domain(), items, tokens, formats, sets)
	handler := rest.NewHandler(dispatcher)

	e := echo.New()
	e.HideBanner = true
	e.Use(otelecho.Middleware("oairepo"))
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	handler.RegisterRoutes(e)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = e.Shutdown(shutdownCtx)
	}()

	slog.Info(
		"starting oai-pmh endpoint",
		slog.String("listen", conf.Server.Listen),
		slog.Int("formats", formats.Len()),
		slog.Int("sets", sets.Len()),
		slog.String("tokenStore", conf.Server.TokenStore),
		slog.String("module", "main"),
	)

	if err := e.Start(conf.Server.Listen); err != nil && ctx.Err() == nil {
		e.Logger.Fatal(err)
	}
}

func newTokenStore(ctx context.Context, conf config.Server, db *gorm.DB) (usecase.TokenStore, error) {
	switch conf.TokenStore {
	case config.TokenStoreRedis:
		rdb, err := database.NewRedis(ctx, conf.RedisAddr, conf.RedisPassword, conf.RedisDB)
		if err != nil {
			return nil, err
		}
		return tokenstore.NewRedis(rdb), nil
	case config.TokenStoreMemcached:
		mc, err := database.NewMemcached(conf.MemcachedAddr)
		if err != nil {
			return nil, err
		}
		return tokenstore.NewMemcached(mc), nil
	case config.TokenStoreDatabase:
		return tokenstore.NewDatabase(db), nil
	default:
		return tokenstore.NewMemory(), nil
	}
}
