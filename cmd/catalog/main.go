package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	catalogcfg "github.com/Skotchmaster/music_catalog/internal/config"
	"github.com/Skotchmaster/music_catalog/internal/events"
	"github.com/Skotchmaster/music_catalog/internal/httpserver"
	"github.com/Skotchmaster/music_catalog/internal/models"
	"github.com/Skotchmaster/music_catalog/internal/repo"
	"github.com/Skotchmaster/music_catalog/internal/search"
	"github.com/Skotchmaster/music_catalog/internal/service"
	pkgdb "github.com/Skotchmaster/music_catalog/pkg/db"
	"github.com/Skotchmaster/music_catalog/pkg/hash"
	"github.com/Skotchmaster/music_catalog/pkg/logging"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := catalogcfg.Load()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := pkgdb.Migrate(db, models.All()...); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	sealer, err := hash.New(cfg.PasswordScheme, cfg.Secret)
	if err != nil {
		log.Fatalf("password sealer: %v", err)
	}

	store := &repo.GormRepo{DB: db}
	publisher := events.New(cfg.KafkaBrokers)

	var index search.Index = search.DBIndex{Repo: store}
	if cfg.SearchEnabled() {
		client, err := search.NewClient(search.Config{
			URL:      cfg.ESURL,
			User:     cfg.ESUser,
			Password: cfg.ESPassword,
			Index:    cfg.ESIndex,
		})
		if err != nil {
			logger.Warn("search_unavailable", "url", cfg.ESURL, "error", err)
		} else {
			esIndex := &search.ESIndex{ES: client, Index: cfg.ESIndex}
			reindexCtx, reindexCancel := context.WithTimeout(context.Background(), 2*time.Minute)
			n, err := esIndex.Reindex(reindexCtx, store)
			reindexCancel()
			if err != nil {
				logger.Warn("search_reindex_error", "indexed", n, "error", err)
			} else {
				logger.Info("search_reindexed", "documents", n)
			}
			index = esIndex
		}
	}

	authSvc := &service.AuthService{
		Repo:     store,
		Sealer:   sealer,
		Secret:   cfg.Secret,
		TokenTTL: cfg.TokenTTL,
		Events:   publisher,
	}

	e := httpserver.NewEcho(logger)
	httpserver.Register(e, &httpserver.Deps{
		AuthHandler:      &httpserver.AuthHTTP{Svc: authSvc},
		UserHandler:      &httpserver.UserHTTP{Svc: &service.UserService{Repo: store, Sealer: sealer, Events: publisher}},
		CatalogHandler:   &httpserver.CatalogHTTP{Svc: &service.CatalogService{Repo: store, Events: publisher, Index: index}},
		FavouriteHandler: &httpserver.FavouriteHTTP{Svc: &service.FavouriteService{Repo: store}},
		SearchHandler:    &httpserver.SearchHTTP{Svc: &service.SearchService{Index: index}},
		Authenticator:    authSvc,
		Ready:            func(ctx context.Context) error { return pkgdb.Ping(ctx, db) },
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		logger.Info("catalog listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)

	if err := publisher.Close(); err != nil {
		logger.Warn("publisher_close_error", "error", err)
	}
	_ = pkgdb.Close(db)

	logger.Info("catalog stopped")
}
