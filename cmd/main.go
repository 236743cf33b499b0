package main

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"linkfeed/internal/cache"
	"linkfeed/internal/config"
	"linkfeed/internal/handlers"
	"linkfeed/internal/logger"
	"linkfeed/internal/repository"
	"linkfeed/internal/repository/db"
	"linkfeed/internal/server"
	"linkfeed/internal/service"
)

// @title                       linkfeed API
// @version                     1.0
// @description                 Link sharing with accounts, votes and a filterable feed.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	// load configs/config.yml + LINKFEED_* env
	cfg, err := config.Load("configs")
	if err != nil {
		logger.Get(logger.InfoLevel, logger.ConsoleFormat).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.Get(cfg.Log.Level, cfg.Log.Format)

	// open DB and apply migrations
	conn, dialect, err := openDB(cfg.DB)
	if err != nil {
		log.Fatalw("failed to init database", "driver", cfg.DB.Driver, "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close database", "err", cerr)
		}
	}()

	feeds, err := cache.New(cache.Options{
		Backend: cfg.Feed.Cache,
		TTL:     cfg.Feed.CacheTTL,
		Redis:   cache.RedisOptions{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB},
	})
	if err != nil {
		log.Fatalw("failed to init feed cache", "backend", cfg.Feed.Cache, "err", err)
	}
	if closer, ok := feeds.(io.Closer); ok {
		defer closer.Close()
	}

	creds, err := service.NewCredentials(service.CredentialsConfig{
		Secret:     cfg.Auth.Secret,
		BcryptCost: cfg.Auth.BcryptCost,
		TokenTTL:   cfg.Auth.TokenTTL,
	})
	if err != nil {
		log.Fatalw("invalid auth settings", "err", err)
	}

	// wire dependencies
	repos := repository.NewRepository(conn, dialect)
	services := service.NewService(repos, creds, feeds, service.Options{EnforceOwnership: cfg.Auth.EnforceOwnership}, log)
	apiHandler := handlers.NewHandler(services, log, handlers.WithAllowedOrigins(cfg.CORS.AllowedOrigins...))

	// start HTTP server
	srv := server.New(server.Options{
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	})
	runHTTPServer(srv, cfg.Port, apiHandler, log)
	log.Infow("server started", "port", cfg.Port, "db", cfg.DB.Driver, "feed_cache", cfg.Feed.Cache)

	waitForShutdown(srv, cfg.Server, log)
}

func openDB(cfg config.DBConfig) (*sql.DB, db.Dialect, error) {
	dialect, err := db.ParseDialect(cfg.Driver)
	if err != nil {
		return nil, "", err
	}
	conn, err := db.InitDB(context.Background(), dialect, cfg.Source())
	if err != nil {
		return nil, "", err
	}
	return conn, dialect, nil
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, cfg config.ServerConfig, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
