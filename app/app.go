package app

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"bidwise-api/internal/config"
	"bidwise-api/internal/controller"
	"bidwise-api/internal/intelligence"
	"bidwise-api/internal/repo"
	"bidwise-api/internal/service"
	"bidwise-api/pkg/http_server"
	"bidwise-api/pkg/logging"
	"bidwise-api/pkg/postgres"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/labstack/echo"
	"go.uber.org/zap"
)

func runMigrations(sourceUrl string, databaseUrl string, logger *zap.Logger) {
	migrations, err := migrate.New(sourceUrl, databaseUrl)
	if err != nil {
		logger.Fatal("cannot create migration instance", zap.Error(err))
	}

	if err := migrations.Up(); err != nil {
		if err == migrate.ErrNoChange {
			logger.Info("no change made by migration scripts")
		} else {
			logger.Fatal("migration failed", zap.Error(err))
		}
	}
}

func Run() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal("cannot load config: ", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatal("cannot build logger: ", err)
	}
	defer logger.Sync() //nolint:errcheck

	logger.Info("connecting database")
	postgresDB, err := postgres.NewDB(cfg.PostgresConn)
	if err != nil {
		logger.Fatal("error occurred while connecting to db", zap.Error(err))
	}
	defer postgresDB.Close()

	logger.Info("running migrations")
	runMigrations(cfg.MigrationURL, cfg.PostgresConn, logger)

	repositories := repo.NewRepositories(postgresDB)

	var scorer intelligence.Scorer
	if cfg.AIAPIURL != "" {
		scorer = intelligence.NewClient(cfg.AIAPIURL, cfg.AIAPIKey, cfg.AIModel, cfg.AITimeout(), logger)
		logger.Info("ai scoring enabled", zap.String("model", cfg.AIModel))
	} else {
		logger.Info("ai scoring disabled, using calculated scores only")
	}

	services := service.NewServices(service.Deps{
		Repos:  repositories,
		Scorer: scorer,
		Policy: cfg.QualificationPolicy(),
		Logger: logger,
	})
	handler := echo.New()

	logger.Info("setup routes")
	controller.SetupRoutesHandlers(handler, services)

	logger.Info("starting server", zap.String("address", cfg.ServerAddress))
	httpServer := http_server.New(handler, cfg.ServerAddress)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		logger.Info("got signal", zap.String("signal", s.String()))
	case err = <-httpServer.Notify():
		logger.Error("server notify", zap.Error(err))
	}

	logger.Info("shutting down")
	if err := httpServer.Shutdown(); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	} else {
		logger.Info("successful shutdown")
	}
}
