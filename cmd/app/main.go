package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"logistics/cmd"
	"logistics/internal/adapters/out/postgres"
	"logistics/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"go.uber.org/zap"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg, err := cmd.LoadConfig(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zl := logger.Init(cfg.Log.ToLoggerOptions())
	defer func() { _ = zl.Sync() }()

	db := mustOpenDB(cfg.Database, zl)

	app, err := cmd.NewCompositionRoot(cfg, db, zl)
	if err != nil {
		zl.Fatal("compose application", zap.Error(err))
	}
	defer func() {
		if err := app.Close(); err != nil {
			zl.Warn("close queue client", zap.Error(err))
		}
	}()

	jobs := app.JobManager()
	if err := jobs.StartAll(); err != nil {
		zl.Fatal("start jobs", zap.Error(err))
	}
	defer jobs.StopAll()

	startWebServer(app, cfg.HTTP, zl)
}

func mustOpenDB(cfg cmd.DatabaseConfig, zl *zap.Logger) *gorm.DB {
	db, err := gorm.Open(pgdriver.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		zl.Fatal("open database", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		zl.Fatal("database handle", zap.Error(err))
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := postgres.Migrate(db); err != nil {
		zl.Fatal("migrate database", zap.Error(err))
	}
	return db
}

func startWebServer(app cmd.CompositionRoot, cfg cmd.HTTPConfig, zl *zap.Logger) {
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(log.INFO)
	if err := app.HTTPServer().Register(e); err != nil {
		zl.Fatal("register routes", zap.Error(err))
	}

	go func() {
		if err := e.Start(cfg.Address()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("http server", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zl.Error("http shutdown", zap.Error(err))
	}
	zl.Info("http server stopped")
}
