package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"promptito-be/internal/bootstrap"
	"promptito-be/internal/config"
	"promptito-be/internal/pkg/logger"
	"promptito-be/internal/pkg/serverutils"
	"promptito-be/internal/server"
	"promptito-be/internal/tracer"
	"promptito-be/pkg/database"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	if cfg.Auth.JwtSecret != "" {
		serverutils.SetJwtSecret(cfg.Auth.JwtSecret)
	}

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.IsProduction())

	shutdownTracer := tracer.InitTracer(sysLogger)

	// 2. Database is optional; without it the service runs in local mode.
	var gormDB *gorm.DB
	if cfg.Database.Connection != "" {
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection, cfg.Database.Verbose, database.DefaultPoolConfig())
		if err != nil {
			log.Panicf("Unable to connect to GORM DB: %v", err)
		}
		gormDB = db
	} else {
		sysLogger.Warn("Main", "DB_CONNECTION_STRING is empty, hosted features are disabled", nil)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg, sysLogger)
	srv := server.New(cfg, container)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	// 4. Background workers
	container.Start(gctx, g)

	// 5. HTTP server
	g.Go(func() error {
		return srv.Run()
	})
	g.Go(func() error {
		<-gctx.Done()
		sysLogger.Info("Main", "Shutting down", nil)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		sysLogger.Error("Main", "Server stopped with error", map[string]interface{}{"error": err.Error()})
	}

	container.Close()
	if err := shutdownTracer(context.Background()); err != nil {
		log.Printf("tracer shutdown: %v", err)
	}
}
