package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"itemtracker/internal/config"
	"itemtracker/internal/handler"
	"itemtracker/internal/infra/db"
	infraRepo "itemtracker/internal/infra/repository"
	"itemtracker/internal/server"
	"itemtracker/internal/usecase"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"gorm.io/gorm"
)

const (
	healthTimeout  = 3 * time.Second
	migrateRetry   = 5 * time.Second
	shutdownWindow = 10 * time.Second
)

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalj(log.JSON{"msg": "loading config", "error": err.Error()})
	}

	logger := log.New("itemtracker")
	logger.SetLevel(server.LogLevel(cfg.LogLevel))

	//DB
	gormDB, err := db.Open(cfg)
	if err != nil {
		logger.Fatalj(log.JSON{"msg": "opening database", "dsn": cfg.RedactedDSN(), "error": err.Error()})
	}
	defer func() {
		if err := db.Close(gormDB); err != nil {
			logger.Warnj(log.JSON{"msg": "closing database", "error": err.Error()})
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The API starts even when the database is down; /health reports it.
	if err := migrate(ctx, gormDB); err != nil {
		logger.Warnj(log.JSON{"msg": "database not ready, retrying schema setup in background", "dsn": cfg.RedactedDSN(), "error": err.Error()})
		go migrateUntilReady(ctx, gormDB, logger)
	} else {
		logger.Infoj(log.JSON{"msg": "database ready", "dsn": cfg.RedactedDSN()})
	}

	//Repository
	itemRepo := infraRepo.NewItemGormRepository(gormDB)

	//Usecase
	itemUC := usecase.NewItemUsecase(itemRepo, usecase.SystemClock{})
	healthUC := usecase.NewHealthUsecase(itemRepo, healthTimeout)

	//Handler
	itemH := handler.NewItemHandler(itemUC)
	healthH := handler.NewHealthHandler(healthUC)

	e := server.New(cfg, healthH, itemH)

	logger.Infoj(log.JSON{"msg": "listening", "addr": cfg.Addr()})
	if err := server.Run(ctx, e, cfg.Addr(), shutdownWindow); err != nil {
		logger.Errorj(log.JSON{"msg": "server stopped", "error": err.Error()})
		return
	}
	logger.Info("shut down cleanly")
}

func migrate(ctx context.Context, gormDB *gorm.DB) error {
	pingCtx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()
	if err := db.Ping(pingCtx, gormDB); err != nil {
		return err
	}
	return db.Migrate(gormDB.WithContext(ctx))
}

func migrateUntilReady(ctx context.Context, gormDB *gorm.DB, logger *log.Logger) {
	t := time.NewTicker(migrateRetry)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
		if err := migrate(ctx, gormDB); err != nil {
			logger.Debugj(log.JSON{"msg": "database still not ready", "error": err.Error()})
			continue
		}
		logger.Infoj(log.JSON{"msg": "database ready"})
		return
	}
}
