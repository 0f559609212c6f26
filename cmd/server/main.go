package main

import (
	"context"

	"github.com/randevu-app/randevu-server/internal/app"
	"github.com/randevu-app/randevu-server/internal/cache"
	"github.com/randevu-app/randevu-server/internal/config"
	"github.com/randevu-app/randevu-server/internal/db"
	"github.com/randevu-app/randevu-server/internal/logger"
	"github.com/randevu-app/randevu-server/internal/server"
)

func main() {
	cfg := config.New()

	// Init logger (global singleton)
	logger.InitFromConfig(cfg)
	log := logger.L()

	// Init DB
	database, err := db.NewDB(cfg)
	if err != nil {
		log.Error("failed to init db", "err", err)
		return
	}

	// Init Redis
	redisCache := cache.NewRedisCache(cfg)
	if err := redisCache.Ping(context.Background()); err != nil {
		log.Error("failed to connect to redis", "err", err)
		return
	}

	appCtx := app.New(database, redisCache, log)

	if cfg.App.ENV == "development" {
		if err := db.SeedTestData(database); err != nil {
			log.Error("failed to seed", "err", err)
		}
	}

	handler := server.NewHandler(appCtx)

	addr := cfg.HTTP.Host + ":" + cfg.HTTP.Port
	log.Info("starting HTTP server", "addr", addr)

	if err := server.StartHTTPServer(cfg, handler.Routes()); err != nil {
		log.Error("failed to start HTTP server", "err", err)
	}
}
