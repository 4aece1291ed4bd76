package main

import (
	"context"
	"flag"
	"log"
	_ "time/tzdata"

	"es-server/config"
	"es-server/di"
	"es-server/util"

	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", config.DEFAULT_CONFIG_PATH, "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("[MAIN] Failed to load config: %v", err)
	}

	logger := util.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	container, err := di.NewContainer(cfg, logger)
	if err != nil {
		logger.Fatal("[MAIN] Failed to initialize container", zap.Error(err))
	}
	defer container.Close()

	if n, err := container.SelectionService.ActiveSessions(context.Background()); err == nil {
		logger.Info("[MAIN] Session store ready", zap.Int("active_sessions", n))
	}

	if err := container.EventSpendHttpServer.Start(); err != nil {
		logger.Fatal("[MAIN] Server stopped", zap.Error(err))
	}
}
