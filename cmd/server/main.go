package main

import (
	"log"

	"dochub-server/internal/app"
	"dochub-server/internal/config"
	"dochub-server/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if err := logger.InitLogger(cfg.Env); err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	if err := app.Run(cfg); err != nil {
		logger.Fatal("server exited with error", zap.Error(err))
	}
}
