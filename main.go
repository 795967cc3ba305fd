package main

import (
	"github.com/campusboard/board-service/config"
	"github.com/campusboard/board-service/internal/api"
	"github.com/campusboard/board-service/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.Env, cfg.LogLevel)
	defer logger.Sync()

	api.StartServer(cfg)
}
