package main

import (
	"os"

	"go.uber.org/zap"

	"videoflow/config"
	"videoflow/internal/server"
	"videoflow/internal/storage"
	"videoflow/log"
)

func main() {
	log.InitLogger()
	defer log.GetLogger().Sync()

	created, err := config.LoadOrCreateConfig()
	if err != nil {
		log.GetLogger().Error("Failed to load config", zap.Error(err))
		return
	}
	if created {
		log.GetLogger().Info("Created default config, fill in API keys before use",
			zap.String("path", mustConfigPath()))
		return
	}

	if err = config.CheckConfig(); err != nil {
		log.GetLogger().Error("Invalid config", zap.Error(err))
		return
	}

	storage.InitDB()

	if err = server.StartBackend(); err != nil {
		log.GetLogger().Error("Backend failed to start", zap.Error(err))
		os.Exit(1)
	}
}

func mustConfigPath() string {
	path, err := config.ResolveConfigPath()
	if err != nil {
		return "config/config.toml"
	}
	return path
}
