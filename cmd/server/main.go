package main

import (
	"errors"

	"github.com/sirupsen/logrus"

	"phishguard/backend/internal/api"
	"phishguard/backend/internal/config"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		logrus.Fatalf("load .env: %v", err)
	}

	cfg, err := config.Load()
	if errors.Is(err, config.ErrMissingAPIKey) {
		logrus.Fatal(err)
	} else if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	logrus.SetLevel(cfg.LogLevel)

	server, err := api.NewServer(api.Config{
		AIConfig:       cfg.AI,
		AllowedOrigins: cfg.AllowedOrigins,
		StaticDir:      cfg.StaticDir,
	})
	if err != nil {
		logrus.Fatalf("create server: %v", err)
	}

	router, err := server.Router()
	if err != nil {
		logrus.Fatalf("configure router: %v", err)
	}

	logrus.WithFields(logrus.Fields{
		"model":    cfg.AI.Model,
		"base_url": cfg.AI.BaseURL,
		"timeout":  cfg.AI.Timeout,
	}).Infof("starting phishguard backend on :%s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logrus.Fatalf("server exited: %v", err)
	}
}
