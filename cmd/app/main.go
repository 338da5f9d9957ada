package main

import (
	"errors"
	"log"
	"os"

	"TrendScan/internal/di"
	"TrendScan/pkg/config"
)

func main() {
	// Load config: defaults, CONFIG_PATH yaml, .env, environment
	cfg, err := config.Load()
	if err != nil {
		var cerr *config.ConfigError
		if errors.As(err, &cerr) {
			for _, p := range cerr.Problems {
				log.Printf("config: %s", p)
			}
		}
		log.Fatalf("config load failed: %v", err)
	}

	for _, w := range cfg.Warnings {
		log.Printf("config warning: %s", w)
	}
	log.Printf("env=%s category=%s interval=%s timeframes=%v",
		cfg.Environment, cfg.Bybit.Category, cfg.ScanInterval(), cfg.Scan.Timeframes)

	// Wire DI: Initialize all dependencies
	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	// Run application (blocks until signal)
	if err := app.Run(); err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}
