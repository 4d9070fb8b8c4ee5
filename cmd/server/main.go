package main

import (
	"context"
	"flag"
	"log"

	"github.com/franckalain/nutriscan/internal/app"
	"github.com/franckalain/nutriscan/internal/config"
	"github.com/franckalain/nutriscan/internal/server"
)

func main() {
	configPath := flag.String("config", config.GetConfigPath(), "path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize engine and text detector
	pipeline, err := app.Build(context.Background(), cfg)
	if err != nil {
		log.Fatal("Failed to initialize pipeline:", err)
	}
	defer pipeline.Close()

	// Initialize and start server
	srv := server.New(pipeline.Service, cfg.Server.RequestTimeout.Duration, cfg.Server.Debug)
	if err := srv.Start(cfg.Server.Port, cfg.Server.StaticDir); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
