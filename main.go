package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/status-im/market-dashboard/config"
	"github.com/status-im/market-dashboard/core"
	"github.com/status-im/market-dashboard/logging"
)

func main() {
	log := logging.WithComponent("main")

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("Failed to load .env file")
	}

	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.WithError(err).Fatal("Error loading config")
	}

	if err := logging.Configure(cfg.Logging); err != nil {
		log.WithError(err).Fatal("Error configuring logging")
	}

	// Prices and market figures are served as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registry, err := core.Setup(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to set up services")
	}

	if err := registry.StartAll(ctx); err != nil {
		log.WithError(err).Fatal("Failed to start services")
	}

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.WithFields(logrus.Fields{"signal": sig.String()}).Info("Received shutdown signal, stopping services...")

	cancel()
	registry.StopAll()
}
