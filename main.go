// main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"art-shop/cmd"
	"art-shop/internal/data/gateway"
	"art-shop/internal/data/repository"
	"art-shop/internal/wire"
	"art-shop/pkg/database"
	"art-shop/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
		zap.String("storage", config.Storage.Driver),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open storage
	kv, err := database.Open(ctx, config.Storage, config.Database)
	if err != nil {
		logger.Fatal("Failed to open storage", zap.Error(err))
	}
	defer kv.Close()

	logger.Info("Storage ready", zap.String("driver", config.Storage.Driver))

	// Initialize all repositories
	repos := repository.NewRepository(kv, logger)
	orders := gateway.NewOrderGateway(config.Order, &http.Client{}, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, orders, config, logger)
	go app.Hub.Run(ctx)

	// Rehydrate session, cart and delivery preference
	if err := app.Service.Storefront.Init(ctx); err != nil {
		logger.Fatal("Failed to restore storefront state", zap.Error(err))
	}

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
	}
	logger.Info("Bye")
}
