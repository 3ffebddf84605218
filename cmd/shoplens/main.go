// main.go - HTTP server application
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"shoplens/internal/config"
	"shoplens/internal/dataset"
	shoplenshttp "shoplens/internal/http"
	"shoplens/internal/logging"
)

const defaultShutdownTimeout = 30 * time.Second

func main() {
	cfg := config.GetConfig()
	logger := logging.NewLogger(cfg)

	store := dataset.NewStore(cfg.DataDirectory, cfg.RowLimit, logger)

	log.Println("Loading dataset...")
	if _, err := store.Refresh(context.Background()); err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}
	log.Println("Dataset loaded")

	app := fiber.New(fiber.Config{
		AppName:               cfg.AppName,
		DisableStartupMessage: cfg.IsProduction(),
	})
	shoplenshttp.MountRoutes(app, store, logger)

	go func() {
		if err := app.Listen(":" + cfg.AppPort); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Printf("Listening on :%s", cfg.AppPort)

	waitForShutdownSignal(app)
}

// waitForShutdownSignal sets up signal handling and performs graceful shutdown
func waitForShutdownSignal(app *fiber.App) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	sig := <-sigChan
	log.Printf("Received signal %v, shutting down...", sig)

	if err := app.ShutdownWithTimeout(defaultShutdownTimeout); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	log.Println("Shutdown complete")
}
