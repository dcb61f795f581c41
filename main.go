package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"intranet/cmd/migration/initialize"
	"intranet/cmd/migration/seed"
	"intranet/internal/app"
	"intranet/internal/handlers"
	"intranet/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	log := logger.New("main").Function("main")

	app, err := app.New()
	if err != nil {
		log.Er("failed to create app", err)
		os.Exit(1)
	}
	defer app.Close()

	migrationLog := logger.New("migration")
	if err := initialize.InitializeTables(app.Database.SQL, app.Config, migrationLog); err != nil {
		log.Er("failed to initialize tables", err)
		os.Exit(1)
	}

	if app.Config.Environment == "development" {
		if err := seed.Seed(app.Database.SQL, app.Config, migrationLog); err != nil {
			log.Er("failed to seed database", err)
			os.Exit(1)
		}
	}

	server := fiber.New(fiber.Config{
		AppName: app.Config.AppName,
	})
	server.Use(recover.New())

	if err := handlers.Router(server, app); err != nil {
		log.Er("failed to register routes", err)
		os.Exit(1)
	}

	go func() {
		if err := server.Listen(fmt.Sprintf(":%d", app.Config.Port)); err != nil {
			log.Er("server stopped", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	if err := server.Shutdown(); err != nil {
		log.Er("failed to shut down server", err)
	}
}
