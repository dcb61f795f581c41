package handlers

import (
	"intranet/internal/app"
	"intranet/internal/logger"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	log    logger.Logger
	router fiber.Router
}

func Router(router fiber.Router, app *app.App) error {
	api := router.Group("/api")
	HealthHandler(api, app.Config)
	NewMemberHandler(app, api).Register()
	NewTrainingHandler(app, api).Register()
	NewIntegrationHandler(app, api).Register()

	return nil
}
