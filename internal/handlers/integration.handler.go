package handlers

import (
	"intranet/internal/app"
	trainingController "intranet/internal/controllers/training"
	"intranet/internal/logger"

	"github.com/gofiber/fiber/v2"
)

type IntegrationHandler struct {
	Handler
	controller *trainingController.TrainingController
}

func NewIntegrationHandler(app *app.App, router fiber.Router) *IntegrationHandler {
	log := logger.New("handlers").File("integration_handler")
	return &IntegrationHandler{
		controller: app.TrainingController,
		Handler: Handler{
			log:    log,
			router: router,
		},
	}
}

func (h *IntegrationHandler) Register() {
	integrations := h.router.Group("/integrations")
	integrations.Get("/:category/test", h.testProvider)
	integrations.Delete("/cache", h.clearCache)
}

func (h *IntegrationHandler) testProvider(c *fiber.Ctx) error {
	result := h.controller.TestProvider(c.Context(), c.Params("category"), c.Query("provider"))

	status := fiber.StatusOK
	if !result.Success {
		status = fiber.StatusBadGateway
	}

	return c.Status(status).JSON(result)
}

func (h *IntegrationHandler) clearCache(c *fiber.Ctx) error {
	h.controller.ClearProviderCache()
	return c.JSON(fiber.Map{"message": "success"})
}
