package handlers

import (
	"intranet/internal/app"
	trainingController "intranet/internal/controllers/training"
	"intranet/internal/logger"

	"github.com/gofiber/fiber/v2"
)

type TrainingHandler struct {
	Handler
	controller *trainingController.TrainingController
}

func NewTrainingHandler(app *app.App, router fiber.Router) *TrainingHandler {
	log := logger.New("handlers").File("training_handler")
	return &TrainingHandler{
		controller: app.TrainingController,
		Handler: Handler{
			log:    log,
			router: router,
		},
	}
}

func (h *TrainingHandler) Register() {
	members := h.router.Group("/members")
	members.Get("/:id/training", h.getMemberRecords)
	members.Post("/:id/training/sync", h.syncMember)
	members.Get("/:id/training/certifications", h.getCertifications)
	members.Get("/:id/compliance", h.getCompliance)
	members.Post("/:id/training/enroll", h.enroll)

	training := h.router.Group("/training")
	training.Post("/sync", h.syncAll)
	training.Get("/catalog", h.getCatalog)
}

func (h *TrainingHandler) getMemberRecords(c *fiber.Ctx) error {
	log := h.log.Function("getMemberRecords")

	records, err := h.controller.GetMemberRecords(c.Context(), c.Params("id"))
	if err != nil {
		log.Er("failed to get training records", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to get training records"})
	}

	return c.JSON(fiber.Map{"message": "success", "records": records})
}

func (h *TrainingHandler) syncMember(c *fiber.Ctx) error {
	log := h.log.Function("syncMember")

	created, err := h.controller.SyncMember(c.Context(), c.Params("id"))
	if err != nil {
		log.Er("failed to sync member", err)
		return c.Status(fiber.StatusNotFound).
			JSON(fiber.Map{"message": "member not found"})
	}

	return c.JSON(fiber.Map{"message": "success", "created": created})
}

func (h *TrainingHandler) syncAll(c *fiber.Ctx) error {
	members, created := h.controller.SyncAll(c.Context())
	return c.JSON(fiber.Map{"message": "success", "members": members, "created": created})
}

func (h *TrainingHandler) getCertifications(c *fiber.Ctx) error {
	log := h.log.Function("getCertifications")

	certifications, err := h.controller.GetCertifications(c.Context(), c.Params("id"))
	if err != nil {
		log.Er("failed to get certifications", err)
		return c.Status(fiber.StatusNotFound).
			JSON(fiber.Map{"message": "member not found"})
	}

	return c.JSON(fiber.Map{"message": "success", "certifications": certifications})
}

func (h *TrainingHandler) getCompliance(c *fiber.Ctx) error {
	log := h.log.Function("getCompliance")

	status, err := h.controller.GetCompliance(c.Context(), c.Params("id"))
	if err != nil {
		log.Er("failed to get compliance status", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to get compliance status"})
	}

	return c.JSON(fiber.Map{"message": "success", "compliance": status})
}

func (h *TrainingHandler) getCatalog(c *fiber.Ctx) error {
	catalog := h.controller.GetCatalog(c.Context())
	return c.JSON(fiber.Map{"message": "success", "courses": catalog})
}

type enrollRequest struct {
	CourseID string `json:"courseId"`
}

func (h *TrainingHandler) enroll(c *fiber.Ctx) error {
	log := h.log.Function("enroll")

	var request enrollRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse enroll request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse enroll request"})
	}

	enrolled, err := h.controller.Enroll(c.Context(), c.Params("id"), request.CourseID)
	if err != nil {
		log.Er("failed to enroll member", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to enroll member"})
	}

	return c.JSON(fiber.Map{"message": "success", "enrolled": enrolled})
}
