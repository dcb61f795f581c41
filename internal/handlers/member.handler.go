package handlers

import (
	"intranet/internal/app"
	memberController "intranet/internal/controllers/members"
	"intranet/internal/logger"
	. "intranet/internal/models"

	"github.com/gofiber/fiber/v2"
)

type MemberHandler struct {
	Handler
	controller *memberController.MemberController
}

func NewMemberHandler(app *app.App, router fiber.Router) *MemberHandler {
	log := logger.New("handlers").File("member_handler")
	return &MemberHandler{
		controller: app.MemberController,
		Handler: Handler{
			log:    log,
			router: router,
		},
	}
}

func (h *MemberHandler) Register() {
	members := h.router.Group("/members")
	members.Get("/", h.getMembers)
	members.Post("/", h.createMember)
	members.Get("/:id", h.getMember)
	members.Put("/:id", h.updateMember)
	members.Delete("/:id", h.deleteMember)
}

func (h *MemberHandler) getMembers(c *fiber.Ctx) error {
	log := h.log.Function("getMembers")

	members, err := h.controller.GetMembers(c.Context())
	if err != nil {
		log.Er("failed to get members", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to get members"})
	}

	return c.JSON(fiber.Map{"message": "success", "members": members})
}

func (h *MemberHandler) getMember(c *fiber.Ctx) error {
	log := h.log.Function("getMember")

	member, err := h.controller.GetMember(c.Context(), c.Params("id"))
	if err != nil {
		log.Er("failed to get member", err)
		return c.Status(fiber.StatusNotFound).
			JSON(fiber.Map{"message": "member not found"})
	}

	return c.JSON(fiber.Map{"message": "success", "member": member})
}

func (h *MemberHandler) createMember(c *fiber.Ctx) error {
	log := h.log.Function("createMember")

	var member Member
	if err := c.BodyParser(&member); err != nil {
		log.Er("failed to parse member request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse member request"})
	}

	if err := h.controller.CreateMember(c.Context(), &member); err != nil {
		log.Er("failed to create member", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to create member", "error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).
		JSON(fiber.Map{"message": "success", "member": member})
}

func (h *MemberHandler) updateMember(c *fiber.Ctx) error {
	log := h.log.Function("updateMember")

	var member Member
	if err := c.BodyParser(&member); err != nil {
		log.Er("failed to parse member request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse member request"})
	}
	member.ID = c.Params("id")

	if err := h.controller.UpdateMember(c.Context(), &member); err != nil {
		log.Er("failed to update member", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to update member"})
	}

	return c.JSON(fiber.Map{"message": "success", "member": member})
}

func (h *MemberHandler) deleteMember(c *fiber.Ctx) error {
	log := h.log.Function("deleteMember")

	if err := h.controller.DeleteMember(c.Context(), c.Params("id")); err != nil {
		log.Er("failed to delete member", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to delete member"})
	}

	return c.JSON(fiber.Map{"message": "success"})
}
