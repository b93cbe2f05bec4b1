package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/team-directory/internal/api/dto"
	"github.com/spec-kit/team-directory/internal/auth"
	"github.com/spec-kit/team-directory/internal/service"
	"github.com/spec-kit/team-directory/internal/validation"
)

// MembersHandler exposes the directory CRUD endpoints.
type MembersHandler struct {
	members *service.MemberService
}

// NewMembersHandler constructs handler.
func NewMembersHandler(members *service.MemberService) *MembersHandler {
	return &MembersHandler{members: members}
}

// List handles GET /members.
func (h *MembersHandler) List(c *fiber.Ctx) error {
	members, err := h.members.List(c.Context())
	if err != nil {
		return err
	}
	resp := make([]dto.MemberResponse, 0, len(members))
	for i := range members {
		resp = append(resp, dto.NewMemberResponse(&members[i]))
	}
	return c.JSON(fiber.Map{"data": resp, "count": len(resp)})
}

// Create handles POST /members.
func (h *MembersHandler) Create(c *fiber.Ctx) error {
	var input validation.MemberInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	member, err := h.members.Create(c.Context(), input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewMemberResponse(member)})
}

// Get handles GET /members/:id.
func (h *MembersHandler) Get(c *fiber.Ctx) error {
	member, err := h.members.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewMemberResponse(member)})
}

// Update handles PUT /members/:id.
func (h *MembersHandler) Update(c *fiber.Ctx) error {
	var input validation.MemberInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	member, err := h.members.Update(c.Context(), c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewMemberResponse(member)})
}

// Delete handles DELETE /members/:id. Requires an authenticated admin.
func (h *MembersHandler) Delete(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	if err := h.members.Delete(c.Context(), principal.Capability(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
