package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/ziyaarah/backend/internal/middleware"
	"github.com/ziyaarah/backend/internal/models"
	"github.com/ziyaarah/backend/internal/services"
	"github.com/ziyaarah/backend/pkg/logger"
	"github.com/ziyaarah/backend/pkg/utils"
)

type MembersHandler struct {
	Members *services.MembershipService
	Audit   *services.AuditService
}

func NewMembersHandler(members *services.MembershipService, audit *services.AuditService) *MembersHandler {
	return &MembersHandler{Members: members, Audit: audit}
}

type joinRequest struct {
	GroupCode string `json:"group_code"`
}

type addMemberRequest struct {
	UserID string                `json:"user_id"`
	Role   models.MembershipRole `json:"role"`
}

func (h *MembersHandler) Join(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var req joinRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	req.GroupCode = strings.ToUpper(strings.TrimSpace(req.GroupCode))
	if req.GroupCode == "" {
		return utils.Error(c, fiber.StatusBadRequest, "group_code is required")
	}

	result, err := h.Members.JoinByCode(req.GroupCode, currentUser.ID)
	if err != nil {
		return serviceError(c, err)
	}

	if result.AlreadyMember {
		return utils.Success(c, fiber.StatusOK, fiber.Map{
			"trip_id":        result.TripID,
			"already_member": true,
			"message":        "you are already part of this trip",
		})
	}

	h.Audit.LogAsync(services.AuditEntry{
		UserID:       &currentUser.ID,
		Action:       "trip.member_join",
		ResourceType: "trip",
		ResourceID:   &result.TripID,
		Details:      map[string]interface{}{"group_code": req.GroupCode},
		IPAddress:    c.IP(),
	})
	logger.InfoWithUser(currentUser.ID.String(), "trip_joined", map[string]interface{}{
		"trip_id": result.TripID.String(),
	})

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"trip_id":        result.TripID,
		"already_member": false,
	})
}

func (h *MembersHandler) List(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	tripID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid trip id")
	}

	members, err := h.Members.ListMembers(tripID, currentUser.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, members)
}

func (h *MembersHandler) Add(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	tripID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid trip id")
	}

	var req addMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	userID, err := parseUUID(req.UserID)
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "user_id is required")
	}
	if req.Role == "" {
		req.Role = models.RoleMember
	}
	if req.Role != models.RoleMember {
		return utils.Error(c, fiber.StatusBadRequest, "invalid role")
	}

	membership, err := h.Members.AddMember(tripID, currentUser.ID, userID, req.Role)
	if err != nil {
		return serviceError(c, err)
	}

	h.Audit.LogAsync(services.AuditEntry{
		UserID:       &currentUser.ID,
		Action:       "trip.member_add",
		ResourceType: "trip",
		ResourceID:   &tripID,
		Details:      map[string]interface{}{"member_id": userID.String()},
		IPAddress:    c.IP(),
	})

	return utils.Success(c, fiber.StatusCreated, membership)
}

func (h *MembersHandler) Remove(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	tripID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid trip id")
	}
	userID, err := parseUUID(c.Params("userId"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid user id")
	}

	if err := h.Members.RemoveMember(tripID, currentUser.ID, userID); err != nil {
		return serviceError(c, err)
	}

	h.Audit.LogAsync(services.AuditEntry{
		UserID:       &currentUser.ID,
		Action:       "trip.member_remove",
		ResourceType: "trip",
		ResourceID:   &tripID,
		Details:      map[string]interface{}{"member_id": userID.String()},
		IPAddress:    c.IP(),
	})

	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "member removed"})
}
