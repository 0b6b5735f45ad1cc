package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/ziyaarah/backend/internal/middleware"
	"github.com/ziyaarah/backend/internal/services"
	"github.com/ziyaarah/backend/pkg/utils"
)

type CheckpointsHandler struct {
	Checkpoints *services.CheckpointService
}

func NewCheckpointsHandler(checkpoints *services.CheckpointService) *CheckpointsHandler {
	return &CheckpointsHandler{Checkpoints: checkpoints}
}

type createCheckpointRequest struct {
	Title       string `json:"title"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

type completeRequest struct {
	Completed bool `json:"completed"`
}

func (h *CheckpointsHandler) Create(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	tripID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid trip id")
	}

	var req createCheckpointRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return utils.Error(c, fiber.StatusBadRequest, "title is required")
	}
	if strings.TrimSpace(req.Type) == "" {
		return utils.Error(c, fiber.StatusBadRequest, "type is required")
	}

	checkpoint, err := h.Checkpoints.Create(tripID, currentUser.ID, services.CreateCheckpointInput{
		Title:       req.Title,
		Type:        req.Type,
		Description: req.Description,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusCreated, checkpoint)
}

func (h *CheckpointsHandler) Get(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid checkpoint id")
	}

	checkpoint, err := h.Checkpoints.Get(id, currentUser.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, checkpoint)
}

func (h *CheckpointsHandler) SetCompleted(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid checkpoint id")
	}

	var req completeRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	checkpoint, err := h.Checkpoints.SetCompleted(id, currentUser.ID, req.Completed)
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, checkpoint)
}

func (h *CheckpointsHandler) Delete(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid checkpoint id")
	}

	if err := h.Checkpoints.Delete(id, currentUser.ID); err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "checkpoint deleted"})
}
