package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/ziyaarah/backend/internal/middleware"
	"github.com/ziyaarah/backend/internal/services"
	"github.com/ziyaarah/backend/pkg/utils"
)

type PackingHandler struct {
	Packing *services.PackingService
}

func NewPackingHandler(packing *services.PackingService) *PackingHandler {
	return &PackingHandler{Packing: packing}
}

type createCategoryRequest struct {
	Title     string `json:"title"`
	SortOrder int    `json:"order"`
}

type updateCategoryRequest struct {
	Title     *string `json:"title"`
	SortOrder *int    `json:"order"`
}

type createItemRequest struct {
	Name      string `json:"name"`
	Quantity  *int   `json:"quantity"`
	Essential bool   `json:"essential"`
}

type updateItemRequest struct {
	Name      *string `json:"name"`
	Quantity  *int    `json:"quantity"`
	Essential *bool   `json:"essential"`
	Packed    *bool   `json:"packed"`
}

func (h *PackingHandler) CreateCategory(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	tripID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid trip id")
	}

	var req createCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return utils.Error(c, fiber.StatusBadRequest, "title is required")
	}

	category, err := h.Packing.CreateCategory(tripID, currentUser.ID, services.CreateCategoryInput{
		Title:     req.Title,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusCreated, category)
}

func (h *PackingHandler) ListForTrip(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	tripID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid trip id")
	}

	categories, err := h.Packing.ListForTrip(tripID, currentUser.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, categories)
}

func (h *PackingHandler) UpdateCategory(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid category id")
	}

	var req updateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return utils.Error(c, fiber.StatusBadRequest, "title cannot be empty")
	}

	category, err := h.Packing.UpdateCategory(id, currentUser.ID, services.CategoryUpdate{
		Title:     req.Title,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, category)
}

func (h *PackingHandler) DeleteCategory(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid category id")
	}

	if err := h.Packing.DeleteCategory(id, currentUser.ID); err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "category deleted"})
}

func (h *PackingHandler) CreateItem(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	categoryID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid category id")
	}

	var req createItemRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return utils.Error(c, fiber.StatusBadRequest, "name is required")
	}

	item, err := h.Packing.CreateItem(categoryID, currentUser.ID, services.CreateItemInput{
		Name:      req.Name,
		Quantity:  req.Quantity,
		Essential: req.Essential,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusCreated, item)
}

func (h *PackingHandler) UpdateItem(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid item id")
	}

	var req updateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	item, err := h.Packing.UpdateItem(id, currentUser.ID, services.ItemUpdate{
		Name:      req.Name,
		Quantity:  req.Quantity,
		Essential: req.Essential,
		Packed:    req.Packed,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, item)
}

func (h *PackingHandler) DeleteItem(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid item id")
	}

	if err := h.Packing.DeleteItem(id, currentUser.ID); err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "item deleted"})
}
