package handlers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/ziyaarah/backend/internal/middleware"
	"github.com/ziyaarah/backend/internal/services"
	"github.com/ziyaarah/backend/internal/storage"
	"github.com/ziyaarah/backend/pkg/logger"
	"github.com/ziyaarah/backend/pkg/utils"
)

type ResourcesHandler struct {
	Resources *services.ResourceService
	Storage   *storage.MinIOClient
}

func NewResourcesHandler(resources *services.ResourceService, storageClient *storage.MinIOClient) *ResourcesHandler {
	return &ResourcesHandler{Resources: resources, Storage: storageClient}
}

type createResourceRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
	Category    string   `json:"category"`
	URL         *string  `json:"url"`
	Tags        []string `json:"tags"`
	IsPublic    *bool    `json:"is_public"`
}

func (h *ResourcesHandler) List(c *fiber.Ctx) error {
	resources, err := h.Resources.List(services.ResourceFilter{
		Category: c.Query("category"),
		Type:     c.Query("type"),
		Search:   c.Query("search"),
	})
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, resources)
}

func (h *ResourcesHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid resource id")
	}

	resource, err := h.Resources.Get(id)
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, resource)
}

func (h *ResourcesHandler) Create(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var req createResourceRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return utils.Error(c, fiber.StatusBadRequest, "title is required")
	}
	if strings.TrimSpace(req.Type) == "" || strings.TrimSpace(req.Category) == "" {
		return utils.Error(c, fiber.StatusBadRequest, "type and category are required")
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	resource, err := h.Resources.Create(currentUser.ID, services.CreateResourceInput{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Category:    req.Category,
		URL:         req.URL,
		Tags:        req.Tags,
		IsPublic:    isPublic,
	})
	if err != nil {
		return serviceError(c, err)
	}

	logger.InfoWithUser(currentUser.ID.String(), "resource_created", map[string]interface{}{
		"resource_id": resource.ID.String(),
		"title":       resource.Title,
	})

	return utils.Success(c, fiber.StatusCreated, resource)
}

type updateResourceRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Type        *string  `json:"type"`
	Category    *string  `json:"category"`
	URL         *string  `json:"url"`
	Tags        []string `json:"tags"`
	IsPublic    *bool    `json:"is_public"`
}

func (h *ResourcesHandler) Update(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid resource id")
	}

	var req updateResourceRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return utils.Error(c, fiber.StatusBadRequest, "title cannot be empty")
	}

	resource, err := h.Resources.Update(id, currentUser.ID, services.ResourceUpdate{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Category:    req.Category,
		URL:         req.URL,
		Tags:        req.Tags,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, resource)
}

// AttachFile streams an uploaded file into object storage and records
// its metadata on the resource.
func (h *ResourcesHandler) AttachFile(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}
	if h.Storage == nil {
		return utils.Error(c, fiber.StatusServiceUnavailable, "file storage not configured")
	}

	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid resource id")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "file is required")
	}

	resource, err := h.Resources.Get(id)
	if err != nil {
		return serviceError(c, err)
	}
	if resource.CreatedBy != currentUser.ID {
		return utils.Error(c, fiber.StatusForbidden, "not authorized")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "failed reading upload")
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	objectName := fmt.Sprintf("resources/%s/%s", id, fileHeader.Filename)

	if err := h.Storage.Upload(c.Context(), objectName, file, fileHeader.Size, contentType); err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed storing file")
	}

	updated, err := h.Resources.AttachFile(id, currentUser.ID, objectName, fileHeader.Filename, contentType, fileHeader.Size)
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, updated)
}

func (h *ResourcesHandler) DownloadFile(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid resource id")
	}

	resource, err := h.Resources.Get(id)
	if err != nil {
		return serviceError(c, err)
	}
	if resource.StoragePath == nil {
		return utils.Error(c, fiber.StatusNotFound, "resource has no file")
	}
	if h.Storage == nil {
		return utils.Error(c, fiber.StatusServiceUnavailable, "file storage not configured")
	}

	obj, err := h.Storage.Download(c.Context(), *resource.StoragePath)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed loading file")
	}

	if resource.MimeType != nil {
		c.Set(fiber.HeaderContentType, *resource.MimeType)
	}
	if resource.FileName != nil {
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", *resource.FileName))
	}
	return c.SendStream(obj)
}

func (h *ResourcesHandler) Delete(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid resource id")
	}

	resource, err := h.Resources.Delete(id, currentUser.ID)
	if err != nil {
		return serviceError(c, err)
	}

	if resource.StoragePath != nil && h.Storage != nil {
		if err := h.Storage.Delete(c.Context(), *resource.StoragePath); err != nil {
			logger.Error("resource_file_cleanup_failed", err, map[string]interface{}{
				"resource_id": id.String(),
			})
		}
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "resource deleted"})
}

func (h *ResourcesHandler) Bookmark(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid resource id")
	}

	bookmark, err := h.Resources.Bookmark(id, currentUser.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusCreated, bookmark)
}

func (h *ResourcesHandler) RemoveBookmark(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid resource id")
	}

	if err := h.Resources.RemoveBookmark(id, currentUser.ID); err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "bookmark removed"})
}

func (h *ResourcesHandler) IsBookmarked(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid resource id")
	}

	bookmarked, err := h.Resources.IsBookmarked(id, currentUser.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"bookmarked": bookmarked})
}

func (h *ResourcesHandler) ListBookmarks(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	resources, err := h.Resources.ListBookmarked(currentUser.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, resources)
}
