package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/ziyaarah/backend/internal/middleware"
	"github.com/ziyaarah/backend/internal/services"
	"github.com/ziyaarah/backend/pkg/logger"
	"github.com/ziyaarah/backend/pkg/utils"
)

type TripsHandler struct {
	Trips *services.TripService
	Audit *services.AuditService
}

func NewTripsHandler(trips *services.TripService, audit *services.AuditService) *TripsHandler {
	return &TripsHandler{Trips: trips, Audit: audit}
}

type createTripRequest struct {
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type updateTripRequest struct {
	Name      *string `json:"name"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

func (h *TripsHandler) Create(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var req createTripRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return utils.Error(c, fiber.StatusBadRequest, "name is required")
	}
	if req.StartDate == "" || req.EndDate == "" {
		return utils.Error(c, fiber.StatusBadRequest, "start_date and end_date are required")
	}

	trip, err := h.Trips.Create(currentUser.ID, services.CreateTripInput{
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		return serviceError(c, err)
	}

	h.Audit.LogAsync(services.AuditEntry{
		UserID:       &currentUser.ID,
		Action:       "trip.create",
		ResourceType: "trip",
		ResourceID:   &trip.ID,
		Details:      map[string]interface{}{"name": trip.Name},
		IPAddress:    c.IP(),
	})
	logger.InfoWithUser(currentUser.ID.String(), "trip_created", map[string]interface{}{
		"trip_id":    trip.ID.String(),
		"group_code": trip.GroupCode,
	})

	return utils.Success(c, fiber.StatusCreated, trip)
}

func (h *TripsHandler) List(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	trips, err := h.Trips.List(currentUser.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, trips)
}

func (h *TripsHandler) Get(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	tripID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid trip id")
	}

	detail, err := h.Trips.GetDetail(tripID, currentUser.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, detail)
}

func (h *TripsHandler) Update(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	tripID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid trip id")
	}

	var req updateTripRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return utils.Error(c, fiber.StatusBadRequest, "name cannot be empty")
	}

	trip, err := h.Trips.Update(tripID, currentUser.ID, services.TripUpdate{
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, trip)
}

func (h *TripsHandler) Delete(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	tripID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid trip id")
	}

	if err := h.Trips.Delete(tripID, currentUser.ID); err != nil {
		return serviceError(c, err)
	}

	h.Audit.LogAsync(services.AuditEntry{
		UserID:       &currentUser.ID,
		Action:       "trip.delete",
		ResourceType: "trip",
		ResourceID:   &tripID,
		IPAddress:    c.IP(),
	})
	logger.InfoWithUser(currentUser.ID.String(), "trip_deleted", map[string]interface{}{
		"trip_id": tripID.String(),
	})

	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "trip deleted"})
}
