package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/ziyaarah/backend/internal/services"
	"github.com/ziyaarah/backend/pkg/utils"
)

func parseUUID(value string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(value))
}

// serviceError maps the service layer's typed failures onto status
// codes. Anything unrecognized is an opaque storage failure.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrTripNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrCheckpointNotFound),
		errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrItemNotFound),
		errors.Is(err, services.ErrRitualNotFound),
		errors.Is(err, services.ErrStepNotFound),
		errors.Is(err, services.ErrStageNotFound),
		errors.Is(err, services.ErrResourceNotFound),
		errors.Is(err, services.ErrBookmarkNotFound),
		errors.Is(err, services.ErrMemberNotFound),
		errors.Is(err, services.ErrInvalidGroupCode):
		return utils.Error(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrNotAMember),
		errors.Is(err, services.ErrNotAuthorized),
		errors.Is(err, services.ErrCannotRemoveOwner):
		return utils.Error(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrAlreadyMember),
		errors.Is(err, services.ErrAlreadyBookmarked):
		return utils.Error(c, fiber.StatusConflict, err.Error())
	default:
		return utils.Error(c, fiber.StatusInternalServerError, "internal error")
	}
}
