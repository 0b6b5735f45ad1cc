package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/ziyaarah/backend/internal/models"
	"gorm.io/gorm"
)

// EntityKind enumerates the nested entities whose owning trip can be
// resolved. Packing items and ritual steps reach their trip through an
// intermediate parent; everything else is one hop away.
type EntityKind int

const (
	KindCheckpoint EntityKind = iota
	KindPackingCategory
	KindPackingItem
	KindRitual
	KindRitualStep
	KindTripStage
)

// AccessService answers the two questions every trip-scoped operation
// asks, in this order: does the entity exist, and is the caller a
// member of the trip that owns it. The ordering matters — a missing
// entity must surface as NotFound before any membership failure, so
// non-members cannot probe which ids exist.
type AccessService struct {
	DB *gorm.DB
}

func NewAccessService(db *gorm.DB) *AccessService {
	return &AccessService{DB: db}
}

// GetTrip loads a trip or reports ErrTripNotFound.
func (a *AccessService) GetTrip(tripID uuid.UUID) (*models.Trip, error) {
	var trip models.Trip
	if err := a.DB.First(&trip, "id = ?", tripID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}
	return &trip, nil
}

// OwningTrip walks the ownership chain from a nested entity up to its
// trip id. Two-hop kinds resolve their parent first and recurse.
func (a *AccessService) OwningTrip(kind EntityKind, id uuid.UUID) (uuid.UUID, error) {
	switch kind {
	case KindCheckpoint:
		var row models.Checkpoint
		if err := a.DB.Select("trip_id").First(&row, "id = ?", id).Error; err != nil {
			return uuid.Nil, notFoundFor(kind, err)
		}
		return row.TripID, nil
	case KindPackingCategory:
		var row models.PackingCategory
		if err := a.DB.Select("trip_id").First(&row, "id = ?", id).Error; err != nil {
			return uuid.Nil, notFoundFor(kind, err)
		}
		return row.TripID, nil
	case KindPackingItem:
		var row models.PackingItem
		if err := a.DB.Select("category_id").First(&row, "id = ?", id).Error; err != nil {
			return uuid.Nil, notFoundFor(kind, err)
		}
		return a.OwningTrip(KindPackingCategory, row.CategoryID)
	case KindRitual:
		var row models.Ritual
		if err := a.DB.Select("trip_id").First(&row, "id = ?", id).Error; err != nil {
			return uuid.Nil, notFoundFor(kind, err)
		}
		return row.TripID, nil
	case KindRitualStep:
		var row models.RitualStep
		if err := a.DB.Select("ritual_id").First(&row, "id = ?", id).Error; err != nil {
			return uuid.Nil, notFoundFor(kind, err)
		}
		return a.OwningTrip(KindRitual, row.RitualID)
	case KindTripStage:
		var row models.TripStage
		if err := a.DB.Select("trip_id").First(&row, "id = ?", id).Error; err != nil {
			return uuid.Nil, notFoundFor(kind, err)
		}
		return row.TripID, nil
	default:
		return uuid.Nil, errors.New("unknown entity kind")
	}
}

// IsMember is the existence check gating every trip-scoped operation.
func (a *AccessService) IsMember(tripID, userID uuid.UUID) (bool, error) {
	var count int64
	err := a.DB.Model(&models.TripMembership{}).
		Where("trip_id = ? AND user_id = ?", tripID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// RoleOf returns the caller's role or ErrMemberNotFound.
func (a *AccessService) RoleOf(tripID, userID uuid.UUID) (models.MembershipRole, error) {
	var membership models.TripMembership
	err := a.DB.First(&membership, "trip_id = ? AND user_id = ?", tripID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrMemberNotFound
		}
		return "", err
	}
	return membership.Role, nil
}

// RequireMember fails with ErrNotAMember when the user holds no
// membership for the trip.
func (a *AccessService) RequireMember(tripID, userID uuid.UUID) error {
	ok, err := a.IsMember(tripID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotAMember
	}
	return nil
}

// RequireOwner fails with ErrNotAMember for non-members and
// ErrNotAuthorized for members without the owner role. The membership
// check always runs before the role check.
func (a *AccessService) RequireOwner(tripID, userID uuid.UUID) error {
	role, err := a.RoleOf(tripID, userID)
	if errors.Is(err, ErrMemberNotFound) {
		return ErrNotAMember
	}
	if err != nil {
		return err
	}
	if role != models.RoleOwner {
		return ErrNotAuthorized
	}
	return nil
}

func notFoundFor(kind EntityKind, err error) error {
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	switch kind {
	case KindCheckpoint:
		return ErrCheckpointNotFound
	case KindPackingCategory:
		return ErrCategoryNotFound
	case KindPackingItem:
		return ErrItemNotFound
	case KindRitual:
		return ErrRitualNotFound
	case KindRitualStep:
		return ErrStepNotFound
	case KindTripStage:
		return ErrStageNotFound
	default:
		return err
	}
}
