package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/ziyaarah/backend/internal/groupcode"
	"github.com/ziyaarah/backend/internal/models"
	"gorm.io/gorm"
)

type MembershipService struct {
	DB       *gorm.DB
	Access   *AccessService
	Registry *groupcode.Registry
}

func NewMembershipService(db *gorm.DB, access *AccessService, registry *groupcode.Registry) *MembershipService {
	return &MembershipService{DB: db, Access: access, Registry: registry}
}

// JoinResult reports the outcome of a join-by-code call. Joining a trip
// the user already belongs to is not an error — AlreadyMember flags it
// so callers can phrase the response accordingly.
type JoinResult struct {
	TripID        uuid.UUID
	AlreadyMember bool
}

// ListMembers returns the trip's memberships in join order, with user
// details attached.
func (s *MembershipService) ListMembers(tripID, requesterID uuid.UUID) ([]models.TripMembership, error) {
	if _, err := s.Access.GetTrip(tripID); err != nil {
		return nil, err
	}
	if err := s.Access.RequireMember(tripID, requesterID); err != nil {
		return nil, err
	}

	var members []models.TripMembership
	err := s.DB.Preload("User").
		Where("trip_id = ?", tripID).
		Order("joined_at asc").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

// AddMember inserts a membership for the given user. Unlike JoinByCode
// this is strict: an existing membership for the pair is
// ErrAlreadyMember. Any member of the trip may add others.
func (s *MembershipService) AddMember(tripID, requesterID, userID uuid.UUID, role models.MembershipRole) (*models.TripMembership, error) {
	if _, err := s.Access.GetTrip(tripID); err != nil {
		return nil, err
	}
	if err := s.Access.RequireMember(tripID, requesterID); err != nil {
		return nil, err
	}

	var user models.User
	if err := s.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if _, err := s.Access.RoleOf(tripID, userID); err == nil {
		return nil, ErrAlreadyMember
	} else if !errors.Is(err, ErrMemberNotFound) {
		return nil, err
	}

	membership := models.TripMembership{
		TripID:   tripID,
		UserID:   userID,
		Role:     role,
		JoinedAt: time.Now().UTC(),
	}
	if err := s.DB.Create(&membership).Error; err != nil {
		// The unique (trip_id, user_id) index closes the
		// check-then-insert race; anything else is a storage
		// failure and propagates untyped.
		if _, roleErr := s.Access.RoleOf(tripID, userID); roleErr == nil {
			return nil, ErrAlreadyMember
		}
		return nil, err
	}
	return &membership, nil
}

// RemoveMember deletes a membership. Only the owner may remove members,
// and the owner's own membership can never be removed.
func (s *MembershipService) RemoveMember(tripID, requesterID, userID uuid.UUID) error {
	if _, err := s.Access.GetTrip(tripID); err != nil {
		return err
	}
	if err := s.Access.RequireOwner(tripID, requesterID); err != nil {
		return err
	}

	var target models.TripMembership
	err := s.DB.First(&target, "trip_id = ? AND user_id = ?", tripID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return err
	}

	if target.Role == models.RoleOwner {
		return ErrCannotRemoveOwner
	}

	return s.DB.Delete(&models.TripMembership{}, "id = ?", target.ID).Error
}

// JoinByCode resolves a group code and adds the user as a member. A
// second join for the same pair succeeds idempotently rather than
// failing — the shareable-code flow must tolerate double taps.
func (s *MembershipService) JoinByCode(code string, userID uuid.UUID) (*JoinResult, error) {
	tripID, err := s.Registry.Resolve(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidGroupCode
		}
		return nil, err
	}

	if _, err := s.Access.RoleOf(tripID, userID); err == nil {
		return &JoinResult{TripID: tripID, AlreadyMember: true}, nil
	} else if !errors.Is(err, ErrMemberNotFound) {
		return nil, err
	}

	membership := models.TripMembership{
		TripID:   tripID,
		UserID:   userID,
		Role:     models.RoleMember,
		JoinedAt: time.Now().UTC(),
	}
	if err := s.DB.Create(&membership).Error; err != nil {
		// A concurrent join landed first; that is exactly the
		// idempotent outcome the contract promises.
		if _, roleErr := s.Access.RoleOf(tripID, userID); roleErr == nil {
			return &JoinResult{TripID: tripID, AlreadyMember: true}, nil
		}
		return nil, err
	}

	return &JoinResult{TripID: tripID}, nil
}
