package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/ziyaarah/backend/internal/groupcode"
	"github.com/ziyaarah/backend/internal/models"
	"gorm.io/gorm"
)

type TripService struct {
	DB       *gorm.DB
	Access   *AccessService
	Registry *groupcode.Registry
}

func NewTripService(db *gorm.DB, access *AccessService, registry *groupcode.Registry) *TripService {
	return &TripService{DB: db, Access: access, Registry: registry}
}

type CreateTripInput struct {
	Name      string
	StartDate string
	EndDate   string
}

// TripUpdate carries optional field assignments for a trip. Each field
// is independently present-or-absent; nil means leave unchanged.
type TripUpdate struct {
	Name      *string
	StartDate *string
	EndDate   *string
}

// TripDetail is the aggregate returned for a single trip: the trip row
// plus everything a member sees on the trip screen.
type TripDetail struct {
	models.Trip
	Members     []models.TripMembership  `json:"members"`
	Checkpoints []models.Checkpoint      `json:"checkpoints"`
	Packing     []models.PackingCategory `json:"packing_categories"`
}

// Create inserts the trip and the creator's owner membership in one
// transaction, so no trip ever exists without exactly one owner. The
// group code is verified unique before the insert.
func (s *TripService) Create(userID uuid.UUID, input CreateTripInput) (*models.Trip, error) {
	code, err := s.Registry.Generate()
	if err != nil {
		return nil, err
	}

	trip := models.Trip{
		Name:      input.Name,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		GroupCode: code,
		CreatedBy: userID,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&trip).Error; err != nil {
			return err
		}
		membership := models.TripMembership{
			TripID:   trip.ID,
			UserID:   userID,
			Role:     models.RoleOwner,
			JoinedAt: time.Now().UTC(),
		}
		return tx.Create(&membership).Error
	})
	if err != nil {
		return nil, err
	}

	return &trip, nil
}

// List returns the trips the user belongs to, newest first.
func (s *TripService) List(userID uuid.UUID) ([]models.Trip, error) {
	var trips []models.Trip
	err := s.DB.
		Joins("JOIN trip_memberships ON trip_memberships.trip_id = trips.id").
		Where("trip_memberships.user_id = ?", userID).
		Order("trips.created_at DESC").
		Find(&trips).Error
	if err != nil {
		return nil, err
	}
	return trips, nil
}

// GetDetail returns the trip with its members, checkpoints, and packing
// list. Member-gated.
func (s *TripService) GetDetail(tripID, userID uuid.UUID) (*TripDetail, error) {
	trip, err := s.Access.GetTrip(tripID)
	if err != nil {
		return nil, err
	}
	if err := s.Access.RequireMember(tripID, userID); err != nil {
		return nil, err
	}

	detail := TripDetail{Trip: *trip}

	if err := s.DB.Preload("User").
		Where("trip_id = ?", tripID).
		Order("joined_at asc").
		Find(&detail.Members).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Where("trip_id = ?", tripID).
		Order("created_at asc").
		Find(&detail.Checkpoints).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("packing_items.created_at asc")
	}).
		Where("trip_id = ?", tripID).
		Order("sort_order asc").
		Find(&detail.Packing).Error; err != nil {
		return nil, err
	}

	return &detail, nil
}

// Update applies the present fields. Owner only.
func (s *TripService) Update(tripID, userID uuid.UUID, update TripUpdate) (*models.Trip, error) {
	if _, err := s.Access.GetTrip(tripID); err != nil {
		return nil, err
	}
	if err := s.Access.RequireOwner(tripID, userID); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if update.StartDate != nil {
		fields["start_date"] = *update.StartDate
	}
	if update.EndDate != nil {
		fields["end_date"] = *update.EndDate
	}

	if len(fields) > 0 {
		if err := s.DB.Model(&models.Trip{}).Where("id = ?", tripID).Updates(fields).Error; err != nil {
			return nil, err
		}
	}

	return s.Access.GetTrip(tripID)
}

// Delete removes the trip and everything it transitively owns, in a
// fixed order inside one transaction: memberships, checkpoints, packing
// items then categories, ritual steps then rituals, stages, and finally
// the trip row. A failure at any stage aborts the whole cascade.
func (s *TripService) Delete(tripID, userID uuid.UUID) error {
	if _, err := s.Access.GetTrip(tripID); err != nil {
		return err
	}
	if err := s.Access.RequireOwner(tripID, userID); err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("trip_id = ?", tripID).Delete(&models.TripMembership{}).Error; err != nil {
			return err
		}
		if err := tx.Where("trip_id = ?", tripID).Delete(&models.Checkpoint{}).Error; err != nil {
			return err
		}

		var categoryIDs []uuid.UUID
		if err := tx.Model(&models.PackingCategory{}).Where("trip_id = ?", tripID).Pluck("id", &categoryIDs).Error; err != nil {
			return err
		}
		if len(categoryIDs) > 0 {
			if err := tx.Where("category_id IN ?", categoryIDs).Delete(&models.PackingItem{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("trip_id = ?", tripID).Delete(&models.PackingCategory{}).Error; err != nil {
			return err
		}

		var ritualIDs []uuid.UUID
		if err := tx.Model(&models.Ritual{}).Where("trip_id = ?", tripID).Pluck("id", &ritualIDs).Error; err != nil {
			return err
		}
		if len(ritualIDs) > 0 {
			if err := tx.Where("ritual_id IN ?", ritualIDs).Delete(&models.RitualStep{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("trip_id = ?", tripID).Delete(&models.Ritual{}).Error; err != nil {
			return err
		}

		if err := tx.Where("trip_id = ?", tripID).Delete(&models.TripStage{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Trip{}, "id = ?", tripID).Error
	})
}
