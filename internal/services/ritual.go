package services

import (
	"github.com/google/uuid"
	"github.com/ziyaarah/backend/internal/models"
	"gorm.io/gorm"
)

type RitualService struct {
	DB     *gorm.DB
	Access *AccessService
}

func NewRitualService(db *gorm.DB, access *AccessService) *RitualService {
	return &RitualService{DB: db, Access: access}
}

type CreateRitualInput struct {
	Title       string
	Description string
	SortOrder   int
}

type RitualUpdate struct {
	Title       *string
	Description *string
	SortOrder   *int
}

type CreateStepInput struct {
	Title     string
	Type      string
	SortOrder int
}

func (s *RitualService) Create(tripID, userID uuid.UUID, input CreateRitualInput) (*models.Ritual, error) {
	if _, err := s.Access.GetTrip(tripID); err != nil {
		return nil, err
	}
	if err := s.Access.RequireMember(tripID, userID); err != nil {
		return nil, err
	}

	ritual := models.Ritual{
		TripID:      tripID,
		Title:       input.Title,
		Description: input.Description,
		SortOrder:   input.SortOrder,
		CreatedBy:   userID,
	}
	if err := s.DB.Create(&ritual).Error; err != nil {
		return nil, err
	}
	return &ritual, nil
}

// ListForTrip returns the trip's rituals in sort order, each with its
// ordered steps.
func (s *RitualService) ListForTrip(tripID, userID uuid.UUID) ([]models.Ritual, error) {
	if _, err := s.Access.GetTrip(tripID); err != nil {
		return nil, err
	}
	if err := s.Access.RequireMember(tripID, userID); err != nil {
		return nil, err
	}

	var rituals []models.Ritual
	err := s.DB.Preload("Steps", func(db *gorm.DB) *gorm.DB {
		return db.Order("ritual_steps.sort_order asc")
	}).
		Where("trip_id = ?", tripID).
		Order("sort_order asc").
		Find(&rituals).Error
	if err != nil {
		return nil, err
	}
	return rituals, nil
}

func (s *RitualService) Update(id, userID uuid.UUID, update RitualUpdate) (*models.Ritual, error) {
	tripID, err := s.Access.OwningTrip(KindRitual, id)
	if err != nil {
		return nil, err
	}
	if err := s.Access.RequireMember(tripID, userID); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if update.Title != nil {
		fields["title"] = *update.Title
	}
	if update.Description != nil {
		fields["description"] = *update.Description
	}
	if update.SortOrder != nil {
		fields["sort_order"] = *update.SortOrder
	}
	if len(fields) > 0 {
		if err := s.DB.Model(&models.Ritual{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return nil, err
		}
	}

	var ritual models.Ritual
	if err := s.DB.First(&ritual, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ritual, nil
}

// Delete removes the ritual and its steps together.
func (s *RitualService) Delete(id, userID uuid.UUID) error {
	tripID, err := s.Access.OwningTrip(KindRitual, id)
	if err != nil {
		return err
	}
	if err := s.Access.RequireMember(tripID, userID); err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ritual_id = ?", id).Delete(&models.RitualStep{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Ritual{}, "id = ?", id).Error
	})
}

// CreateStep gates through the ritual's owning trip (two hops).
func (s *RitualService) CreateStep(ritualID, userID uuid.UUID, input CreateStepInput) (*models.RitualStep, error) {
	tripID, err := s.Access.OwningTrip(KindRitual, ritualID)
	if err != nil {
		return nil, err
	}
	if err := s.Access.RequireMember(tripID, userID); err != nil {
		return nil, err
	}

	step := models.RitualStep{
		RitualID:  ritualID,
		Title:     input.Title,
		Type:      input.Type,
		Completed: false,
		SortOrder: input.SortOrder,
		CreatedBy: userID,
	}
	if err := s.DB.Create(&step).Error; err != nil {
		return nil, err
	}
	return &step, nil
}

func (s *RitualService) SetStepCompleted(id, userID uuid.UUID, completed bool) (*models.RitualStep, error) {
	tripID, err := s.Access.OwningTrip(KindRitualStep, id)
	if err != nil {
		return nil, err
	}
	if err := s.Access.RequireMember(tripID, userID); err != nil {
		return nil, err
	}

	if err := s.DB.Model(&models.RitualStep{}).Where("id = ?", id).Update("completed", completed).Error; err != nil {
		return nil, err
	}

	var step models.RitualStep
	if err := s.DB.First(&step, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &step, nil
}

func (s *RitualService) DeleteStep(id, userID uuid.UUID) error {
	tripID, err := s.Access.OwningTrip(KindRitualStep, id)
	if err != nil {
		return err
	}
	if err := s.Access.RequireMember(tripID, userID); err != nil {
		return err
	}
	return s.DB.Delete(&models.RitualStep{}, "id = ?", id).Error
}
