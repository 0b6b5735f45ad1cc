package services

import (
	"github.com/google/uuid"
	"github.com/ziyaarah/backend/internal/models"
	"gorm.io/gorm"
)

type CheckpointService struct {
	DB     *gorm.DB
	Access *AccessService
}

func NewCheckpointService(db *gorm.DB, access *AccessService) *CheckpointService {
	return &CheckpointService{DB: db, Access: access}
}

type CreateCheckpointInput struct {
	Title       string
	Type        string
	Description string
}

func (s *CheckpointService) Create(tripID, userID uuid.UUID, input CreateCheckpointInput) (*models.Checkpoint, error) {
	if _, err := s.Access.GetTrip(tripID); err != nil {
		return nil, err
	}
	if err := s.Access.RequireMember(tripID, userID); err != nil {
		return nil, err
	}

	checkpoint := models.Checkpoint{
		TripID:      tripID,
		Title:       input.Title,
		Type:        input.Type,
		Description: input.Description,
		Completed:   false,
		CreatedBy:   userID,
	}
	if err := s.DB.Create(&checkpoint).Error; err != nil {
		return nil, err
	}
	return &checkpoint, nil
}

func (s *CheckpointService) Get(id, userID uuid.UUID) (*models.Checkpoint, error) {
	tripID, err := s.Access.OwningTrip(KindCheckpoint, id)
	if err != nil {
		return nil, err
	}
	if err := s.Access.RequireMember(tripID, userID); err != nil {
		return nil, err
	}

	var checkpoint models.Checkpoint
	if err := s.DB.First(&checkpoint, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &checkpoint, nil
}

func (s *CheckpointService) SetCompleted(id, userID uuid.UUID, completed bool) (*models.Checkpoint, error) {
	tripID, err := s.Access.OwningTrip(KindCheckpoint, id)
	if err != nil {
		return nil, err
	}
	if err := s.Access.RequireMember(tripID, userID); err != nil {
		return nil, err
	}

	if err := s.DB.Model(&models.Checkpoint{}).Where("id = ?", id).Update("completed", completed).Error; err != nil {
		return nil, err
	}

	var checkpoint models.Checkpoint
	if err := s.DB.First(&checkpoint, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &checkpoint, nil
}

func (s *CheckpointService) Delete(id, userID uuid.UUID) error {
	tripID, err := s.Access.OwningTrip(KindCheckpoint, id)
	if err != nil {
		return err
	}
	if err := s.Access.RequireMember(tripID, userID); err != nil {
		return err
	}
	return s.DB.Delete(&models.Checkpoint{}, "id = ?", id).Error
}
