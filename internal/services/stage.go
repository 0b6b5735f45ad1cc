package services

import (
	"github.com/google/uuid"
	"github.com/ziyaarah/backend/internal/models"
	"gorm.io/gorm"
)

type StageService struct {
	DB     *gorm.DB
	Access *AccessService
}

func NewStageService(db *gorm.DB, access *AccessService) *StageService {
	return &StageService{DB: db, Access: access}
}

type CreateStageInput struct {
	Title       string
	Description string
	SortOrder   int
}

type StageUpdate struct {
	Title       *string
	Description *string
	SortOrder   *int
}

func (s *StageService) Create(tripID, userID uuid.UUID, input CreateStageInput) (*models.TripStage, error) {
	if _, err := s.Access.GetTrip(tripID); err != nil {
		return nil, err
	}
	if err := s.Access.RequireMember(tripID, userID); err != nil {
		return nil, err
	}

	stage := models.TripStage{
		TripID:      tripID,
		Title:       input.Title,
		Description: input.Description,
		SortOrder:   input.SortOrder,
	}
	if err := s.DB.Create(&stage).Error; err != nil {
		return nil, err
	}
	return &stage, nil
}

func (s *StageService) ListForTrip(tripID, userID uuid.UUID) ([]models.TripStage, error) {
	if _, err := s.Access.GetTrip(tripID); err != nil {
		return nil, err
	}
	if err := s.Access.RequireMember(tripID, userID); err != nil {
		return nil, err
	}

	var stages []models.TripStage
	err := s.DB.Where("trip_id = ?", tripID).Order("sort_order asc").Find(&stages).Error
	if err != nil {
		return nil, err
	}
	return stages, nil
}

func (s *StageService) Update(id, userID uuid.UUID, update StageUpdate) (*models.TripStage, error) {
	tripID, err := s.Access.OwningTrip(KindTripStage, id)
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
		if err := s.DB.Model(&models.TripStage{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return nil, err
		}
	}

	var stage models.TripStage
	if err := s.DB.First(&stage, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &stage, nil
}

func (s *StageService) Delete(id, userID uuid.UUID) error {
	tripID, err := s.Access.OwningTrip(KindTripStage, id)
	if err != nil {
		return err
	}
	if err := s.Access.RequireMember(tripID, userID); err != nil {
		return err
	}
	return s.DB.Delete(&models.TripStage{}, "id = ?", id).Error
}
