package services

import (
	"github.com/google/uuid"
	"github.com/ziyaarah/backend/internal/models"
	"gorm.io/gorm"
)

type PackingService struct {
	DB     *gorm.DB
	Access *AccessService
}

func NewPackingService(db *gorm.DB, access *AccessService) *PackingService {
	return &PackingService{DB: db, Access: access}
}

type CreateCategoryInput struct {
	Title     string
	SortOrder int
}

type CategoryUpdate struct {
	Title     *string
	SortOrder *int
}

type CreateItemInput struct {
	Name      string
	Quantity  *int
	Essential bool
}

type ItemUpdate struct {
	Name      *string
	Quantity  *int
	Essential *bool
	Packed    *bool
}

func (s *PackingService) CreateCategory(tripID, userID uuid.UUID, input CreateCategoryInput) (*models.PackingCategory, error) {
	if _, err := s.Access.GetTrip(tripID); err != nil {
		return nil, err
	}
	if err := s.Access.RequireMember(tripID, userID); err != nil {
		return nil, err
	}

	category := models.PackingCategory{
		TripID:    tripID,
		Title:     input.Title,
		SortOrder: input.SortOrder,
		CreatedBy: userID,
	}
	if err := s.DB.Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// ListForTrip returns the trip's categories in sort order, each with
// its items.
func (s *PackingService) ListForTrip(tripID, userID uuid.UUID) ([]models.PackingCategory, error) {
	if _, err := s.Access.GetTrip(tripID); err != nil {
		return nil, err
	}
	if err := s.Access.RequireMember(tripID, userID); err != nil {
		return nil, err
	}

	var categories []models.PackingCategory
	err := s.DB.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("packing_items.created_at asc")
	}).
		Where("trip_id = ?", tripID).
		Order("sort_order asc").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *PackingService) UpdateCategory(id, userID uuid.UUID, update CategoryUpdate) (*models.PackingCategory, error) {
	tripID, err := s.Access.OwningTrip(KindPackingCategory, id)
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
	if update.SortOrder != nil {
		fields["sort_order"] = *update.SortOrder
	}
	if len(fields) > 0 {
		if err := s.DB.Model(&models.PackingCategory{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return nil, err
		}
	}

	var category models.PackingCategory
	if err := s.DB.First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory removes the category and its items together.
func (s *PackingService) DeleteCategory(id, userID uuid.UUID) error {
	tripID, err := s.Access.OwningTrip(KindPackingCategory, id)
	if err != nil {
		return err
	}
	if err := s.Access.RequireMember(tripID, userID); err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&models.PackingItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.PackingCategory{}, "id = ?", id).Error
	})
}

// CreateItem gates through the category's owning trip (two hops).
func (s *PackingService) CreateItem(categoryID, userID uuid.UUID, input CreateItemInput) (*models.PackingItem, error) {
	tripID, err := s.Access.OwningTrip(KindPackingCategory, categoryID)
	if err != nil {
		return nil, err
	}
	if err := s.Access.RequireMember(tripID, userID); err != nil {
		return nil, err
	}

	item := models.PackingItem{
		CategoryID: categoryID,
		Name:       input.Name,
		Quantity:   input.Quantity,
		Essential:  input.Essential,
		Packed:     false,
		CreatedBy:  userID,
	}
	if err := s.DB.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *PackingService) UpdateItem(id, userID uuid.UUID, update ItemUpdate) (*models.PackingItem, error) {
	tripID, err := s.Access.OwningTrip(KindPackingItem, id)
	if err != nil {
		return nil, err
	}
	if err := s.Access.RequireMember(tripID, userID); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if update.Quantity != nil {
		fields["quantity"] = *update.Quantity
	}
	if update.Essential != nil {
		fields["essential"] = *update.Essential
	}
	if update.Packed != nil {
		fields["packed"] = *update.Packed
	}
	if len(fields) > 0 {
		if err := s.DB.Model(&models.PackingItem{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return nil, err
		}
	}

	var item models.PackingItem
	if err := s.DB.First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *PackingService) DeleteItem(id, userID uuid.UUID) error {
	tripID, err := s.Access.OwningTrip(KindPackingItem, id)
	if err != nil {
		return err
	}
	if err := s.Access.RequireMember(tripID, userID); err != nil {
		return err
	}
	return s.DB.Delete(&models.PackingItem{}, "id = ?", id).Error
}
