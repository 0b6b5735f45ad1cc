package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/ziyaarah/backend/internal/models"
	"gorm.io/gorm"
)

type ResourceService struct {
	DB *gorm.DB
}

func NewResourceService(db *gorm.DB) *ResourceService {
	return &ResourceService{DB: db}
}

type CreateResourceInput struct {
	Title       string
	Description string
	Type        string
	Category    string
	URL         *string
	Tags        []string
	IsPublic    bool
}

// ResourceFilter narrows the public resource listing. Empty fields
// match everything.
type ResourceFilter struct {
	Category string
	Type     string
	Search   string
}

// List returns public resources matching the filter, newest first. The
// search term matches title, description, and tags case-insensitively.
func (s *ResourceService) List(filter ResourceFilter) ([]models.Resource, error) {
	query := s.DB.Where("is_public = ?", true)
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}

	var resources []models.Resource
	if err := query.Order("created_at DESC").Find(&resources).Error; err != nil {
		return nil, err
	}

	if filter.Search == "" {
		return resources, nil
	}

	// Tag matching happens in memory because tags are stored as a
	// JSON-serialized list.
	term := strings.ToLower(filter.Search)
	matched := resources[:0]
	for _, r := range resources {
		if strings.Contains(strings.ToLower(r.Title), term) ||
			strings.Contains(strings.ToLower(r.Description), term) ||
			tagsMatch(r.Tags, term) {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

func (s *ResourceService) Get(id uuid.UUID) (*models.Resource, error) {
	var resource models.Resource
	if err := s.DB.First(&resource, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, err
	}
	return &resource, nil
}

func (s *ResourceService) Create(userID uuid.UUID, input CreateResourceInput) (*models.Resource, error) {
	resource := models.Resource{
		Title:       input.Title,
		Description: input.Description,
		Type:        input.Type,
		Category:    input.Category,
		URL:         input.URL,
		Tags:        input.Tags,
		IsPublic:    input.IsPublic,
		CreatedBy:   userID,
	}
	if resource.Tags == nil {
		resource.Tags = []string{}
	}
	if err := s.DB.Create(&resource).Error; err != nil {
		return nil, err
	}
	return &resource, nil
}

// ResourceUpdate carries optional field assignments. Nil means leave
// unchanged; Tags replaces the whole list when present.
type ResourceUpdate struct {
	Title       *string
	Description *string
	Type        *string
	Category    *string
	URL         *string
	Tags        []string
	IsPublic    *bool
}

// Update applies the present fields. Creator only. The row is loaded
// and saved whole because tags go through the JSON serializer.
func (s *ResourceService) Update(id, userID uuid.UUID, update ResourceUpdate) (*models.Resource, error) {
	resource, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if resource.CreatedBy != userID {
		return nil, ErrNotAuthorized
	}

	if update.Title != nil {
		resource.Title = *update.Title
	}
	if update.Description != nil {
		resource.Description = *update.Description
	}
	if update.Type != nil {
		resource.Type = *update.Type
	}
	if update.Category != nil {
		resource.Category = *update.Category
	}
	if update.URL != nil {
		resource.URL = update.URL
	}
	if update.Tags != nil {
		resource.Tags = update.Tags
	}
	if update.IsPublic != nil {
		resource.IsPublic = *update.IsPublic
	}

	if err := s.DB.Save(resource).Error; err != nil {
		return nil, err
	}
	return resource, nil
}

// AttachFile records the stored object's metadata against the resource.
// The actual bytes have already been written to object storage by the
// handler.
func (s *ResourceService) AttachFile(id, userID uuid.UUID, storagePath, fileName, mimeType string, size int64) (*models.Resource, error) {
	resource, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if resource.CreatedBy != userID {
		return nil, ErrNotAuthorized
	}

	fields := map[string]interface{}{
		"storage_path": storagePath,
		"file_name":    fileName,
		"mime_type":    mimeType,
		"file_size":    size,
	}
	if err := s.DB.Model(&models.Resource{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return nil, err
	}
	return s.Get(id)
}

// Delete removes the resource row and its bookmarks together. Creator
// only. The stored file, if any, is removed by the handler after this
// succeeds.
func (s *ResourceService) Delete(id, userID uuid.UUID) (*models.Resource, error) {
	resource, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if resource.CreatedBy != userID {
		return nil, ErrNotAuthorized
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("resource_id = ?", id).Delete(&models.ResourceBookmark{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Resource{}, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return resource, nil
}

// Bookmark saves a resource for the user. A second bookmark for the
// same pair is a strict conflict, mirroring AddMember.
func (s *ResourceService) Bookmark(resourceID, userID uuid.UUID) (*models.ResourceBookmark, error) {
	if _, err := s.Get(resourceID); err != nil {
		return nil, err
	}

	bookmarked, err := s.IsBookmarked(resourceID, userID)
	if err != nil {
		return nil, err
	}
	if bookmarked {
		return nil, ErrAlreadyBookmarked
	}

	bookmark := models.ResourceBookmark{
		ResourceID: resourceID,
		UserID:     userID,
	}
	if err := s.DB.Create(&bookmark).Error; err != nil {
		// The unique (resource_id, user_id) index closes the
		// check-then-insert race; anything else propagates.
		if again, checkErr := s.IsBookmarked(resourceID, userID); checkErr == nil && again {
			return nil, ErrAlreadyBookmarked
		}
		return nil, err
	}
	return &bookmark, nil
}

// RemoveBookmark deletes the user's bookmark for the resource.
func (s *ResourceService) RemoveBookmark(resourceID, userID uuid.UUID) error {
	var bookmark models.ResourceBookmark
	err := s.DB.First(&bookmark, "resource_id = ? AND user_id = ?", resourceID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookmarkNotFound
		}
		return err
	}
	return s.DB.Delete(&models.ResourceBookmark{}, "id = ?", bookmark.ID).Error
}

// ListBookmarked returns the resources the user has saved, newest
// first.
func (s *ResourceService) ListBookmarked(userID uuid.UUID) ([]models.Resource, error) {
	var resources []models.Resource
	err := s.DB.
		Joins("JOIN resource_bookmarks ON resource_bookmarks.resource_id = resources.id").
		Where("resource_bookmarks.user_id = ?", userID).
		Order("resources.created_at DESC").
		Find(&resources).Error
	if err != nil {
		return nil, err
	}
	return resources, nil
}

func (s *ResourceService) IsBookmarked(resourceID, userID uuid.UUID) (bool, error) {
	var count int64
	err := s.DB.Model(&models.ResourceBookmark{}).
		Where("resource_id = ? AND user_id = ?", resourceID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func tagsMatch(tags []string, term string) bool {
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}
