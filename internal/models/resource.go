package models

import "github.com/google/uuid"

type Resource struct {
	BaseModel
	Title       string    `json:"title" gorm:"type:varchar(255);not null"`
	Description string    `json:"description" gorm:"type:text;not null;default:''"`
	Type        string    `json:"type" gorm:"type:varchar(50);not null"`
	Category    string    `json:"category" gorm:"type:varchar(100);not null"`
	URL         *string   `json:"url,omitempty" gorm:"type:text"`
	Tags        []string  `json:"tags" gorm:"type:text;serializer:json"`
	IsPublic    bool      `json:"is_public" gorm:"not null;default:true;index"`
	CreatedBy   uuid.UUID `json:"created_by" gorm:"type:uuid;not null;index"`

	// Set once a file has been attached via the storage client.
	StoragePath *string `json:"-" gorm:"type:text"`
	FileName    *string `json:"file_name,omitempty" gorm:"type:varchar(255)"`
	MimeType    *string `json:"mime_type,omitempty" gorm:"type:varchar(255)"`
	FileSize    *int64  `json:"file_size,omitempty"`
}

// ResourceBookmark marks a resource as saved by a user. Exactly one
// row per (resource_id, user_id).
type ResourceBookmark struct {
	BaseModel
	ResourceID uuid.UUID `json:"resource_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_resource_user"`
	UserID     uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_resource_user"`
}
