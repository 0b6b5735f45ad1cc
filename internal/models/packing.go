package models

import "github.com/google/uuid"

type PackingCategory struct {
	BaseModel
	TripID    uuid.UUID `json:"trip_id" gorm:"type:uuid;not null;index"`
	Title     string    `json:"title" gorm:"type:varchar(255);not null"`
	SortOrder int       `json:"order" gorm:"column:sort_order;not null;default:0"`
	CreatedBy uuid.UUID `json:"created_by" gorm:"type:uuid;not null"`

	Items []PackingItem `json:"items,omitempty" gorm:"foreignKey:CategoryID"`
}

// PackingItem belongs to a category, not directly to a trip; its owning
// trip is reached through the category (two-hop ownership).
type PackingItem struct {
	BaseModel
	CategoryID uuid.UUID `json:"category_id" gorm:"type:uuid;not null;index"`
	Name       string    `json:"name" gorm:"type:varchar(255);not null"`
	Quantity   *int      `json:"quantity,omitempty"`
	Essential  bool      `json:"essential" gorm:"not null;default:false"`
	Packed     bool      `json:"packed" gorm:"not null;default:false"`
	CreatedBy  uuid.UUID `json:"created_by" gorm:"type:uuid;not null"`
}
