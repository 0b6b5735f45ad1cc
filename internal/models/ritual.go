package models

import "github.com/google/uuid"

type Ritual struct {
	BaseModel
	TripID      uuid.UUID `json:"trip_id" gorm:"type:uuid;not null;index"`
	Title       string    `json:"title" gorm:"type:varchar(255);not null"`
	Description string    `json:"description" gorm:"type:text;not null;default:''"`
	SortOrder   int       `json:"order" gorm:"column:sort_order;not null;default:0"`
	CreatedBy   uuid.UUID `json:"created_by" gorm:"type:uuid;not null"`

	Steps []RitualStep `json:"steps,omitempty" gorm:"foreignKey:RitualID"`
}

// RitualStep belongs to a ritual; its owning trip is reached through
// the ritual (two-hop ownership).
type RitualStep struct {
	BaseModel
	RitualID  uuid.UUID `json:"ritual_id" gorm:"type:uuid;not null;index"`
	Title     string    `json:"title" gorm:"type:varchar(255);not null"`
	Type      string    `json:"type" gorm:"type:varchar(50);not null"`
	Completed bool      `json:"completed" gorm:"not null;default:false"`
	SortOrder int       `json:"order" gorm:"column:sort_order;not null;default:0"`
	CreatedBy uuid.UUID `json:"created_by" gorm:"type:uuid;not null"`
}
