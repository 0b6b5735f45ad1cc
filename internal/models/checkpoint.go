package models

import "github.com/google/uuid"

type Checkpoint struct {
	BaseModel
	TripID      uuid.UUID `json:"trip_id" gorm:"type:uuid;not null;index"`
	Title       string    `json:"title" gorm:"type:varchar(255);not null"`
	Type        string    `json:"type" gorm:"type:varchar(50);not null"`
	Description string    `json:"description" gorm:"type:text;not null;default:''"`
	Completed   bool      `json:"completed" gorm:"not null;default:false"`
	CreatedBy   uuid.UUID `json:"created_by" gorm:"type:uuid;not null"`
}
