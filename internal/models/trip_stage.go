package models

import "github.com/google/uuid"

type TripStage struct {
	BaseModel
	TripID      uuid.UUID `json:"trip_id" gorm:"type:uuid;not null;index"`
	Title       string    `json:"title" gorm:"type:varchar(255);not null"`
	Description string    `json:"description" gorm:"type:text;not null;default:''"`
	SortOrder   int       `json:"order" gorm:"column:sort_order;not null;default:0"`
}
