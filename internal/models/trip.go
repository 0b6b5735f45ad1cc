package models

import "github.com/google/uuid"

type Trip struct {
	BaseModel
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	StartDate string    `json:"start_date" gorm:"type:varchar(10);not null"`
	EndDate   string    `json:"end_date" gorm:"type:varchar(10);not null"`
	GroupCode string    `json:"group_code" gorm:"type:varchar(20);uniqueIndex;not null"`
	CreatedBy uuid.UUID `json:"created_by" gorm:"type:uuid;not null;index"`

	Memberships []TripMembership  `json:"-" gorm:"foreignKey:TripID"`
	Checkpoints []Checkpoint      `json:"-" gorm:"foreignKey:TripID"`
	Categories  []PackingCategory `json:"-" gorm:"foreignKey:TripID"`
	Rituals     []Ritual          `json:"-" gorm:"foreignKey:TripID"`
	Stages      []TripStage       `json:"-" gorm:"foreignKey:TripID"`
}
