package models

import (
	"time"

	"github.com/google/uuid"
)

type MembershipRole string

const (
	RoleOwner  MembershipRole = "owner"
	RoleMember MembershipRole = "member"
)

// TripMembership is the authorization record for every trip-scoped
// operation. Exactly one row per (trip_id, user_id), and exactly one
// owner row per trip, created together with the trip itself.
type TripMembership struct {
	BaseModel
	TripID   uuid.UUID      `json:"trip_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_trip_user"`
	UserID   uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_trip_user"`
	Role     MembershipRole `json:"role" gorm:"type:varchar(20);not null;default:'member'"`
	JoinedAt time.Time      `json:"joined_at" gorm:"not null"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Trip Trip `json:"-" gorm:"foreignKey:TripID"`
}
