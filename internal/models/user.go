package models

type User struct {
	BaseModel
	Name         string  `json:"name" gorm:"type:varchar(100);not null"`
	Email        string  `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string  `json:"-" gorm:"type:text;not null"`
	AvatarURL    *string `json:"avatar_url,omitempty" gorm:"type:text"`

	Memberships []TripMembership `json:"-" gorm:"foreignKey:UserID"`
}
