package database

import (
	"fmt"

	"github.com/ziyaarah/backend/internal/config"
	"github.com/ziyaarah/backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(cfg config.DBConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Trip{},
		&models.TripMembership{},
		&models.Checkpoint{},
		&models.PackingCategory{},
		&models.PackingItem{},
		&models.Ritual{},
		&models.RitualStep{},
		&models.TripStage{},
		&models.Resource{},
		&models.ResourceBookmark{},
		&models.AuditLog{},
	)
}
