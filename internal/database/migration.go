package database

import (
	"fmt"

	"github.com/tw092669-ctrl/gecko/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Mantra{},
		&models.PracticeLog{},
		&models.Setting{},
		&models.Category{},
		&models.Product{},
		&models.RefValue{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
