package domain

import "gorm.io/gorm"

// AutoMigrate creates or updates the run record tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Invoice{}, &GeneratedArtifact{})
}
