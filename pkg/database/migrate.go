package database

import (
	"fixtureloader/pkg/database/models"
	"fmt"

	"gorm.io/gorm"
)

// RunMigrations automigrate the models and creates any custom index.
func RunMigrations(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Grade{},
		&models.Team{},
		&models.Round{},
		&models.Game{},
	)
	if err != nil {
		return fmt.Errorf("couldn't migrate the models: %v", err)
	}

	if err := CreateCustomIndexes(db); err != nil {
		return fmt.Errorf("couldn't create the custom indexes: %v", err)
	}

	return nil
}

// CreateCustomIndexes creates any necessary custom index.
func CreateCustomIndexes(db *gorm.DB) error {
	// Creates a index for resolving teams by name inside a grade.
	teamIndex := `
		CREATE INDEX IF NOT EXISTS idx_team_grade_name ON teams (
		  grade_id,
		  name text_pattern_ops
		) WHERE name != '';`
	return db.Exec(teamIndex).Error
}
