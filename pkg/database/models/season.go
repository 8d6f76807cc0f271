package models

import (
	"time"
)

// Database model for a grade (a competitive division inside a season).
// Grades are created by the season management flow, the ingestor only reads and updates them.
type Grade struct {
	ID         uint   `gorm:"primaryKey"`
	Code       string `gorm:"type:varchar(20);not null;index:idx_season_grade_code,unique"`
	SeasonID   uint   `gorm:"not null;index:idx_season_grade_code,unique"`
	RoundCount int
	StartDate  *time.Time
}

// Database model for a team inside a grade.
// Name uniqueness inside the grade is handled by the team registration flow.
type Team struct {
	ID      uint   `gorm:"primaryKey"`
	Name    string `gorm:"type:varchar(100);not null"`
	GradeID uint   `gorm:"not null;index"`

	// Foreign keys.
	Grade Grade `gorm:"GradeID"`
}
