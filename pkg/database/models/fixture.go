package models

import (
	"time"
)

// Database model for a round of games inside a grade.
// The composite index is the upsert key, a round can never be duplicated for the same grade.
type Round struct {
	ID              uint `gorm:"primaryKey"`
	GradeID         uint `gorm:"not null;index:idx_grade_sequence,unique"`
	SequenceNumber  int  `gorm:"not null;index:idx_grade_sequence,unique"`
	ProvisionalDate time.Time

	// Foreign keys.
	Grade Grade `gorm:"GradeID"`
}

// Database model for a single game inside a round.
// The id is supplied by the caller and works as the idempotency key for resubmissions.
type Game struct {
	ID               string `gorm:"type:char(36);primaryKey"`
	RoundID          uint   `gorm:"not null;index"`
	HomeTeamID       uint   `gorm:"not null"`
	AwayTeamID       uint   `gorm:"not null"`
	Date             time.Time
	ProvisionalDates []time.Time `gorm:"serializer:json"`
	GameType         string      `gorm:"type:varchar(30)"`

	// Foreign keys.
	Round    Round `gorm:"RoundID"`
	HomeTeam Team  `gorm:"HomeTeamID"`
	AwayTeam Team  `gorm:"AwayTeamID"`
}
