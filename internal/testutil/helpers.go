package testutil

import (
	"fixtureloader/pkg/database/models"
	"testing"
	"time"
)

const DatabaseError = "database error occurred"

// Assert the expectations of all mocks.
func VerifyAllMocks(t *testing.T, mocks ...any) {
	t.Helper()

	for _, m := range mocks {
		if mockObj, ok := m.(interface{ AssertExpectations(*testing.T) bool }); ok {
			mockObj.AssertExpectations(t)
		}
	}
}

// NewGrade builds a grade for seeding a test season.
func NewGrade(id uint, seasonID uint, code string, roundCount int) models.Grade {
	return models.Grade{
		ID:         id,
		Code:       code,
		SeasonID:   seasonID,
		RoundCount: roundCount,
	}
}

// NewTeam builds a team for seeding a test grade.
func NewTeam(id uint, gradeID uint, name string) models.Team {
	return models.Team{
		ID:      id,
		Name:    name,
		GradeID: gradeID,
	}
}

// NewRound builds a existing round for seeding a test grade.
func NewRound(id uint, gradeID uint, sequence int, date time.Time) models.Round {
	return models.Round{
		ID:              id,
		GradeID:         gradeID,
		SequenceNumber:  sequence,
		ProvisionalDate: date,
	}
}

// Date builds a day precision date the way uploaded dates parse.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
