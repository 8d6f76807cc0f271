package testutil

import (
	"context"
	"fixtureloader/pkg/database/models"

	"github.com/stretchr/testify/mock"
)

// ============================================================================
// Mock implementations of the repositories used by the validation tests.
// ============================================================================

// Grade repository mock implementation.
type MockGradeRepository struct {
	mock.Mock
}

func (m *MockGradeRepository) GetGradesByCodes(ctx context.Context, seasonID uint, codes []string) ([]models.Grade, error) {
	args := m.Called(ctx, seasonID, codes)
	return args.Get(0).([]models.Grade), args.Error(1)
}

// Team repository mock implementation.
type MockTeamRepository struct {
	mock.Mock
}

func (m *MockTeamRepository) GetTeamsBySeasonID(ctx context.Context, seasonID uint) ([]models.Team, error) {
	args := m.Called(ctx, seasonID)
	return args.Get(0).([]models.Team), args.Error(1)
}

// Game repository mock implementation.
type MockGameRepository struct {
	mock.Mock
}

func (m *MockGameRepository) GetFixtureExistenceByGradeCodes(ctx context.Context, seasonID uint, codes []string) (map[string]bool, error) {
	args := m.Called(ctx, seasonID, codes)
	return args.Get(0).(map[string]bool), args.Error(1)
}

// Round repository mock implementation.
type MockRoundRepository struct {
	mock.Mock
}

func (m *MockRoundRepository) GetExistingRoundsByGradeIDs(ctx context.Context, gradeIDs []uint) (map[uint][]models.Round, error) {
	args := m.Called(ctx, gradeIDs)
	return args.Get(0).(map[uint][]models.Round), args.Error(1)
}
