package repositories

import (
	"context"
	"fixtureloader/pkg/database/models"

	"gorm.io/gorm"
)

// TeamRepository is the public interface for accessing the team repository.
type TeamRepository interface {
	GetTeamsBySeasonID(ctx context.Context, seasonID uint) ([]models.Team, error)
}

// Team repository structure.
type teamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a team repository.
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

// GetTeamsBySeasonID returns every team of every grade of the season in one query.
func (tr *teamRepository) GetTeamsBySeasonID(ctx context.Context, seasonID uint) ([]models.Team, error) {
	var teams []models.Team

	result := tr.db.WithContext(ctx).
		Joins("JOIN grades ON grades.id = teams.grade_id").
		Where("grades.season_id = ?", seasonID).
		Find(&teams)
	if result.Error != nil {
		return nil, result.Error
	}

	return teams, nil
}
