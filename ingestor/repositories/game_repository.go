package repositories

import (
	"context"
	"fixtureloader/pkg/database/models"

	"gorm.io/gorm"
)

// GameRepository is the public interface for accessing the game repository.
type GameRepository interface {
	GetFixtureExistenceByGradeCodes(ctx context.Context, seasonID uint, codes []string) (map[string]bool, error)
}

// Game repository structure.
type gameRepository struct {
	db *gorm.DB
}

// NewGameRepository creates a game repository.
func NewGameRepository(db *gorm.DB) GameRepository {
	return &gameRepository{db: db}
}

// GetFixtureExistenceByGradeCodes returns, for each grade code, whether the grade
// already has at least one persisted game. Codes without any game map to false.
func (gr *gameRepository) GetFixtureExistenceByGradeCodes(ctx context.Context, seasonID uint, codes []string) (map[string]bool, error) {
	existence := make(map[string]bool, len(codes))
	for _, code := range codes {
		existence[code] = false
	}

	for i := 0; i < len(codes); i += batchSize {
		end := min(i+batchSize, len(codes))

		var codesWithGames []string
		result := gr.db.WithContext(ctx).
			Model(&models.Game{}).
			Distinct("grades.code").
			Joins("JOIN rounds ON rounds.id = games.round_id").
			Joins("JOIN grades ON grades.id = rounds.grade_id").
			Where("grades.season_id = ? AND grades.code IN (?)", seasonID, codes[i:end]).
			Pluck("grades.code", &codesWithGames)
		if result.Error != nil {
			return nil, result.Error
		}

		for _, code := range codesWithGames {
			existence[code] = true
		}
	}

	return existence, nil
}
