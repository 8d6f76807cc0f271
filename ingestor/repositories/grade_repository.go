package repositories

import (
	"context"
	"fixtureloader/pkg/database/models"

	"gorm.io/gorm"
)

const batchSize = 1000

// GradeRepository is the public interface for accessing the grade repository.
type GradeRepository interface {
	GetGradesByCodes(ctx context.Context, seasonID uint, codes []string) ([]models.Grade, error)
}

// Grade repository structure.
type gradeRepository struct {
	db *gorm.DB
}

// NewGradeRepository creates a grade repository.
func NewGradeRepository(db *gorm.DB) GradeRepository {
	return &gradeRepository{db: db}
}

// GetGradesByCodes returns every grade of the season matching one of the given codes.
// One batched query per chunk, never one query per code.
func (gr *gradeRepository) GetGradesByCodes(ctx context.Context, seasonID uint, codes []string) ([]models.Grade, error) {
	var allGrades []models.Grade

	for i := 0; i < len(codes); i += batchSize {
		end := min(i+batchSize, len(codes))

		var batchGrades []models.Grade
		result := gr.db.WithContext(ctx).
			Where("season_id = ? AND code IN (?)", seasonID, codes[i:end]).
			Find(&batchGrades)
		if result.Error != nil {
			return nil, result.Error
		}

		allGrades = append(allGrades, batchGrades...)
	}

	return allGrades, nil
}
