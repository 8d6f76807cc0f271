package repositories

import (
	"context"
	"fixtureloader/pkg/database/models"

	"gorm.io/gorm"
)

// RoundRepository is the public interface for accessing the round repository.
type RoundRepository interface {
	GetExistingRoundsByGradeIDs(ctx context.Context, gradeIDs []uint) (map[uint][]models.Round, error)
}

// Round repository structure.
type roundRepository struct {
	db *gorm.DB
}

// NewRoundRepository creates a round repository.
func NewRoundRepository(db *gorm.DB) RoundRepository {
	return &roundRepository{db: db}
}

// GetExistingRoundsByGradeIDs returns the already persisted rounds of each grade,
// ordered by sequence number.
func (rr *roundRepository) GetExistingRoundsByGradeIDs(ctx context.Context, gradeIDs []uint) (map[uint][]models.Round, error) {
	roundsByGrade := make(map[uint][]models.Round, len(gradeIDs))

	for i := 0; i < len(gradeIDs); i += batchSize {
		end := min(i+batchSize, len(gradeIDs))

		var batchRounds []models.Round
		result := rr.db.WithContext(ctx).
			Where("grade_id IN (?)", gradeIDs[i:end]).
			Order("grade_id, sequence_number").
			Find(&batchRounds)
		if result.Error != nil {
			return nil, result.Error
		}

		for _, round := range batchRounds {
			roundsByGrade[round.GradeID] = append(roundsByGrade[round.GradeID], round)
		}
	}

	return roundsByGrade, nil
}
