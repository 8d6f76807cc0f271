package repositories

import (
	"context"
	"fixtureloader/pkg/database/models"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TxStore is the set of write primitives available inside one transaction.
// Every write of a upload goes through the same store instance, so a failure
// anywhere rolls back everything.
type TxStore interface {
	UpsertRound(ctx context.Context, round *models.Round) error
	CreateGames(ctx context.Context, games []*models.Game) error
	UpdateGradeAttributes(ctx context.Context, gradeID uint, roundCount int, startDate time.Time) error
}

// TxRunner runs a unit of work inside a single database transaction.
// The work either commits as a whole or rolls back as a whole.
type TxRunner interface {
	RunInTransaction(ctx context.Context, work func(store TxStore) error) error
}

// Transaction runner structure.
type txRunner struct {
	db *gorm.DB
}

// NewTxRunner creates a transaction runner on top of the given connection.
func NewTxRunner(db *gorm.DB) TxRunner {
	return &txRunner{db: db}
}

// RunInTransaction opens the transaction, hands the scoped store to the work
// and commits on success or rolls back on any error.
func (tr *txRunner) RunInTransaction(ctx context.Context, work func(store TxStore) error) error {
	return tr.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return work(&txStore{tx: tx})
	})
}

// Transaction scoped store structure.
type txStore struct {
	tx *gorm.DB
}

// UpsertRound inserts the round or, when the (grade, sequence) pair already
// exists, updates its provisional date. The round id is populated either way.
func (ts *txStore) UpsertRound(ctx context.Context, round *models.Round) error {
	return ts.tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "grade_id"}, {Name: "sequence_number"}}, // Use the composite key columns
		DoUpdates: clause.Assignments(map[string]interface{}{"provisional_date": round.ProvisionalDate}),
	}).Create(&round).Error
}

// CreateGames creates the games of a round. A game id that already exists has
// its dates updated instead, so resubmitting the same upload doesn't duplicate games.
func (ts *txStore) CreateGames(ctx context.Context, games []*models.Game) error {
	if len(games) == 0 {
		return nil
	}

	return ts.tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"round_id", "date", "provisional_dates", "game_type",
		}),
	}).CreateInBatches(&games, 100).Error
}

// UpdateGradeAttributes updates the rollup attributes of a grade.
func (ts *txStore) UpdateGradeAttributes(ctx context.Context, gradeID uint, roundCount int, startDate time.Time) error {
	return ts.tx.WithContext(ctx).Model(&models.Grade{}).
		Where("id = ?", gradeID).
		Updates(map[string]interface{}{
			"round_count": roundCount,
			"start_date":  startDate,
		}).Error
}
