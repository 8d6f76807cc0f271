package persistence

import (
	"context"
	"errors"
	"fixtureloader/ingestor/repositories"
	"fixtureloader/ingestor/validation"
	"fixtureloader/internal/testutil"
	"fixtureloader/pkg/database/models"
	"fmt"
	"time"
)

// In-memory store double with the same upsert and conflict semantics the
// database store provides.
type fakeStore struct {
	rounds      map[string]*models.Round
	games       map[string]*models.Game
	gradeAttrs  map[uint]GradeAttributes
	nextRoundID uint

	// Fails the batch containing this game id, to exercise the rollback path.
	failOnGameID string

	upsertCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		rounds:     make(map[string]*models.Round),
		games:      make(map[string]*models.Game),
		gradeAttrs: make(map[uint]GradeAttributes),
	}
}

func roundKey(gradeID uint, sequence int) string {
	return fmt.Sprintf("%d|%d", gradeID, sequence)
}

func (s *fakeStore) UpsertRound(ctx context.Context, round *models.Round) error {
	s.upsertCalls++

	key := roundKey(round.GradeID, round.SequenceNumber)
	if existing, ok := s.rounds[key]; ok {
		existing.ProvisionalDate = round.ProvisionalDate
		round.ID = existing.ID
		return nil
	}

	s.nextRoundID++
	round.ID = s.nextRoundID
	stored := *round
	s.rounds[key] = &stored

	return nil
}

func (s *fakeStore) CreateGames(ctx context.Context, games []*models.Game) error {
	for _, game := range games {
		if game.ID == s.failOnGameID {
			return errors.New(testutil.DatabaseError)
		}
	}

	for _, game := range games {
		stored := *game
		s.games[game.ID] = &stored
	}

	return nil
}

func (s *fakeStore) UpdateGradeAttributes(ctx context.Context, gradeID uint, roundCount int, startDate time.Time) error {
	s.gradeAttrs[gradeID] = GradeAttributes{
		RoundCount: roundCount,
		StartDate:  startDate,
	}
	return nil
}

// Transaction runner double: the work runs against the live store and every
// write is thrown away when the work fails, mirroring a rollback.
type fakeTxRunner struct {
	store *fakeStore
}

func (r *fakeTxRunner) RunInTransaction(ctx context.Context, work func(store repositories.TxStore) error) error {
	savedRounds := make(map[string]*models.Round, len(r.store.rounds))
	for key, round := range r.store.rounds {
		copied := *round
		savedRounds[key] = &copied
	}
	savedGames := make(map[string]*models.Game, len(r.store.games))
	for key, game := range r.store.games {
		copied := *game
		savedGames[key] = &copied
	}
	savedAttrs := make(map[uint]GradeAttributes, len(r.store.gradeAttrs))
	for key, attr := range r.store.gradeAttrs {
		savedAttrs[key] = attr
	}
	savedNextRoundID := r.store.nextRoundID

	if err := work(r.store); err != nil {
		r.store.rounds = savedRounds
		r.store.games = savedGames
		r.store.gradeAttrs = savedAttrs
		r.store.nextRoundID = savedNextRoundID
		return err
	}

	return nil
}

// A two grade upload with assigned game ids, ready for the coordinator.
func newTestAccepted() *validation.Accepted {
	return &validation.Accepted{
		SeasonID: 10,
		Grades: []validation.AcceptedGrade{
			{
				Grade: testutil.NewGrade(1, 10, "A1", 4),
				Rounds: []validation.AcceptedRound{
					{
						SequenceNumber:  1,
						ProvisionalDate: testutil.Date(2026, 5, 23),
						Games: []validation.AcceptedGame{
							{ID: "game-a1-r1-1", HomeTeamID: 1, AwayTeamID: 2, Date: testutil.Date(2026, 5, 23)},
							{ID: "game-a1-r1-2", HomeTeamID: 3, AwayTeamID: 6, Date: testutil.Date(2026, 5, 24)},
						},
					},
					{
						SequenceNumber:  2,
						ProvisionalDate: testutil.Date(2026, 5, 30),
						Games: []validation.AcceptedGame{
							{ID: "game-a1-r2-1", HomeTeamID: 2, AwayTeamID: 1, Date: testutil.Date(2026, 5, 30)},
						},
					},
				},
			},
			{
				Grade: testutil.NewGrade(2, 10, "B2", 10),
				Rounds: []validation.AcceptedRound{
					{
						SequenceNumber:  1,
						ProvisionalDate: testutil.Date(2026, 5, 23),
						Games: []validation.AcceptedGame{
							{ID: "game-b2-r1-1", HomeTeamID: 4, AwayTeamID: 5, Date: testutil.Date(2026, 5, 23)},
						},
					},
				},
			},
		},
	}
}

// Rollups matching the test upload, for a season with no existing rounds.
func newTestAttributes() map[uint]GradeAttributes {
	return map[uint]GradeAttributes{
		1: {RoundCount: 2, StartDate: testutil.Date(2026, 5, 23)},
		2: {RoundCount: 1, StartDate: testutil.Date(2026, 5, 23)},
	}
}
