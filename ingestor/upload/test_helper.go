package upload

import (
	"context"
	"fixtureloader/ingestor/events"
	"fixtureloader/ingestor/persistence"
	"fixtureloader/ingestor/repositories"
	"fixtureloader/ingestor/validation"
	validationtestutil "fixtureloader/ingestor/validation/testutil"
	"fixtureloader/internal/testutil"
	"fixtureloader/pkg/database/models"
	"fmt"
	"time"

	"github.com/stretchr/testify/mock"
)

// ============================================================================
// Mock implementations used on the upload service tests.
// ============================================================================

// Redis mock implementation for the season lock.
type MockUploadRedis struct {
	mock.Mock
}

func (m *MockUploadRedis) SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, value, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockUploadRedis) Del(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

// Blob fetcher mock implementation.
type MockUploadFetcher struct {
	mock.Mock
}

func (m *MockUploadFetcher) FetchUpload(ctx context.Context, objectKey string) ([]byte, error) {
	args := m.Called(ctx, objectKey)
	return args.Get(0).([]byte), args.Error(1)
}

// Event emitter mock implementation.
type MockEventEmitter struct {
	mock.Mock
}

func (m *MockEventEmitter) EmitFixturesPublished(ctx context.Context, event events.FixturesPublished) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// In-memory unit of work backing the end to end tests.
type memStore struct {
	rounds      map[string]*models.Round
	games       map[string]*models.Game
	gradeAttrs  map[uint]persistence.GradeAttributes
	nextRoundID uint
}

func newMemStore() *memStore {
	return &memStore{
		rounds:     make(map[string]*models.Round),
		games:      make(map[string]*models.Game),
		gradeAttrs: make(map[uint]persistence.GradeAttributes),
	}
}

func (s *memStore) UpsertRound(ctx context.Context, round *models.Round) error {
	key := fmt.Sprintf("%d|%d", round.GradeID, round.SequenceNumber)
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

func (s *memStore) CreateGames(ctx context.Context, games []*models.Game) error {
	for _, game := range games {
		stored := *game
		s.games[game.ID] = &stored
	}
	return nil
}

func (s *memStore) UpdateGradeAttributes(ctx context.Context, gradeID uint, roundCount int, startDate time.Time) error {
	s.gradeAttrs[gradeID] = persistence.GradeAttributes{
		RoundCount: roundCount,
		StartDate:  startDate,
	}
	return nil
}

type memTxRunner struct {
	store *memStore
}

func (r *memTxRunner) RunInTransaction(ctx context.Context, work func(store repositories.TxStore) error) error {
	return work(r.store)
}

// Build a service wired with mocked repositories for the season and a
// in-memory store for the writes.
func newTestService(maxRows int) (*Service, *MockUploadRedis, *MockEventEmitter, *memStore) {
	mockGrades := new(validationtestutil.MockGradeRepository)
	mockTeams := new(validationtestutil.MockTeamRepository)
	mockGames := new(validationtestutil.MockGameRepository)
	mockRounds := new(validationtestutil.MockRoundRepository)

	grades := []models.Grade{testutil.NewGrade(1, 10, "A1", 4)}
	teams := []models.Team{
		testutil.NewTeam(1, 1, "Lions"),
		testutil.NewTeam(2, 1, "Tigers"),
		testutil.NewTeam(3, 1, "Bears"),
		testutil.NewTeam(4, 1, "Wolves"),
	}
	existence := map[string]bool{"A1": false}

	mockGrades.On("GetGradesByCodes", mock.Anything, uint(10), mock.Anything).Return(grades, nil).Maybe()
	mockTeams.On("GetTeamsBySeasonID", mock.Anything, uint(10)).Return(teams, nil).Maybe()
	mockGames.On("GetFixtureExistenceByGradeCodes", mock.Anything, uint(10), mock.Anything).Return(existence, nil).Maybe()
	mockRounds.On("GetExistingRoundsByGradeIDs", mock.Anything, mock.Anything).Return(map[uint][]models.Round{}, nil).Maybe()

	mockRedis := new(MockUploadRedis)
	mockEmitter := new(MockEventEmitter)
	store := newMemStore()

	service := &Service{
		engine:      validation.NewEngine(validation.NewContextLoader(mockGrades, mockTeams, mockGames)),
		coordinator: persistence.NewCoordinator(&memTxRunner{store: store}),
		rounds:      mockRounds,
		redis:       mockRedis,
		emitter:     mockEmitter,
		maxRows:     maxRows,
	}

	return service, mockRedis, mockEmitter, store
}
