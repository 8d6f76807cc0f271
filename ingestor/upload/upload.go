// Package upload sequences one upload end to end:
// lock, decode, validate, persist, emit and report.
package upload

import (
	"context"
	"errors"
	"fixtureloader/ingestor/decode"
	"fixtureloader/ingestor/events"
	"fixtureloader/ingestor/fixture"
	"fixtureloader/ingestor/persistence"
	"fixtureloader/ingestor/repositories"
	"fixtureloader/ingestor/validation"
	appConfig "fixtureloader/pkg/config"
	"fixtureloader/pkg/logger"
	"fixtureloader/pkg/messages"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const lockDuration = 10 * time.Minute

// UploadRedisClient is the redis surface needed to serialize uploads per season.
type UploadRedisClient interface {
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Del(ctx context.Context, keys ...string) error
}

// UploadFetcher fetches the raw upload bytes from the blob store.
type UploadFetcher interface {
	FetchUpload(ctx context.Context, objectKey string) ([]byte, error)
}

// EventEmitter emits the domain events after a successful run.
type EventEmitter interface {
	EmitFixturesPublished(ctx context.Context, event events.FixturesPublished) error
}

// Service is the upload orchestrator.
type Service struct {
	engine      *validation.Engine
	coordinator *persistence.Coordinator
	rounds      repositories.RoundRepository
	redis       UploadRedisClient
	fetcher     UploadFetcher
	emitter     EventEmitter
	logger      *logger.ReportLogger
	maxRows     int
}

// ServiceDeps is the dependency list for the upload service.
type ServiceDeps struct {
	DB      *gorm.DB
	Redis   UploadRedisClient
	Fetcher UploadFetcher
	Emitter EventEmitter
	Logger  *logger.ReportLogger
}

// NewService creates a upload service with its full processing chain.
func NewService(deps *ServiceDeps) *Service {
	loader := validation.NewContextLoader(
		repositories.NewGradeRepository(deps.DB),
		repositories.NewTeamRepository(deps.DB),
		repositories.NewGameRepository(deps.DB),
	)

	return &Service{
		engine:      validation.NewEngine(loader),
		coordinator: persistence.NewCoordinator(repositories.NewTxRunner(deps.DB)),
		rounds:      repositories.NewRoundRepository(deps.DB),
		redis:       deps.Redis,
		fetcher:     deps.Fetcher,
		emitter:     deps.Emitter,
		logger:      deps.Logger,
		maxRows:     appConfig.Upload.MaxRows,
	}
}

// ProcessRequest is one upload to run end to end.
// Either the raw data or the object key of the upload must be set.
type ProcessRequest struct {
	SeasonID        uint
	CompetitionType string
	ObjectKey       string
	Data            []byte
}

// ProcessResult is the outcome summary of one upload.
type ProcessResult struct {
	Accepted   bool
	RowCount   int
	Violations []fixture.Violation
	GradeIDs   []uint
	TeamIDs    []uint
	GameIDs    []string
	ReportKey  string
}

// ValidateUpload validates the rows against the season state.
// Returns the accepted set or the full violation list, never both.
func (s *Service) ValidateUpload(ctx context.Context, rows []fixture.Row, seasonID uint) (*validation.Accepted, []fixture.Violation, error) {
	return s.engine.Run(ctx, rows, seasonID)
}

// PersistAccepted persists a accepted upload: fetches the already existing
// rounds, computes the grade rollups, assigns the game ids and hands everything
// to the coordinator for the transactional write.
func (s *Service) PersistAccepted(ctx context.Context, accepted *validation.Accepted, competitionType string) (*persistence.Result, error) {
	gradeIDs := make([]uint, 0, len(accepted.Grades))
	for _, acceptedGrade := range accepted.Grades {
		gradeIDs = append(gradeIDs, acceptedGrade.Grade.ID)
	}

	existingRounds, err := s.rounds.GetExistingRoundsByGradeIDs(ctx, gradeIDs)
	if err != nil {
		return nil, fmt.Errorf("couldn't get the existing rounds: %v", err)
	}

	assignGameIDs(accepted)
	attributes := persistence.ComputeGradeAttributes(accepted, existingRounds)

	return s.coordinator.Persist(ctx, accepted, competitionType, attributes)
}

// ProcessUpload runs one upload end to end under the season lock.
func (s *Service) ProcessUpload(ctx context.Context, request *ProcessRequest) (*ProcessResult, error) {
	lockKey := fmt.Sprintf("upload:season:%d", request.SeasonID)

	lockAcquired, err := s.redis.SetNX(ctx, lockKey, "processing", lockDuration)
	if err != nil {
		return nil, fmt.Errorf("couldn't check the season lock on redis: %w", err)
	}
	if !lockAcquired {
		return nil, errors.New(messages.OperationInProgress)
	}
	defer s.redis.Del(ctx, lockKey)

	result, err := s.runLocked(ctx, request)
	if err != nil {
		s.errorf("upload failed: %v", err)
		return nil, err
	}

	return result, nil
}

// Run the upload while holding the season lock.
func (s *Service) runLocked(ctx context.Context, request *ProcessRequest) (*ProcessResult, error) {
	data := request.Data
	if len(data) == 0 && request.ObjectKey != "" {
		fetched, err := s.fetcher.FetchUpload(ctx, request.ObjectKey)
		if err != nil {
			return nil, err
		}
		data = fetched
	}

	rows, err := decode.DecodeUpload(data)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, errors.New(messages.EmptyUpload)
	}

	// The row ceiling is a processing policy, the validation core doesn't enforce it.
	if len(rows) > s.maxRows {
		return nil, fmt.Errorf(messages.TooManyRows, len(rows), s.maxRows)
	}

	s.infof("season %d: validating %d rows", request.SeasonID, len(rows))

	accepted, violations, err := s.ValidateUpload(ctx, rows, request.SeasonID)
	if err != nil {
		return nil, err
	}

	// Any violation rejects the whole upload, the caller fixes and resubmits.
	if len(violations) > 0 {
		result := &ProcessResult{
			RowCount:   len(rows),
			Violations: violations,
		}

		if s.logger != nil {
			for _, violation := range violations {
				s.logger.Violationf("%s", violation.String())
			}
		}
		result.ReportKey = s.uploadReport(request)

		return result, nil
	}

	persisted, err := s.PersistAccepted(ctx, accepted, request.CompetitionType)
	if err != nil {
		return nil, err
	}

	s.infof("season %d: persisted %d grades, %d games", request.SeasonID, len(persisted.GradeIDs), len(persisted.GameIDs))

	// The writes are already committed, a lost event is only logged.
	if s.emitter != nil {
		event := events.FixturesPublished{
			SeasonID:    request.SeasonID,
			GradeIDs:    persisted.GradeIDs,
			GameCount:   len(persisted.GameIDs),
			PublishedAt: time.Now(),
		}
		if err := s.emitter.EmitFixturesPublished(ctx, event); err != nil {
			s.errorf("couldn't emit the published event: %v", err)
		}
	}

	result := &ProcessResult{
		Accepted: true,
		RowCount: len(rows),
		GradeIDs: persisted.GradeIDs,
		TeamIDs:  persisted.TeamIDs,
		GameIDs:  persisted.GameIDs,
	}
	result.ReportKey = s.uploadReport(request)

	return result, nil
}

// Write a info line on the processing report when a logger is attached.
func (s *Service) infof(format string, args ...any) {
	if s.logger == nil {
		return
	}
	s.logger.Infof(format, args...)
}

// Write a error line on the processing report when a logger is attached.
func (s *Service) errorf(format string, args ...any) {
	if s.logger == nil {
		return
	}
	s.logger.Errorf(format, args...)
}

// Upload the processing report and return its object key.
func (s *Service) uploadReport(request *ProcessRequest) string {
	if s.logger == nil {
		return ""
	}

	reportKey := fmt.Sprintf("reports/season-%d-%d.log", request.SeasonID, time.Now().Unix())
	if err := s.logger.UploadToS3Bucket(reportKey); err != nil {
		return ""
	}

	return reportKey
}

// Assign the deterministic game ids ahead of persistence.
// The id is derived from the game signature, so resubmitting the same upload
// produces the same ids and hits the store level conflict handling.
func assignGameIDs(accepted *validation.Accepted) {
	for gradeIndex := range accepted.Grades {
		acceptedGrade := &accepted.Grades[gradeIndex]

		for roundIndex := range acceptedGrade.Rounds {
			acceptedRound := &acceptedGrade.Rounds[roundIndex]

			for gameIndex := range acceptedRound.Games {
				game := &acceptedRound.Games[gameIndex]
				signature := fmt.Sprintf("%d|%d|%d|%d|%d",
					accepted.SeasonID,
					acceptedGrade.Grade.ID,
					acceptedRound.SequenceNumber,
					game.HomeTeamID,
					game.AwayTeamID,
				)
				game.ID = uuid.NewSHA1(uuid.NameSpaceOID, []byte(signature)).String()
			}
		}
	}
}
