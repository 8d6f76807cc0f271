package persistence

import (
	"context"
	"fixtureloader/ingestor/repositories"
	"fixtureloader/ingestor/validation"
	"fixtureloader/pkg/database/models"
	"fmt"
	"time"
)

// Result holds the identifiers created or touched by one persisted upload.
type Result struct {
	GradeIDs []uint
	TeamIDs  []uint
	GameIDs  []string
}

// Coordinator writes a validated upload through a single transaction.
type Coordinator struct {
	runner repositories.TxRunner
}

// NewCoordinator creates a persistence coordinator.
func NewCoordinator(runner repositories.TxRunner) *Coordinator {
	return &Coordinator{runner: runner}
}

// Persist writes every round and game of every grade of the upload and updates
// the grade rollups, all inside one transaction. A failure at any step rolls
// back the whole upload, no grade is ever left half written.
//
// Rounds are upserted on (grade, sequence), games are created on their caller
// supplied id with store level conflict handling, so resubmitting the same
// upload is idempotent.
func (c *Coordinator) Persist(ctx context.Context, accepted *validation.Accepted, competitionType string, attributes map[uint]GradeAttributes) (*Result, error) {
	result := &Result{}
	seenTeams := make(map[uint]bool)

	err := c.runner.RunInTransaction(ctx, func(store repositories.TxStore) error {
		for _, acceptedGrade := range accepted.Grades {
			gradeID := acceptedGrade.Grade.ID

			for _, acceptedRound := range acceptedGrade.Rounds {
				round := &models.Round{
					GradeID:         gradeID,
					SequenceNumber:  acceptedRound.SequenceNumber,
					ProvisionalDate: acceptedRound.ProvisionalDate,
				}
				if err := store.UpsertRound(ctx, round); err != nil {
					return fmt.Errorf("couldn't upsert round %d of grade %s: %v", acceptedRound.SequenceNumber, acceptedGrade.Grade.Code, err)
				}

				games := make([]*models.Game, 0, len(acceptedRound.Games))
				for _, acceptedGame := range acceptedRound.Games {
					if acceptedGame.ID == "" {
						return fmt.Errorf("the game %d vs %d of round %d has no id", acceptedGame.HomeTeamID, acceptedGame.AwayTeamID, acceptedRound.SequenceNumber)
					}

					gameType := acceptedGame.GameType
					if gameType == "" {
						gameType = competitionType
					}

					games = append(games, &models.Game{
						ID:               acceptedGame.ID,
						RoundID:          round.ID,
						HomeTeamID:       acceptedGame.HomeTeamID,
						AwayTeamID:       acceptedGame.AwayTeamID,
						Date:             acceptedGame.Date,
						ProvisionalDates: []time.Time{acceptedGame.Date},
						GameType:         gameType,
					})

					result.GameIDs = append(result.GameIDs, acceptedGame.ID)
					for _, teamID := range []uint{acceptedGame.HomeTeamID, acceptedGame.AwayTeamID} {
						if !seenTeams[teamID] {
							seenTeams[teamID] = true
							result.TeamIDs = append(result.TeamIDs, teamID)
						}
					}
				}

				if err := store.CreateGames(ctx, games); err != nil {
					return fmt.Errorf("couldn't create the games of round %d of grade %s: %v", acceptedRound.SequenceNumber, acceptedGrade.Grade.Code, err)
				}
			}

			// The rollups only change after every round and game of the grade is written.
			if attr, ok := attributes[gradeID]; ok {
				if err := store.UpdateGradeAttributes(ctx, gradeID, attr.RoundCount, attr.StartDate); err != nil {
					return fmt.Errorf("couldn't update the attributes of grade %s: %v", acceptedGrade.Grade.Code, err)
				}
			}

			result.GradeIDs = append(result.GradeIDs, gradeID)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("couldn't persist the upload: %w", err)
	}

	return result, nil
}
