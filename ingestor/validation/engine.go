package validation

import (
	"context"
	"fixtureloader/ingestor/fixture"
	"fixtureloader/pkg/database/models"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Accepted is the validated upload grouped for persistence.
// It only exists when the whole upload passed, a single violation rejects everything.
type Accepted struct {
	SeasonID uint
	Grades   []AcceptedGrade
}

// AcceptedGrade groups the supplied rounds of one grade, sorted by sequence number.
type AcceptedGrade struct {
	Grade  models.Grade
	Rounds []AcceptedRound
}

// AcceptedRound is one supplied round with its games.
// The provisional date is the earliest game date inside the round.
type AcceptedRound struct {
	SequenceNumber  int
	ProvisionalDate time.Time
	Games           []AcceptedGame
}

// AcceptedGame is one validated game with its teams already resolved.
// The id is assigned by the caller before persistence.
type AcceptedGame struct {
	ID         string
	HomeTeamID uint
	AwayTeamID uint
	Date       time.Time
	GameType   string
}

// Engine runs the full validation pass over one upload.
type Engine struct {
	loader *ContextLoader
	now    func() time.Time
}

// NewEngine creates a validation engine.
func NewEngine(loader *ContextLoader) *Engine {
	return &Engine{
		loader: loader,
		now:    time.Now,
	}
}

// Run validates the whole upload against the season state.
// Validation is exhaustive, every row is checked even after earlier rows failed,
// so the caller gets the full violation list in one pass. Any violation rejects
// the entire upload. The error return is reserved for collaborator failures.
func (e *Engine) Run(ctx context.Context, rows []fixture.Row, seasonID uint) (*Accepted, []fixture.Violation, error) {
	vctx, err := e.loader.Load(ctx, seasonID, distinctGradeCodes(rows))
	if err != nil {
		return nil, nil, err
	}

	now := e.now()

	var violations []fixture.Violation
	for _, row := range rows {
		violations = append(violations, ValidateRow(row, vctx, now)...)
	}

	violations = append(violations, ValidateRows(rows)...)

	if len(violations) > 0 {
		return nil, violations, nil
	}

	return groupAccepted(rows, vctx), nil, nil
}

// Collect the distinct grade codes of the upload, in first seen order.
func distinctGradeCodes(rows []fixture.Row) []string {
	seen := make(map[string]bool, len(rows))
	var codes []string

	for _, row := range rows {
		code := strings.TrimSpace(row.GradeCode)
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		codes = append(codes, code)
	}

	return codes
}

// Group the accepted rows by grade and, inside each grade, by round sequence.
// Only called on a fully validated upload, so the raw fields always parse and
// every grade and team resolves.
func groupAccepted(rows []fixture.Row, vctx *Context) *Accepted {
	var gradeOrder []uint
	gradesByID := make(map[uint]models.Grade)
	roundsByGrade := make(map[uint]map[int]*AcceptedRound)

	for _, row := range rows {
		grade, _ := vctx.GradeByCode(strings.TrimSpace(row.GradeCode))
		homeTeam, _ := vctx.TeamByGradeAndName(grade.ID, strings.TrimSpace(row.HomeTeamName))
		awayTeam, _ := vctx.TeamByGradeAndName(grade.ID, strings.TrimSpace(row.AwayTeamName))
		gameDate, _ := time.Parse(fixture.DateLayout, strings.TrimSpace(row.Date))
		sequence, _ := strconv.Atoi(strings.TrimSpace(row.RoundNumber))

		if _, ok := roundsByGrade[grade.ID]; !ok {
			gradeOrder = append(gradeOrder, grade.ID)
			gradesByID[grade.ID] = *grade
			roundsByGrade[grade.ID] = make(map[int]*AcceptedRound)
		}

		round, ok := roundsByGrade[grade.ID][sequence]
		if !ok {
			round = &AcceptedRound{
				SequenceNumber:  sequence,
				ProvisionalDate: gameDate,
			}
			roundsByGrade[grade.ID][sequence] = round
		} else if gameDate.Before(round.ProvisionalDate) {
			round.ProvisionalDate = gameDate
		}

		round.Games = append(round.Games, AcceptedGame{
			HomeTeamID: homeTeam.ID,
			AwayTeamID: awayTeam.ID,
			Date:       gameDate,
			GameType:   strings.TrimSpace(row.GameType),
		})
	}

	accepted := &Accepted{SeasonID: vctx.SeasonID}
	for _, gradeID := range gradeOrder {
		sequences := make([]int, 0, len(roundsByGrade[gradeID]))
		for sequence := range roundsByGrade[gradeID] {
			sequences = append(sequences, sequence)
		}
		sort.Ints(sequences)

		acceptedGrade := AcceptedGrade{Grade: gradesByID[gradeID]}
		for _, sequence := range sequences {
			acceptedGrade.Rounds = append(acceptedGrade.Rounds, *roundsByGrade[gradeID][sequence])
		}

		accepted.Grades = append(accepted.Grades, acceptedGrade)
	}

	return accepted
}
