// Package validation implements the upload validation pass: context loading,
// per row rule checks and cross row integrity checks.
package validation

import (
	"context"
	"fixtureloader/ingestor/repositories"
	"fixtureloader/pkg/database/models"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Context is the read-only snapshot of the season state used to validate one upload.
// It is rebuilt on every load, never cached between uploads.
type Context struct {
	SeasonID uint

	gradesByCode        map[string]*models.Grade
	teamsByGradeAndName map[string]*models.Team
	fixtureExistsByCode map[string]bool
}

// GradeByCode resolves a grade code against the loaded season grades.
func (c *Context) GradeByCode(code string) (*models.Grade, bool) {
	grade, ok := c.gradesByCode[code]
	return grade, ok
}

// TeamByGradeAndName resolves a team name inside a given grade.
func (c *Context) TeamByGradeAndName(gradeID uint, name string) (*models.Team, bool) {
	team, ok := c.teamsByGradeAndName[teamKey(gradeID, name)]
	return team, ok
}

// GradeHasFixture returns whether the grade already has at least one persisted game.
func (c *Context) GradeHasFixture(code string) bool {
	return c.fixtureExistsByCode[code]
}

// Composite key for the team index.
func teamKey(gradeID uint, name string) string {
	return fmt.Sprintf("%d|%s", gradeID, name)
}

// ContextLoader assembles the validation context from the season repositories.
type ContextLoader struct {
	grades repositories.GradeRepository
	teams  repositories.TeamRepository
	games  repositories.GameRepository
}

// NewContextLoader creates a context loader.
func NewContextLoader(
	grades repositories.GradeRepository,
	teams repositories.TeamRepository,
	games repositories.GameRepository,
) *ContextLoader {
	return &ContextLoader{
		grades: grades,
		teams:  teams,
		games:  games,
	}
}

// Load fetches the season state referenced by the upload.
// Always exactly three batched lookups dispatched concurrently, never one
// lookup per row or per grade, so the cost doesn't grow with the upload size.
func (cl *ContextLoader) Load(ctx context.Context, seasonID uint, gradeCodes []string) (*Context, error) {
	var (
		grades    []models.Grade
		teams     []models.Team
		existence map[string]bool
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		var err error
		grades, err = cl.grades.GetGradesByCodes(groupCtx, seasonID, gradeCodes)
		return err
	})

	group.Go(func() error {
		var err error
		teams, err = cl.teams.GetTeamsBySeasonID(groupCtx, seasonID)
		return err
	})

	group.Go(func() error {
		var err error
		existence, err = cl.games.GetFixtureExistenceByGradeCodes(groupCtx, seasonID, gradeCodes)
		return err
	})

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("couldn't load the validation context: %w", err)
	}

	return newContext(seasonID, grades, teams, existence), nil
}

// Build the lookup indexes from the fetched season state.
func newContext(seasonID uint, grades []models.Grade, teams []models.Team, existence map[string]bool) *Context {
	vctx := &Context{
		SeasonID:            seasonID,
		gradesByCode:        make(map[string]*models.Grade, len(grades)),
		teamsByGradeAndName: make(map[string]*models.Team, len(teams)),
		fixtureExistsByCode: existence,
	}

	if vctx.fixtureExistsByCode == nil {
		vctx.fixtureExistsByCode = make(map[string]bool)
	}

	// Convert to maps to make the row pass faster.
	for i := range grades {
		vctx.gradesByCode[grades[i].Code] = &grades[i]
	}

	for i := range teams {
		vctx.teamsByGradeAndName[teamKey(teams[i].GradeID, teams[i].Name)] = &teams[i]
	}

	return vctx
}
