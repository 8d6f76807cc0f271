package validation

import (
	"fixtureloader/internal/testutil"
	"fixtureloader/pkg/database/models"
)

// Season state shared by the validation tests:
// grade A1 (4 rounds, has fixtures) with Lions, Tigers and Bears,
// grade B2 (10 rounds, no fixture yet) with Sharks and Whales.
func newTestContext() *Context {
	grades := []models.Grade{
		testutil.NewGrade(1, 10, "A1", 4),
		testutil.NewGrade(2, 10, "B2", 10),
	}

	teams := []models.Team{
		testutil.NewTeam(1, 1, "Lions"),
		testutil.NewTeam(2, 1, "Tigers"),
		testutil.NewTeam(3, 1, "Bears"),
		testutil.NewTeam(4, 2, "Sharks"),
		testutil.NewTeam(5, 2, "Whales"),
	}

	existence := map[string]bool{
		"A1": true,
		"B2": false,
	}

	return newContext(10, grades, teams, existence)
}
