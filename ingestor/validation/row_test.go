package validation

import (
	"fixtureloader/ingestor/fixture"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Fixed processing time for the date rules.
var testNow = time.Date(2026, 5, 20, 15, 30, 0, 0, time.UTC)

// Build a valid row that can be broken per test case.
func validRow() fixture.Row {
	return fixture.Row{
		GradeCode:    "A1",
		HomeTeamName: "Lions",
		AwayTeamName: "Tigers",
		Date:         "27/05/2026",
		RoundNumber:  "1",
		Line:         2,
	}
}

// Run tests on every row level rule.
func TestValidateRow(t *testing.T) {
	tests := []struct {
		name         string
		changeRow    func(row *fixture.Row)
		wantCount    int
		wantKinds    []fixture.ViolationKind
		wantContains []string
	}{
		{
			name:      "validRow",
			changeRow: func(row *fixture.Row) {},
			wantCount: 0,
		},
		{
			name: "missingGradeCode",
			changeRow: func(row *fixture.Row) {
				row.GradeCode = "   "
			},
			wantCount:    1,
			wantKinds:    []fixture.ViolationKind{fixture.FileFormat},
			wantContains: []string{"grade code is required"},
		},
		{
			name: "missingBothTeams",
			changeRow: func(row *fixture.Row) {
				row.HomeTeamName = ""
				row.AwayTeamName = ""
			},
			wantCount:    2,
			wantKinds:    []fixture.ViolationKind{fixture.FileFormat, fixture.FileFormat},
			wantContains: []string{"home team name is required", "away team name is required"},
		},
		{
			name: "invalidDateFormat",
			changeRow: func(row *fixture.Row) {
				row.Date = "2026-05-27"
			},
			wantCount:    1,
			wantKinds:    []fixture.ViolationKind{fixture.FileFormat},
			wantContains: []string{"not a valid day/month/year date"},
		},
		{
			name: "roundNotANumber",
			changeRow: func(row *fixture.Row) {
				row.RoundNumber = "first"
			},
			wantCount:    1,
			wantKinds:    []fixture.ViolationKind{fixture.FileFormat},
			wantContains: []string{"not a positive whole number"},
		},
		{
			name: "roundZero",
			changeRow: func(row *fixture.Row) {
				row.RoundNumber = "0"
			},
			wantCount: 1,
			wantKinds: []fixture.ViolationKind{fixture.FileFormat},
		},
		{
			name: "teamPlaysItself",
			changeRow: func(row *fixture.Row) {
				row.AwayTeamName = "Lions"
			},
			wantCount:    1,
			wantKinds:    []fixture.ViolationKind{fixture.BusinessRule},
			wantContains: []string{"can't be the same"},
		},
		{
			// The grade short-circuit: the unknown teams aren't reported
			// because nothing can be checked without the grade.
			name: "unknownGradeShortCircuits",
			changeRow: func(row *fixture.Row) {
				row.GradeCode = "Z9"
				row.HomeTeamName = "Nobody"
				row.AwayTeamName = "NoOne"
			},
			wantCount:    1,
			wantKinds:    []fixture.ViolationKind{fixture.BusinessRule},
			wantContains: []string{"the grade Z9 doesn't exist"},
		},
		{
			name: "teamNotInGrade",
			changeRow: func(row *fixture.Row) {
				row.AwayTeamName = "Sharks"
			},
			wantCount:    1,
			wantKinds:    []fixture.ViolationKind{fixture.BusinessRule},
			wantContains: []string{"the team Sharks doesn't belong to the grade A1"},
		},
		{
			name: "bothTeamsNotInGrade",
			changeRow: func(row *fixture.Row) {
				row.HomeTeamName = "Sharks"
				row.AwayTeamName = "Whales"
			},
			wantCount: 2,
			wantKinds: []fixture.ViolationKind{fixture.BusinessRule, fixture.BusinessRule},
		},
		{
			name: "roundAboveGradeBound",
			changeRow: func(row *fixture.Row) {
				row.RoundNumber = "5"
			},
			wantCount:    1,
			wantKinds:    []fixture.ViolationKind{fixture.BusinessRule},
			wantContains: []string{"the round 5 is above the grade round count of 4"},
		},
		{
			name: "pastDateWithExistingFixture",
			changeRow: func(row *fixture.Row) {
				row.Date = "19/05/2026"
			},
			wantCount:    1,
			wantKinds:    []fixture.ViolationKind{fixture.BusinessRule},
			wantContains: []string{"is in the past"},
		},
		{
			// A grade with no fixture yet is being backfilled, past dates are fine.
			name: "pastDateBackfillExemption",
			changeRow: func(row *fixture.Row) {
				row.GradeCode = "B2"
				row.HomeTeamName = "Sharks"
				row.AwayTeamName = "Whales"
				row.Date = "19/05/2026"
			},
			wantCount: 0,
		},
		{
			name: "sameDayIsNotPast",
			changeRow: func(row *fixture.Row) {
				row.Date = "20/05/2026"
			},
			wantCount: 0,
		},
		{
			// A bad date never cascades into the past date rule.
			name: "invalidDateSkipsPastDateRule",
			changeRow: func(row *fixture.Row) {
				row.Date = "not-a-date"
			},
			wantCount: 1,
			wantKinds: []fixture.ViolationKind{fixture.FileFormat},
		},
	}

	vctx := newTestContext()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := validRow()
			tt.changeRow(&row)

			violations := ValidateRow(row, vctx, testNow)

			assert.Len(t, violations, tt.wantCount)

			for i, kind := range tt.wantKinds {
				assert.Equal(t, kind, violations[i].Kind)
			}

			var all strings.Builder
			for _, violation := range violations {
				all.WriteString(violation.Message)
				all.WriteString("\n")
			}
			for _, want := range tt.wantContains {
				assert.Contains(t, all.String(), want)
			}
		})
	}
}

// Every violation must carry the line of the rejected row.
func TestValidateRowKeepsLine(t *testing.T) {
	row := validRow()
	row.Line = 42
	row.RoundNumber = "-3"

	violations := ValidateRow(row, newTestContext(), testNow)

	assert.Len(t, violations, 1)
	assert.Equal(t, 42, violations[0].Line)
}
