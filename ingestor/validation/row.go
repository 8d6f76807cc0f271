package validation

import (
	"fixtureloader/ingestor/fixture"
	"fixtureloader/pkg/messages"
	"strconv"
	"strings"
	"time"
)

// ValidateRow checks one row against the loaded season context.
// Pure function, no external calls, every lookup goes through the context indexes.
func ValidateRow(row fixture.Row, vctx *Context, now time.Time) []fixture.Violation {
	var violations []fixture.Violation

	gradeCode := strings.TrimSpace(row.GradeCode)
	homeName := strings.TrimSpace(row.HomeTeamName)
	awayName := strings.TrimSpace(row.AwayTeamName)

	// Required fields.
	if gradeCode == "" {
		violations = append(violations, fixture.NewFileFormatViolation(row.Line, "grade", messages.RequiredFieldMissing, "grade code"))
	}
	if homeName == "" {
		violations = append(violations, fixture.NewFileFormatViolation(row.Line, "home team", messages.RequiredFieldMissing, "home team name"))
	}
	if awayName == "" {
		violations = append(violations, fixture.NewFileFormatViolation(row.Line, "away team", messages.RequiredFieldMissing, "away team name"))
	}

	// Date format. A bad date also disables the date rules below.
	gameDate, dateErr := time.Parse(fixture.DateLayout, strings.TrimSpace(row.Date))
	if dateErr != nil {
		violations = append(violations, fixture.NewFileFormatViolation(row.Line, "date", messages.DateInvalidFormat, row.Date))
	}

	// Round number.
	roundNumber, roundErr := strconv.Atoi(strings.TrimSpace(row.RoundNumber))
	roundValid := roundErr == nil && roundNumber > 0
	if !roundValid {
		violations = append(violations, fixture.NewFileFormatViolation(row.Line, "round", messages.RoundNotPositive, row.RoundNumber))
	}

	// A team can't play against itself.
	if homeName != "" && homeName == awayName {
		violations = append(violations, fixture.NewBusinessRuleViolation(row.Line, gradeCode, messages.TeamPlaysItself))
	}

	grade, found := vctx.GradeByCode(gradeCode)
	if gradeCode != "" && !found {
		violations = append(violations, fixture.NewBusinessRuleViolation(row.Line, gradeCode, messages.GradeNotFound, gradeCode))
	}

	// Without a resolved grade nothing else can be checked for this row.
	if !found {
		return violations
	}

	// Both teams must belong to the resolved grade.
	for _, name := range []string{homeName, awayName} {
		if name == "" {
			continue
		}
		if _, ok := vctx.TeamByGradeAndName(grade.ID, name); !ok {
			violations = append(violations, fixture.NewBusinessRuleViolation(row.Line, gradeCode, messages.TeamNotInGrade, name, gradeCode))
		}
	}

	// The round must stay inside the grade round count.
	if roundValid && roundNumber > grade.RoundCount {
		violations = append(violations, fixture.NewBusinessRuleViolation(row.Line, gradeCode, messages.RoundAboveBound, roundNumber, grade.RoundCount))
	}

	// Past dates are only allowed while the grade has no fixture yet,
	// a grade without games is being backfilled.
	if dateErr == nil && gameDate.Before(startOfDay(now)) && vctx.GradeHasFixture(gradeCode) {
		violations = append(violations, fixture.NewBusinessRuleViolation(row.Line, gradeCode, messages.DateBeforeToday, row.Date))
	}

	return violations
}

// Truncate the processing time to the start of its day, game dates carry no clock.
func startOfDay(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
