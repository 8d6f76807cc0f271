package validation

import (
	"fixtureloader/ingestor/fixture"
	"fixtureloader/pkg/messages"
	"strings"
)

// ValidateRows checks the full row set for conflicts between rows.
// Single pass over the upload, every signature lookup is a map hit.
func ValidateRows(rows []fixture.Row) []fixture.Violation {
	var violations []fixture.Violation

	seenGames := make(map[string]bool, len(rows))
	roundsByTeam := make(map[string]map[string]bool)

	for _, row := range rows {
		gradeCode := strings.TrimSpace(row.GradeCode)
		homeName := strings.TrimSpace(row.HomeTeamName)
		awayName := strings.TrimSpace(row.AwayTeamName)
		roundNumber := strings.TrimSpace(row.RoundNumber)

		// Rows with missing signature fields are already rejected by the row pass.
		if gradeCode == "" || homeName == "" || awayName == "" || roundNumber == "" {
			continue
		}

		// The same game listed twice. Only the repeated occurrence is flagged,
		// and a repeated game doesn't also count as a double booking.
		gameKey := gradeCode + "|" + homeName + "|" + awayName + "|" + roundNumber
		if seenGames[gameKey] {
			violations = append(violations, fixture.NewDataIntegrityViolation(
				row.Line, gradeCode, messages.DuplicateGame, homeName, awayName, roundNumber, gradeCode))
			continue
		}
		seenGames[gameKey] = true

		// The same team booked twice in one round, in either the home or away role.
		for _, teamName := range []string{homeName, awayName} {
			key := gradeCode + "|" + teamName
			if roundsByTeam[key] == nil {
				roundsByTeam[key] = make(map[string]bool)
			}
			if roundsByTeam[key][roundNumber] {
				violations = append(violations, fixture.NewDataIntegrityViolation(
					row.Line, gradeCode, messages.TeamDoubleBooked, teamName, roundNumber, gradeCode))
				continue
			}
			roundsByTeam[key][roundNumber] = true
		}
	}

	return violations
}
