// Package persistence turns a validated upload into durable rounds, games and
// grade rollups inside one transaction.
package persistence

import (
	"fixtureloader/ingestor/validation"
	"fixtureloader/pkg/database/models"
	"time"
)

// GradeAttributes are the rollup values written back on a grade after its
// rounds and games are persisted.
type GradeAttributes struct {
	RoundCount int
	StartDate  time.Time
}

// ComputeGradeAttributes computes the updated rollups for every grade of the upload.
// The round count is additive, supplied rounds always add on top of the existing
// ones. The start date of a grade sticks to its first persisted round and only
// comes from the supplied rounds when the grade has none yet.
func ComputeGradeAttributes(accepted *validation.Accepted, existingRoundsByGrade map[uint][]models.Round) map[uint]GradeAttributes {
	attributes := make(map[uint]GradeAttributes, len(accepted.Grades))

	for _, acceptedGrade := range accepted.Grades {
		existing := existingRoundsByGrade[acceptedGrade.Grade.ID]

		attr := GradeAttributes{
			RoundCount: len(existing) + len(acceptedGrade.Rounds),
		}

		if len(existing) > 0 {
			attr.StartDate = existing[0].ProvisionalDate
		} else if len(acceptedGrade.Rounds) > 0 {
			attr.StartDate = acceptedGrade.Rounds[0].ProvisionalDate
		}

		attributes[acceptedGrade.Grade.ID] = attr
	}

	return attributes
}
