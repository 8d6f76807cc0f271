package persistence

import (
	"fixtureloader/internal/testutil"
	"fixtureloader/pkg/database/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

// The round count is additive and the start date comes from the first supplied
// round when the grade has nothing persisted yet.
func TestComputeGradeAttributesFirstUpload(t *testing.T) {
	accepted := newTestAccepted()

	attributes := ComputeGradeAttributes(accepted, map[uint][]models.Round{})

	assert.Equal(t, 2, attributes[1].RoundCount)
	assert.Equal(t, testutil.Date(2026, 5, 23), attributes[1].StartDate)
	assert.Equal(t, 1, attributes[2].RoundCount)
	assert.Equal(t, testutil.Date(2026, 5, 23), attributes[2].StartDate)
}

// Existing rounds add on top and the start date sticks to the first persisted round.
func TestComputeGradeAttributesWithExistingRounds(t *testing.T) {
	accepted := newTestAccepted()

	existing := map[uint][]models.Round{
		1: {
			testutil.NewRound(1, 1, 1, testutil.Date(2026, 4, 11)),
			testutil.NewRound(2, 1, 2, testutil.Date(2026, 4, 18)),
		},
	}

	attributes := ComputeGradeAttributes(accepted, existing)

	// Grade 1 supplied 2 rounds on top of its 2 existing ones.
	assert.Equal(t, 4, attributes[1].RoundCount)
	assert.Equal(t, testutil.Date(2026, 4, 11), attributes[1].StartDate)

	// Grade 2 has no existing rounds and keeps the supplied date.
	assert.Equal(t, 1, attributes[2].RoundCount)
	assert.Equal(t, testutil.Date(2026, 5, 23), attributes[2].StartDate)
}
