package persistence

import (
	"context"
	"fixtureloader/internal/testutil"
	"testing"

	"github.com/stretchr/testify/assert"
)

// The happy path: every round, game and rollup of every grade is written and
// the identifiers are collected with the team ids deduplicated.
func TestCoordinatorPersist(t *testing.T) {
	store := newFakeStore()
	coordinator := NewCoordinator(&fakeTxRunner{store: store})

	result, err := coordinator.Persist(context.Background(), newTestAccepted(), "senior", newTestAttributes())

	assert.NoError(t, err)
	assert.Equal(t, []uint{1, 2}, result.GradeIDs)
	assert.Len(t, result.GameIDs, 4)

	// Teams 1 and 2 play in two games each but show up once.
	assert.Equal(t, []uint{1, 2, 3, 6, 4, 5}, result.TeamIDs)

	assert.Len(t, store.rounds, 3)
	assert.Len(t, store.games, 4)

	// The games hang off their upserted round.
	round1 := store.rounds[roundKey(1, 1)]
	assert.Equal(t, round1.ID, store.games["game-a1-r1-1"].RoundID)
	assert.Equal(t, round1.ID, store.games["game-a1-r1-2"].RoundID)

	// The competition type fills the games without their own type.
	assert.Equal(t, "senior", store.games["game-a1-r1-1"].GameType)

	// The rollups were written for both grades.
	assert.Equal(t, 2, store.gradeAttrs[1].RoundCount)
	assert.Equal(t, testutil.Date(2026, 5, 23), store.gradeAttrs[1].StartDate)
	assert.Equal(t, 1, store.gradeAttrs[2].RoundCount)
}

// Upserting the same round twice keeps one row with the latest provisional date.
func TestCoordinatorPersistRoundUpsert(t *testing.T) {
	store := newFakeStore()
	coordinator := NewCoordinator(&fakeTxRunner{store: store})

	_, err := coordinator.Persist(context.Background(), newTestAccepted(), "senior", newTestAttributes())
	assert.NoError(t, err)

	firstID := store.rounds[roundKey(1, 1)].ID

	resubmitted := newTestAccepted()
	resubmitted.Grades[0].Rounds[0].ProvisionalDate = testutil.Date(2026, 6, 6)

	_, err = coordinator.Persist(context.Background(), resubmitted, "senior", newTestAttributes())
	assert.NoError(t, err)

	assert.Len(t, store.rounds, 3)
	assert.Equal(t, firstID, store.rounds[roundKey(1, 1)].ID)
	assert.Equal(t, testutil.Date(2026, 6, 6), store.rounds[roundKey(1, 1)].ProvisionalDate)
}

// Re-running the persist with the same game ids doesn't duplicate games.
func TestCoordinatorPersistIdempotentGames(t *testing.T) {
	store := newFakeStore()
	coordinator := NewCoordinator(&fakeTxRunner{store: store})

	_, err := coordinator.Persist(context.Background(), newTestAccepted(), "senior", newTestAttributes())
	assert.NoError(t, err)

	_, err = coordinator.Persist(context.Background(), newTestAccepted(), "senior", newTestAttributes())
	assert.NoError(t, err)

	assert.Len(t, store.games, 4)
}

// A failing game insert rolls back every grade of the upload, not only the
// grade being written.
func TestCoordinatorPersistRollsBackEverything(t *testing.T) {
	store := newFakeStore()
	store.failOnGameID = "game-b2-r1-1"
	coordinator := NewCoordinator(&fakeTxRunner{store: store})

	result, err := coordinator.Persist(context.Background(), newTestAccepted(), "senior", newTestAttributes())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), testutil.DatabaseError)
	assert.Nil(t, result)

	// Grade A1 was fully written before the failure and is gone too.
	assert.Empty(t, store.rounds)
	assert.Empty(t, store.games)
	assert.Empty(t, store.gradeAttrs)
}

// A accepted game without a id is a programming contract violation.
func TestCoordinatorPersistRequiresGameIDs(t *testing.T) {
	store := newFakeStore()
	coordinator := NewCoordinator(&fakeTxRunner{store: store})

	accepted := newTestAccepted()
	accepted.Grades[0].Rounds[0].Games[0].ID = ""

	result, err := coordinator.Persist(context.Background(), accepted, "senior", newTestAttributes())

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Empty(t, store.games)
}

// A game keeps its own type when it has one.
func TestCoordinatorPersistKeepsGameType(t *testing.T) {
	store := newFakeStore()
	coordinator := NewCoordinator(&fakeTxRunner{store: store})

	accepted := newTestAccepted()
	accepted.Grades[0].Rounds[0].Games[0].GameType = "final"

	_, err := coordinator.Persist(context.Background(), accepted, "senior", newTestAttributes())

	assert.NoError(t, err)
	assert.Equal(t, "final", store.games["game-a1-r1-1"].GameType)
	assert.Equal(t, "senior", store.games["game-a1-r1-2"].GameType)
}
