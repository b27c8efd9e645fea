package redis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRoundOpen(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	state := &RoomState{
		RoomID:         "room-1",
		CurrentRound:   2,
		RoundStartedAt: now,
		RoundDeadline:  now.Add(15 * time.Second),
	}

	assert.True(t, state.RoundOpen(2, now))
	assert.True(t, state.RoundOpen(2, now.Add(14*time.Second)))

	// Closed exactly at the deadline
	assert.False(t, state.RoundOpen(2, now.Add(15*time.Second)))
	assert.False(t, state.RoundOpen(2, now.Add(20*time.Second)))

	// A stamp for a different round never opens this one
	assert.False(t, state.RoundOpen(1, now))
	assert.False(t, state.RoundOpen(3, now))
}

func TestTimeRemaining(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	state := &RoomState{
		RoundStartedAt: now,
		RoundDeadline:  now.Add(15 * time.Second),
	}

	assert.Equal(t, 15, state.TimeRemaining(now))
	assert.Equal(t, 8, state.TimeRemaining(now.Add(7*time.Second)))
	assert.Equal(t, 0, state.TimeRemaining(now.Add(15*time.Second)))
	assert.Equal(t, 0, state.TimeRemaining(now.Add(time.Minute)))
}
