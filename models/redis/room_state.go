package redis

import "time"

// RoomState is the volatile, per-round slice of a room's state. The durable
// room row lives in PostgreSQL; this only carries what the current round
// needs: the server-stamped countdown and the round the stamp belongs to.
type RoomState struct {
	RoomID         string    `json:"room_id"`
	CurrentRound   int       `json:"current_round"`
	RoundStartedAt time.Time `json:"round_started_at"`
	RoundDeadline  time.Time `json:"round_deadline"`
}

// RoundOpen reports whether submissions are still accepted for the given
// round at the given instant.
func (s *RoomState) RoundOpen(round int, now time.Time) bool {
	return s.CurrentRound == round && now.Before(s.RoundDeadline)
}

// TimeRemaining returns the whole seconds left on the countdown, clamped to
// zero once the deadline has passed.
func (s *RoomState) TimeRemaining(now time.Time) int {
	remaining := int(s.RoundDeadline.Sub(now).Seconds())
	if remaining < 0 {
		return 0
	}
	return remaining
}
