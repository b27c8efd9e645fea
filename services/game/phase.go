package game

import (
	game_constants "TuneBlitz/constants/game"
	redis_models "TuneBlitz/models/redis"
	"time"
)

// Phase is the client-local round state, distinct from the room status: two
// clients of the same room may sit in different phases because each one runs
// its own countdown.
type Phase string

const (
	PhaseWaiting  Phase = "waiting"
	PhasePlaying  Phase = "playing"
	PhaseReveal   Phase = "reveal"
	PhaseFinished Phase = "finished"
)

// PhaseController derives a single client's phase from the room events it
// observes plus a cooperative once-per-second tick. It is not safe for
// concurrent use: each client loop owns exactly one controller.
type PhaseController struct {
	phase    Phase
	timeLeft int
	round    int
	started  bool
}

func NewPhaseController() *PhaseController {
	return &PhaseController{
		phase:    PhaseWaiting,
		timeLeft: game_constants.RoundSeconds,
	}
}

// ObserveRoom folds an inbound room entity into the local phase. Entering
// playing for a round not seen before resets the countdown; a finished room
// ends the session regardless of the countdown.
func (pc *PhaseController) ObserveRoom(status string, roundIndex int) {
	switch status {
	case game_constants.StatusFinished:
		pc.phase = PhaseFinished
	case game_constants.StatusPlaying:
		if !pc.started || roundIndex != pc.round {
			pc.started = true
			pc.round = roundIndex
			pc.phase = PhasePlaying
			pc.timeLeft = game_constants.RoundSeconds
		}
	}
}

// Tick consumes one time unit of the countdown. Reaching zero flips the
// local phase to reveal; other clients reach reveal on their own ticks.
func (pc *PhaseController) Tick() {
	if pc.phase != PhasePlaying {
		return
	}
	if pc.timeLeft > 0 {
		pc.timeLeft--
	}
	if pc.timeLeft == 0 {
		pc.phase = PhaseReveal
	}
}

func (pc *PhaseController) Phase() Phase {
	return pc.phase
}

func (pc *PhaseController) TimeLeft() int {
	return pc.timeLeft
}

func (pc *PhaseController) Round() int {
	return pc.round
}

// DerivePhase computes the phase a reconnecting client should resume in,
// from the durable room status and the server-stamped round state. Returns
// the phase and the seconds left on the countdown.
func DerivePhase(status string, state *redis_models.RoomState, now time.Time) (Phase, int) {
	switch status {
	case game_constants.StatusFinished:
		return PhaseFinished, 0
	case game_constants.StatusLobby:
		return PhaseWaiting, game_constants.RoundSeconds
	}

	if state == nil {
		return PhaseWaiting, game_constants.RoundSeconds
	}
	remaining := state.TimeRemaining(now)
	if remaining == 0 {
		return PhaseReveal, 0
	}
	return PhasePlaying, remaining
}
