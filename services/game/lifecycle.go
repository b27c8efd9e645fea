package game

import (
	game_constants "TuneBlitz/constants/game"
	models "TuneBlitz/models/postgres"
	"errors"
)

// Lifecycle errors, mapped by the callers onto the transport-level taxonomy
// (authorization, validation, conflict).
var (
	ErrNotHost            = errors.New("only the host can perform this action")
	ErrRoomNotInLobby     = errors.New("room is not in the lobby")
	ErrRoomNotPlaying     = errors.New("room is not playing")
	ErrNoPlaylistSelected = errors.New("no playlist selected")
	ErrNoPlayers          = errors.New("at least one player is required")
	ErrRoomFull           = errors.New("room is full")
	ErrRoundClosed        = errors.New("round is closed")
	ErrAlreadySubmitted   = errors.New("answer already submitted for this round")
	ErrEmptyGuess         = errors.New("submit at least a title or an artist guess")
)

// IsHost reports whether a player drives the room. A nil HostID means the
// host finalization step has not landed yet, so nobody is host.
func IsHost(room *models.Room, playerId string) bool {
	return room.HostID != nil && *room.HostID == playerId
}

// CanSelectPlaylist validates the host-only, lobby-only playlist selection.
func CanSelectPlaylist(room *models.Room, playerId string) error {
	if !IsHost(room, playerId) {
		return ErrNotHost
	}
	if room.Status != game_constants.StatusLobby {
		return ErrRoomNotInLobby
	}
	return nil
}

// CanStart validates the lobby -> playing transition.
func CanStart(room *models.Room, playerId string, playerCount int) error {
	if !IsHost(room, playerId) {
		return ErrNotHost
	}
	if room.Status != game_constants.StatusLobby {
		return ErrRoomNotInLobby
	}
	if room.SelectedPlaylistID == nil {
		return ErrNoPlaylistSelected
	}
	if playerCount < 1 {
		return ErrNoPlayers
	}
	return nil
}

// CanAdvance validates the host-only round advance.
func CanAdvance(room *models.Room, playerId string) error {
	if !IsHost(room, playerId) {
		return ErrNotHost
	}
	if room.Status != game_constants.StatusPlaying {
		return ErrRoomNotPlaying
	}
	return nil
}

// AdvanceRound computes the next round index and whether the game is over.
// Pure function of (currentRoundIndex, totalRounds): the last round finishes
// the game, any earlier round just increments the index.
func AdvanceRound(currentRoundIndex, totalRounds int) (nextIndex int, finished bool) {
	if currentRoundIndex >= totalRounds-1 {
		return currentRoundIndex, true
	}
	return currentRoundIndex + 1, false
}
