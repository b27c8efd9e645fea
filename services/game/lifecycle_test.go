package game

import (
	"testing"

	game_constants "TuneBlitz/constants/game"
	models "TuneBlitz/models/postgres"

	"github.com/stretchr/testify/assert"
)

func lobbyRoom(hostId string) *models.Room {
	playlist := int64(908622995)
	return &models.Room{
		ID:                 "room-1",
		JoinCode:           "AB12CD",
		HostID:             &hostId,
		Status:             game_constants.StatusLobby,
		SelectedPlaylistID: &playlist,
	}
}

func TestIsHost(t *testing.T) {
	room := lobbyRoom("host-1")
	assert.True(t, IsHost(room, "host-1"))
	assert.False(t, IsHost(room, "guest-1"))

	// Host finalization not landed yet: nobody is host
	room.HostID = nil
	assert.False(t, IsHost(room, "host-1"))
}

func TestCanSelectPlaylist(t *testing.T) {
	room := lobbyRoom("host-1")
	assert.NoError(t, CanSelectPlaylist(room, "host-1"))
	assert.ErrorIs(t, CanSelectPlaylist(room, "guest-1"), ErrNotHost)

	room.Status = game_constants.StatusPlaying
	assert.ErrorIs(t, CanSelectPlaylist(room, "host-1"), ErrRoomNotInLobby)
}

func TestCanStart(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*models.Room)
		playerId    string
		playerCount int
		wantErr     error
	}{
		{"valid", func(r *models.Room) {}, "host-1", 3, nil},
		{"not host", func(r *models.Room) {}, "guest-1", 3, ErrNotHost},
		{"nil host id", func(r *models.Room) { r.HostID = nil }, "host-1", 3, ErrNotHost},
		{"already playing", func(r *models.Room) { r.Status = game_constants.StatusPlaying }, "host-1", 3, ErrRoomNotInLobby},
		{"finished", func(r *models.Room) { r.Status = game_constants.StatusFinished }, "host-1", 3, ErrRoomNotInLobby},
		{"no playlist", func(r *models.Room) { r.SelectedPlaylistID = nil }, "host-1", 3, ErrNoPlaylistSelected},
		{"no players", func(r *models.Room) {}, "host-1", 0, ErrNoPlayers},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			room := lobbyRoom("host-1")
			tt.mutate(room)
			err := CanStart(room, tt.playerId, tt.playerCount)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestCanAdvance(t *testing.T) {
	room := lobbyRoom("host-1")
	room.Status = game_constants.StatusPlaying

	assert.NoError(t, CanAdvance(room, "host-1"))
	assert.ErrorIs(t, CanAdvance(room, "guest-1"), ErrNotHost)

	room.Status = game_constants.StatusFinished
	assert.ErrorIs(t, CanAdvance(room, "host-1"), ErrRoomNotPlaying)
}

func TestAdvanceRound(t *testing.T) {
	tests := []struct {
		name         string
		current      int
		total        int
		wantNext     int
		wantFinished bool
	}{
		{"first of ten", 0, 10, 1, false},
		{"middle", 4, 10, 5, false},
		{"penultimate", 8, 10, 9, false},
		{"last finishes", 9, 10, 9, true},
		{"single round game", 0, 1, 0, true},
		{"scenario D eighth of eight", 7, 8, 7, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, finished := AdvanceRound(tt.current, tt.total)
			assert.Equal(t, tt.wantNext, next)
			assert.Equal(t, tt.wantFinished, finished)
		})
	}
}

func TestAdvanceRoundIsPure(t *testing.T) {
	// Same inputs, same outputs, no matter how often it is asked
	for i := 0; i < 3; i++ {
		next, finished := AdvanceRound(2, 10)
		assert.Equal(t, 3, next)
		assert.False(t, finished)
	}
}
