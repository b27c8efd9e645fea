package handlers

import (
	models "TuneBlitz/models/postgres"
	"TuneBlitz/services/game"
	socketio_types "TuneBlitz/services/socket_io/types"
	socketio_utils "TuneBlitz/services/socket_io/utils"
	"TuneBlitz/utils"
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
	"gorm.io/gorm"
)

// HandleSelectPlaylist stores the host's playlist choice for the room while
// it is still in the lobby and fans the updated room out to all members.
func HandleSelectPlaylist(client *socket.Socket, db *gorm.DB, playerId string,
	sio *socketio_types.SocketServer, coord *game.Coordinator) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 2 {
			log.Printf("[PLAYLIST-ERROR] Missing arguments for player %s", playerId)
			client.Emit("error", gin.H{"error": "Missing room id or playlist id"})
			return
		}

		roomId, ok := args[0].(string)
		if !ok {
			client.Emit("error", gin.H{"error": "Invalid room id"})
			return
		}
		// Numbers arrive as float64 over the socket.io JSON parser
		playlistFloat, ok := args[1].(float64)
		if !ok {
			client.Emit("error", gin.H{"error": "Invalid playlist id"})
			return
		}
		playlistId := int64(playlistFloat)

		room, _, err := socketio_utils.ValidateRoomAndPlayer(db, client, playerId, roomId)
		if err != nil {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err = coord.Do(ctx, room.ID, func() {
			current, err := applyPlaylistSelection(db, room.ID, playerId, playlistId)
			if err != nil {
				log.Printf("[PLAYLIST-ERROR] Player %s rejected: %v", playerId, err)
				client.Emit("error", gin.H{"error": err.Error()})
				return
			}
			socketio_utils.BroadcastRoomUpdate(sio, current)
		})
		if err != nil {
			log.Printf("[PLAYLIST-ERROR] Coordinator error for room %s: %v", room.ID, err)
		}
	}
}

// applyPlaylistSelection stores the playlist choice for a room. The room is
// re-read at the serialization point, so a transition that landed after the
// caller's snapshot (e.g. the game already started) is seen and rejected.
func applyPlaylistSelection(db *gorm.DB, roomId string, playerId string,
	playlistId int64) (*models.Room, error) {

	current, err := utils.FindRoomByID(db, roomId)
	if err != nil {
		return nil, err
	}
	if err := game.CanSelectPlaylist(current, playerId); err != nil {
		return nil, err
	}

	if err := db.Model(current).Update("selected_playlist_id", playlistId).Error; err != nil {
		return nil, err
	}
	current.SelectedPlaylistID = &playlistId
	return current, nil
}
