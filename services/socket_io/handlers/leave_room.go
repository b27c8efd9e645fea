package handlers

import (
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

// HandleLeaveRoom removes the player from the room: the player row is
// deleted, the delete event fans out to everyone else and the socket leaves
// the room's streams. The player id stays valid; the player just is not a
// member anywhere anymore.
func HandleLeaveRoom(client *socket.Socket, db *gorm.DB, playerId string,
	sio *socketio_types.SocketServer, coord *game.Coordinator) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 1 {
			client.Emit("error", gin.H{"error": "Missing room id"})
			return
		}
		roomId, ok := args[0].(string)
		if !ok {
			client.Emit("error", gin.H{"error": "Invalid room id"})
			return
		}

		room, player, err := socketio_utils.ValidateRoomAndPlayer(db, client, playerId, roomId)
		if err != nil {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		emptied := false
		err = coord.Do(ctx, room.ID, func() {
			remaining, err := utils.RemovePlayer(db, player)
			if err != nil {
				log.Printf("[LEAVE-ERROR] Error deleting player %s: %v", playerId, err)
				client.Emit("error", gin.H{"error": "Database error"})
				return
			}
			socketio_utils.BroadcastPlayerEvent(sio, room.ID, "delete", player)
			emptied = remaining == 0
		})
		if err != nil {
			log.Printf("[LEAVE-ERROR] Coordinator error for room %s: %v", room.ID, err)
			return
		}

		// The last player leaving retires the room's actor
		if emptied {
			coord.Release(room.ID)
		}

		client.Leave(socket.Room(room.ID))
		log.Printf("[LEAVE] Player %s left room %s", playerId, room.ID)
		client.Emit("left_room", gin.H{"room_id": room.ID})
	}
}

// HandleDisconnecting drops the connection from the map. The player row is
// deliberately kept: a disconnected player stays in the roster and can
// reattach with the same identity token.
func HandleDisconnecting(playerId string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("[DISCONNECT] Player %s disconnecting", playerId)
		sio.RemoveConnection(playerId)
	}
}
