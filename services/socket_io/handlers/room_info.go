package handlers

import (
	socketio_utils "TuneBlitz/services/socket_io/utils"
	"TuneBlitz/utils"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
	"gorm.io/gorm"
)

// GetRoomInfo replies with the room entity and its roster in join order.
func GetRoomInfo(client *socket.Socket, db *gorm.DB, playerId string) func(args ...interface{}) {
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

		room, _, err := socketio_utils.ValidateRoomAndPlayer(db, client, playerId, roomId)
		if err != nil {
			return
		}

		players, err := utils.RoomPlayers(db, room.ID)
		if err != nil {
			log.Printf("[INFO-ERROR] Error loading roster for room %s: %v", room.ID, err)
			client.Emit("error", gin.H{"error": "Database error"})
			return
		}

		client.Emit("room_info", gin.H{
			"room":    room,
			"players": players,
		})
	}
}
