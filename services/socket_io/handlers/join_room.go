package handlers

import (
	game_constants "TuneBlitz/constants/game"
	"TuneBlitz/services/game"
	"TuneBlitz/services/redis"
	socketio_utils "TuneBlitz/services/socket_io/utils"
	"TuneBlitz/utils"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
	"gorm.io/gorm"
)

// HandleJoinRoom subscribes the connection to a room's two notification
// streams. Membership itself is created via the REST join endpoint; this
// only attaches the socket and replies with the authoritative snapshot the
// client folds its local state from.
func HandleJoinRoom(redisClient *redis.RedisClient, client *socket.Socket,
	db *gorm.DB, playerId string) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 1 {
			log.Printf("[JOIN-ERROR] Missing room id for player %s", playerId)
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

		// Tear down any previous subscription for this room before joining
		// again, otherwise events would be delivered twice.
		client.Leave(socket.Room(room.ID))
		client.Join(socket.Room(room.ID))

		players, err := utils.RoomPlayers(db, room.ID)
		if err != nil {
			log.Printf("[JOIN-ERROR] Error loading roster for room %s: %v", room.ID, err)
			client.Emit("error", gin.H{"error": "Database error"})
			return
		}

		snapshot := gin.H{
			"room":    room,
			"players": players,
		}

		// A client attaching mid-game also needs the round material and the
		// countdown reference to resume in the right phase.
		if room.Status == game_constants.StatusPlaying {
			songs, err := utils.RoomSongs(db, room.ID)
			if err != nil {
				log.Printf("[JOIN-ERROR] Error loading songs for room %s: %v", room.ID, err)
				client.Emit("error", gin.H{"error": "Database error"})
				return
			}
			snapshot["songs"] = songs

			state, err := redisClient.GetRoomState(room.ID)
			if err != nil {
				log.Printf("[JOIN-ERROR] Error loading round state for room %s: %v", room.ID, err)
			}
			phase, remaining := game.DerivePhase(room.Status, state, time.Now())
			snapshot["phase"] = phase
			snapshot["time_remaining"] = remaining
		}

		log.Printf("[JOIN] Player %s subscribed to room %s", playerId, room.ID)
		client.Emit("room_snapshot", snapshot)
	}
}
