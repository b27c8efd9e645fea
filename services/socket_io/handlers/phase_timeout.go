package handlers

import (
	"TuneBlitz/services/game"
	"TuneBlitz/services/redis"
	socketio_utils "TuneBlitz/services/socket_io/utils"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
	"gorm.io/gorm"
)

// HandleGetPhaseTimeout responds with the phase a client should resume in
// and the seconds left on the current round's countdown, derived from the
// server-stamped deadline.
func HandleGetPhaseTimeout(redisClient *redis.RedisClient, client *socket.Socket,
	db *gorm.DB, playerId string) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 1 {
			log.Printf("[PHASE-TIMEOUT-ERROR] Missing room id for player %s", playerId)
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

		state, err := redisClient.GetRoomState(room.ID)
		if err != nil {
			log.Printf("[PHASE-TIMEOUT-ERROR] Error loading round state for room %s: %v", room.ID, err)
		}

		phase, remaining := game.DerivePhase(room.Status, state, time.Now())

		client.Emit("phase_timeout_info", gin.H{
			"phase":          phase,
			"time_remaining": remaining,
			"current_round":  room.CurrentRoundIndex,
		})

		log.Printf("[PHASE-TIMEOUT] Sent phase info to player %s: phase=%s, remaining=%d",
			playerId, phase, remaining)
	}
}
