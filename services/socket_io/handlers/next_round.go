package handlers

import (
	game_constants "TuneBlitz/constants/game"
	"TuneBlitz/services/game"
	"TuneBlitz/services/redis"
	socketio_types "TuneBlitz/services/socket_io/types"
	socketio_utils "TuneBlitz/services/socket_io/utils"
	"TuneBlitz/sync"
	"TuneBlitz/utils"
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
	"gorm.io/gorm"
)

// HandleNextRound advances the room past the current round. Past the last
// round the room finishes: final scores are flushed, the volatile state is
// cleaned up and the room actor is released. Otherwise the next round's
// countdown is stamped and announced.
func HandleNextRound(redisClient *redis.RedisClient, client *socket.Socket,
	db *gorm.DB, playerId string, sio *socketio_types.SocketServer,
	coord *game.Coordinator, syncManager *sync.SyncManager) func(args ...interface{}) {
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

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		finished := false
		err = coord.Do(ctx, room.ID, func() {
			current, err := utils.FindRoomByID(db, room.ID)
			if err != nil {
				client.Emit("error", gin.H{"error": "Room not found", "redirect": "home"})
				return
			}
			if err := game.CanAdvance(current, playerId); err != nil {
				log.Printf("[ADVANCE-ERROR] Player %s rejected: %v", playerId, err)
				client.Emit("error", gin.H{"error": err.Error()})
				return
			}

			songs, err := utils.RoomSongs(db, current.ID)
			if err != nil {
				client.Emit("error", gin.H{"error": "Database error"})
				return
			}

			nextIndex, done := game.AdvanceRound(current.CurrentRoundIndex, len(songs))
			if done {
				if err := db.Model(current).Update("status", game_constants.StatusFinished).Error; err != nil {
					log.Printf("[ADVANCE-ERROR] Error finishing room %s: %v", current.ID, err)
					client.Emit("error", gin.H{"error": "Error finishing game"})
					return
				}
				current.Status = game_constants.StatusFinished

				if err := syncManager.CleanupGameData(current.ID); err != nil {
					// Scores are already durable; losing the cleanup only
					// leaves stale keys behind until their TTL.
					log.Printf("[ADVANCE-WARN] Cleanup failed for room %s: %v", current.ID, err)
				}

				socketio_utils.BroadcastRoomUpdate(sio, current)
				log.Printf("[ADVANCE] Room %s finished after round %d", current.ID, nextIndex)
				finished = true
				return
			}

			if err := db.Model(current).Update("current_round_index", nextIndex).Error; err != nil {
				log.Printf("[ADVANCE-ERROR] Error advancing room %s: %v", current.ID, err)
				client.Emit("error", gin.H{"error": "Error advancing round"})
				return
			}
			current.CurrentRoundIndex = nextIndex

			state, err := socketio_utils.StampRoundStart(redisClient, current.ID, nextIndex)
			if err != nil {
				log.Printf("[ADVANCE-ERROR] Error stamping round %d for room %s: %v",
					nextIndex, current.ID, err)
				client.Emit("error", gin.H{"error": "Error advancing round"})
				return
			}

			socketio_utils.BroadcastRoomUpdate(sio, current)
			socketio_utils.BroadcastRoundStarted(sio, current.ID, nextIndex,
				state.RoundStartedAt, state.RoundDeadline)
			socketio_utils.StartRevealTimeout(redisClient, db, current.ID, nextIndex, sio)

			log.Printf("[ADVANCE] Room %s advanced to round %d", current.ID, nextIndex)
		})
		if err != nil {
			log.Printf("[ADVANCE-ERROR] Coordinator error for room %s: %v", room.ID, err)
			return
		}

		// No more mutations can arrive for a finished room
		if finished {
			coord.Release(room.ID)
		}
	}
}
