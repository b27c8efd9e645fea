package socketio_utils

import (
	game_constants "TuneBlitz/constants/game"
	redis_models "TuneBlitz/models/redis"
	"TuneBlitz/services/game"
	"TuneBlitz/services/redis"
	socketio_types "TuneBlitz/services/socket_io/types"
	"TuneBlitz/utils"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
	"gorm.io/gorm"
)

// StampRoundStart records the server-side round start in Redis and returns
// the stored state. The deadline is the single reference clients use to
// compute their remaining time.
func StampRoundStart(redisClient *redis.RedisClient, roomId string, roundIndex int) (*redis_models.RoomState, error) {
	now := time.Now()
	state := &redis_models.RoomState{
		RoomID:         roomId,
		CurrentRound:   roundIndex,
		RoundStartedAt: now,
		RoundDeadline:  now.Add(game_constants.RoundSeconds * time.Second),
	}
	if err := redisClient.SaveRoomState(state); err != nil {
		return nil, err
	}
	return state, nil
}

// StartRevealTimeout broadcasts the round result once the countdown of the
// given round has run out. Clients flip to reveal on their own local
// countdowns; this broadcast only carries the correct answer and the
// standings, it does not synchronize their timers.
func StartRevealTimeout(redisClient *redis.RedisClient, db *gorm.DB, roomId string,
	roundIndex int, sio *socketio_types.SocketServer) {

	state, err := redisClient.GetRoomState(roomId)
	if err != nil || state == nil {
		log.Printf("[REVEAL-TIMEOUT-ERROR] No round state for room %s: %v", roomId, err)
		return
	}

	go func() {
		time.Sleep(time.Until(state.RoundDeadline))

		// The host may already have advanced past this round
		currentState, err := redisClient.GetRoomState(roomId)
		if err != nil || currentState == nil || currentState.CurrentRound != roundIndex {
			log.Printf("[REVEAL-TIMEOUT-INFO] Round %d already over for room %s, skipping", roundIndex, roomId)
			return
		}

		room, err := utils.FindRoomByID(db, roomId)
		if err != nil || room.Status != game_constants.StatusPlaying {
			log.Printf("[REVEAL-TIMEOUT-INFO] Room %s no longer playing, skipping reveal", roomId)
			return
		}

		songs, err := utils.RoomSongs(db, roomId)
		if err != nil || roundIndex >= len(songs) {
			log.Printf("[REVEAL-TIMEOUT-ERROR] Missing round material for room %s: %v", roomId, err)
			return
		}

		players, err := utils.RoomPlayers(db, roomId)
		if err != nil {
			log.Printf("[REVEAL-TIMEOUT-ERROR] Error loading roster for room %s: %v", roomId, err)
			return
		}

		sio.Sio_server.To(socket.Room(roomId)).Emit("round_result", gin.H{
			"room_id":     roomId,
			"round_index": roundIndex,
			"song":        songs[roundIndex],
			"leaderboard": game.Leaderboard(players),
		})
		log.Printf("[REVEAL-TIMEOUT] Broadcast round_result for room %s (round=%d)", roomId, roundIndex)
	}()
}
