package handlers

import (
	game_constants "TuneBlitz/constants/game"
	"TuneBlitz/services/game"
	"TuneBlitz/services/redis"
	socketio_types "TuneBlitz/services/socket_io/types"
	socketio_utils "TuneBlitz/services/socket_io/utils"
	"TuneBlitz/utils"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
	"gorm.io/gorm"
)

// HandleSubmitAnswer scores one round submission for the calling player.
// At most one submission per player per round is accepted; the remaining
// countdown time comes from the server-stamped deadline, never from the
// client. The award is added on top of the player's previous score and the
// updated player entity fans out to the room.
func HandleSubmitAnswer(redisClient *redis.RedisClient, client *socket.Socket,
	db *gorm.DB, playerId string, sio *socketio_types.SocketServer,
	coord *game.Coordinator) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 3 {
			client.Emit("error", gin.H{"error": "Missing room id or answers"})
			return
		}

		roomId, ok := args[0].(string)
		if !ok {
			client.Emit("error", gin.H{"error": "Invalid room id"})
			return
		}
		titleGuess, _ := args[1].(string)
		artistGuess, _ := args[2].(string)

		if strings.TrimSpace(titleGuess) == "" && strings.TrimSpace(artistGuess) == "" {
			client.Emit("error", gin.H{"error": game.ErrEmptyGuess.Error()})
			return
		}

		room, player, err := socketio_utils.ValidateRoomAndPlayer(db, client, playerId, roomId)
		if err != nil {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err = coord.Do(ctx, room.ID, func() {
			current, err := utils.FindRoomByID(db, room.ID)
			if err != nil {
				client.Emit("error", gin.H{"error": "Room not found", "redirect": "home"})
				return
			}
			if current.Status != game_constants.StatusPlaying {
				log.Printf("[SUBMIT-ERROR] Room %s is not playing, rejecting submit from %s",
					current.ID, playerId)
				client.Emit("round_closed", gin.H{"error": game.ErrRoundClosed.Error()})
				return
			}

			round := current.CurrentRoundIndex

			state, err := redisClient.GetRoomState(current.ID)
			if err != nil || state == nil {
				log.Printf("[SUBMIT-ERROR] No round state for room %s: %v", current.ID, err)
				client.Emit("error", gin.H{"error": "Round state unavailable"})
				return
			}

			now := time.Now()
			if !state.RoundOpen(round, now) {
				client.Emit("round_closed", gin.H{"error": game.ErrRoundClosed.Error()})
				return
			}

			// At-most-once guard; a resubmission never re-scores
			first, err := redisClient.MarkSubmitted(current.ID, round, playerId)
			if err != nil {
				log.Printf("[SUBMIT-ERROR] Error marking submission: %v", err)
				client.Emit("error", gin.H{"error": "Error recording submission"})
				return
			}
			if !first {
				client.Emit("already_submitted", gin.H{"round_index": round})
				return
			}

			songs, err := utils.RoomSongs(db, current.ID)
			if err != nil || round >= len(songs) {
				log.Printf("[SUBMIT-ERROR] Missing round material for room %s: %v", current.ID, err)
				client.Emit("error", gin.H{"error": "Round material unavailable"})
				return
			}
			song := songs[round]

			timeRemaining := state.TimeRemaining(now)
			award := game.ScoreSubmission(titleGuess, artistGuess,
				song.SongTitle, song.ArtistName, timeRemaining)

			currentAnswer := fmt.Sprintf("%s - %s", titleGuess, artistGuess)

			answerLog := map[string]string{}
			if len(player.RoundAnswers) > 0 {
				_ = json.Unmarshal(player.RoundAnswers, &answerLog)
			}
			answerLog[fmt.Sprintf("%d", round)] = currentAnswer
			answerJSON, _ := json.Marshal(answerLog)

			player.Score += award.Points
			player.CurrentAnswer = &currentAnswer
			player.RoundAnswers = answerJSON

			if err := db.Model(player).Updates(map[string]interface{}{
				"score":          player.Score,
				"current_answer": currentAnswer,
				"round_answers":  answerJSON,
			}).Error; err != nil {
				log.Printf("[SUBMIT-ERROR] Error updating player %s: %v", playerId, err)
				client.Emit("error", gin.H{"error": "Error saving score"})
				return
			}

			client.Emit("answer_scored", gin.H{
				"round_index":    round,
				"award":          award,
				"new_score":      player.Score,
				"time_remaining": timeRemaining,
			})
			socketio_utils.BroadcastPlayerEvent(sio, current.ID, "update", player)

			log.Printf("[SUBMIT] Player %s scored %d in room %s (round=%d)",
				playerId, award.Points, current.ID, round)
		})
		if err != nil {
			log.Printf("[SUBMIT-ERROR] Coordinator error for room %s: %v", room.ID, err)
		}
	}
}
