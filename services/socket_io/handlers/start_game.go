package handlers

import (
	game_constants "TuneBlitz/constants/game"
	models "TuneBlitz/models/postgres"
	"TuneBlitz/services/catalog"
	"TuneBlitz/services/game"
	"TuneBlitz/services/redis"
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

// HandleStartGame performs the lobby -> playing transition: it pulls the
// round material from the external catalog, persists it together with the
// status flip in one transaction, stamps the first round's countdown and
// fans the new room state out. A catalog failure aborts the transition with
// the room left untouched in the lobby.
func HandleStartGame(redisClient *redis.RedisClient, client *socket.Socket,
	db *gorm.DB, playerId string, sio *socketio_types.SocketServer,
	coord *game.Coordinator, catalogClient *catalog.Client) func(args ...interface{}) {
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

		playerCount, err := utils.CountPlayers(db, room.ID)
		if err != nil {
			log.Printf("[START-ERROR] Error counting players for room %s: %v", room.ID, err)
			client.Emit("error", gin.H{"error": "Database error"})
			return
		}

		// Cheap precheck before touching the external catalog; the actual
		// transition re-validates inside the coordinator.
		if err := game.CanStart(room, playerId, playerCount); err != nil {
			log.Printf("[START-ERROR] Player %s rejected: %v", playerId, err)
			client.Emit("error", gin.H{"error": err.Error()})
			return
		}

		fetchCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		tracks, err := catalogClient.PlaylistTracks(fetchCtx, *room.SelectedPlaylistID)
		if err != nil {
			log.Printf("[START-ERROR] Catalog fetch failed for room %s: %v", room.ID, err)
			client.Emit("error", gin.H{"error": "Catalog unavailable, try again"})
			return
		}
		if len(tracks) == 0 {
			client.Emit("error", gin.H{"error": "Selected playlist has no tracks"})
			return
		}
		if len(tracks) > game_constants.MaxTracksPerGame {
			tracks = tracks[:game_constants.MaxTracksPerGame]
		}

		ctx, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel2()

		err = coord.Do(ctx, room.ID, func() {
			// Re-read and re-validate inside the serialization point: another
			// mutation may have landed while the catalog call was in flight.
			current, err := utils.FindRoomByID(db, room.ID)
			if err != nil {
				client.Emit("error", gin.H{"error": "Room not found", "redirect": "home"})
				return
			}
			count, err := utils.CountPlayers(db, current.ID)
			if err != nil {
				client.Emit("error", gin.H{"error": "Database error"})
				return
			}
			if err := game.CanStart(current, playerId, count); err != nil {
				log.Printf("[START-ERROR] Player %s rejected at commit: %v", playerId, err)
				client.Emit("error", gin.H{"error": err.Error()})
				return
			}

			songs := make([]models.GameSong, 0, len(tracks))
			for i, t := range tracks {
				songs = append(songs, models.GameSong{
					RoomID:     current.ID,
					Position:   i,
					SongTitle:  t.Title,
					ArtistName: t.ArtistName,
					PreviewURL: t.PreviewURL,
				})
			}

			// Round material and the status flip commit together or not at all
			err = db.Transaction(func(tx *gorm.DB) error {
				if err := tx.Create(&songs).Error; err != nil {
					return err
				}
				return tx.Model(current).Updates(map[string]interface{}{
					"status":              game_constants.StatusPlaying,
					"current_round_index": 0,
				}).Error
			})
			if err != nil {
				log.Printf("[START-ERROR] Transaction failed for room %s: %v", current.ID, err)
				client.Emit("error", gin.H{"error": "Error starting game"})
				return
			}
			current.Status = game_constants.StatusPlaying
			current.CurrentRoundIndex = 0

			state, err := socketio_utils.StampRoundStart(redisClient, current.ID, 0)
			if err != nil {
				log.Printf("[START-ERROR] Error stamping round start for room %s: %v", current.ID, err)
				client.Emit("error", gin.H{"error": "Error starting game"})
				return
			}

			socketio_utils.BroadcastRoomUpdate(sio, current)
			socketio_utils.BroadcastRoundStarted(sio, current.ID, 0, state.RoundStartedAt, state.RoundDeadline)
			socketio_utils.StartRevealTimeout(redisClient, db, current.ID, 0, sio)

			log.Printf("[START] Room %s started with %d songs", current.ID, len(songs))
		})
		if err != nil {
			log.Printf("[START-ERROR] Coordinator error for room %s: %v", room.ID, err)
		}
	}
}
