package controllers

import (
	game_constants "TuneBlitz/constants/game"
	"TuneBlitz/middleware"
	models "TuneBlitz/models/postgres"
	"TuneBlitz/services/game"
	socketio_types "TuneBlitz/services/socket_io/types"
	socketio_utils "TuneBlitz/services/socket_io/utils"
	"TuneBlitz/utils"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type joinRoomRequest struct {
	JoinCode string `json:"join_code" binding:"required"`
	Name     string `json:"name" binding:"required"`
}

type createRoomRequest struct {
	Name string `json:"name" binding:"required"`
}

// @Summary Creates a new room
// @Description Creates a room in the lobby state with the caller as host. The join code is generated server side with a uniqueness retry.
// @Tags rooms
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer identity token"
// @Success 200 {object} object{room_id=string,join_code=string}
// @Failure 400 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/rooms [post]
// @Security ApiKeyAuth
func CreateRoom(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerId := middleware.PlayerID(c)

		var req createRoomRequest
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
			return
		}
		name := strings.TrimSpace(req.Name)

		var existing models.Player
		if err := db.Where("id = ?", playerId).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Leave your current room first"})
			return
		}

		newRoom := models.Room{
			ID:     uuid.NewString(),
			Status: game_constants.StatusLobby,
		}
		// Concurrent creates can draw the same join code; the unique index
		// rejects the loser, which simply draws a fresh one.
		var createErr error
		for attempt := 0; attempt < 5; attempt++ {
			newRoom.JoinCode = ""
			if createErr = db.Create(&newRoom).Error; createErr == nil ||
				!models.IsUniqueViolation(createErr) {
				break
			}
		}
		if createErr != nil {
			log.Printf("[ROOM-ERROR] Failed to create room: %v", createErr)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating room"})
			return
		}

		host := models.Player{
			ID:        playerId,
			Name:      name,
			RoomID:    newRoom.ID,
			IsHost:    true,
			JoinOrder: 0,
		}
		if err := db.Create(&host).Error; err != nil {
			log.Printf("[ROOM-ERROR] Failed to create host player: %v", err)
			db.Delete(&newRoom)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating room"})
			return
		}

		// Second step of room creation: finalize the host reference. The
		// guard keeps concurrent double finalization from clobbering an
		// already set host.
		if err := db.Model(&models.Room{}).
			Where("id = ? AND host_id IS NULL", newRoom.ID).
			Update("host_id", host.ID).Error; err != nil {
			log.Printf("[ROOM-ERROR] Failed to finalize host for room %s: %v", newRoom.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating room"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"room_id":   newRoom.ID,
			"join_code": newRoom.JoinCode,
			"message":   "Room created successfully",
		})
	}
}

// @Summary Joins an existing room by join code
// @Tags rooms
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer identity token"
// @Success 200 {object} object{room_id=string,join_code=string}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/rooms/join [post]
// @Security ApiKeyAuth
func JoinRoom(db *gorm.DB, sio *socketio_types.SocketServer, coord *game.Coordinator) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerId := middleware.PlayerID(c)

		var req joinRoomRequest
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Join code and name are required"})
			return
		}
		name := strings.TrimSpace(req.Name)

		room, err := utils.FindRoomByCode(db, req.JoinCode)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
			return
		}

		var existing models.Player
		if err := db.Where("id = ?", playerId).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Leave your current room first"})
			return
		}

		status := http.StatusInternalServerError
		resp := gin.H{"error": "Error joining room"}

		// The coordinator serializes joins, so two players joining at the
		// same moment cannot read the same join order or both slip past the
		// capacity check.
		coordErr := coord.Do(c.Request.Context(), room.ID, func() {
			count, err := utils.CountPlayers(db, room.ID)
			if err != nil {
				return
			}
			if count >= game_constants.MaxPlayersPerRoom {
				status = http.StatusConflict
				resp = gin.H{"error": "Room is full"}
				return
			}

			joinOrder, err := utils.NextJoinOrder(db, room.ID)
			if err != nil {
				return
			}

			player := models.Player{
				ID:        playerId,
				Name:      name,
				RoomID:    room.ID,
				IsHost:    false,
				JoinOrder: joinOrder,
			}
			if err := db.Create(&player).Error; err != nil {
				log.Printf("[JOIN-ERROR] Failed to create player %s: %v", playerId, err)
				return
			}

			socketio_utils.BroadcastPlayerEvent(sio, room.ID, "insert", &player)

			status = http.StatusOK
			resp = gin.H{
				"room_id":   room.ID,
				"join_code": room.JoinCode,
				"message":   "Joined room successfully",
			}
		})
		if coordErr != nil {
			log.Printf("[JOIN-ERROR] Coordinator error for room %s: %v", room.ID, coordErr)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error joining room"})
			return
		}

		c.JSON(status, resp)
	}
}

// @Summary Gives info of a room
// @Description Given a join code, returns the room entity, its roster and, while playing, the round material.
// @Tags rooms
// @Produce json
// @Param Authorization header string true "Bearer identity token"
// @Param join_code path string true "Join code of the room"
// @Success 200 {object} object{room=object,players=array}
// @Failure 404 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/rooms/{join_code} [get]
// @Security ApiKeyAuth
func GetRoomInfo(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		joinCode := c.Param("join_code")

		room, err := utils.FindRoomByCode(db, joinCode)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}

		players, err := utils.RoomPlayers(db, room.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		resp := gin.H{
			"room":    room,
			"players": players,
		}

		if room.Status == game_constants.StatusPlaying {
			songs, err := utils.RoomSongs(db, room.ID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
				return
			}
			resp["songs"] = songs
		}

		c.JSON(http.StatusOK, resp)
	}
}

// @Summary Final standings of a finished game
// @Tags rooms
// @Produce json
// @Param Authorization header string true "Bearer identity token"
// @Param join_code path string true "Join code of the room"
// @Success 200 {object} object{leaderboard=array,total_songs=integer}
// @Failure 404 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/rooms/{join_code}/results [get]
// @Security ApiKeyAuth
func GetRoomResults(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		joinCode := c.Param("join_code")

		room, err := utils.FindRoomByCode(db, joinCode)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
			return
		}

		players, err := utils.RoomPlayers(db, room.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		var totalSongs int64
		if err := db.Model(&models.GameSong{}).Where("room_id = ?", room.ID).Count(&totalSongs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"room_id":     room.ID,
			"status":      room.Status,
			"leaderboard": game.Leaderboard(players),
			"total_songs": totalSongs,
		})
	}
}

// @Summary Leaves the caller's current room
// @Tags rooms
// @Produce json
// @Param Authorization header string true "Bearer identity token"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/rooms/leave [delete]
// @Security ApiKeyAuth
func LeaveRoom(db *gorm.DB, sio *socketio_types.SocketServer, coord *game.Coordinator) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerId := middleware.PlayerID(c)

		player, err := utils.FindPlayer(db, playerId)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "You are not in a room"})
			return
		}
		roomId := player.RoomID

		ok := false
		emptied := false
		coordErr := coord.Do(c.Request.Context(), roomId, func() {
			remaining, err := utils.RemovePlayer(db, player)
			if err != nil {
				log.Printf("[LEAVE-ERROR] Failed to delete player %s: %v", playerId, err)
				return
			}
			socketio_utils.BroadcastPlayerEvent(sio, roomId, "delete", player)
			ok = true
			emptied = remaining == 0
		})
		if coordErr != nil || !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error leaving room"})
			return
		}

		// The last player leaving retires the room's actor
		if emptied {
			coord.Release(roomId)
		}

		c.JSON(http.StatusOK, gin.H{"message": "Left room", "left_at": time.Now()})
	}
}
