package socketio_utils

import (
	"TuneBlitz/middleware"
	models "TuneBlitz/models/postgres"
	"TuneBlitz/utils"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
	"gorm.io/gorm"
)

// VerifyPlayerConnection checks the identity token of a freshly connected
// socket. Returns (true, playerId) on success; on failure it emits an error
// and the connection should be dropped.
func VerifyPlayerConnection(client *socket.Socket) (bool, string) {
	authData, ok := client.Handshake().Auth.(map[string]interface{})
	if !ok {
		log.Println("[CONN-ERROR] Handshake auth data is missing or invalid")
		client.Emit("error", gin.H{"error": "Authentication failed: missing auth data"})
		return false, ""
	}

	tokenString, exists := authData["token"].(string)
	if !exists {
		log.Println("[CONN-ERROR] No identity token provided in handshake")
		client.Emit("error", gin.H{"error": "Authentication failed: missing identity token"})
		return false, ""
	}

	playerId, err := middleware.ParseIdentityToken(tokenString)
	if err != nil {
		log.Printf("[CONN-ERROR] Invalid identity token: %v", err)
		client.Emit("error", gin.H{"error": "Authentication failed: invalid identity token"})
		return false, ""
	}

	return true, playerId
}

// ValidateRoomAndPlayer loads a room and checks that the player is a member
// of it. Emits the matching error event before returning on any failure.
func ValidateRoomAndPlayer(db *gorm.DB, client *socket.Socket, playerId string,
	roomId string) (*models.Room, *models.Player, error) {

	room, err := utils.FindRoomByID(db, roomId)
	if err != nil {
		log.Printf("[VALIDATE-ERROR] Room %s not found: %v", roomId, err)
		client.Emit("error", gin.H{"error": "Room not found", "redirect": "home"})
		return nil, nil, err
	}

	player, err := utils.FindPlayer(db, playerId)
	if err != nil || player.RoomID != room.ID {
		log.Printf("[VALIDATE-ERROR] Player %s is not in room %s", playerId, roomId)
		client.Emit("error", gin.H{"error": "You must join the room first", "redirect": "home"})
		if err == nil {
			err = gorm.ErrRecordNotFound
		}
		return nil, nil, err
	}

	return room, player, nil
}
