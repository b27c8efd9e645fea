package socketio_utils

import (
	models "TuneBlitz/models/postgres"
	socketio_types "TuneBlitz/services/socket_io/types"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

/*
 * Fan-out helpers. Every room mutation is pushed to all sockets subscribed
 * to that room over two independent streams: room entity events and player
 * (roster) entity events. Payloads always carry the full replacement entity,
 * never a delta, so clients can fold them idempotently.
 */

// BroadcastRoomUpdate pushes the authoritative room entity to the room.
func BroadcastRoomUpdate(sio *socketio_types.SocketServer, room *models.Room) {
	sio.Sio_server.To(socket.Room(room.ID)).Emit("room_update", gin.H{
		"event_kind": "update",
		"room":       room,
	})
	log.Printf("[FANOUT] room_update for room %s (status=%s, round=%d)",
		room.ID, room.Status, room.CurrentRoundIndex)
}

// BroadcastPlayerEvent pushes one roster mutation to the room. Kind is one
// of "insert", "update" or "delete".
func BroadcastPlayerEvent(sio *socketio_types.SocketServer, roomId string,
	kind string, player *models.Player) {

	sio.Sio_server.To(socket.Room(roomId)).Emit("player_"+kind, gin.H{
		"event_kind": kind,
		"player":     player,
	})
	log.Printf("[FANOUT] player_%s for player %s in room %s", kind, player.ID, roomId)
}

// BroadcastRoundStarted announces a fresh round with its server-stamped
// countdown, so reconnecting clients can derive the remaining time from
// wall-clock delta instead of a locally initialized counter.
func BroadcastRoundStarted(sio *socketio_types.SocketServer, roomId string,
	roundIndex int, startedAt, deadline time.Time) {

	sio.Sio_server.To(socket.Room(roomId)).Emit("round_started", gin.H{
		"room_id":     roomId,
		"round_index": roundIndex,
		"started_at":  startedAt.Format(time.RFC3339),
		"deadline":    deadline.Format(time.RFC3339),
	})
	log.Printf("[FANOUT] round_started for room %s (round=%d)", roomId, roundIndex)
}
