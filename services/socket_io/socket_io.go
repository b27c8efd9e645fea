package socket_io

import (
	"TuneBlitz/services/catalog"
	"TuneBlitz/services/game"
	"TuneBlitz/services/redis"
	"TuneBlitz/services/socket_io/handlers"
	"TuneBlitz/sync"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	socketio_types "TuneBlitz/services/socket_io/types"
	socketio_utils "TuneBlitz/services/socket_io/utils"

	"gorm.io/gorm"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"
)

type MySocketServer socketio_types.SocketServer

func (sio *MySocketServer) Start(router *gin.Engine, db *gorm.DB, redisClient *redis.RedisClient,
	coord *game.Coordinator, catalogClient *catalog.Client, syncManager *sync.SyncManager) {
	c := socket.DefaultServerOptions()
	c.SetServeClient(true)
	// NOTE: higher ping interval and timeout to 1) reduce network load and 2) support slower networks
	c.SetPingInterval(5 * time.Second)
	c.SetPingTimeout(3 * time.Second)
	c.SetMaxHttpBufferSize(1000000)
	c.SetConnectTimeout(10 * time.Second)
	c.SetTransports(types.NewSet("polling", "websocket"))
	c.SetCors(&types.Cors{
		Origin:      "*",
		Credentials: true,
	})

	sio.PlayerConnections = make(map[string]*socket.Socket)

	sio.Sio_server = socket.NewServer(nil, nil)
	sio.Sio_server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)

		// Check the identity token before registering any handler
		success, playerId := socketio_utils.VerifyPlayerConnection(client)
		if !success {
			client.Disconnect(true)
			return
		}

		(*socketio_types.SocketServer)(sio).AddConnection(playerId, client)
		fmt.Println("An individual just connected!: ", playerId)

		// Subscribe the socket to a room's notification streams
		client.On("join_room", handlers.HandleJoinRoom(redisClient, client, db, playerId))

		// Exit a room voluntarily
		client.On("leave_room", handlers.HandleLeaveRoom(client, db, playerId,
			(*socketio_types.SocketServer)(sio), coord))

		// Get the room entity and roster
		client.On("get_room_info", handlers.GetRoomInfo(client, db, playerId))

		// Host picks the playlist the round material will come from
		client.On("select_playlist", handlers.HandleSelectPlaylist(client, db, playerId,
			(*socketio_types.SocketServer)(sio), coord))

		// Host starts the game
		client.On("start_game", handlers.HandleStartGame(redisClient, client, db, playerId,
			(*socketio_types.SocketServer)(sio), coord, catalogClient))

		// Score one round submission
		client.On("submit_answer", handlers.HandleSubmitAnswer(redisClient, client, db, playerId,
			(*socketio_types.SocketServer)(sio), coord))

		// Host advances to the next round or finishes the game
		client.On("next_round", handlers.HandleNextRound(redisClient, client, db, playerId,
			(*socketio_types.SocketServer)(sio), coord, syncManager))

		// Phase and countdown recovery for reconnecting clients
		client.On("get_phase_timeout", handlers.HandleGetPhaseTimeout(redisClient, client, db, playerId))

		// NOTE: will remove sio connection from map
		client.On("disconnecting", handlers.HandleDisconnecting(playerId,
			(*socketio_types.SocketServer)(sio)))
	})

	router.POST("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))
	router.GET("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))

	SignalC := make(chan os.Signal, 1)

	signal.Notify(SignalC, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		for s := range SignalC {
			switch s {
			case syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT:
				coord.Close()
				sio.Sio_server.Close(nil)
				os.Exit(0)
			}
		}
	}()

	fmt.Println("Socket server started")
}
