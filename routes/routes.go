package routes

import (
	"TuneBlitz/controllers"
	"TuneBlitz/middleware"
	"TuneBlitz/services/catalog"
	"TuneBlitz/services/game"
	socketio_types "TuneBlitz/services/socket_io/types"
	utils "TuneBlitz/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, db *gorm.DB, sio *socketio_types.SocketServer,
	coord *game.Coordinator, catalogClient *catalog.Client) {

	// utils global
	router.Use(utils.ErrorHandler())

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes group
	api := router.Group("/")

	api.GET("/ping", controllers.Ping)

	// Anonymous identity issuance: the only unauthenticated mutation
	api.POST("/identity", controllers.IssueIdentity())

	authentication := api.Group("/auth")
	authentication.Use(middleware.IdentityRequired)
	{
		authentication.POST("/rooms", controllers.CreateRoom(db))

		authentication.POST("/rooms/join", controllers.JoinRoom(db, sio, coord))

		authentication.DELETE("/rooms/leave", controllers.LeaveRoom(db, sio, coord))

		authentication.GET("/rooms/:join_code", controllers.GetRoomInfo(db))

		authentication.GET("/rooms/:join_code/results", controllers.GetRoomResults(db))

		authentication.POST("/catalog/playlists", controllers.SearchPlaylists(catalogClient))

		authentication.POST("/catalog/tracks", controllers.GetPlaylistTracks(catalogClient))
	}
}
