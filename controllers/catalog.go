package controllers

import (
	"TuneBlitz/services/catalog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type playlistSearchRequest struct {
	Query string `json:"query"`
}

type playlistTracksRequest struct {
	PlaylistID int64 `json:"playlist_id"`
}

// @Summary Searches the external catalog for playlists
// @Tags catalog
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer identity token"
// @Success 200 {object} object{results=array}
// @Failure 400 {object} object{error=string}
// @Failure 502 {object} object{error=string}
// @Router /auth/catalog/playlists [post]
// @Security ApiKeyAuth
func SearchPlaylists(catalogClient *catalog.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req playlistSearchRequest
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Query) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Query is required"})
			return
		}

		results, err := catalogClient.SearchPlaylists(c.Request.Context(), strings.TrimSpace(req.Query))
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Catalog unavailable, try again"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"results": results})
	}
}

// @Summary Lists the tracks of a catalog playlist
// @Tags catalog
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer identity token"
// @Success 200 {object} object{tracks=array}
// @Failure 400 {object} object{error=string}
// @Failure 502 {object} object{error=string}
// @Router /auth/catalog/tracks [post]
// @Security ApiKeyAuth
func GetPlaylistTracks(catalogClient *catalog.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req playlistTracksRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.PlaylistID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Playlist id is required"})
			return
		}

		tracks, err := catalogClient.PlaylistTracks(c.Request.Context(), req.PlaylistID)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Catalog unavailable, try again"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"tracks": tracks})
	}
}
