package controllers

import (
	"TuneBlitz/middleware"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// @Summary Issues an anonymous identity
// @Description Returns a fresh player id plus the capability token that must accompany every later call. The token never expires; losing it means losing the identity.
// @Tags identity
// @Produce json
// @Success 200 {object} object{player_id=string,token=string}
// @Failure 500 {object} object{error=string}
// @Router /identity [post]
func IssueIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		playerId := uuid.NewString()

		token, err := middleware.IssueIdentityToken(playerId)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error issuing identity"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"player_id": playerId,
			"token":     token,
		})
	}
}

// @Summary Health check
// @Tags misc
// @Produce json
// @Success 200 {object} object{message=string}
// @Router /ping [get]
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
