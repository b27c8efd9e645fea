package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"TuneBlitz/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestIssueIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/identity", IssueIdentity())

	req := httptest.NewRequest(http.MethodPost, "/identity", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		PlayerID string `json:"player_id"`
		Token    string `json:"token"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body.PlayerID)
	assert.NotEmpty(t, body.Token)

	// The token names the freshly minted player
	playerId, err := middleware.ParseIdentityToken(body.Token)
	assert.NoError(t, err)
	assert.Equal(t, body.PlayerID, playerId)
}

func TestIssueIdentityIsUniquePerCall(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/identity", IssueIdentity())

	ids := make(map[string]bool)
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodPost, "/identity", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		var body struct {
			PlayerID string `json:"player_id"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		ids[body.PlayerID] = true
	}
	assert.Len(t, ids, 5)
}

func TestPing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/ping", Ping)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong")
}
