package middleware

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Context key under which the authenticated player id is stored.
const PlayerIDKey = "player_id"

var ErrInvalidToken = errors.New("invalid identity token")

func signingSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "tuneblitz-dev-secret"
	}
	return []byte(secret)
}

// IssueIdentityToken signs a durable capability token for a player id. The
// token carries no expiry: identity lives as long as the client keeps the
// token, and losing it means losing the ability to rejoin as that player.
func IssueIdentityToken(playerId string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": playerId,
	})
	return token.SignedString(signingSecret())
}

// ParseIdentityToken validates a token and returns the player id it names.
func ParseIdentityToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return signingSecret(), nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}

// IdentityRequired extracts the bearer token and stores the player id in the
// request context. Every mutating call carries the token explicitly; there
// is no ambient session.
func IdentityRequired(c *gin.Context) {
	header := c.GetHeader("Authorization")
	tokenString := strings.TrimPrefix(header, "Bearer ")
	if tokenString == "" || tokenString == header {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing identity token"})
		return
	}

	playerId, err := ParseIdentityToken(tokenString)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid identity token"})
		return
	}

	c.Set(PlayerIDKey, playerId)
	c.Next()
}

// PlayerID reads the authenticated player id set by IdentityRequired.
func PlayerID(c *gin.Context) string {
	return c.GetString(PlayerIDKey)
}
