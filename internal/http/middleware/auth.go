package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jrcatalan/go-osca-backend/internal/domain"
)

// actorKey is the Gin context key under which the authenticated actor is stored.
const actorKey = "actor"

// TokenParser validates a bearer token and returns the actor it encodes.
type TokenParser interface {
	ParseToken(token string) (*domain.Actor, error)
}

// RequireAuth rejects requests without a valid Bearer token and stores the
// decoded actor in the context for handlers and audit attribution.
func RequireAuth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(raw, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			rid, _ := c.Get(requestIDKey)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"request_id": asString(rid),
				"code":       "unauthorized",
				"message":    "missing or malformed bearer token",
			})
			return
		}
		actor, err := parser.ParseToken(strings.TrimSpace(token))
		if err != nil {
			rid, _ := c.Get(requestIDKey)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"request_id": asString(rid),
				"code":       "unauthorized",
				"message":    "invalid or expired token",
			})
			return
		}
		c.Set(actorKey, actor)
		c.Next()
	}
}

// ActorFrom returns the authenticated actor, or nil on unauthenticated routes.
func ActorFrom(c *gin.Context) *domain.Actor {
	if v, ok := c.Get(actorKey); ok {
		if a, ok := v.(*domain.Actor); ok {
			return a
		}
	}
	return nil
}
