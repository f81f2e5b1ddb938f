package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// actorIDKey is the key used to store the acting principal's ID in the
// request context. Using a custom type prevents collisions.
const actorIDKey = contextKey("actorID")

// actorHeader carries the already-authenticated principal's ID. Issuing and
// verifying credentials belongs to the upstream gateway, not this service.
const actorHeader = "X-Actor-ID"

// ActorRequired rejects requests without an actor ID and stores the actor
// in both the gin context and the request context.
func ActorRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID := c.GetHeader(actorHeader)
		if actorID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing " + actorHeader + " header"})
			return
		}
		c.Set(string(actorIDKey), actorID)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), actorIDKey, actorID))
		c.Next()
	}
}

// GetActorIDFromContext retrieves the actor ID from the Gin context.
// It returns the actor ID and a boolean indicating if it was found.
func GetActorIDFromContext(c *gin.Context) (string, bool) {
	actorVal, exists := c.Get(string(actorIDKey))
	if !exists {
		// check in the request context as well
		if v := c.Request.Context().Value(actorIDKey); v != nil {
			return v.(string), true
		}
		return "", false
	}

	actorID, ok := actorVal.(string)
	if !ok {
		return "", false
	}

	return actorID, true
}
