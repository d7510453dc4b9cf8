package auth

import (
	"github.com/gin-gonic/gin"
	"github.com/maxaizer/job-copilot/internal/logger"
	log "github.com/sirupsen/logrus"
	"net/http"
	"strings"
)

const identityKey = "auth.identity"

type tokenVerifier interface {
	Verify(token string) (Identity, error)
}

// Middleware rejects requests without a valid bearer token with 401 {error}.
func Middleware(verifier tokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")

		identity, err := verifier.Verify(strings.TrimSpace(token))
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeAuth).
				Infof("authentication failed for %s %s: %v", c.Request.Method, c.FullPath(), err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

func IdentityFrom(c *gin.Context) (Identity, bool) {
	value, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	identity, ok := value.(Identity)
	return identity, ok
}

// UserID returns the authenticated user id or an empty string.
func UserID(c *gin.Context) string {
	identity, _ := IdentityFrom(c)
	return identity.UserID
}
