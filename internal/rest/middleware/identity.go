package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"sitecomments/domain"
)

const identityKey = "identity"

// Identity resolves the caller through the injected provider and stores
// it in the gin context. Anonymous requests pass through with no value.
func Identity(provider domain.IdentityProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := provider.CurrentUser(c.Request)
		if err != nil {
			logrus.Warnf("failed to resolve identity: %v", err)
		} else if id != nil {
			c.Set(identityKey, id)
		}
		c.Next()
	}
}

// RequireIdentity rejects anonymous requests. Must run after Identity.
func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IdentityFromContext(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": domain.ErrUnauthorized.Error()})
			return
		}
		c.Next()
	}
}

// IdentityFromContext returns the resolved identity or nil.
func IdentityFromContext(c *gin.Context) *domain.Identity {
	v, exists := c.Get(identityKey)
	if !exists {
		return nil
	}
	id, ok := v.(*domain.Identity)
	if !ok {
		return nil
	}
	return id
}
