package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"inkwell-api/internal/service"
)

const identityKey = "auth_identity"

// AuthMiddleware exige un bearer token valido de un usuario verificado y
// guarda su identidad en el contexto.
func AuthMiddleware(authorizer *service.Authorizer, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authorizer == nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "auth not configured"})
			return
		}

		identity, err := authorizer.Authorize(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			status, msg := authFailure(err)
			if status == http.StatusInternalServerError {
				logger.Error("authorize failed", zap.Error(err))
			}
			c.AbortWithStatusJSON(status, gin.H{"error": msg})
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

func authFailure(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrMissingCredentials),
		errors.Is(err, service.ErrMalformedCredentials):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrUnknownSubject),
		errors.Is(err, service.ErrUnverifiedAccount):
		return http.StatusUnauthorized, err.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

// GetIdentity obtiene la identidad autenticada desde el contexto.
func GetIdentity(c *gin.Context) (service.Identity, bool) {
	val, ok := c.Get(identityKey)
	if !ok {
		return service.Identity{}, false
	}
	identity, ok := val.(service.Identity)
	return identity, ok
}
