package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// RoleProtection - Checks if the session user has one of the roles
func RoleProtection(roles []UserRole, authMode bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		// For development, you can turn of the roleProtection
		if !authMode {
			c.Next()
			return
		}

		session, ok := GetSession(c)
		if !ok {
			log.Error().Msg(ErrMissingSession.Message)
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrMissingSession)
			return
		}

		if !contains(roles, session.User.Role) {
			log.Error().Str("user", session.User.Username).Msg(fmt.Sprintf("%s. roles=%v", ErrNoPrivileges.Message, roles))
			c.AbortWithStatusJSON(http.StatusForbidden, ErrNoPrivileges)
			return
		}

		c.Next()
	}
}

// Contains - Slice contains the target. Return true of false
func contains[T comparable](set []T, target T) bool {
	for i := 0; i < len(set); i++ {
		if set[i] == target {
			return true
		}
	}
	return false
}
