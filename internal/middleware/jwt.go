package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/krishna45-ux/DC-Physics-3/internal/models"
	"github.com/krishna45-ux/DC-Physics-3/internal/service"
	appErrors "github.com/krishna45-ux/DC-Physics-3/pkg/errors"
	"github.com/krishna45-ux/DC-Physics-3/pkg/response"
)

// ContextUserKey is the gin context key storing JWT claims.
const ContextUserKey = "currentUser"

// JWT protects routes by requiring a valid access token. For student tokens
// it also checks the embedded session token against the store, so a login
// from a second device invalidates this one on its next request.
func JWT(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		if claims.Role == models.RoleStudent {
			valid, err := authService.ValidateSession(c.Request.Context(), claims.UserID, claims.SessionToken)
			if err != nil {
				response.Error(c, err)
				c.Abort()
				return
			}
			if !valid {
				response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "session ended because this account signed in elsewhere"))
				c.Abort()
				return
			}
		}

		c.Set(ContextUserKey, claims)
		c.Next()
	}
}
