package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/krishna45-ux/DC-Physics-3/internal/middleware"
	"github.com/krishna45-ux/DC-Physics-3/internal/models"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}
