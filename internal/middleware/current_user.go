package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/huskytracks/huskytracks-api/internal/models"
)

// CurrentUser returns the claims attached by the JWT middleware, or nil when
// the route ran unauthenticated.
func CurrentUser(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}
