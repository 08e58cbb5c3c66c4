package middlewares

import (
	"errors"
	"net/http"

	"github.com/Ggirassol/myIntake-API/services"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware gates protected routes on a valid bearer access token and
// stores the authenticated userID on the context.
func AuthMiddleware(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := tokens.Authenticate(c.GetHeader("Authorization"))
		if err != nil {
			var apiErr *services.APIError
			if errors.As(err, &apiErr) {
				c.AbortWithStatusJSON(apiErr.Status, gin.H{"msg": apiErr.Msg})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"msg": "Internal server error"})
			return
		}
		c.Set("userID", userID)
		c.Next()
	}
}
