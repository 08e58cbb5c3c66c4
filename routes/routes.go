package routes

import (
	"log/slog"
	"net/http"

	"github.com/Ggirassol/myIntake-API/controllers"
	"github.com/Ggirassol/myIntake-API/middlewares"
	"github.com/Ggirassol/myIntake-API/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRouter(
	logger *slog.Logger,
	db *gorm.DB,
	tokens *services.TokenService,
	auth *controllers.AuthController,
	intake *controllers.IntakeController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestLogger(logger))

	r.GET("/healthz", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.POST("/register", auth.Register)
		api.GET("/verify-email/:token/:email", auth.VerifyEmail)
		api.POST("/auth", auth.Login)
		api.POST("/refresh-token", auth.RefreshToken)
	}

	protected := r.Group("/api")
	protected.Use(middlewares.AuthMiddleware(tokens))
	{
		protected.PUT("/logout", auth.Logout)
		protected.POST("/add-intake", intake.AddIntake)
		protected.PUT("/edit-intake", intake.EditIntake)
		protected.POST("/weekly", intake.Weekly)
		protected.POST("/monthly", intake.Monthly)
		protected.GET("/:userId/:date", intake.GetIntakeByDate)
	}

	return r
}
