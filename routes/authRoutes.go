package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rentplatform/rentplatform-api/controllers"
	"github.com/rentplatform/rentplatform-api/middlewares"
)

func AuthRoutes(server *gin.Engine) {
	users := server.Group("/users")
	{
		users.POST("/register", controllers.Register)
		users.POST("/verify", controllers.Verify)
		users.POST("/resend-verification", controllers.ResendVerification)
		users.POST("/login", controllers.Login)
		users.POST("/forgot-password", controllers.ForgotPassword)
		users.POST("/reset-password", controllers.ResetPassword)

		users.GET("/me", middlewares.RequireAuth(), controllers.GetMe)
		users.POST("/change-password", middlewares.RequireAuth(), controllers.ChangePassword)
		users.POST("/redeem-code", middlewares.RequireAuth(), controllers.RedeemCode)
	}
}
