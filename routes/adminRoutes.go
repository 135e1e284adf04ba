package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rentplatform/rentplatform-api/controllers"
	"github.com/rentplatform/rentplatform-api/middlewares"
)

func AdminRoutes(server *gin.Engine) {
	admin := server.Group("/admin", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.GET("/users", controllers.GetAllUsers)
		admin.PUT("/users/balance", controllers.SetUserBalance)

		admin.POST("/promo-codes", controllers.CreatePromoCode)
		admin.GET("/promo-codes", controllers.GetAllPromoCodes)
		admin.DELETE("/promo-codes/:id", controllers.DeactivatePromoCode)

		admin.POST("/announcements", controllers.CreateAnnouncement)
		admin.GET("/announcements", controllers.AdminListAnnouncements)
		admin.PUT("/announcements/:id", controllers.UpdateAnnouncement)
		admin.DELETE("/announcements/:id", controllers.DeleteAnnouncement)
	}
}
