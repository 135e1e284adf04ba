package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rentplatform/rentplatform-api/controllers"
	"github.com/rentplatform/rentplatform-api/middlewares"
)

func OrderRoutes(server *gin.Engine) {
	orders := server.Group("/orders", middlewares.RequireAuth())
	{
		orders.POST("/buy/:productId", controllers.BuyProduct)
		orders.POST("/renew/:orderId", controllers.RenewOrder)
		orders.GET("/history", controllers.GetHistory)

		admin := orders.Group("", middlewares.RequireAdmin())
		{
			admin.GET("/all", controllers.GetAllOrders)
			admin.PUT("/:orderId/expiry", controllers.SetOrderExpiry)
		}
	}
}
