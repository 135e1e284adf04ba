package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rentplatform/rentplatform-api/controllers"
	"github.com/rentplatform/rentplatform-api/middlewares"
)

func ProductRoutes(server *gin.Engine) {
	products := server.Group("/products")
	{
		products.GET("/list", controllers.ListProducts)
		products.GET("/calc-otp", controllers.CalcOtp)

		admin := products.Group("", middlewares.RequireAuth(), middlewares.RequireAdmin())
		{
			admin.GET("/admin/list", controllers.AdminListProducts)
			admin.POST("/add", controllers.AddProduct)
			admin.GET("/:id", controllers.GetProduct)
			admin.PUT("/:id", controllers.UpdateProduct)
			admin.DELETE("/:id", controllers.DeleteProduct)
		}
	}
}
