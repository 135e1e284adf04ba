package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rentplatform/rentplatform-api/controllers"
)

func DefaultRoutes(server *gin.Engine) {
	server.GET("/", controllers.GetHome)
	server.GET("/health", controllers.GetHealth)
	server.GET("/announcements", controllers.ListActiveAnnouncements)
}
