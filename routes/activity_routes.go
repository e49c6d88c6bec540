package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/nabokov223u/CRM-Originarsa/controllers"
	"github.com/nabokov223u/CRM-Originarsa/middleware"
)

// RegisterActivityRoutes registers the activity routes
func RegisterActivityRoutes(router *gin.Engine) {
	activityRoutes := router.Group("/api/activities")
	activityRoutes.Use(middleware.AuthMiddleware())

	activityRoutes.POST("/", controllers.CreateActivity)
}
