package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/nabokov223u/CRM-Originarsa/controllers"
	"github.com/nabokov223u/CRM-Originarsa/middleware"
)

// RegisterApplicationRoutes registers the CrediExpress application routes.
// The intake webhook is unauthenticated, the partner calls it directly.
func RegisterApplicationRoutes(router *gin.Engine) {
	router.POST("/api/applications", controllers.CreateApplication)

	appRoutes := router.Group("/api/applications")
	appRoutes.Use(middleware.AuthMiddleware())
	appRoutes.GET("/", controllers.GetApplications)
}
