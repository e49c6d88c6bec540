package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/nabokov223u/CRM-Originarsa/controllers"
)

// RegisterAuthRoutes registers the authentication routes
func RegisterAuthRoutes(router *gin.Engine) {
	authRoutes := router.Group("/api/auth")

	authRoutes.POST("/login", controllers.Login)
}
