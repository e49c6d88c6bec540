package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/nabokov223u/CRM-Originarsa/controllers"
	"github.com/nabokov223u/CRM-Originarsa/middleware"
)

// RegisterLeadRoutes registers the unified lead routes
func RegisterLeadRoutes(router *gin.Engine) {
	leadRoutes := router.Group("/api/leads")
	leadRoutes.Use(middleware.AuthMiddleware())

	leadRoutes.GET("/", controllers.GetLeads)
	leadRoutes.POST("/", controllers.CreateLead)
	leadRoutes.GET("/:id", controllers.GetLead)
	leadRoutes.PUT("/:id", controllers.UpdateLead)
	leadRoutes.DELETE("/:id", controllers.DeleteLead)
	leadRoutes.PATCH("/:id/status", controllers.UpdateLeadStatus)
	leadRoutes.GET("/:id/activities", controllers.GetLeadActivities)
}
