package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/nabokov223u/CRM-Originarsa/repository"
	"github.com/nabokov223u/CRM-Originarsa/utils"
)

// RegisterRoutes registers every route group
func RegisterRoutes(router *gin.Engine) {
	RegisterAuthRoutes(router)
	RegisterLeadRoutes(router)
	RegisterApplicationRoutes(router)
	RegisterActivityRoutes(router)

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	router.GET("/api/db-status", func(c *gin.Context) {
		status, err := repository.GetDatabaseStatus()
		if err != nil {
			utils.ErrorResponse(c, "No se pudo obtener el estado de la base de datos: "+err.Error(), 500)
			return
		}
		c.JSON(200, status)
	})
}
