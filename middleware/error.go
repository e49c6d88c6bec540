package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/nabokov223u/CRM-Originarsa/utils"
)

// ErrorHandler global error handling middleware
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Status() >= 400 {
			return
		}

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			utils.HandleError(c, err.Err)
			return
		}
	}
}
