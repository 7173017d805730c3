package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/bar-pos/utils"
)

// InvoiceLoggerMiddleware brackets table close requests in the log.
func InvoiceLoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.InfoLogger.Printf("Closing table ID: %s", c.Param("table_id"))

		c.Next()

		if c.Writer.Status() == 200 {
			utils.InfoLogger.Printf("Invoice issued for table ID: %s", c.Param("table_id"))
		} else {
			utils.ErrorLogger.Printf("Failed to close table ID: %s (status %d)", c.Param("table_id"), c.Writer.Status())
		}
	}
}
