package employee

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the roster endpoints. writeLimit guards the mutating routes.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, writeLimit gin.HandlerFunc) {
	employees := r.Group("/employees")
	{
		employees.GET("", handler.GetAll)
		employees.POST("", writeLimit, handler.Create)
		employees.DELETE("/:employee_id", writeLimit, handler.Delete)
	}
}
