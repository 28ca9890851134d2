package attendance

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, writeLimit gin.HandlerFunc) {
	attendance := r.Group("/attendance")
	{
		attendance.POST("", writeLimit, h.Mark)
		attendance.GET("/:employee_id", h.ListForEmployee)
	}
}
