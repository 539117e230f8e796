package admin

import (
	"github.com/ImanMustopaKamal/deptech-be/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	admins := r.Group("/admins")
	admins.Use(middleware.AuthMiddleware())
	{
		admins.GET("", handler.GetAll)
		admins.GET("/:id", handler.GetById)
		admins.POST("", handler.Create)
		admins.PUT("/:id", handler.Update)
		admins.DELETE("/:id", handler.Delete)
	}
}
