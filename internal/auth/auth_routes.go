package auth

import (
	"github.com/ImanMustopaKamal/deptech-be/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", handler.Login)
		authGroup.POST("/change-password", middleware.AuthMiddleware(), handler.ChangePassword)
		authGroup.GET("/me", middleware.AuthMiddleware(), handler.GetMe)
	}
}
