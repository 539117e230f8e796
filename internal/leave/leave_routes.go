package leave

import (
	"github.com/ImanMustopaKamal/deptech-be/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	leaves := r.Group("/leaves")
	// Limit per admin di atas limit per IP global, karena endpoint cuti
	// yang paling sering dipukul berulang dari dashboard.
	leaves.Use(middleware.AuthMiddleware(), middleware.RateLimitByAdmin(5, 10))
	{
		leaves.GET("", handler.GetAll)
		leaves.GET("/:id", handler.GetById)
		if rdb != nil {
			leaves.POST("", middleware.Idempotency(rdb), handler.Create)
		} else {
			leaves.POST("", handler.Create)
		}
		leaves.PUT("/:id", handler.Update)
		leaves.DELETE("/:id", handler.Delete)
	}

	// Laporan rekap per employee dipisah dari koleksi /leaves supaya tidak
	// bentrok dengan parameter :id.
	reports := r.Group("/reports")
	reports.Use(middleware.AuthMiddleware())
	{
		reports.GET("/employees-with-leaves", handler.GetEmployeesWithLeaves)
	}
}
