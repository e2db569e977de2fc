package route

import (
	"time"

	"github.com/bassista/go_mart/internal/api/controller"
	"github.com/bassista/go_mart/internal/api/middleware"
	"github.com/bassista/go_mart/internal/cache"
	"github.com/gin-gonic/gin"
)

func NewProductRouter(timeout time.Duration, group *gin.RouterGroup, store controller.ProductStore, responseCache cache.ResponseCache, events *cache.Dispatcher, perPage int) {
	group.Use(middleware.RequestTimeout(timeout))

	pc := controller.NewProductController(store, responseCache, events, perPage)

	group.GET("product/latest", pc.Latest)
	group.GET("product/categories", pc.Categories)
	group.GET("product/admin", pc.All)
	group.GET("product/search", pc.Search)
	group.GET("product/:id", pc.One)
	group.POST("product", pc.Create)
	group.PUT("product/:id", pc.Update)
	group.DELETE("product/:id", pc.Delete)
}
