package route

import (
	"time"

	"github.com/bassista/go_mart/internal/api/controller"
	"github.com/bassista/go_mart/internal/api/middleware"
	"github.com/bassista/go_mart/internal/cache"
	"github.com/bassista/go_mart/internal/inventory"
	"github.com/gin-gonic/gin"
)

func NewOrderRouter(timeout time.Duration, group *gin.RouterGroup, store controller.OrderStore, adjuster *inventory.Adjuster, responseCache cache.ResponseCache, events *cache.Dispatcher) {
	group.Use(middleware.RequestTimeout(timeout))

	oc := controller.NewOrderController(store, adjuster, responseCache, events)

	group.GET("order/all", oc.All)
	group.GET("order/my", oc.My)
	group.GET("order/:id", oc.One)
	group.POST("order", oc.Create)
	group.PUT("order/:id", oc.Process)
	group.DELETE("order/:id", oc.Delete)
}
