package route

import (
	"time"

	"github.com/bassista/go_mart/internal/api/controller"
	"github.com/bassista/go_mart/internal/api/middleware"
	"github.com/bassista/go_mart/internal/cache"
	"github.com/bassista/go_mart/internal/stats"
	"github.com/gin-gonic/gin"
)

func NewDashboardRouter(timeout time.Duration, group *gin.RouterGroup, dashboard *stats.Dashboard, responseCache cache.ResponseCache) {
	group.Use(middleware.RequestTimeout(timeout))

	dc := controller.NewDashboardController(dashboard, responseCache)

	group.GET("dashboard/stats", dc.Stats)
	group.GET("dashboard/pie", dc.PieCharts)
	group.GET("dashboard/bar", dc.BarCharts)
	group.GET("dashboard/line", dc.LineCharts)
}
