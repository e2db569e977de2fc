package route

import (
	"net/http"

	"github.com/bassista/go_mart/internal/app"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(r *gin.Engine, appCtx *app.App) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "UP",
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	publicRouter := r.Group("/api/v1")

	timeout := appCtx.Config.Server.RequestTimeout

	NewProductRouter(timeout, publicRouter, appCtx.Catalog, appCtx.Cache, appCtx.Events, appCtx.Config.Misc.ProductsPerPage)
	NewOrderRouter(timeout, publicRouter, appCtx.Catalog, appCtx.Adjuster, appCtx.Cache, appCtx.Events)
	NewDashboardRouter(timeout, publicRouter, appCtx.Dashboard, appCtx.Cache)
}
