package controller

import (
	"net/http"
	"time"

	"github.com/bassista/go_mart/internal/cache"
	"github.com/bassista/go_mart/internal/logger"
	"github.com/bassista/go_mart/internal/stats"
	"github.com/gin-gonic/gin"
)

// DashboardController serves the admin aggregates, cache-aside under the
// admin-* keys. The aggregates are recomputed from the catalog on a miss and
// stay cached until a mutation dispatches an admin invalidation.
type DashboardController struct {
	dashboard *stats.Dashboard
	cache     cache.ResponseCache
}

// NewDashboardController creates a dashboard controller.
func NewDashboardController(dashboard *stats.Dashboard, responseCache cache.ResponseCache) *DashboardController {
	return &DashboardController{dashboard: dashboard, cache: responseCache}
}

// Stats handles GET /dashboard/stats.
func (dc *DashboardController) Stats(c *gin.Context) {
	payload, err := cachedJSON(dc.cache, cache.KeyAdminStats, func() (stats.Overview, error) {
		return dc.dashboard.Overview(time.Now()), nil
	})
	if err != nil {
		logger.WithComponent("dashboard-controller").Errorf("stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute stats"})
		return
	}
	c.Data(http.StatusOK, "application/json", payload)
}

// PieCharts handles GET /dashboard/pie.
func (dc *DashboardController) PieCharts(c *gin.Context) {
	payload, err := cachedJSON(dc.cache, cache.KeyAdminPieCharts, func() (stats.PieCharts, error) {
		return dc.dashboard.PieCharts(time.Now()), nil
	})
	if err != nil {
		logger.WithComponent("dashboard-controller").Errorf("pie charts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute charts"})
		return
	}
	c.Data(http.StatusOK, "application/json", payload)
}

// BarCharts handles GET /dashboard/bar.
func (dc *DashboardController) BarCharts(c *gin.Context) {
	payload, err := cachedJSON(dc.cache, cache.KeyAdminBarCharts, func() (stats.BarCharts, error) {
		return dc.dashboard.BarCharts(time.Now()), nil
	})
	if err != nil {
		logger.WithComponent("dashboard-controller").Errorf("bar charts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute charts"})
		return
	}
	c.Data(http.StatusOK, "application/json", payload)
}

// LineCharts handles GET /dashboard/line.
func (dc *DashboardController) LineCharts(c *gin.Context) {
	payload, err := cachedJSON(dc.cache, cache.KeyAdminLineCharts, func() (stats.LineCharts, error) {
		return dc.dashboard.LineCharts(time.Now()), nil
	})
	if err != nil {
		logger.WithComponent("dashboard-controller").Errorf("line charts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute charts"})
		return
	}
	c.Data(http.StatusOK, "application/json", payload)
}
