package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bassista/go_mart/internal/cache"
	"github.com/bassista/go_mart/internal/catalog"
	"github.com/bassista/go_mart/internal/repository"
	"github.com/bassista/go_mart/internal/stats"
	"github.com/gin-gonic/gin"
)

func dashboardFixture() *catalog.Catalog {
	now := time.Now().UTC()
	return catalog.New(repository.DataDocument{
		Products: []repository.Product{
			{ID: "p1", Name: "Keyboard", Category: "peripherals", Price: 50, Stock: 10, CreatedAt: now},
			{ID: "p2", Name: "Monitor", Category: "displays", Price: 200, Stock: 0, CreatedAt: now},
		},
		Orders: []repository.Order{
			{ID: "o1", UserID: "u1", Items: []repository.LineItem{{ProductID: "p1", Quantity: 1}}, Total: 50, Status: repository.StatusProcessing, CreatedAt: now},
			{ID: "o2", UserID: "u2", Items: []repository.LineItem{{ProductID: "p2", Quantity: 1}}, Total: 200, Status: repository.StatusDelivered, CreatedAt: now},
		},
	})
}

func setupDashboardRouter(store *catalog.Catalog, responseCache *cache.Store) *gin.Engine {
	r := gin.New()
	dc := NewDashboardController(stats.NewDashboard(store), responseCache)

	r.GET("/dashboard/stats", dc.Stats)
	r.GET("/dashboard/pie", dc.PieCharts)
	r.GET("/dashboard/bar", dc.BarCharts)
	r.GET("/dashboard/line", dc.LineCharts)
	return r
}

func TestDashboardController_Stats(t *testing.T) {
	responseCache := cache.NewStore(0)
	r := setupDashboardRouter(dashboardFixture(), responseCache)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard/stats", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var overview stats.Overview
	if err := json.Unmarshal(w.Body.Bytes(), &overview); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if overview.Revenue != 250 {
		t.Errorf("expected revenue 250, got %v", overview.Revenue)
	}
	if overview.ProductsCount != 2 || overview.OrdersCount != 2 {
		t.Errorf("unexpected counts: %+v", overview)
	}
	if len(overview.CategoryRatios) != 2 {
		t.Errorf("expected 2 category ratios, got %v", overview.CategoryRatios)
	}
	if !responseCache.Has(cache.KeyAdminStats) {
		t.Error("expected admin-stats to be cached after the read")
	}
}

func TestDashboardController_StatsServedFromCache(t *testing.T) {
	store := dashboardFixture()
	responseCache := cache.NewStore(0)
	r := setupDashboardRouter(store, responseCache)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard/stats", nil))

	// Without an invalidation a catalog mutation must not show up.
	store.SaveOrder(repository.Order{ID: "o9", UserID: "u1", Total: 999, Status: repository.StatusProcessing, CreatedAt: time.Now().UTC()})

	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/dashboard/stats", nil))

	if w2.Body.String() != w.Body.String() {
		t.Error("expected the cached stats payload to be served unchanged")
	}
}

func TestDashboardController_PieCharts(t *testing.T) {
	r := setupDashboardRouter(dashboardFixture(), cache.NewStore(0))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard/pie", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var pie stats.PieCharts
	if err := json.Unmarshal(w.Body.Bytes(), &pie); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if pie.StockAvailability.InStock != 1 || pie.StockAvailability.OutOfStock != 1 {
		t.Errorf("unexpected stock split: %+v", pie.StockAvailability)
	}
	if pie.Fulfillment.Processing != 1 || pie.Fulfillment.Delivered != 1 {
		t.Errorf("unexpected fulfillment split: %+v", pie.Fulfillment)
	}
}

func TestDashboardController_BarCharts(t *testing.T) {
	r := setupDashboardRouter(dashboardFixture(), cache.NewStore(0))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard/bar", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var bar stats.BarCharts
	if err := json.Unmarshal(w.Body.Bytes(), &bar); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(bar.Products) != 6 || len(bar.Orders) != 6 || len(bar.Orders12) != 12 {
		t.Errorf("unexpected bucket lengths: %d %d %d", len(bar.Products), len(bar.Orders), len(bar.Orders12))
	}
	// Everything in the fixture was created this month, hence the last bucket.
	if bar.Orders[5] != 2 {
		t.Errorf("expected 2 orders in the current bucket, got %v", bar.Orders)
	}
}

func TestDashboardController_LineCharts(t *testing.T) {
	r := setupDashboardRouter(dashboardFixture(), cache.NewStore(0))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard/line", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var line stats.LineCharts
	if err := json.Unmarshal(w.Body.Bytes(), &line); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(line.Products) != 12 || len(line.Discounts) != 12 || len(line.Revenues) != 12 {
		t.Errorf("unexpected bucket lengths: %d %d %d", len(line.Products), len(line.Discounts), len(line.Revenues))
	}
	if line.Revenues[11] != 250 {
		t.Errorf("expected revenue 250 in the current bucket, got %v", line.Revenues)
	}
}
