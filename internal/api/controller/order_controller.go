package controller

import (
	"net/http"
	"time"

	"github.com/bassista/go_mart/internal/cache"
	"github.com/bassista/go_mart/internal/catalog"
	"github.com/bassista/go_mart/internal/inventory"
	"github.com/bassista/go_mart/internal/logger"
	"github.com/bassista/go_mart/internal/repository"
	"github.com/containerd/errdefs"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// OrderStore is the catalog API the order controller depends on.
type OrderStore interface {
	catalog.OrderReader
	catalog.OrderWriter
}

// OrderController handles order endpoints. Placing an order runs the
// inventory adjuster before the order is stored; every mutation dispatches
// invalidation after the catalog write and before the response.
type OrderController struct {
	store     OrderStore
	adjuster  *inventory.Adjuster
	cache     cache.ResponseCache
	events    *cache.Dispatcher
	validator *validator.Validate
}

// NewOrderController creates an order controller.
func NewOrderController(store OrderStore, adjuster *inventory.Adjuster, responseCache cache.ResponseCache, events *cache.Dispatcher) *OrderController {
	return &OrderController{
		store:     store,
		adjuster:  adjuster,
		cache:     responseCache,
		events:    events,
		validator: validator.New(),
	}
}

// CreateOrderRequest is the POST /order payload.
type CreateOrderRequest struct {
	UserID   string                `json:"userId" validate:"required"`
	Items    []repository.LineItem `json:"items" validate:"required,min=1,dive"`
	Discount float64               `json:"discount" validate:"gte=0"`
	Total    float64               `json:"total" validate:"gte=0"`
}

// Create handles POST /order. Stock decrements are applied item by item
// first; a missing product aborts with 404 and leaves the decrements already
// applied in place (see inventory.Adjuster).
func (oc *OrderController) Create(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if err := oc.validator.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := oc.adjuster.ApplyOrder(c.Request.Context(), req.Items); err != nil {
		if errdefs.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		logger.WithComponent("order-controller").Errorf("apply order: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to adjust inventory"})
		return
	}

	order := repository.Order{
		ID:        uuid.NewString(),
		UserID:    req.UserID,
		Items:     req.Items,
		Discount:  req.Discount,
		Total:     req.Total,
		Status:    repository.StatusProcessing,
		CreatedAt: time.Now().UTC(),
	}

	if err := oc.store.SaveOrder(order); err != nil {
		logger.WithComponent("order-controller").Errorf("save order: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save order"})
		return
	}

	oc.events.OrderPlaced(order.UserID, order.ID)
	c.JSON(http.StatusCreated, order)
}

// All handles GET /order/all - every order, cache-aside.
func (oc *OrderController) All(c *gin.Context) {
	payload, err := cachedJSON(oc.cache, cache.KeyAllOrders, func() ([]repository.Order, error) {
		return oc.store.Orders(), nil
	})
	if err != nil {
		logger.WithComponent("order-controller").Errorf("all orders: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load orders"})
		return
	}
	c.Data(http.StatusOK, "application/json", payload)
}

// My handles GET /order/my?user= - one user's orders, cache-aside.
func (oc *OrderController) My(c *gin.Context) {
	userID := c.Query("user")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user parameter"})
		return
	}

	payload, err := cachedJSON(oc.cache, cache.MyOrdersKey(userID), func() ([]repository.Order, error) {
		return oc.store.OrdersByUser(userID), nil
	})
	if err != nil {
		logger.WithComponent("order-controller").Errorf("orders for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load orders"})
		return
	}
	c.Data(http.StatusOK, "application/json", payload)
}

// One handles GET /order/:id - a single order view, cache-aside.
func (oc *OrderController) One(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing order id"})
		return
	}

	payload, err := cachedJSON(oc.cache, cache.OrderKey(id), func() (repository.Order, error) {
		return oc.store.OrderByID(id)
	})
	if err != nil {
		if errdefs.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		logger.WithComponent("order-controller").Errorf("order %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load order"})
		return
	}
	c.Data(http.StatusOK, "application/json", payload)
}

// Process handles PUT /order/:id - advances the order one fulfillment step.
func (oc *OrderController) Process(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing order id"})
		return
	}

	order, err := oc.store.OrderByID(id)
	if err != nil {
		if errdefs.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		logger.WithComponent("order-controller").Errorf("process order %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load order"})
		return
	}

	order.Status = repository.NextStatus(order.Status)
	if err := oc.store.SaveOrder(order); err != nil {
		logger.WithComponent("order-controller").Errorf("process order %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save order"})
		return
	}

	oc.events.OrderChanged(order.UserID, order.ID)
	c.JSON(http.StatusOK, order)
}

// Delete handles DELETE /order/:id.
func (oc *OrderController) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing order id"})
		return
	}

	order, err := oc.store.OrderByID(id)
	if err != nil {
		if errdefs.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		logger.WithComponent("order-controller").Errorf("delete order %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load order"})
		return
	}

	if err := oc.store.DeleteOrder(id); err != nil {
		logger.WithComponent("order-controller").Errorf("delete order %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete order"})
		return
	}

	oc.events.OrderChanged(order.UserID, order.ID)
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
