package controller

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bassista/go_mart/internal/cache"
	"github.com/bassista/go_mart/internal/catalog"
	"github.com/bassista/go_mart/internal/logger"
	"github.com/bassista/go_mart/internal/repository"
	"github.com/containerd/errdefs"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// latestLimit is how many products the latest-products view returns.
const latestLimit = 5

// ProductStore is the catalog API the product controller depends on.
type ProductStore interface {
	catalog.ProductReader
	catalog.ProductWriter
}

// ProductController handles product read and mutation endpoints. Reads are
// cache-aside against the response cache; mutations persist to the catalog
// and then dispatch invalidation before responding.
type ProductController struct {
	store     ProductStore
	cache     cache.ResponseCache
	events    *cache.Dispatcher
	validator *validator.Validate
	perPage   int
}

// NewProductController creates a product controller.
func NewProductController(store ProductStore, responseCache cache.ResponseCache, events *cache.Dispatcher, perPage int) *ProductController {
	return &ProductController{
		store:     store,
		cache:     responseCache,
		events:    events,
		validator: validator.New(),
		perPage:   perPage,
	}
}

// Latest handles GET /product/latest - the newest products, cache-aside.
func (pc *ProductController) Latest(c *gin.Context) {
	payload, err := cachedJSON(pc.cache, cache.KeyLatestProducts, func() ([]repository.Product, error) {
		return pc.store.LatestProducts(latestLimit), nil
	})
	if err != nil {
		logger.WithComponent("product-controller").Errorf("latest products: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load products"})
		return
	}
	c.Data(http.StatusOK, "application/json", payload)
}

// Categories handles GET /product/categories - distinct categories, cache-aside.
func (pc *ProductController) Categories(c *gin.Context) {
	payload, err := cachedJSON(pc.cache, cache.KeyCategories, func() ([]string, error) {
		return pc.store.Categories(), nil
	})
	if err != nil {
		logger.WithComponent("product-controller").Errorf("categories: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load categories"})
		return
	}
	c.Data(http.StatusOK, "application/json", payload)
}

// All handles GET /product/admin - the full product list, cache-aside.
func (pc *ProductController) All(c *gin.Context) {
	payload, err := cachedJSON(pc.cache, cache.KeyAllProducts, func() ([]repository.Product, error) {
		return pc.store.Products(), nil
	})
	if err != nil {
		logger.WithComponent("product-controller").Errorf("all products: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load products"})
		return
	}
	c.Data(http.StatusOK, "application/json", payload)
}

// One handles GET /product/:id - a single product view, cache-aside.
func (pc *ProductController) One(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing product id"})
		return
	}

	payload, err := cachedJSON(pc.cache, cache.ProductKey(id), func() (repository.Product, error) {
		return pc.store.ProductByID(id)
	})
	if err != nil {
		if errdefs.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		logger.WithComponent("product-controller").Errorf("product %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load product"})
		return
	}
	c.Data(http.StatusOK, "application/json", payload)
}

// SearchResponse is one page of a filtered product search.
type SearchResponse struct {
	Products   []repository.Product `json:"products"`
	TotalPages int                  `json:"totalPages"`
}

// Search handles GET /product/search - filtered, sorted and paginated.
// Deliberately uncached: the filter space is unbounded.
func (pc *ProductController) Search(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	maxPrice, _ := strconv.ParseFloat(c.DefaultQuery("price", "0"), 64)

	filter := catalog.Filter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		MaxPrice: maxPrice,
		Sort:     c.Query("sort"),
		Page:     page,
		Limit:    pc.perPage,
	}

	products, totalPages := pc.store.SearchProducts(filter)
	c.JSON(http.StatusOK, SearchResponse{Products: products, TotalPages: totalPages})
}

// CreateProductRequest is the POST /product payload.
type CreateProductRequest struct {
	Name     string  `json:"name" validate:"required"`
	Price    float64 `json:"price" validate:"gte=0"`
	Stock    int     `json:"stock" validate:"gte=0"`
	Category string  `json:"category" validate:"required"`
}

// Create handles POST /product.
func (pc *ProductController) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if err := pc.validator.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := repository.Product{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Price:     req.Price,
		Stock:     req.Stock,
		Category:  strings.ToLower(req.Category),
		CreatedAt: time.Now().UTC(),
	}

	if err := pc.store.SaveProduct(product); err != nil {
		logger.WithComponent("product-controller").Errorf("create product: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save product"})
		return
	}

	pc.events.ProductChanged(product.ID)
	c.JSON(http.StatusCreated, product)
}

// UpdateProductRequest is the PUT /product/:id payload. Nil fields are left
// unchanged.
type UpdateProductRequest struct {
	Name     *string  `json:"name"`
	Price    *float64 `json:"price" validate:"omitempty,gte=0"`
	Stock    *int     `json:"stock"`
	Category *string  `json:"category"`
}

// Update handles PUT /product/:id.
func (pc *ProductController) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing product id"})
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if err := pc.validator.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := pc.store.ProductByID(id)
	if err != nil {
		if errdefs.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		logger.WithComponent("product-controller").Errorf("update product %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load product"})
		return
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Category != nil {
		product.Category = strings.ToLower(*req.Category)
	}

	if err := pc.store.SaveProduct(product); err != nil {
		logger.WithComponent("product-controller").Errorf("update product %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save product"})
		return
	}

	pc.events.ProductChanged(id)
	c.JSON(http.StatusOK, product)
}

// Delete handles DELETE /product/:id.
func (pc *ProductController) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing product id"})
		return
	}

	if err := pc.store.DeleteProduct(id); err != nil {
		if errdefs.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		logger.WithComponent("product-controller").Errorf("delete product %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete product"})
		return
	}

	pc.events.ProductChanged(id)
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
