package catalog

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/bassista/go_mart/internal/repository"
	"github.com/containerd/errdefs"
)

// Catalog keeps an in-memory working copy of the catalog document. All reads
// and writes from request handlers go through it; a background scheduler
// flushes dirty state to the repository.
type Catalog struct {
	mu         sync.RWMutex
	data       repository.DataDocument
	dirty      bool  // true if working set changed since last persist
	lastUpdate int64 // working set's metadata.lastUpdate
}

// New creates a catalog working set from a loaded document.
func New(doc repository.DataDocument) *Catalog {
	return &Catalog{data: doc, lastUpdate: doc.Metadata.LastUpdate}
}

// IsDirty returns true if the working set has uncommitted changes.
func (c *Catalog) IsDirty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.dirty
}

// ClearDirty resets the dirty flag.
func (c *Catalog) ClearDirty() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dirty = false
}

// GetLastUpdate returns the working set's last update timestamp.
func (c *Catalog) GetLastUpdate() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastUpdate
}

// SetLastUpdate sets the working set's last update timestamp.
func (c *Catalog) SetLastUpdate(ts int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastUpdate = ts
}

// Snapshot returns a deep copy of the working set.
func (c *Catalog) Snapshot() (repository.DataDocument, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneData(c.data)
}

// Replace swaps the working set (used by the file watcher on external edits).
func (c *Catalog) Replace(doc repository.DataDocument) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cloned, err := cloneData(doc)
	if err != nil {
		return err
	}
	c.data = cloned
	c.lastUpdate = doc.Metadata.LastUpdate
	c.dirty = false

	return nil
}

// ProductByID returns the product with the given id.
func (c *Catalog) ProductByID(id string) (repository.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, p := range c.data.Products {
		if p.ID == id {
			return p, nil
		}
	}
	return repository.Product{}, fmt.Errorf("product %s: %w", id, errdefs.ErrNotFound)
}

// Products returns a copy of every product.
func (c *Catalog) Products() []repository.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]repository.Product, len(c.data.Products))
	copy(out, c.data.Products)
	return out
}

// LatestProducts returns the n most recently created products, newest first.
func (c *Catalog) LatestProducts(n int) []repository.Product {
	products := c.Products()
	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
	if len(products) > n {
		products = products[:n]
	}
	return products
}

// Categories returns the distinct category names, sorted.
func (c *Catalog) Categories() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := map[string]struct{}{}
	categories := []string{}
	for _, p := range c.data.Products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	sort.Strings(categories)
	return categories
}

// CountProducts returns the total number of products.
func (c *Catalog) CountProducts() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data.Products)
}

// CountByCategory returns the number of products in the given category.
func (c *Catalog) CountByCategory(category string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	count := 0
	for _, p := range c.data.Products {
		if p.Category == category {
			count++
		}
	}
	return count
}

// Filter narrows and pages a product search.
type Filter struct {
	Search   string  // case-insensitive substring match on name
	Category string  // exact category match
	MaxPrice float64 // inclusive upper price bound; 0 means unbounded
	Sort     string  // "asc" or "desc" by price; empty keeps catalog order
	Page     int     // 1-based
	Limit    int     // page size
}

// SearchProducts returns one page of matching products plus the total number
// of pages for the filter.
func (c *Catalog) SearchProducts(f Filter) ([]repository.Product, int) {
	c.mu.RLock()
	matched := []repository.Product{}
	for _, p := range c.data.Products {
		if f.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Search)) {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.MaxPrice > 0 && p.Price > f.MaxPrice {
			continue
		}
		matched = append(matched, p)
	}
	c.mu.RUnlock()

	switch f.Sort {
	case "asc":
		sort.Slice(matched, func(i, j int) bool { return matched[i].Price < matched[j].Price })
	case "desc":
		sort.Slice(matched, func(i, j int) bool { return matched[i].Price > matched[j].Price })
	}

	limit := f.Limit
	if limit < 1 {
		limit = 1
	}
	totalPages := (len(matched) + limit - 1) / limit

	page := f.Page
	if page < 1 {
		page = 1
	}
	skip := (page - 1) * limit
	if skip >= len(matched) {
		return []repository.Product{}, totalPages
	}
	end := skip + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], totalPages
}

// SaveProduct inserts or updates a product by id and marks the set dirty.
func (c *Catalog) SaveProduct(p repository.Product) error {
	if p.ID == "" {
		return fmt.Errorf("product id is required: %w", errdefs.ErrInvalidArgument)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.data.Products {
		if c.data.Products[i].ID == p.ID {
			c.data.Products[i] = p
			c.dirty = true
			return nil
		}
	}
	c.data.Products = append(c.data.Products, p)
	c.dirty = true
	return nil
}

// DeleteProduct removes a product by id.
func (c *Catalog) DeleteProduct(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.data.Products {
		if c.data.Products[i].ID == id {
			c.data.Products = append(c.data.Products[:i], c.data.Products[i+1:]...)
			c.dirty = true
			return nil
		}
	}
	return fmt.Errorf("product %s: %w", id, errdefs.ErrNotFound)
}

// OrderByID returns the order with the given id.
func (c *Catalog) OrderByID(id string) (repository.Order, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, o := range c.data.Orders {
		if o.ID == id {
			return cloneOrder(o), nil
		}
	}
	return repository.Order{}, fmt.Errorf("order %s: %w", id, errdefs.ErrNotFound)
}

// Orders returns a copy of every order.
func (c *Catalog) Orders() []repository.Order {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]repository.Order, 0, len(c.data.Orders))
	for _, o := range c.data.Orders {
		out = append(out, cloneOrder(o))
	}
	return out
}

// OrdersByUser returns the orders placed by the given user.
func (c *Catalog) OrdersByUser(userID string) []repository.Order {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := []repository.Order{}
	for _, o := range c.data.Orders {
		if o.UserID == userID {
			out = append(out, cloneOrder(o))
		}
	}
	return out
}

// SaveOrder inserts or updates an order by id and marks the set dirty.
func (c *Catalog) SaveOrder(o repository.Order) error {
	if o.ID == "" {
		return fmt.Errorf("order id is required: %w", errdefs.ErrInvalidArgument)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	cloned := cloneOrder(o)
	for i := range c.data.Orders {
		if c.data.Orders[i].ID == cloned.ID {
			c.data.Orders[i] = cloned
			c.dirty = true
			return nil
		}
	}
	c.data.Orders = append(c.data.Orders, cloned)
	c.dirty = true
	return nil
}

// DeleteOrder removes an order by id.
func (c *Catalog) DeleteOrder(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.data.Orders {
		if c.data.Orders[i].ID == id {
			c.data.Orders = append(c.data.Orders[:i], c.data.Orders[i+1:]...)
			c.dirty = true
			return nil
		}
	}
	return fmt.Errorf("order %s: %w", id, errdefs.ErrNotFound)
}

// cloneData deep-copies the document to avoid shared slices between the
// working set and callers.
func cloneData(doc repository.DataDocument) (repository.DataDocument, error) {
	bytes, err := json.Marshal(doc)
	if err != nil {
		return repository.DataDocument{}, err
	}
	var copy repository.DataDocument
	if err := json.Unmarshal(bytes, &copy); err != nil {
		return repository.DataDocument{}, err
	}
	return copy, nil
}

// cloneOrder copies an order including its line-item slice.
func cloneOrder(o repository.Order) repository.Order {
	items := make([]repository.LineItem, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	return o
}
