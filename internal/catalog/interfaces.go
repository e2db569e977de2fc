package catalog

import "github.com/bassista/go_mart/internal/repository"

// ProductReader is the minimal catalog API for read-only product handlers.
type ProductReader interface {
	ProductByID(id string) (repository.Product, error)
	Products() []repository.Product
	LatestProducts(n int) []repository.Product
	Categories() []string
	CountProducts() int
	CountByCategory(category string) int
	SearchProducts(f Filter) ([]repository.Product, int)
}

// ProductWriter is the catalog API needed by product mutation handlers.
type ProductWriter interface {
	SaveProduct(p repository.Product) error
	DeleteProduct(id string) error
}

// OrderReader is the minimal catalog API for read-only order handlers.
type OrderReader interface {
	OrderByID(id string) (repository.Order, error)
	Orders() []repository.Order
	OrdersByUser(userID string) []repository.Order
}

// OrderWriter is the catalog API needed by order mutation handlers.
type OrderWriter interface {
	SaveOrder(o repository.Order) error
	DeleteOrder(id string) error
}

// Persistable is the catalog API needed by the persistence scheduler.
type Persistable interface {
	IsDirty() bool
	Snapshot() (repository.DataDocument, error)
	ClearDirty()
	SetLastUpdate(ts int64)
}

// Store is the catalog contract the application container exposes.
// It is intentionally broad: it supports controllers, the persistence
// scheduler and the repository watcher.
type Store interface {
	repository.CatalogStore
	ProductReader
	ProductWriter
	OrderReader
	OrderWriter
	Persistable
}
