package cache

// The fixed namespace of response-cache keys. Every key a read path can
// write belongs to this family, and the invalidation dispatcher purges from
// the same family; keeping the two in lock-step is the correctness contract
// of the whole layer. A new cached read path must add its key here and to
// the dispatcher's purge rules.
const (
	KeyLatestProducts  = "latest-products"
	KeyCategories      = "categories"
	KeyAllProducts     = "all-products"
	KeyAllOrders       = "all-orders"
	KeyAdminStats      = "admin-stats"
	KeyAdminPieCharts  = "admin-pie-charts"
	KeyAdminBarCharts  = "admin-bar-charts"
	KeyAdminLineCharts = "admin-line-charts"
)

// ProductKey returns the cache key for a single product view.
func ProductKey(id string) string { return "product-" + id }

// MyOrdersKey returns the cache key for one user's order list.
func MyOrdersKey(userID string) string { return "my-orders-" + userID }

// OrderKey returns the cache key for a single order view.
func OrderKey(id string) string { return "order-" + id }
