package cache

import "github.com/bassista/go_mart/internal/logger"

// InvalidationSpec describes which key families a mutation made stale.
// Identifiers should be supplied whenever known: a missing identifier still
// issues the parametrized key as a literal (matching nothing), silently
// skipping that specific entry.
type InvalidationSpec struct {
	Product bool
	Order   bool
	Admin   bool

	ProductID string
	UserID    string
	OrderID   string
}

// Dispatcher translates mutation events into cache purges. Write-path
// handlers go through its typed event methods so the mutation/invalidation
// pairing is enforced by the call site's type, not by caller discipline.
type Dispatcher struct {
	cache Deleter
}

// NewDispatcher creates a dispatcher purging from the given cache.
func NewDispatcher(cache Deleter) *Dispatcher {
	return &Dispatcher{cache: cache}
}

// ProductChanged purges everything made stale by a product create, update or
// delete. Pass the product id when known so the single-entity view is purged too.
func (d *Dispatcher) ProductChanged(productID string) {
	d.Invalidate(InvalidationSpec{Product: true, Admin: true, ProductID: productID})
}

// OrderPlaced purges everything made stale by a new order. Placing an order
// also decrements stock, so the product family is purged as well.
func (d *Dispatcher) OrderPlaced(userID, orderID string) {
	d.Invalidate(InvalidationSpec{Product: true, Order: true, Admin: true, UserID: userID, OrderID: orderID})
}

// OrderChanged purges everything made stale by an order mutation that leaves
// stock alone (status advance, delete). Product views stay warm.
func (d *Dispatcher) OrderChanged(userID, orderID string) {
	d.Invalidate(InvalidationSpec{Order: true, Admin: true, UserID: userID, OrderID: orderID})
}

// Invalidate purges the exact key set derived from spec in one bulk delete.
// It never fails: an all-false spec is a no-op. It deliberately does not
// enumerate per-product keys beyond the one identified in the spec - that
// would require a full catalog scan.
func (d *Dispatcher) Invalidate(spec InvalidationSpec) {
	keys := []string{}

	if spec.Product {
		keys = append(keys,
			KeyLatestProducts,
			KeyCategories,
			KeyAllProducts,
			ProductKey(spec.ProductID),
		)
	}

	if spec.Order {
		keys = append(keys,
			KeyAllOrders,
			MyOrdersKey(spec.UserID),
			OrderKey(spec.OrderID),
		)
	}

	if spec.Admin {
		keys = append(keys,
			KeyAdminStats,
			KeyAdminPieCharts,
			KeyAdminBarCharts,
			KeyAdminLineCharts,
		)
	}

	if len(keys) == 0 {
		return
	}

	removed := d.cache.Del(keys...)
	logger.WithComponent("invalidation").Debugf("purged %d of %d candidate keys", removed, len(keys))
}
