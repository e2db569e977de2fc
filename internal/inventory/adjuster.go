package inventory

import (
	"context"
	"fmt"

	"github.com/bassista/go_mart/internal/logger"
	"github.com/bassista/go_mart/internal/repository"
)

// ProductStore is the catalog API the adjuster needs.
type ProductStore interface {
	ProductByID(id string) (repository.Product, error)
	SaveProduct(p repository.Product) error
}

// Adjuster applies order line items to product stock.
//
// Decrements are applied one item at a time in input order, with one save per
// item. A missing product aborts the remaining items WITHOUT rolling back the
// decrements already applied: callers get a NotFound error and a partially
// adjusted catalog. Stock is not floor-clamped and may go negative. Two
// concurrent orders on the same product can also lose an update between the
// read and the save. All three behaviors are inherited from the system this
// replaces and are kept as-is; harden here only together with the callers
// that rely on the current semantics.
type Adjuster struct {
	store ProductStore
}

// NewAdjuster creates an adjuster over the given catalog.
func NewAdjuster(store ProductStore) *Adjuster {
	return &Adjuster{store: store}
}

// ApplyOrder decrements stock for each line item in sequence.
func (a *Adjuster) ApplyOrder(ctx context.Context, items []repository.LineItem) error {
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return err
		}

		product, err := a.store.ProductByID(item.ProductID)
		if err != nil {
			return fmt.Errorf("apply order item: %w", err)
		}

		product.Stock -= item.Quantity
		if product.Stock < 0 {
			logger.WithComponent("inventory").Warnf("stock for product %s went negative: %d", product.ID, product.Stock)
		}

		if err := a.store.SaveProduct(product); err != nil {
			return fmt.Errorf("save adjusted product %s: %w", product.ID, err)
		}
	}
	return nil
}
