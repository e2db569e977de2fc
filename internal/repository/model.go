package repository

import (
	"encoding/json"
	"reflect"
	"time"
)

// Order status progression. An order advances one step per process call.
const (
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
)

// Metadata holds versioning info for optimistic locking.
type Metadata struct {
	LastUpdate int64 `json:"lastUpdate"` // Unix timestamp in milliseconds
}

// DataDocument represents the persisted JSON structure.
type DataDocument struct {
	Metadata Metadata  `json:"metadata"`
	Products []Product `json:"products" validate:"dive"`
	Orders   []Order   `json:"orders" validate:"dive"`
}

// Product models a single catalog entry. Stock is a plain integer and is
// allowed to go negative by the inventory decrement path.
type Product struct {
	ID        string    `json:"id" validate:"required"`
	Name      string    `json:"name" validate:"required"`
	Category  string    `json:"category" validate:"required"`
	Price     float64   `json:"price" validate:"gte=0"`
	Stock     int       `json:"stock"`
	CreatedAt time.Time `json:"createdAt"`
}

// LineItem is one product/quantity pair within an order.
type LineItem struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
}

// Order models a placed order.
type Order struct {
	ID        string     `json:"id" validate:"required"`
	UserID    string     `json:"userId" validate:"required"`
	Items     []LineItem `json:"items" validate:"dive"`
	Discount  float64    `json:"discount" validate:"gte=0"`
	Total     float64    `json:"total" validate:"gte=0"`
	Status    string     `json:"status" validate:"required,oneof=processing shipped delivered"`
	CreatedAt time.Time  `json:"createdAt"`
}

// ApplyDefaults sets fallback values after decode.
func (d *DataDocument) ApplyDefaults() {
	for oi := range d.Orders {
		d.Orders[oi].applyDefaults()
	}
}

func (o *Order) applyDefaults() {
	if o.Items == nil {
		o.Items = []LineItem{}
	}
	if o.Status == "" {
		o.Status = StatusProcessing
	}
}

// NextStatus returns the status following s, or s itself once delivered.
func NextStatus(s string) string {
	switch s {
	case StatusProcessing:
		return StatusShipped
	case StatusShipped:
		return StatusDelivered
	default:
		return StatusDelivered
	}
}

// AreDataDocumentsEqual compares two DataDocuments ignoring Metadata.
// Uses JSON serialization for flexible comparison (order-independent for object keys).
func AreDataDocumentsEqual(a, b *DataDocument) bool {
	if a == nil || b == nil {
		return a == b
	}

	aBytes, err := json.Marshal(a)
	if err != nil {
		return false
	}
	bBytes, err := json.Marshal(b)
	if err != nil {
		return false
	}

	var aMap, bMap map[string]interface{}
	if err := json.Unmarshal(aBytes, &aMap); err != nil {
		return false
	}
	if err := json.Unmarshal(bBytes, &bMap); err != nil {
		return false
	}

	// Remove metadata from comparison
	delete(aMap, "metadata")
	delete(bMap, "metadata")

	return reflect.DeepEqual(aMap, bMap)
}
