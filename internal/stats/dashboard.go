package stats

import (
	"time"

	"github.com/bassista/go_mart/internal/repository"
)

// Source is the catalog API the dashboard aggregates are derived from.
type Source interface {
	CategoryCounter
	Products() []repository.Product
	Orders() []repository.Order
	Categories() []string
	CountProducts() int
}

// Dashboard computes the admin aggregates from the catalog working set. It is
// stateless; callers cache its results under the admin-* keys.
type Dashboard struct {
	source Source
}

// NewDashboard creates a dashboard over the given catalog.
func NewDashboard(source Source) *Dashboard {
	return &Dashboard{source: source}
}

// Overview is the admin-stats payload.
type Overview struct {
	Revenue       float64 `json:"revenue"`
	ProductsCount int     `json:"productsCount"`
	OrdersCount   int     `json:"ordersCount"`

	RevenueChangePercent int `json:"revenueChangePercent"`
	ProductChangePercent int `json:"productChangePercent"`
	OrderChangePercent   int `json:"orderChangePercent"`

	OrderCounts   []float64 `json:"orderCounts"`   // trailing 6 months
	OrderRevenues []float64 `json:"orderRevenues"` // trailing 6 months

	CategoryRatios []CategoryRatio `json:"categoryRatios"`
}

// StockAvailability splits the catalog into purchasable and sold-out products.
type StockAvailability struct {
	InStock    int `json:"inStock"`
	OutOfStock int `json:"outOfStock"`
}

// Fulfillment is the order status distribution.
type Fulfillment struct {
	Processing int `json:"processing"`
	Shipped    int `json:"shipped"`
	Delivered  int `json:"delivered"`
}

// PieCharts is the admin-pie-charts payload.
type PieCharts struct {
	CategoryRatios    []CategoryRatio   `json:"categoryRatios"`
	StockAvailability StockAvailability `json:"stockAvailability"`
	Fulfillment       Fulfillment       `json:"fulfillment"`
}

// BarCharts is the admin-bar-charts payload.
type BarCharts struct {
	Products []float64 `json:"products"` // trailing 6 months
	Orders   []float64 `json:"orders"`   // trailing 6 months
	Orders12 []float64 `json:"orders12"` // trailing 12 months
}

// LineCharts is the admin-line-charts payload.
type LineCharts struct {
	Products  []float64 `json:"products"`  // trailing 12 months
	Discounts []float64 `json:"discounts"` // trailing 12 months
	Revenues  []float64 `json:"revenues"`  // trailing 12 months
}

// Overview assembles the admin-stats aggregate relative to today.
func (d *Dashboard) Overview(today time.Time) Overview {
	products := d.source.Products()
	orders := d.source.Orders()

	thisMonthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	lastMonthStart := thisMonthStart.AddDate(0, -1, 0)

	var revenue, thisMonthRevenue, lastMonthRevenue float64
	var thisMonthOrders, lastMonthOrders int
	for _, o := range orders {
		revenue += o.Total
		switch {
		case !o.CreatedAt.Before(thisMonthStart):
			thisMonthOrders++
			thisMonthRevenue += o.Total
		case !o.CreatedAt.Before(lastMonthStart):
			lastMonthOrders++
			lastMonthRevenue += o.Total
		}
	}

	var thisMonthProducts, lastMonthProducts int
	for _, p := range products {
		switch {
		case !p.CreatedAt.Before(thisMonthStart):
			thisMonthProducts++
		case !p.CreatedAt.Before(lastMonthStart):
			lastMonthProducts++
		}
	}

	overview := Overview{
		Revenue:       revenue,
		ProductsCount: len(products),
		OrdersCount:   len(orders),

		RevenueChangePercent: ChangePercent(thisMonthRevenue, lastMonthRevenue),
		ProductChangePercent: ChangePercent(float64(thisMonthProducts), float64(lastMonthProducts)),
		OrderChangePercent:   ChangePercent(float64(thisMonthOrders), float64(lastMonthOrders)),

		OrderCounts:   MonthlyBuckets(6, today, orders, orderCreatedAt, nil),
		OrderRevenues: MonthlyBuckets(6, today, orders, orderCreatedAt, orderTotal),
	}

	if count := d.source.CountProducts(); count > 0 {
		overview.CategoryRatios = CategoryShare(d.source, d.source.Categories(), count)
	}

	return overview
}

// PieCharts assembles the admin-pie-charts aggregate.
func (d *Dashboard) PieCharts(today time.Time) PieCharts {
	pie := PieCharts{}

	if count := d.source.CountProducts(); count > 0 {
		pie.CategoryRatios = CategoryShare(d.source, d.source.Categories(), count)
	}

	for _, p := range d.source.Products() {
		if p.Stock > 0 {
			pie.StockAvailability.InStock++
		} else {
			pie.StockAvailability.OutOfStock++
		}
	}

	for _, o := range d.source.Orders() {
		switch o.Status {
		case repository.StatusShipped:
			pie.Fulfillment.Shipped++
		case repository.StatusDelivered:
			pie.Fulfillment.Delivered++
		default:
			pie.Fulfillment.Processing++
		}
	}

	return pie
}

// BarCharts assembles the admin-bar-charts aggregate relative to today.
func (d *Dashboard) BarCharts(today time.Time) BarCharts {
	products := d.source.Products()
	orders := d.source.Orders()

	return BarCharts{
		Products: MonthlyBuckets(6, today, products, productCreatedAt, nil),
		Orders:   MonthlyBuckets(6, today, orders, orderCreatedAt, nil),
		Orders12: MonthlyBuckets(12, today, orders, orderCreatedAt, nil),
	}
}

// LineCharts assembles the admin-line-charts aggregate relative to today.
func (d *Dashboard) LineCharts(today time.Time) LineCharts {
	products := d.source.Products()
	orders := d.source.Orders()

	return LineCharts{
		Products:  MonthlyBuckets(12, today, products, productCreatedAt, nil),
		Discounts: MonthlyBuckets(12, today, orders, orderCreatedAt, orderDiscount),
		Revenues:  MonthlyBuckets(12, today, orders, orderCreatedAt, orderTotal),
	}
}

func orderCreatedAt(o repository.Order) time.Time     { return o.CreatedAt }
func orderTotal(o repository.Order) float64           { return o.Total }
func orderDiscount(o repository.Order) float64        { return o.Discount }
func productCreatedAt(p repository.Product) time.Time { return p.CreatedAt }
