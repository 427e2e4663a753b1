package dataset

import "time"

// A Dataset holds all five generated tables in memory. Tables are built once,
// in dependency order, and never mutated afterwards.
type Dataset struct {
	Customers []Customer
	Products  []Product
	Orders    []Order
	Items     []OrderItem
	Payments  []Payment
}

type Customer struct {
	ID         int
	Name       string
	Email      string
	City       string
	Country    string
	SignupDate time.Time
}

type Product struct {
	ID        int
	Name      string
	Category  string
	UnitPrice Cents
}

type Order struct {
	ID              int
	CustomerID      int
	OrderDate       time.Time
	Status          string
	ShippingCity    string
	ShippingCountry string
}

type OrderItem struct {
	ID        int
	OrderID   int
	ProductID int
	Quantity  int
	UnitPrice Cents
}

type Payment struct {
	OrderID int
	Amount  Cents
	Method  string
}

// Column headers for CSV export, identifier fields first.
var (
	CustomerColumns = []string{"customer_id", "customer_name", "customer_email", "customer_city", "customer_country", "signup_date"}
	ProductColumns  = []string{"product_id", "product_name", "product_category", "unit_price"}
	OrderColumns    = []string{"order_id", "customer_id", "order_date", "order_status", "shipping_city", "shipping_country"}
	ItemColumns     = []string{"order_item_id", "order_id", "product_id", "quantity", "price"}
	PaymentColumns  = []string{"order_id", "payment_amount", "payment_type"}
)

// File names for the exported tables.
const (
	CustomersFile = "customers.csv"
	ProductsFile  = "products.csv"
	OrdersFile    = "orders.csv"
	ItemsFile     = "order_items.csv"
	PaymentsFile  = "payments.csv"
)

// DateFormat is the calendar format used for all exported dates.
const DateFormat = "2006-01-02"

// OrderTotal aggregates one order's line items.
type OrderTotal struct {
	OrderID    int
	TotalItems int
	Amount     Cents
}

// OrderTotals sums quantity and line amounts per order, returned in order-ID
// order so that downstream generation stays deterministic.
func (d *Dataset) OrderTotals() []OrderTotal {
	byOrder := make(map[int]*OrderTotal, len(d.Orders))
	for _, o := range d.Orders {
		byOrder[o.ID] = &OrderTotal{OrderID: o.ID}
	}

	for _, item := range d.Items {
		total, ok := byOrder[item.OrderID]
		if !ok {
			continue
		}
		total.TotalItems += item.Quantity
		total.Amount += Cents(item.Quantity) * item.UnitPrice
	}

	totals := make([]OrderTotal, 0, len(d.Orders))
	for _, o := range d.Orders {
		totals = append(totals, *byOrder[o.ID])
	}
	return totals
}
