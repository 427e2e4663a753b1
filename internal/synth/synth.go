// Package synth generates the five dataset tables from a single seeded
// random source. Generation order is fixed (customers, products, orders,
// items, payments), so a given seed and parameter set always produces the
// same dataset.
package synth

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/shopsynth-dev/shopsynth/internal/dataset"
	"github.com/shopsynth-dev/shopsynth/internal/profile"
)

type Params struct {
	Seed      int64
	Customers int
	Products  int
	Orders    int

	Start time.Time
	End   time.Time

	MaxItemsPerOrder int
	MaxQuantity      int
}

type Generator struct {
	rng    *rand.Rand
	params Params
	prof   *profile.Profile
}

func New(params Params, prof *profile.Profile) *Generator {
	return &Generator{
		rng:    rand.New(rand.NewSource(params.Seed)),
		params: params,
		prof:   prof,
	}
}

// Generate runs the full pipeline in dependency order and returns the
// completed dataset.
func (g *Generator) Generate() *dataset.Dataset {
	ds := &dataset.Dataset{}
	ds.Customers = g.generateCustomers()
	ds.Products = g.generateProducts()
	ds.Orders = g.generateOrders()
	ds.Items = g.generateItems(ds.Orders, ds.Products)
	ds.Payments = g.generatePayments(ds.OrderTotals())
	return ds
}

func (g *Generator) generateCustomers() []dataset.Customer {
	// Signups land in the year before the order window opens.
	signupStart := g.params.Start.AddDate(0, 0, -365)
	signupEnd := g.params.Start.AddDate(0, 0, -1)

	customers := make([]dataset.Customer, 0, g.params.Customers)
	for id := 1; id <= g.params.Customers; id++ {
		customers = append(customers, dataset.Customer{
			ID:         id,
			Name:       fmt.Sprintf("Customer_%d", id),
			Email:      fmt.Sprintf("customer%d@example.com", id),
			City:       pickString(g.rng, g.prof.Cities),
			Country:    pickString(g.rng, g.prof.Countries),
			SignupDate: sampleDay(g.rng, signupStart, signupEnd),
		})
	}
	return customers
}

func (g *Generator) generateProducts() []dataset.Product {
	products := make([]dataset.Product, 0, g.params.Products)
	for id := 1; id <= g.params.Products; id++ {
		cat := g.prof.Categories[g.rng.Intn(len(g.prof.Categories))]
		products = append(products, dataset.Product{
			ID:        id,
			Name:      fmt.Sprintf("Product_%d", id),
			Category:  cat.Name,
			UnitPrice: samplePrice(g.rng, cat.Low, cat.High),
		})
	}
	return products
}

func (g *Generator) generateOrders() []dataset.Order {
	orders := make([]dataset.Order, 0, g.params.Orders)
	for id := 1; id <= g.params.Orders; id++ {
		orders = append(orders, dataset.Order{
			ID:              id,
			CustomerID:      1 + g.rng.Intn(g.params.Customers),
			OrderDate:       sampleDay(g.rng, g.params.Start, g.params.End),
			Status:          PickWeighted(g.rng, g.prof.OrderStatuses),
			ShippingCity:    pickString(g.rng, g.prof.Cities),
			ShippingCountry: pickString(g.rng, g.prof.Countries),
		})
	}
	return orders
}

func (g *Generator) generateItems(orders []dataset.Order, products []dataset.Product) []dataset.OrderItem {
	items := make([]dataset.OrderItem, 0, len(orders)*2)

	// Item IDs are one global sequence, never reset per order.
	nextID := 1
	for _, order := range orders {
		count := 1 + g.rng.Intn(g.params.MaxItemsPerOrder)
		for i := 0; i < count; i++ {
			product := products[g.rng.Intn(len(products))]
			items = append(items, dataset.OrderItem{
				ID:        nextID,
				OrderID:   order.ID,
				ProductID: product.ID,
				Quantity:  1 + g.rng.Intn(g.params.MaxQuantity),
				UnitPrice: product.UnitPrice,
			})
			nextID++
		}
	}
	return items
}

func (g *Generator) generatePayments(totals []dataset.OrderTotal) []dataset.Payment {
	payments := make([]dataset.Payment, 0, len(totals))

	for _, total := range totals {
		nPays := 1
		if g.rng.Float64() < g.prof.SplitProbability {
			nPays = 2
		}
		// A split needs at least one cent on each side.
		if total.Amount < 2 {
			nPays = 1
		}

		remaining := total.Amount
		if nPays == 2 {
			first := g.splitAmount(remaining)
			payments = append(payments, dataset.Payment{
				OrderID: total.OrderID,
				Amount:  first,
				Method:  PickWeighted(g.rng, g.prof.PaymentMethods),
			})
			remaining -= first
		}
		// The final installment absorbs whatever remains, so payments
		// always sum exactly to the order total.
		payments = append(payments, dataset.Payment{
			OrderID: total.OrderID,
			Amount:  remaining,
			Method:  PickWeighted(g.rng, g.prof.PaymentMethods),
		})
	}
	return payments
}

// splitAmount draws the first installment of a split tender: a fraction of
// the total within the profile's band, clamped so both installments stay
// strictly positive.
func (g *Generator) splitAmount(total dataset.Cents) dataset.Cents {
	frac := g.prof.SplitFractionLow + g.rng.Float64()*(g.prof.SplitFractionHigh-g.prof.SplitFractionLow)
	first := dataset.Cents(math.Round(float64(total) * frac))
	if first < 1 {
		first = 1
	}
	if first > total-1 {
		first = total - 1
	}
	return first
}
