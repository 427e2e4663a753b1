// Package verify re-reads an exported dataset and checks its structural
// invariants: dense customer IDs, valid references, no orphan orders, price
// bands, and payment reconciliation.
package verify

import (
	"fmt"

	"github.com/shopsynth-dev/shopsynth/internal/dataset"
	"github.com/shopsynth-dev/shopsynth/internal/profile"
)

// Check is one named invariant result. Err is nil when the check passed.
type Check struct {
	Name string
	Err  error
}

type Report struct {
	Checks []Check
}

// Failed reports whether any check failed.
func (r *Report) Failed() bool {
	for _, c := range r.Checks {
		if c.Err != nil {
			return true
		}
	}
	return false
}

// Dir loads the five CSV tables from dir and evaluates every invariant
// against the given profile. Unreadable or malformed files are fatal;
// invariant violations land in the report.
func Dir(dir string, prof *profile.Profile) (*Report, error) {
	ds, err := readDataset(dir)
	if err != nil {
		return nil, err
	}
	return Dataset(ds, prof), nil
}

// Dataset evaluates every invariant against an in-memory dataset.
func Dataset(ds *dataset.Dataset, prof *profile.Profile) *Report {
	report := &Report{}
	add := func(name string, err error) {
		report.Checks = append(report.Checks, Check{Name: name, Err: err})
	}

	add("customer IDs contiguous", checkCustomerIDs(ds))
	add("order customer references valid", checkOrderRefs(ds))
	add("no orphan orders", checkNoOrphanOrders(ds))
	add("item references valid", checkItemRefs(ds))
	add("product prices within category bands", checkPriceBands(ds, prof))
	add("payments reconcile with line totals", checkReconciliation(ds))
	add("split payments positive and bounded", checkSplitPayments(ds))

	return report
}

func checkCustomerIDs(ds *dataset.Dataset) error {
	for i, c := range ds.Customers {
		if c.ID != i+1 {
			return fmt.Errorf("customer at row %d has id %d, want %d", i, c.ID, i+1)
		}
	}
	return nil
}

func checkOrderRefs(ds *dataset.Dataset) error {
	n := len(ds.Customers)
	for _, o := range ds.Orders {
		if o.CustomerID < 1 || o.CustomerID > n {
			return fmt.Errorf("order %d references customer %d outside [1, %d]", o.ID, o.CustomerID, n)
		}
	}
	return nil
}

func checkNoOrphanOrders(ds *dataset.Dataset) error {
	hasItems := make(map[int]bool, len(ds.Orders))
	for _, item := range ds.Items {
		hasItems[item.OrderID] = true
	}
	for _, o := range ds.Orders {
		if !hasItems[o.ID] {
			return fmt.Errorf("order %d has no line items", o.ID)
		}
	}
	return nil
}

func checkItemRefs(ds *dataset.Dataset) error {
	orderIDs := make(map[int]bool, len(ds.Orders))
	for _, o := range ds.Orders {
		orderIDs[o.ID] = true
	}
	productPrice := make(map[int]dataset.Cents, len(ds.Products))
	for _, p := range ds.Products {
		productPrice[p.ID] = p.UnitPrice
	}

	for _, item := range ds.Items {
		if !orderIDs[item.OrderID] {
			return fmt.Errorf("item %d references unknown order %d", item.ID, item.OrderID)
		}
		price, ok := productPrice[item.ProductID]
		if !ok {
			return fmt.Errorf("item %d references unknown product %d", item.ID, item.ProductID)
		}
		if item.UnitPrice != price {
			return fmt.Errorf("item %d price %s does not match product %d price %s",
				item.ID, item.UnitPrice, item.ProductID, price)
		}
		if item.Quantity < 1 {
			return fmt.Errorf("item %d has non-positive quantity %d", item.ID, item.Quantity)
		}
	}
	return nil
}

func checkPriceBands(ds *dataset.Dataset, prof *profile.Profile) error {
	bands := make(map[string]profile.Category, len(prof.Categories))
	for _, cat := range prof.Categories {
		bands[cat.Name] = cat
	}

	for _, p := range ds.Products {
		band, ok := bands[p.Category]
		if !ok {
			return fmt.Errorf("product %d has unknown category %q", p.ID, p.Category)
		}
		price := p.UnitPrice.Float64()
		if price < band.Low || price >= band.High {
			return fmt.Errorf("product %d price %s outside %s band [%v, %v)",
				p.ID, p.UnitPrice, p.Category, band.Low, band.High)
		}
	}
	return nil
}

// reconciliationTolerance is one currency rounding unit.
const reconciliationTolerance = dataset.Cents(1)

func checkReconciliation(ds *dataset.Dataset) error {
	lineTotals := make(map[int]dataset.Cents, len(ds.Orders))
	for _, item := range ds.Items {
		lineTotals[item.OrderID] += dataset.Cents(item.Quantity) * item.UnitPrice
	}
	paid := make(map[int]dataset.Cents, len(ds.Orders))
	for _, p := range ds.Payments {
		paid[p.OrderID] += p.Amount
	}

	for _, o := range ds.Orders {
		diff := lineTotals[o.ID] - paid[o.ID]
		if diff < 0 {
			diff = -diff
		}
		if diff > reconciliationTolerance {
			return fmt.Errorf("order %d line total %s differs from payments %s",
				o.ID, lineTotals[o.ID], paid[o.ID])
		}
	}
	return nil
}

func checkSplitPayments(ds *dataset.Dataset) error {
	totals := make(map[int]dataset.Cents, len(ds.Orders))
	counts := make(map[int]int, len(ds.Orders))
	for _, p := range ds.Payments {
		totals[p.OrderID] += p.Amount
		counts[p.OrderID]++
	}

	for _, p := range ds.Payments {
		if counts[p.OrderID] > 2 {
			return fmt.Errorf("order %d has %d payments, expected at most 2", p.OrderID, counts[p.OrderID])
		}
		if p.Amount <= 0 {
			return fmt.Errorf("order %d has non-positive payment %s", p.OrderID, p.Amount)
		}
		if p.Amount > totals[p.OrderID] {
			return fmt.Errorf("order %d has payment %s exceeding its total %s",
				p.OrderID, p.Amount, totals[p.OrderID])
		}
	}
	return nil
}
