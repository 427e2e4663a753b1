package synth

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopsynth-dev/shopsynth/internal/dataset"
	"github.com/shopsynth-dev/shopsynth/internal/profile"
)

func testParams() Params {
	return Params{
		Seed:             42,
		Customers:        200,
		Products:         50,
		Orders:           500,
		Start:            time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		End:              time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		MaxItemsPerOrder: 5,
		MaxQuantity:      5,
	}
}

func generate(t *testing.T, params Params) *dataset.Dataset {
	t.Helper()
	prof := profile.Default()
	require.NoError(t, prof.Validate())
	return New(params, prof).Generate()
}

func TestCustomerIDsContiguous(t *testing.T) {
	ds := generate(t, testParams())

	require.Len(t, ds.Customers, 200)
	for i, c := range ds.Customers {
		assert.Equal(t, i+1, c.ID)
	}
}

func TestCustomerFields(t *testing.T) {
	params := testParams()
	ds := generate(t, params)

	prof := profile.Default()
	cities := toSet(prof.Cities)
	countries := toSet(prof.Countries)

	for _, c := range ds.Customers {
		assert.Contains(t, c.Name, "Customer_")
		assert.Contains(t, c.Email, "@example.com")
		assert.True(t, cities[c.City], "unknown city %q", c.City)
		assert.True(t, countries[c.Country], "unknown country %q", c.Country)

		// Signups precede the order window by at most a year.
		assert.True(t, c.SignupDate.Before(params.Start), "signup %v not before %v", c.SignupDate, params.Start)
		assert.False(t, c.SignupDate.Before(params.Start.AddDate(0, 0, -365)))
	}
}

func TestProductPricesWithinBands(t *testing.T) {
	ds := generate(t, testParams())

	bands := map[string]profile.Category{}
	for _, cat := range profile.Default().Categories {
		bands[cat.Name] = cat
	}

	for _, p := range ds.Products {
		band, ok := bands[p.Category]
		require.True(t, ok, "product %d has unknown category %q", p.ID, p.Category)

		price := p.UnitPrice.Float64()
		assert.GreaterOrEqual(t, price, band.Low, "product %d", p.ID)
		assert.Less(t, price, band.High, "product %d", p.ID)
	}
}

func TestOrderReferencesAndDates(t *testing.T) {
	params := testParams()
	ds := generate(t, params)

	statuses := map[string]bool{}
	for _, w := range profile.Default().OrderStatuses {
		statuses[w.Value] = true
	}

	require.Len(t, ds.Orders, params.Orders)
	for i, o := range ds.Orders {
		assert.Equal(t, i+1, o.ID)
		assert.GreaterOrEqual(t, o.CustomerID, 1)
		assert.LessOrEqual(t, o.CustomerID, params.Customers)
		assert.True(t, statuses[o.Status], "unknown status %q", o.Status)
		assert.False(t, o.OrderDate.Before(params.Start))
		assert.False(t, o.OrderDate.After(params.End))
	}
}

func TestEveryOrderHasItems(t *testing.T) {
	params := testParams()
	ds := generate(t, params)

	itemsPerOrder := map[int]int{}
	for _, item := range ds.Items {
		itemsPerOrder[item.OrderID]++
	}

	for _, o := range ds.Orders {
		count := itemsPerOrder[o.ID]
		assert.GreaterOrEqual(t, count, 1, "order %d has no items", o.ID)
		assert.LessOrEqual(t, count, params.MaxItemsPerOrder, "order %d", o.ID)
	}
}

func TestItemIDsGloballySequential(t *testing.T) {
	ds := generate(t, testParams())

	for i, item := range ds.Items {
		assert.Equal(t, i+1, item.ID)
	}
}

func TestItemPricesSnapshotProduct(t *testing.T) {
	params := testParams()
	ds := generate(t, params)

	priceByProduct := map[int]dataset.Cents{}
	for _, p := range ds.Products {
		priceByProduct[p.ID] = p.UnitPrice
	}

	for _, item := range ds.Items {
		price, ok := priceByProduct[item.ProductID]
		require.True(t, ok, "item %d references unknown product %d", item.ID, item.ProductID)
		assert.Equal(t, price, item.UnitPrice, "item %d", item.ID)
		assert.GreaterOrEqual(t, item.Quantity, 1)
		assert.LessOrEqual(t, item.Quantity, params.MaxQuantity)
	}
}

func TestPaymentsReconcileExactly(t *testing.T) {
	ds := generate(t, testParams())

	lineTotals := map[int]dataset.Cents{}
	for _, item := range ds.Items {
		lineTotals[item.OrderID] += dataset.Cents(item.Quantity) * item.UnitPrice
	}

	paid := map[int]dataset.Cents{}
	count := map[int]int{}
	for _, p := range ds.Payments {
		paid[p.OrderID] += p.Amount
		count[p.OrderID]++
	}

	methods := toSet(nil)
	for _, w := range profile.Default().PaymentMethods {
		methods[w.Value] = true
	}

	for _, o := range ds.Orders {
		// Exact equality in cents, stricter than the 0.01 tolerance.
		assert.Equal(t, lineTotals[o.ID], paid[o.ID], "order %d", o.ID)
		assert.GreaterOrEqual(t, count[o.ID], 1, "order %d has no payments", o.ID)
		assert.LessOrEqual(t, count[o.ID], 2, "order %d", o.ID)
	}

	for _, p := range ds.Payments {
		assert.Greater(t, p.Amount, dataset.Cents(0))
		assert.LessOrEqual(t, p.Amount, paid[p.OrderID])
		assert.True(t, methods[p.Method], "unknown payment method %q", p.Method)
	}
}

func TestSplitTenderOccurs(t *testing.T) {
	ds := generate(t, testParams())

	split := 0
	count := map[int]int{}
	for _, p := range ds.Payments {
		count[p.OrderID]++
	}
	for _, n := range count {
		if n == 2 {
			split++
		}
	}

	// ~10% of 500 orders; generously bounded.
	assert.Greater(t, split, 10)
	assert.Less(t, split, 150)
}

func TestDeterminism(t *testing.T) {
	params := testParams()
	prof := profile.Default()

	first := New(params, prof).Generate()
	second := New(params, prof).Generate()
	require.Equal(t, first, second)

	params.Seed = 43
	third := New(params, prof).Generate()
	assert.NotEqual(t, first.Orders, third.Orders)
}

func TestFullScenarioRowCounts(t *testing.T) {
	params := Params{
		Seed:             42,
		Customers:        1500,
		Products:         300,
		Orders:           8000,
		Start:            time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		End:              time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		MaxItemsPerOrder: 5,
		MaxQuantity:      5,
	}
	ds := generate(t, params)

	assert.Len(t, ds.Customers, 1500)
	assert.Len(t, ds.Products, 300)
	assert.Len(t, ds.Orders, 8000)
	assert.GreaterOrEqual(t, len(ds.Items), 8000)
	assert.LessOrEqual(t, len(ds.Items), 40000)
	assert.GreaterOrEqual(t, len(ds.Payments), 8000)
	assert.LessOrEqual(t, len(ds.Payments), 16000)
}

func TestSampleDayCoversFullRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)

	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		seen[sampleDay(rng, start, end).Format("2006-01-02")] = true
	}

	// Both days of the two-day range must be reachable, end day included.
	assert.True(t, seen["2023-01-01"])
	assert.True(t, seen["2023-01-02"])
	assert.Len(t, seen, 2)
}

func TestSampleDaySingleDayRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	day := time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 10; i++ {
		assert.Equal(t, day, sampleDay(rng, day, day))
	}
}

func TestPickWeighted(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	single := []profile.Weighted{{Value: "only", Weight: 1}}
	for i := 0; i < 5; i++ {
		assert.Equal(t, "only", PickWeighted(rng, single))
	}

	table := []profile.Weighted{
		{Value: "heavy", Weight: 0.9},
		{Value: "light", Weight: 0.1},
	}
	counts := map[string]int{}
	for i := 0; i < 10000; i++ {
		counts[PickWeighted(rng, table)]++
	}

	assert.Greater(t, counts["heavy"], 8500)
	assert.Greater(t, counts["light"], 500)
	assert.Equal(t, 10000, counts["heavy"]+counts["light"])
}

func TestSplitAmountTinyTotals(t *testing.T) {
	g := New(testParams(), profile.Default())

	for total := dataset.Cents(2); total <= 10; total++ {
		for i := 0; i < 100; i++ {
			first := g.splitAmount(total)
			assert.GreaterOrEqual(t, first, dataset.Cents(1))
			assert.LessOrEqual(t, first, total-1)
		}
	}
}

func toSet(values []string) map[string]bool {
	set := map[string]bool{}
	for _, v := range values {
		set[v] = true
	}
	return set
}
