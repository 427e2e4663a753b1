package verify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopsynth-dev/shopsynth/internal/dataset"
	"github.com/shopsynth-dev/shopsynth/internal/export"
	"github.com/shopsynth-dev/shopsynth/internal/profile"
	"github.com/shopsynth-dev/shopsynth/internal/synth"
)

func generated(t *testing.T) *dataset.Dataset {
	t.Helper()
	gen := synth.New(synth.Params{
		Seed:             42,
		Customers:        40,
		Products:         15,
		Orders:           80,
		Start:            time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		End:              time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
		MaxItemsPerOrder: 5,
		MaxQuantity:      5,
	}, profile.Default())
	return gen.Generate()
}

func TestDirPassesOnExportedDataset(t *testing.T) {
	dir := t.TempDir()
	ds := generated(t)
	require.NoError(t, export.WriteCSV(ds, dir))

	report, err := Dir(dir, profile.Default())
	require.NoError(t, err)

	for _, check := range report.Checks {
		assert.NoError(t, check.Err, check.Name)
	}
	assert.False(t, report.Failed())
}

func TestDirMissingFiles(t *testing.T) {
	_, err := Dir(t.TempDir(), profile.Default())
	assert.Error(t, err)
}

func TestDirRoundTripPreservesDataset(t *testing.T) {
	dir := t.TempDir()
	ds := generated(t)
	require.NoError(t, export.WriteCSV(ds, dir))

	// Reading back through the CSV layer must reproduce the dataset
	// exactly; the report path exercises readDataset internally, so the
	// reconciliation check doubles as a round-trip equality check here.
	loaded, err := readDataset(dir)
	require.NoError(t, err)

	// Dates survive only at day granularity, which is all generation uses.
	require.Equal(t, ds.Customers, loaded.Customers)
	require.Equal(t, ds.Products, loaded.Products)
	require.Equal(t, ds.Orders, loaded.Orders)
	require.Equal(t, ds.Items, loaded.Items)
	require.Equal(t, ds.Payments, loaded.Payments)
}

func failing(report *Report) []string {
	var names []string
	for _, c := range report.Checks {
		if c.Err != nil {
			names = append(names, c.Name)
		}
	}
	return names
}

func TestDatasetDetectsGappedCustomerIDs(t *testing.T) {
	ds := generated(t)
	ds.Customers[5].ID = 999

	report := Dataset(ds, profile.Default())
	assert.Contains(t, failing(report), "customer IDs contiguous")
}

func TestDatasetDetectsDanglingOrderRef(t *testing.T) {
	ds := generated(t)
	ds.Orders[0].CustomerID = len(ds.Customers) + 10

	report := Dataset(ds, profile.Default())
	assert.Contains(t, failing(report), "order customer references valid")
}

func TestDatasetDetectsOrphanOrder(t *testing.T) {
	ds := generated(t)
	orphanID := ds.Orders[3].ID
	var kept []dataset.OrderItem
	for _, item := range ds.Items {
		if item.OrderID != orphanID {
			kept = append(kept, item)
		}
	}
	ds.Items = kept

	report := Dataset(ds, profile.Default())
	assert.Contains(t, failing(report), "no orphan orders")
}

func TestDatasetDetectsPriceDrift(t *testing.T) {
	ds := generated(t)
	ds.Items[0].UnitPrice += 100

	report := Dataset(ds, profile.Default())
	names := failing(report)
	assert.Contains(t, names, "item references valid")
}

func TestDatasetDetectsBrokenReconciliation(t *testing.T) {
	ds := generated(t)
	ds.Payments[0].Amount += 500

	report := Dataset(ds, profile.Default())
	assert.Contains(t, failing(report), "payments reconcile with line totals")
	assert.True(t, report.Failed())
}

func TestDatasetDetectsOutOfBandPrice(t *testing.T) {
	ds := generated(t)
	ds.Products[0].UnitPrice = 1 // below every category floor

	report := Dataset(ds, profile.Default())
	assert.Contains(t, failing(report), "product prices within category bands")
}

func TestDatasetDetectsNonPositivePayment(t *testing.T) {
	ds := generated(t)
	ds.Payments[0].Amount = 0

	report := Dataset(ds, profile.Default())
	assert.Contains(t, failing(report), "split payments positive and bounded")
}
