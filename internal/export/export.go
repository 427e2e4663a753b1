// Package export serializes a generated dataset to per-table CSV files.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/shopsynth-dev/shopsynth/internal/dataset"
)

// WriteCSV writes all five tables into dir, one file per table, creating the
// directory if needed. Each file gets a header row followed by one row per
// record. Tables are independent; a failure leaves already-written files in
// place.
func WriteCSV(ds *dataset.Dataset, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	tables := []struct {
		file    string
		headers []string
		rows    [][]string
	}{
		{dataset.CustomersFile, dataset.CustomerColumns, customerRows(ds.Customers)},
		{dataset.ProductsFile, dataset.ProductColumns, productRows(ds.Products)},
		{dataset.OrdersFile, dataset.OrderColumns, orderRows(ds.Orders)},
		{dataset.ItemsFile, dataset.ItemColumns, itemRows(ds.Items)},
		{dataset.PaymentsFile, dataset.PaymentColumns, paymentRows(ds.Payments)},
	}

	for _, table := range tables {
		if err := writeTable(filepath.Join(dir, table.file), table.headers, table.rows); err != nil {
			return err
		}
	}
	return nil
}

func writeTable(path string, headers []string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("failed to write header to %s: %w", path, err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row to %s: %w", path, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return nil
}

func customerRows(customers []dataset.Customer) [][]string {
	rows := make([][]string, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, []string{
			strconv.Itoa(c.ID),
			c.Name,
			c.Email,
			c.City,
			c.Country,
			c.SignupDate.Format(dataset.DateFormat),
		})
	}
	return rows
}

func productRows(products []dataset.Product) [][]string {
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{
			strconv.Itoa(p.ID),
			p.Name,
			p.Category,
			p.UnitPrice.String(),
		})
	}
	return rows
}

func orderRows(orders []dataset.Order) [][]string {
	rows := make([][]string, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, []string{
			strconv.Itoa(o.ID),
			strconv.Itoa(o.CustomerID),
			o.OrderDate.Format(dataset.DateFormat),
			o.Status,
			o.ShippingCity,
			o.ShippingCountry,
		})
	}
	return rows
}

func itemRows(items []dataset.OrderItem) [][]string {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			strconv.Itoa(item.ID),
			strconv.Itoa(item.OrderID),
			strconv.Itoa(item.ProductID),
			strconv.Itoa(item.Quantity),
			item.UnitPrice.String(),
		})
	}
	return rows
}

func paymentRows(payments []dataset.Payment) [][]string {
	rows := make([][]string, 0, len(payments))
	for _, p := range payments {
		rows = append(rows, []string{
			strconv.Itoa(p.OrderID),
			p.Amount.String(),
			p.Method,
		})
	}
	return rows
}
