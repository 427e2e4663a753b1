package verify

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/shopsynth-dev/shopsynth/internal/dataset"
)

func readDataset(dir string) (*dataset.Dataset, error) {
	ds := &dataset.Dataset{}

	customers, err := readTable(dir, dataset.CustomersFile, dataset.CustomerColumns)
	if err != nil {
		return nil, err
	}
	for i, row := range customers {
		c, err := parseCustomer(row)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", dataset.CustomersFile, i+1, err)
		}
		ds.Customers = append(ds.Customers, c)
	}

	products, err := readTable(dir, dataset.ProductsFile, dataset.ProductColumns)
	if err != nil {
		return nil, err
	}
	for i, row := range products {
		p, err := parseProduct(row)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", dataset.ProductsFile, i+1, err)
		}
		ds.Products = append(ds.Products, p)
	}

	orders, err := readTable(dir, dataset.OrdersFile, dataset.OrderColumns)
	if err != nil {
		return nil, err
	}
	for i, row := range orders {
		o, err := parseOrder(row)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", dataset.OrdersFile, i+1, err)
		}
		ds.Orders = append(ds.Orders, o)
	}

	items, err := readTable(dir, dataset.ItemsFile, dataset.ItemColumns)
	if err != nil {
		return nil, err
	}
	for i, row := range items {
		item, err := parseItem(row)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", dataset.ItemsFile, i+1, err)
		}
		ds.Items = append(ds.Items, item)
	}

	payments, err := readTable(dir, dataset.PaymentsFile, dataset.PaymentColumns)
	if err != nil {
		return nil, err
	}
	for i, row := range payments {
		p, err := parsePayment(row)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", dataset.PaymentsFile, i+1, err)
		}
		ds.Payments = append(ds.Payments, p)
	}

	return ds, nil
}

func readTable(dir, file string, headers []string) ([][]string, error) {
	path := filepath.Join(dir, file)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = len(headers)

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s is empty, expected a header row", path)
	}

	for i, want := range headers {
		if records[0][i] != want {
			return nil, fmt.Errorf("%s header column %d is %q, want %q", path, i, records[0][i], want)
		}
	}

	return records[1:], nil
}

func parseCustomer(row []string) (dataset.Customer, error) {
	id, err := strconv.Atoi(row[0])
	if err != nil {
		return dataset.Customer{}, fmt.Errorf("invalid customer_id %q: %w", row[0], err)
	}
	signup, err := time.Parse(dataset.DateFormat, row[5])
	if err != nil {
		return dataset.Customer{}, fmt.Errorf("invalid signup_date %q: %w", row[5], err)
	}
	return dataset.Customer{
		ID: id, Name: row[1], Email: row[2], City: row[3], Country: row[4], SignupDate: signup,
	}, nil
}

func parseProduct(row []string) (dataset.Product, error) {
	id, err := strconv.Atoi(row[0])
	if err != nil {
		return dataset.Product{}, fmt.Errorf("invalid product_id %q: %w", row[0], err)
	}
	price, err := dataset.ParseCents(row[3])
	if err != nil {
		return dataset.Product{}, fmt.Errorf("invalid unit_price: %w", err)
	}
	return dataset.Product{ID: id, Name: row[1], Category: row[2], UnitPrice: price}, nil
}

func parseOrder(row []string) (dataset.Order, error) {
	id, err := strconv.Atoi(row[0])
	if err != nil {
		return dataset.Order{}, fmt.Errorf("invalid order_id %q: %w", row[0], err)
	}
	customerID, err := strconv.Atoi(row[1])
	if err != nil {
		return dataset.Order{}, fmt.Errorf("invalid customer_id %q: %w", row[1], err)
	}
	date, err := time.Parse(dataset.DateFormat, row[2])
	if err != nil {
		return dataset.Order{}, fmt.Errorf("invalid order_date %q: %w", row[2], err)
	}
	return dataset.Order{
		ID: id, CustomerID: customerID, OrderDate: date,
		Status: row[3], ShippingCity: row[4], ShippingCountry: row[5],
	}, nil
}

func parseItem(row []string) (dataset.OrderItem, error) {
	id, err := strconv.Atoi(row[0])
	if err != nil {
		return dataset.OrderItem{}, fmt.Errorf("invalid order_item_id %q: %w", row[0], err)
	}
	orderID, err := strconv.Atoi(row[1])
	if err != nil {
		return dataset.OrderItem{}, fmt.Errorf("invalid order_id %q: %w", row[1], err)
	}
	productID, err := strconv.Atoi(row[2])
	if err != nil {
		return dataset.OrderItem{}, fmt.Errorf("invalid product_id %q: %w", row[2], err)
	}
	qty, err := strconv.Atoi(row[3])
	if err != nil {
		return dataset.OrderItem{}, fmt.Errorf("invalid quantity %q: %w", row[3], err)
	}
	price, err := dataset.ParseCents(row[4])
	if err != nil {
		return dataset.OrderItem{}, fmt.Errorf("invalid price: %w", err)
	}
	return dataset.OrderItem{ID: id, OrderID: orderID, ProductID: productID, Quantity: qty, UnitPrice: price}, nil
}

func parsePayment(row []string) (dataset.Payment, error) {
	orderID, err := strconv.Atoi(row[0])
	if err != nil {
		return dataset.Payment{}, fmt.Errorf("invalid order_id %q: %w", row[0], err)
	}
	amount, err := dataset.ParseCents(row[1])
	if err != nil {
		return dataset.Payment{}, fmt.Errorf("invalid payment_amount: %w", err)
	}
	return dataset.Payment{OrderID: orderID, Amount: amount, Method: row[2]}, nil
}
