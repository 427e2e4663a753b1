// Package loader inserts a generated dataset into a SQL database. It speaks
// postgres, mysql and sqlite through database/sql, building statements with
// squirrel so each provider gets its own placeholder format.
package loader

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/shopsynth-dev/shopsynth/internal/dataset"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

// batchSize bounds rows per INSERT so parameter counts stay well under every
// driver's limit.
const batchSize = 500

type Loader struct {
	db       *sql.DB
	qb       squirrel.StatementBuilderType
	provider string
}

func Open(ctx context.Context, provider, url string) (*Loader, error) {
	var driverName string
	qb := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

	switch provider {
	case "postgresql", "postgres":
		driverName = "pgx"
		qb = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	case "mysql":
		driverName = "mysql"
	case "sqlite", "sqlite3":
		driverName = "sqlite3"
	default:
		return nil, fmt.Errorf("unsupported database provider: %s", provider)
	}

	db, err := sql.Open(driverName, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Loader{db: db, qb: qb, provider: provider}, nil
}

func (l *Loader) Close() error {
	return l.db.Close()
}

// tableOrder is the creation and insertion order; reversed for drops so
// referencing tables go first.
var tableOrder = []string{"customers", "products", "orders", "order_items", "payments"}

var tableDDL = map[string]string{
	"customers": `CREATE TABLE customers (
		customer_id INTEGER PRIMARY KEY,
		customer_name TEXT NOT NULL,
		customer_email TEXT NOT NULL,
		customer_city TEXT NOT NULL,
		customer_country TEXT NOT NULL,
		signup_date DATE NOT NULL
	)`,
	"products": `CREATE TABLE products (
		product_id INTEGER PRIMARY KEY,
		product_name TEXT NOT NULL,
		product_category TEXT NOT NULL,
		unit_price DECIMAL(12,2) NOT NULL
	)`,
	"orders": `CREATE TABLE orders (
		order_id INTEGER PRIMARY KEY,
		customer_id INTEGER NOT NULL,
		order_date DATE NOT NULL,
		order_status TEXT NOT NULL,
		shipping_city TEXT NOT NULL,
		shipping_country TEXT NOT NULL
	)`,
	"order_items": `CREATE TABLE order_items (
		order_item_id INTEGER PRIMARY KEY,
		order_id INTEGER NOT NULL,
		product_id INTEGER NOT NULL,
		quantity INTEGER NOT NULL,
		price DECIMAL(12,2) NOT NULL
	)`,
	"payments": `CREATE TABLE payments (
		order_id INTEGER NOT NULL,
		payment_amount DECIMAL(12,2) NOT NULL,
		payment_type TEXT NOT NULL
	)`,
}

// Load creates the five tables and inserts the dataset in dependency order
// inside a single transaction. With truncate set, existing tables are
// dropped first.
func (l *Loader) Load(ctx context.Context, ds *dataset.Dataset, truncate bool) error {
	if truncate {
		for i := len(tableOrder) - 1; i >= 0; i-- {
			if _, err := l.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+tableOrder[i]); err != nil {
				return fmt.Errorf("failed to drop table %s: %w", tableOrder[i], err)
			}
		}
	}

	for _, table := range tableOrder {
		if _, err := l.db.ExecContext(ctx, tableDDL[table]); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table, err)
		}
	}

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := l.insertBatched(ctx, tx, "customers", dataset.CustomerColumns, customerValues(ds.Customers)); err != nil {
		return err
	}
	if err := l.insertBatched(ctx, tx, "products", dataset.ProductColumns, productValues(ds.Products)); err != nil {
		return err
	}
	if err := l.insertBatched(ctx, tx, "orders", dataset.OrderColumns, orderValues(ds.Orders)); err != nil {
		return err
	}
	if err := l.insertBatched(ctx, tx, "order_items", dataset.ItemColumns, itemValues(ds.Items)); err != nil {
		return err
	}
	if err := l.insertBatched(ctx, tx, "payments", dataset.PaymentColumns, paymentValues(ds.Payments)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

func (l *Loader) insertBatched(ctx context.Context, tx *sql.Tx, table string, columns []string, rows [][]interface{}) error {
	for offset := 0; offset < len(rows); offset += batchSize {
		end := offset + batchSize
		if end > len(rows) {
			end = len(rows)
		}

		builder := l.qb.Insert(table).Columns(columns...)
		for _, row := range rows[offset:end] {
			builder = builder.Values(row...)
		}

		query, args, err := builder.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build insert for %s: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", table, err)
		}
	}
	return nil
}

func customerValues(customers []dataset.Customer) [][]interface{} {
	rows := make([][]interface{}, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, []interface{}{
			c.ID, c.Name, c.Email, c.City, c.Country, c.SignupDate.Format(dataset.DateFormat),
		})
	}
	return rows
}

func productValues(products []dataset.Product) [][]interface{} {
	rows := make([][]interface{}, 0, len(products))
	for _, p := range products {
		rows = append(rows, []interface{}{p.ID, p.Name, p.Category, p.UnitPrice.String()})
	}
	return rows
}

func orderValues(orders []dataset.Order) [][]interface{} {
	rows := make([][]interface{}, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, []interface{}{
			o.ID, o.CustomerID, o.OrderDate.Format(dataset.DateFormat), o.Status, o.ShippingCity, o.ShippingCountry,
		})
	}
	return rows
}

func itemValues(items []dataset.OrderItem) [][]interface{} {
	rows := make([][]interface{}, 0, len(items))
	for _, item := range items {
		rows = append(rows, []interface{}{
			item.ID, item.OrderID, item.ProductID, item.Quantity, item.UnitPrice.String(),
		})
	}
	return rows
}

func paymentValues(payments []dataset.Payment) [][]interface{} {
	rows := make([][]interface{}, 0, len(payments))
	for _, p := range payments {
		rows = append(rows, []interface{}{p.OrderID, p.Amount.String(), p.Method})
	}
	return rows
}
