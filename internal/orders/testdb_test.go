package orders

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/stockpilothq/stockpilot-backend/pkg/config"
	"github.com/stockpilothq/stockpilot-backend/pkg/db"
	"github.com/stockpilothq/stockpilot-backend/pkg/db/models"
)

// Schema mirrors the production migrations, trimmed to the tables the order
// flow touches. IDs are assigned in the tests since sqlite has no
// gen_random_uuid().
var testSchema = []string{
	`CREATE TABLE users (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP,
		updated_at TIMESTAMP
	)`,
	`CREATE TABLE categories (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		parent_id TEXT,
		icon TEXT,
		description TEXT,
		status BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP,
		updated_at TIMESTAMP
	)`,
	`CREATE TABLE suppliers (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		status BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP,
		updated_at TIMESTAMP
	)`,
	`CREATE TABLE manufacturers (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		status BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP,
		updated_at TIMESTAMP
	)`,
	`CREATE TABLE products (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		description TEXT,
		barcode TEXT NOT NULL,
		weight NUMERIC,
		dimension TEXT,
		icon TEXT,
		status BOOLEAN NOT NULL DEFAULT TRUE,
		price NUMERIC NOT NULL,
		quantity INTEGER NOT NULL DEFAULT 0,
		quantity_min INTEGER,
		quantity_max INTEGER,
		category_id TEXT,
		manufacturer_id TEXT,
		supplier_id TEXT,
		created_at TIMESTAMP,
		updated_at TIMESTAMP
	)`,
	`CREATE TABLE transactions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		product_id TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		price NUMERIC NOT NULL,
		created_at TIMESTAMP
	)`,
	`CREATE TABLE orders (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		status BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP,
		updated_at TIMESTAMP
	)`,
	`CREATE TABLE order_transactions (
		order_id TEXT NOT NULL,
		transaction_id TEXT NOT NULL,
		PRIMARY KEY (order_id, transaction_id)
	)`,
}

func openTestDB(t *testing.T) *db.Client {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	client, err := db.New(context.Background(), config.DBConfig{
		Driver: "sqlite",
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	for _, stmt := range testSchema {
		require.NoError(t, client.Exec(context.Background(), stmt).Error)
	}
	return client
}

func seedUser(t *testing.T, client *db.Client) uuid.UUID {
	t.Helper()

	user := &models.User{
		ID:           uuid.New(),
		Username:     fmt.Sprintf("owner-%s", uuid.NewString()[:8]),
		Email:        fmt.Sprintf("%s@example.com", uuid.NewString()[:8]),
		PasswordHash: "not-a-real-hash",
		IsActive:     true,
	}
	require.NoError(t, client.DB().Create(user).Error)
	return user.ID
}

func seedProduct(t *testing.T, client *db.Client, ownerID uuid.UUID, quantity int, price string) *models.Product {
	t.Helper()

	product := &models.Product{
		ID:       uuid.New(),
		UserID:   ownerID,
		Name:     fmt.Sprintf("product-%s", uuid.NewString()[:8]),
		Barcode:  uuid.NewString(),
		Status:   true,
		Price:    decimal.RequireFromString(price),
		Quantity: quantity,
	}
	require.NoError(t, client.DB().Create(product).Error)
	return product
}

func seedTransaction(t *testing.T, client *db.Client, ownerID, productID uuid.UUID, quantity int, price string) *models.Transaction {
	t.Helper()

	transaction := &models.Transaction{
		ID:        uuid.New(),
		UserID:    ownerID,
		ProductID: productID,
		Quantity:  quantity,
		Price:     decimal.RequireFromString(price),
	}
	require.NoError(t, client.DB().Create(transaction).Error)
	return transaction
}

func productQuantity(t *testing.T, client *db.Client, id uuid.UUID) int {
	t.Helper()

	var product models.Product
	require.NoError(t, client.DB().Where("id = ?", id).First(&product).Error)
	return product.Quantity
}

func countRows(t *testing.T, client *db.Client, table string) int64 {
	t.Helper()

	var count int64
	require.NoError(t, client.DB().Table(table).Count(&count).Error)
	return count
}
