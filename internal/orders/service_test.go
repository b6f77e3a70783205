package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockpilothq/stockpilot-backend/internal/products"
	"github.com/stockpilothq/stockpilot-backend/pkg/db"
	"github.com/stockpilothq/stockpilot-backend/pkg/db/models"
	pkgerrors "github.com/stockpilothq/stockpilot-backend/pkg/errors"
)

func newTestService(t *testing.T, client *db.Client) Service {
	t.Helper()

	productRepo := products.NewRepository(client.DB())
	svc, err := NewService(NewRepository(client.DB()), client, products.NewStockAdjuster(), productRepo)
	require.NoError(t, err)
	return svc
}

func requireCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()

	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed, "expected coded error, got %v", err)
	assert.Equal(t, code, typed.Code())
}

func TestCreateTransactionSnapshotsPrice(t *testing.T) {
	client := openTestDB(t)
	svc := newTestService(t, client)
	ctx := context.Background()

	ownerID := seedUser(t, client)
	product := seedProduct(t, client, ownerID, 10, "19.99")

	transaction, err := svc.CreateTransaction(ctx, ownerID, CreateTransactionRequest{
		ProductID: product.ID,
		Quantity:  3,
	})
	require.NoError(t, err)
	assert.True(t, transaction.Price.Equal(decimal.RequireFromString("19.99")))
	assert.Equal(t, 3, transaction.Quantity)

	// Recording a transaction moves no stock; only orders do.
	assert.Equal(t, 10, productQuantity(t, client, product.ID))

	custom := decimal.RequireFromString("5.00")
	discounted, err := svc.CreateTransaction(ctx, ownerID, CreateTransactionRequest{
		ProductID: product.ID,
		Quantity:  1,
		Price:     &custom,
	})
	require.NoError(t, err)
	assert.True(t, discounted.Price.Equal(custom))
}

func TestCreateTransactionValidation(t *testing.T) {
	client := openTestDB(t)
	svc := newTestService(t, client)
	ctx := context.Background()

	ownerID := seedUser(t, client)
	strangerID := seedUser(t, client)
	product := seedProduct(t, client, ownerID, 10, "19.99")

	_, err := svc.CreateTransaction(ctx, ownerID, CreateTransactionRequest{
		ProductID: product.ID,
		Quantity:  0,
	})
	requireCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.CreateTransaction(ctx, strangerID, CreateTransactionRequest{
		ProductID: product.ID,
		Quantity:  1,
	})
	requireCode(t, err, pkgerrors.CodeValidation)
}

func TestCreateOrderDecrementsStock(t *testing.T) {
	client := openTestDB(t)
	svc := newTestService(t, client)
	ctx := context.Background()

	ownerID := seedUser(t, client)
	product := seedProduct(t, client, ownerID, 50, "10.00")

	first := seedTransaction(t, client, ownerID, product.ID, 1, "10.00")
	second := seedTransaction(t, client, ownerID, product.ID, 2, "10.00")
	third := seedTransaction(t, client, ownerID, product.ID, 3, "10.00")

	order, err := svc.Create(ctx, ownerID, CreateOrderRequest{
		TransactionIDs: []uuid.UUID{first.ID, second.ID, third.ID},
	})
	require.NoError(t, err)
	assert.True(t, order.Status)
	assert.Len(t, order.Transactions, 3)

	assert.Equal(t, 44, productQuantity(t, client, product.ID))
	assert.Equal(t, int64(3), countRows(t, client, "order_transactions"))
}

func TestCreateOrderEmptyTransactionList(t *testing.T) {
	client := openTestDB(t)
	svc := newTestService(t, client)
	ctx := context.Background()

	ownerID := seedUser(t, client)

	_, err := svc.Create(ctx, ownerID, CreateOrderRequest{})
	requireCode(t, err, pkgerrors.CodeValidation)
	assert.Equal(t, int64(0), countRows(t, client, "orders"))
}

func TestCreateOrderMissingTransactions(t *testing.T) {
	client := openTestDB(t)
	svc := newTestService(t, client)
	ctx := context.Background()

	ownerID := seedUser(t, client)
	strangerID := seedUser(t, client)
	product := seedProduct(t, client, ownerID, 50, "10.00")
	owned := seedTransaction(t, client, ownerID, product.ID, 2, "10.00")

	_, err := svc.Create(ctx, ownerID, CreateOrderRequest{
		TransactionIDs: []uuid.UUID{owned.ID, uuid.New()},
	})
	requireCode(t, err, pkgerrors.CodeValidation)

	// Other owners' transactions are invisible, not attachable.
	theirProduct := seedProduct(t, client, strangerID, 5, "1.00")
	theirs := seedTransaction(t, client, strangerID, theirProduct.ID, 1, "1.00")
	_, err = svc.Create(ctx, ownerID, CreateOrderRequest{
		TransactionIDs: []uuid.UUID{owned.ID, theirs.ID},
	})
	requireCode(t, err, pkgerrors.CodeValidation)

	assert.Equal(t, int64(0), countRows(t, client, "orders"))
	assert.Equal(t, 50, productQuantity(t, client, product.ID))
}

func TestCreateOrderRejectsReusedTransactions(t *testing.T) {
	client := openTestDB(t)
	svc := newTestService(t, client)
	ctx := context.Background()

	ownerID := seedUser(t, client)
	product := seedProduct(t, client, ownerID, 50, "10.00")
	transaction := seedTransaction(t, client, ownerID, product.ID, 4, "10.00")

	_, err := svc.Create(ctx, ownerID, CreateOrderRequest{
		TransactionIDs: []uuid.UUID{transaction.ID},
	})
	require.NoError(t, err)
	require.Equal(t, 46, productQuantity(t, client, product.ID))

	_, err = svc.Create(ctx, ownerID, CreateOrderRequest{
		TransactionIDs: []uuid.UUID{transaction.ID},
	})
	requireCode(t, err, pkgerrors.CodeStateConflict)

	// The failed attempt must not decrement stock again.
	assert.Equal(t, 46, productQuantity(t, client, product.ID))
	assert.Equal(t, int64(1), countRows(t, client, "orders"))
}

func TestCreateOrderRollsBackOnStockFailure(t *testing.T) {
	client := openTestDB(t)
	svc := newTestService(t, client)
	ctx := context.Background()

	ownerID := seedUser(t, client)
	kept := seedProduct(t, client, ownerID, 50, "10.00")
	doomed := seedProduct(t, client, ownerID, 5, "2.00")

	goodTx := seedTransaction(t, client, ownerID, kept.ID, 3, "10.00")
	orphanTx := seedTransaction(t, client, ownerID, doomed.ID, 1, "2.00")

	// The product vanishing between transaction capture and order creation
	// makes the stock adjustment fail mid-order.
	require.NoError(t, client.DB().Where("id = ?", doomed.ID).Delete(&models.Product{}).Error)

	_, err := svc.Create(ctx, ownerID, CreateOrderRequest{
		TransactionIDs: []uuid.UUID{goodTx.ID, orphanTx.ID},
	})
	requireCode(t, err, pkgerrors.CodeNotFound)

	assert.Equal(t, 50, productQuantity(t, client, kept.ID))
	assert.Equal(t, int64(0), countRows(t, client, "orders"))
	assert.Equal(t, int64(0), countRows(t, client, "order_transactions"))
}

func TestCreateOrderAllowsNegativeStock(t *testing.T) {
	client := openTestDB(t)
	svc := newTestService(t, client)
	ctx := context.Background()

	ownerID := seedUser(t, client)
	product := seedProduct(t, client, ownerID, 2, "10.00")
	transaction := seedTransaction(t, client, ownerID, product.ID, 5, "10.00")

	_, err := svc.Create(ctx, ownerID, CreateOrderRequest{
		TransactionIDs: []uuid.UUID{transaction.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, -3, productQuantity(t, client, product.ID))
}

func TestCancelRestoresStockOnce(t *testing.T) {
	client := openTestDB(t)
	svc := newTestService(t, client)
	ctx := context.Background()

	ownerID := seedUser(t, client)
	product := seedProduct(t, client, ownerID, 50, "10.00")
	first := seedTransaction(t, client, ownerID, product.ID, 1, "10.00")
	second := seedTransaction(t, client, ownerID, product.ID, 2, "10.00")
	third := seedTransaction(t, client, ownerID, product.ID, 3, "10.00")

	order, err := svc.Create(ctx, ownerID, CreateOrderRequest{
		TransactionIDs: []uuid.UUID{first.ID, second.ID, third.ID},
	})
	require.NoError(t, err)
	require.Equal(t, 44, productQuantity(t, client, product.ID))

	cancelled, err := svc.Cancel(ctx, ownerID, order.ID)
	require.NoError(t, err)
	assert.False(t, cancelled.Status)
	assert.Equal(t, 50, productQuantity(t, client, product.ID))

	_, err = svc.Cancel(ctx, ownerID, order.ID)
	requireCode(t, err, pkgerrors.CodeStateConflict)
	assert.Equal(t, 50, productQuantity(t, client, product.ID))
}

func TestCancelUnknownOrder(t *testing.T) {
	client := openTestDB(t)
	svc := newTestService(t, client)
	ctx := context.Background()

	ownerID := seedUser(t, client)
	strangerID := seedUser(t, client)
	product := seedProduct(t, client, ownerID, 10, "10.00")
	transaction := seedTransaction(t, client, ownerID, product.ID, 1, "10.00")

	order, err := svc.Create(ctx, ownerID, CreateOrderRequest{
		TransactionIDs: []uuid.UUID{transaction.ID},
	})
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, ownerID, uuid.New())
	requireCode(t, err, pkgerrors.CodeNotFound)

	// Orders are invisible across owners.
	_, err = svc.Cancel(ctx, strangerID, order.ID)
	requireCode(t, err, pkgerrors.CodeNotFound)
}

func TestGetAndListOrders(t *testing.T) {
	client := openTestDB(t)
	svc := newTestService(t, client)
	ctx := context.Background()

	ownerID := seedUser(t, client)
	product := seedProduct(t, client, ownerID, 50, "10.00")
	first := seedTransaction(t, client, ownerID, product.ID, 1, "10.00")
	second := seedTransaction(t, client, ownerID, product.ID, 2, "10.00")

	order, err := svc.Create(ctx, ownerID, CreateOrderRequest{
		TransactionIDs: []uuid.UUID{first.ID, second.ID},
	})
	require.NoError(t, err)

	fetched, err := svc.Get(ctx, ownerID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, fetched.ID)
	require.Len(t, fetched.Transactions, 2)
	require.NotNil(t, fetched.Transactions[0].Product)
	assert.Equal(t, product.Name, fetched.Transactions[0].Product.Name)

	rows, err := svc.List(ctx, ownerID)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestCreateOrderDeduplicatesIDs(t *testing.T) {
	client := openTestDB(t)
	svc := newTestService(t, client)
	ctx := context.Background()

	ownerID := seedUser(t, client)
	product := seedProduct(t, client, ownerID, 50, "10.00")
	transaction := seedTransaction(t, client, ownerID, product.ID, 2, "10.00")

	order, err := svc.Create(ctx, ownerID, CreateOrderRequest{
		TransactionIDs: []uuid.UUID{transaction.ID, transaction.ID, transaction.ID},
	})
	require.NoError(t, err)
	assert.Len(t, order.Transactions, 1)
	assert.Equal(t, 48, productQuantity(t, client, product.ID))
}
