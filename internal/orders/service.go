package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/stockpilothq/stockpilot-backend/pkg/db/models"
	pkgerrors "github.com/stockpilothq/stockpilot-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// StockAdjuster applies a quantity delta to a product inside a transaction.
type StockAdjuster interface {
	Adjust(ctx context.Context, tx *gorm.DB, ownerID, productID uuid.UUID, delta int) error
}

// productFinder resolves owned products for transaction price snapshots.
type productFinder interface {
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*models.Product, error)
}

// Service manages the order lifecycle: recording transactions, grouping them
// into orders and reversing stock on cancellation.
type Service interface {
	CreateTransaction(ctx context.Context, ownerID uuid.UUID, req CreateTransactionRequest) (*models.Transaction, error)
	ListTransactions(ctx context.Context, ownerID uuid.UUID) ([]models.Transaction, error)
	Create(ctx context.Context, ownerID uuid.UUID, req CreateOrderRequest) (*models.Order, error)
	Cancel(ctx context.Context, ownerID, orderID uuid.UUID) (*models.Order, error)
	Get(ctx context.Context, ownerID, orderID uuid.UUID) (*models.Order, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]models.Order, error)
}

type service struct {
	repo     Repository
	tx       txRunner
	stock    StockAdjuster
	products productFinder
}

// NewService builds an order service with the required dependencies.
func NewService(repo Repository, tx txRunner, stock StockAdjuster, products productFinder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if stock == nil {
		return nil, fmt.Errorf("stock adjuster required")
	}
	if products == nil {
		return nil, fmt.Errorf("product finder required")
	}
	return &service{repo: repo, tx: tx, stock: stock, products: products}, nil
}

func (s *service) CreateTransaction(ctx context.Context, ownerID uuid.UUID, req CreateTransactionRequest) (*models.Transaction, error) {
	if ownerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if req.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product_id is required")
	}
	if req.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	product, err := s.products.FindByID(ctx, ownerID, req.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	price := product.Price
	if req.Price != nil {
		price = *req.Price
	}

	transaction, err := s.repo.CreateTransaction(ctx, &models.Transaction{
		UserID:    ownerID,
		ProductID: product.ID,
		Quantity:  req.Quantity,
		Price:     price,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create transaction")
	}
	return transaction, nil
}

func (s *service) ListTransactions(ctx context.Context, ownerID uuid.UUID) ([]models.Transaction, error) {
	rows, err := s.repo.ListTransactions(ctx, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list transactions")
	}
	return rows, nil
}

// Create persists the order, attaches its transactions and decrements stock
// for every line in one transaction. Any failure rolls the whole operation
// back so stock and order state never diverge.
func (s *service) Create(ctx context.Context, ownerID uuid.UUID, req CreateOrderRequest) (*models.Order, error) {
	if ownerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if len(req.TransactionIDs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction_ids cannot be empty")
	}

	ids := dedupeIDs(req.TransactionIDs)

	var created *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		transactions, err := repo.FindTransactionsByIDs(ctx, ownerID, ids)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load transactions")
		}
		if missing := missingIDs(ids, transactions); missing != nil {
			return pkgerrors.Wrap(pkgerrors.CodeValidation, missing, "one or more transactions not found").
				WithDetails(map[string]any{"missing": missing.Error()})
		}

		used, err := repo.TransactionsInUse(ctx, ids)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check transaction usage")
		}
		if len(used) > 0 {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "one or more transactions already belong to an order").
				WithDetails(map[string]any{"in_use": used})
		}

		order, err := repo.CreateOrder(ctx, &models.Order{UserID: ownerID, Status: true})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}
		if err := repo.AssociateTransactions(ctx, order, transactions); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "associate transactions")
		}

		for _, transaction := range transactions {
			if err := s.stock.Adjust(ctx, tx, ownerID, transaction.ProductID, -transaction.Quantity); err != nil {
				return err
			}
		}

		order.Transactions = transactions
		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Cancel flips the order to cancelled and restores stock for every
// transaction. Cancelling twice fails so stock is never returned twice.
func (s *service) Cancel(ctx context.Context, ownerID, orderID uuid.UUID) (*models.Order, error) {
	if ownerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	var cancelled *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.FindOrder(ctx, ownerID, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		if !order.Status {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order already cancelled")
		}

		if err := repo.UpdateOrderStatus(ctx, order.ID, false); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
		}

		for _, transaction := range order.Transactions {
			if err := s.stock.Adjust(ctx, tx, ownerID, transaction.ProductID, transaction.Quantity); err != nil {
				return err
			}
		}

		order.Status = false
		cancelled = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

func (s *service) Get(ctx context.Context, ownerID, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindOrder(ctx, ownerID, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func (s *service) List(ctx context.Context, ownerID uuid.UUID) ([]models.Order, error) {
	rows, err := s.repo.ListOrders(ctx, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return rows, nil
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	unique := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}

// missingIDs combines every absent transaction into one error so callers see
// the full set of violations at once.
func missingIDs(requested []uuid.UUID, found []models.Transaction) error {
	present := make(map[uuid.UUID]struct{}, len(found))
	for _, transaction := range found {
		present[transaction.ID] = struct{}{}
	}
	var combined error
	for _, id := range requested {
		if _, ok := present[id]; !ok {
			combined = multierr.Append(combined, fmt.Errorf("transaction %s not found", id))
		}
	}
	return combined
}
