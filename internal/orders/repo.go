package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockpilothq/stockpilot-backend/pkg/db/models"
)

// Repository defines the persistence surface used by the order lifecycle.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateTransaction(ctx context.Context, transaction *models.Transaction) (*models.Transaction, error)
	FindTransactionsByIDs(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) ([]models.Transaction, error)
	ListTransactions(ctx context.Context, ownerID uuid.UUID) ([]models.Transaction, error)
	TransactionsInUse(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)

	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	AssociateTransactions(ctx context.Context, order *models.Order, transactions []models.Transaction) error
	FindOrder(ctx context.Context, ownerID, id uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, ownerID uuid.UUID) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status bool) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateTransaction(ctx context.Context, transaction *models.Transaction) (*models.Transaction, error) {
	if err := r.db.WithContext(ctx).Create(transaction).Error; err != nil {
		return nil, err
	}
	return transaction, nil
}

func (r *repository) FindTransactionsByIDs(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) ([]models.Transaction, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.Transaction
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ? AND id IN ?", ownerID, ids).
		Find(&rows).Error
	return rows, err
}

func (r *repository) ListTransactions(ctx context.Context, ownerID uuid.UUID) ([]models.Transaction, error) {
	var rows []models.Transaction
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

// TransactionsInUse returns the subset of ids already attached to an order.
func (r *repository) TransactionsInUse(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var used []uuid.UUID
	err := r.db.WithContext(ctx).
		Table("order_transactions").
		Where("transaction_id IN ?", ids).
		Pluck("transaction_id", &used).Error
	return used, err
}

func (r *repository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) AssociateTransactions(ctx context.Context, order *models.Order, transactions []models.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(order).Association("Transactions").Append(transactions)
}

func (r *repository) FindOrder(ctx context.Context, ownerID, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Transactions").
		Preload("Transactions.Product").
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) ListOrders(ctx context.Context, ownerID uuid.UUID) ([]models.Order, error) {
	var rows []models.Order
	err := r.db.WithContext(ctx).
		Preload("Transactions").
		Preload("Transactions.Product").
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status bool) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status).Error
}
