package reports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockpilothq/stockpilot-backend/pkg/db/models"
)

type Repository struct {
	db *gorm.DB
}

// NewRepository builds a reporting repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// OrdersSince loads the owner's orders created at or after the cutoff, oldest
// first so aggregation encounters products in a stable order.
func (r *Repository) OrdersSince(ctx context.Context, ownerID uuid.UUID, since time.Time) ([]models.Order, error) {
	var rows []models.Order
	err := r.db.WithContext(ctx).
		Preload("Transactions").
		Preload("Transactions.Product").
		Where("user_id = ? AND created_at >= ?", ownerID, since).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}
