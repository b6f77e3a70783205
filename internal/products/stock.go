package products

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/stockpilothq/stockpilot-backend/pkg/errors"
)

type stockAdjusterImpl struct{}

// NewStockAdjuster exposes the default stock adjustment implementation.
// Adjustments run inside the caller's transaction so stock movement commits
// or rolls back with the rest of the order. Quantity is allowed to go
// negative; bounds apply only to explicit product saves.
func NewStockAdjuster() stockAdjusterImpl {
	return stockAdjusterImpl{}
}

// Adjust applies delta to the owned product's quantity. Zero rows affected
// means the product no longer exists for this owner.
func (stockAdjusterImpl) Adjust(ctx context.Context, tx *gorm.DB, ownerID, productID uuid.UUID, delta int) error {
	if delta == 0 {
		return nil
	}
	if tx == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "transaction required for stock adjustment")
	}

	res := tx.WithContext(ctx).Exec(`
		UPDATE products
		SET quantity = quantity + ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND user_id = ?
	`, delta, productID, ownerID)
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "adjust stock")
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return nil
}
