package orders

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest records one stock movement. Price defaults to the
// product's current unit price when omitted.
type CreateTransactionRequest struct {
	ProductID uuid.UUID        `json:"product_id" validate:"required"`
	Quantity  int              `json:"quantity" validate:"required,min=1"`
	Price     *decimal.Decimal `json:"price,omitempty"`
}

// CreateOrderRequest groups previously recorded transactions into an order.
type CreateOrderRequest struct {
	TransactionIDs []uuid.UUID `json:"transaction_ids" validate:"required,min=1"`
}
