package reports

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReportItem is one flattened transaction line inside an order.
type ReportItem struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// ReportOrder lists an order and its transaction lines.
type ReportOrder struct {
	OrderID   uuid.UUID    `json:"order_id"`
	CreatedAt time.Time    `json:"created_at"`
	Items     []ReportItem `json:"items"`
}

// MostSoldProduct is the product with the highest summed quantity in the
// window. Ties keep the first product encountered.
type MostSoldProduct struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
}

// Summary aggregates order activity over the trailing window.
type Summary struct {
	WindowDays        int              `json:"window_days"`
	From              time.Time        `json:"from"`
	To                time.Time        `json:"to"`
	TotalEarned       decimal.Decimal  `json:"total_earned"`
	TotalTransactions int              `json:"total_transactions"`
	AveragePerOrder   decimal.Decimal  `json:"average_per_order"`
	DailyAverage      decimal.Decimal  `json:"daily_average"`
	MostSoldProduct   *MostSoldProduct `json:"most_sold_product,omitempty"`
	Orders            []ReportOrder    `json:"orders"`
}
