package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/stockpilothq/stockpilot-backend/pkg/errors"
)

const defaultWindowDays = 7

// Service produces read-only sales summaries.
type Service interface {
	Report(ctx context.Context, ownerID uuid.UUID) (*Summary, error)
}

type service struct {
	repo       *Repository
	windowDays int
	now        func() time.Time
}

// NewService builds a reporting service over the trailing window.
func NewService(repo *Repository, windowDays int) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("reports repository required")
	}
	if windowDays <= 0 {
		windowDays = defaultWindowDays
	}
	return &service{repo: repo, windowDays: windowDays, now: time.Now}, nil
}

// Report aggregates the owner's orders over the trailing window. An owner
// with no orders gets zeroed totals, not an error.
func (s *service) Report(ctx context.Context, ownerID uuid.UUID) (*Summary, error) {
	if ownerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	to := s.now()
	from := to.AddDate(0, 0, -s.windowDays)

	orders, err := s.repo.OrdersSince(ctx, ownerID, from)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load orders for report")
	}

	summary := &Summary{
		WindowDays:      s.windowDays,
		From:            from,
		To:              to,
		TotalEarned:     decimal.Zero,
		AveragePerOrder: decimal.Zero,
		DailyAverage:    decimal.Zero,
		Orders:          make([]ReportOrder, 0, len(orders)),
	}

	quantityByProduct := make(map[uuid.UUID]int)
	var most *MostSoldProduct

	for _, order := range orders {
		listed := ReportOrder{
			OrderID:   order.ID,
			CreatedAt: order.CreatedAt,
			Items:     make([]ReportItem, 0, len(order.Transactions)),
		}

		for _, transaction := range order.Transactions {
			name := ""
			if transaction.Product != nil {
				name = transaction.Product.Name
			}

			listed.Items = append(listed.Items, ReportItem{
				ProductID:   transaction.ProductID,
				ProductName: name,
				Quantity:    transaction.Quantity,
				Price:       transaction.Price,
			})

			line := transaction.Price.Mul(decimal.NewFromInt(int64(transaction.Quantity)))
			summary.TotalEarned = summary.TotalEarned.Add(line)
			summary.TotalTransactions += transaction.Quantity

			quantityByProduct[transaction.ProductID] += transaction.Quantity
			total := quantityByProduct[transaction.ProductID]
			// Strict comparison keeps the first product seen on a tie.
			if most == nil || total > most.Quantity {
				if most == nil || most.ProductID != transaction.ProductID {
					most = &MostSoldProduct{ProductID: transaction.ProductID, Name: name}
				}
				most.Quantity = total
			}
		}

		summary.Orders = append(summary.Orders, listed)
	}

	if len(orders) > 0 {
		summary.AveragePerOrder = summary.TotalEarned.
			Div(decimal.NewFromInt(int64(len(orders)))).
			Round(2)
	}
	// Fixed denominator over the window, regardless of how many days saw sales.
	summary.DailyAverage = decimal.NewFromInt(int64(summary.TotalTransactions)).
		Div(decimal.NewFromInt(int64(s.windowDays))).
		Round(2)
	summary.MostSoldProduct = most

	return summary, nil
}
