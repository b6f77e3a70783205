package promotions

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stockpilothq/stockpilot-backend/pkg/db/models"
)

var hundred = decimal.NewFromInt(100)

// IsActive reports whether the promotion applies at the given instant. The
// window is inclusive on both ends; the status flag does not gate application.
func IsActive(promotion models.Promotion, at time.Time) bool {
	return !at.Before(promotion.StartDate) && !at.After(promotion.EndDate)
}

// ActiveAt filters the promotions down to those applying at the given instant.
func ActiveAt(list []models.Promotion, at time.Time) []models.Promotion {
	active := make([]models.Promotion, 0, len(list))
	for _, promotion := range list {
		if IsActive(promotion, at) {
			active = append(active, promotion)
		}
	}
	return active
}

// ApplyDiscounts compounds each promotion's percentage onto the base price
// multiplicatively and clamps the result at zero.
func ApplyDiscounts(basePrice decimal.Decimal, active []models.Promotion) decimal.Decimal {
	price := basePrice
	for _, promotion := range active {
		factor := hundred.Sub(promotion.DiscountPercentage).Div(hundred)
		price = price.Mul(factor)
	}
	if price.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return price.Round(2)
}
