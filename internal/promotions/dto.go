package promotions

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockpilothq/stockpilot-backend/pkg/db/models"
)

// PromotionRequest is the payload for creating or replacing a promotion.
type PromotionRequest struct {
	Name               string          `json:"name" validate:"required,max=255"`
	Description        *string         `json:"description,omitempty"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	StartDate          time.Time       `json:"start_date" validate:"required"`
	EndDate            time.Time       `json:"end_date" validate:"required"`
	Status             *bool           `json:"status,omitempty"`
	ProductIDs         []uuid.UUID     `json:"product_ids,omitempty"`
	CategoryIDs        []uuid.UUID     `json:"category_ids,omitempty"`
}

// ToModel converts the request into a promotion owned by ownerID. Target
// associations are attached separately.
func (r PromotionRequest) ToModel(ownerID uuid.UUID) *models.Promotion {
	status := true
	if r.Status != nil {
		status = *r.Status
	}
	return &models.Promotion{
		UserID:             ownerID,
		Name:               r.Name,
		Description:        r.Description,
		DiscountPercentage: r.DiscountPercentage,
		StartDate:          r.StartDate,
		EndDate:            r.EndDate,
		Status:             status,
	}
}

// ListFilters narrows the promotion list endpoint. Both fields are
// case-insensitive substring matches.
type ListFilters struct {
	Name        string
	Description string
}

// EffectivePriceResult explains how a product's discounted price was derived.
type EffectivePriceResult struct {
	ProductID      uuid.UUID          `json:"product_id"`
	BasePrice      decimal.Decimal    `json:"base_price"`
	EffectivePrice decimal.Decimal    `json:"effective_price"`
	Promotions     []models.Promotion `json:"promotions"`
}
