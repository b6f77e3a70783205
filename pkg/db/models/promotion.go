package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Promotion discounts targeted products and whole categories. The activity
// window is inclusive on both ends; the status flag is informational and does
// not gate discount application.
type Promotion struct {
	ID                 uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID             uuid.UUID       `gorm:"column:user_id;type:uuid;not null;index;uniqueIndex:idx_promotions_owner_name" json:"user_id"`
	Name               string          `gorm:"column:name;not null;uniqueIndex:idx_promotions_owner_name" json:"name"`
	Description        *string         `gorm:"column:description" json:"description,omitempty"`
	DiscountPercentage decimal.Decimal `gorm:"column:discount_percentage;type:numeric(5,2);not null" json:"discount_percentage"`
	StartDate          time.Time       `gorm:"column:start_date;not null" json:"start_date"`
	EndDate            time.Time       `gorm:"column:end_date;not null" json:"end_date"`
	Status             bool            `gorm:"column:status;not null;default:true" json:"status"`

	Products   []Product  `gorm:"many2many:promotion_products" json:"products,omitempty"`
	Categories []Category `gorm:"many2many:promotion_categories" json:"categories,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Promotion) TableName() string { return "promotions" }
