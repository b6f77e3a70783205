package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a stock-tracked item. Barcode is unique per owner, not globally.
// Quantity is mutated exclusively through the stock adjustment primitive so
// order flows can run it inside their own transaction.
type Product struct {
	ID          uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID      uuid.UUID        `gorm:"column:user_id;type:uuid;not null;index;uniqueIndex:idx_products_owner_barcode" json:"user_id"`
	Name        string           `gorm:"column:name;not null" json:"name"`
	Description *string          `gorm:"column:description" json:"description,omitempty"`
	Barcode     string           `gorm:"column:barcode;not null;uniqueIndex:idx_products_owner_barcode" json:"barcode"`
	Weight      *decimal.Decimal `gorm:"column:weight;type:numeric(10,2)" json:"weight,omitempty"`
	Dimension   *string          `gorm:"column:dimension" json:"dimension,omitempty"`
	Icon        *string          `gorm:"column:icon" json:"icon,omitempty"`
	Status      bool             `gorm:"column:status;not null;default:true" json:"status"`
	Price       decimal.Decimal  `gorm:"column:price;type:numeric(10,2);not null" json:"price"`
	Quantity    int              `gorm:"column:quantity;not null;default:0" json:"quantity"`
	QuantityMin *int             `gorm:"column:quantity_min" json:"quantity_min,omitempty"`
	QuantityMax *int             `gorm:"column:quantity_max" json:"quantity_max,omitempty"`

	CategoryID     *uuid.UUID `gorm:"column:category_id;type:uuid" json:"category_id,omitempty"`
	ManufacturerID *uuid.UUID `gorm:"column:manufacturer_id;type:uuid" json:"manufacturer_id,omitempty"`
	SupplierID     *uuid.UUID `gorm:"column:supplier_id;type:uuid" json:"supplier_id,omitempty"`

	Category     *Category     `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Manufacturer *Manufacturer `gorm:"foreignKey:ManufacturerID" json:"manufacturer,omitempty"`
	Supplier     *Supplier     `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Product) TableName() string { return "products" }
