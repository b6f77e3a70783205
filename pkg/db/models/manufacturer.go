package models

import (
	"time"

	"github.com/google/uuid"
)

// Manufacturer mirrors Supplier: a per-owner contact card referenced by
// products with SET NULL semantics.
type Manufacturer struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"column:user_id;type:uuid;not null;index;uniqueIndex:idx_manufacturers_owner_name" json:"user_id"`
	Name         string    `gorm:"column:name;not null;uniqueIndex:idx_manufacturers_owner_name" json:"name"`
	Icon         *string   `gorm:"column:icon" json:"icon,omitempty"`
	Description  *string   `gorm:"column:description" json:"description,omitempty"`
	Address      *string   `gorm:"column:address" json:"address,omitempty"`
	Website      *string   `gorm:"column:website" json:"website,omitempty"`
	ContactEmail *string   `gorm:"column:contact_email" json:"contact_email,omitempty"`
	ContactPhone *string   `gorm:"column:contact_phone" json:"contact_phone,omitempty"`
	Country      *string   `gorm:"column:country" json:"country,omitempty"`
	City         *string   `gorm:"column:city" json:"city,omitempty"`
	Status       bool      `gorm:"column:status;not null;default:true" json:"status"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Manufacturer) TableName() string { return "manufacturers" }
