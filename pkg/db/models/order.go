package models

import (
	"time"

	"github.com/google/uuid"
)

// Order groups transactions placed together. Status true means active;
// cancellation flips it to false and is terminal.
type Order struct {
	ID     uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	Status bool      `gorm:"column:status;not null;default:true" json:"status"`

	Transactions []Transaction `gorm:"many2many:order_transactions" json:"transactions,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Order) TableName() string { return "orders" }
