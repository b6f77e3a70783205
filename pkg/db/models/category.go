package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products and can nest under a parent. Deleting a parent
// cascades to its children at the database level.
type Category struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index;uniqueIndex:idx_categories_owner_name" json:"user_id"`
	ParentID    *uuid.UUID `gorm:"column:parent_id;type:uuid" json:"parent_id,omitempty"`
	Name        string     `gorm:"column:name;not null;uniqueIndex:idx_categories_owner_name" json:"name"`
	Icon        *string    `gorm:"column:icon" json:"icon,omitempty"`
	Description *string    `gorm:"column:description" json:"description,omitempty"`
	Status      bool       `gorm:"column:status;not null;default:true" json:"status"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Category) TableName() string { return "categories" }
