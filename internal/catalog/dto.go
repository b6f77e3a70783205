package catalog

import (
	"github.com/google/uuid"

	"github.com/stockpilothq/stockpilot-backend/pkg/db/models"
)

// CategoryRequest is the payload for creating or replacing a category.
type CategoryRequest struct {
	Name        string     `json:"name" validate:"required,max=255"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	Icon        *string    `json:"icon,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      *bool      `json:"status,omitempty"`
}

// ToModel converts the request into a category owned by ownerID.
func (r CategoryRequest) ToModel(ownerID uuid.UUID) *models.Category {
	status := true
	if r.Status != nil {
		status = *r.Status
	}
	return &models.Category{
		UserID:      ownerID,
		Name:        r.Name,
		ParentID:    r.ParentID,
		Icon:        r.Icon,
		Description: r.Description,
		Status:      status,
	}
}

// ListFilters narrows the catalog list endpoints. Both fields are
// case-insensitive substring matches.
type ListFilters struct {
	Name        string
	Description string
}

// ContactRequest is the shared payload for suppliers and manufacturers.
type ContactRequest struct {
	Name         string  `json:"name" validate:"required,max=255"`
	Icon         *string `json:"icon,omitempty"`
	Description  *string `json:"description,omitempty"`
	Address      *string `json:"address,omitempty"`
	Website      *string `json:"website,omitempty"`
	ContactEmail *string `json:"contact_email,omitempty" validate:"omitempty,email"`
	ContactPhone *string `json:"contact_phone,omitempty"`
	Country      *string `json:"country,omitempty"`
	City         *string `json:"city,omitempty"`
	Status       *bool   `json:"status,omitempty"`
}

func (r ContactRequest) statusOrDefault() bool {
	if r.Status != nil {
		return *r.Status
	}
	return true
}

// ToSupplier converts the request into a supplier owned by ownerID.
func (r ContactRequest) ToSupplier(ownerID uuid.UUID) *models.Supplier {
	return &models.Supplier{
		UserID:       ownerID,
		Name:         r.Name,
		Icon:         r.Icon,
		Description:  r.Description,
		Address:      r.Address,
		Website:      r.Website,
		ContactEmail: r.ContactEmail,
		ContactPhone: r.ContactPhone,
		Country:      r.Country,
		City:         r.City,
		Status:       r.statusOrDefault(),
	}
}

// ToManufacturer converts the request into a manufacturer owned by ownerID.
func (r ContactRequest) ToManufacturer(ownerID uuid.UUID) *models.Manufacturer {
	return &models.Manufacturer{
		UserID:       ownerID,
		Name:         r.Name,
		Icon:         r.Icon,
		Description:  r.Description,
		Address:      r.Address,
		Website:      r.Website,
		ContactEmail: r.ContactEmail,
		ContactPhone: r.ContactPhone,
		Country:      r.Country,
		City:         r.City,
		Status:       r.statusOrDefault(),
	}
}
