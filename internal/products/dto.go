package products

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockpilothq/stockpilot-backend/pkg/db/models"
	"github.com/stockpilothq/stockpilot-backend/pkg/pagination"
)

// CreateProductRequest is the payload for registering a new product.
type CreateProductRequest struct {
	Name           string           `json:"name" validate:"required,max=255"`
	Barcode        string           `json:"barcode" validate:"required,max=128"`
	Description    *string          `json:"description,omitempty"`
	Icon           *string          `json:"icon,omitempty"`
	Status         *bool            `json:"status,omitempty"`
	Price          decimal.Decimal  `json:"price"`
	Quantity       int              `json:"quantity" validate:"min=0"`
	QuantityMin    *int             `json:"quantity_min,omitempty"`
	QuantityMax    *int             `json:"quantity_max,omitempty"`
	Weight         *decimal.Decimal `json:"weight,omitempty"`
	Dimension      *string          `json:"dimension,omitempty"`
	CategoryID     *uuid.UUID       `json:"category_id,omitempty"`
	ManufacturerID *uuid.UUID       `json:"manufacturer_id,omitempty"`
	SupplierID     *uuid.UUID       `json:"supplier_id,omitempty"`
}

// UpdateProductRequest mirrors the create payload; the whole resource is replaced.
type UpdateProductRequest = CreateProductRequest

// ToModel converts the request into a persistable product owned by ownerID.
func (r CreateProductRequest) ToModel(ownerID uuid.UUID) *models.Product {
	status := true
	if r.Status != nil {
		status = *r.Status
	}
	return &models.Product{
		UserID:         ownerID,
		Name:           r.Name,
		Barcode:        r.Barcode,
		Description:    r.Description,
		Icon:           r.Icon,
		Status:         status,
		Price:          r.Price,
		Quantity:       r.Quantity,
		QuantityMin:    r.QuantityMin,
		QuantityMax:    r.QuantityMax,
		Weight:         r.Weight,
		Dimension:      r.Dimension,
		CategoryID:     r.CategoryID,
		ManufacturerID: r.ManufacturerID,
		SupplierID:     r.SupplierID,
	}
}

// ListFilters describe the supported filter knobs for the product list endpoint.
type ListFilters struct {
	Name           string
	Barcode        string
	Description    string
	Status         *bool
	Price          *decimal.Decimal
	Quantity       *int
	CategoryID     *uuid.UUID
	SupplierID     *uuid.UUID
	ManufacturerID *uuid.UUID
}

// ListInput captures the inputs needed to paginate and filter products.
type ListInput struct {
	OwnerID    uuid.UUID
	Filters    ListFilters
	Pagination pagination.Params
}

// ListResult carries one page of products plus the cursor for the next page.
type ListResult struct {
	Items      []models.Product `json:"items"`
	NextCursor string           `json:"next_cursor,omitempty"`
}
