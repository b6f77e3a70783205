package products

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockpilothq/stockpilot-backend/pkg/db/models"
	"github.com/stockpilothq/stockpilot-backend/pkg/pagination"
)

// Repository wires together product persistence helpers. Every read is scoped
// to the owning user; cross-tenant rows are invisible, not forbidden.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// Create inserts a new product row.
func (r *Repository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Update saves the full product row.
func (r *Repository) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes a product owned by ownerID. Returns gorm.ErrRecordNotFound
// when nothing matched.
func (r *Repository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&models.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByID loads an owned product with its catalog associations.
func (r *Repository) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Manufacturer").
		Preload("Supplier").
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByIDs loads the owned products matching the provided IDs without associations.
func (r *Repository) FindByIDs(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", ownerID, ids).
		Find(&rows).Error
	return rows, err
}

// List returns one page of products matching the filters, newest first.
func (r *Repository) List(ctx context.Context, input ListInput) (*ListResult, error) {
	limit := pagination.NormalizeLimit(input.Pagination.Limit)
	cursor, err := pagination.ParseCursor(input.Pagination.Cursor)
	if err != nil {
		return nil, err
	}

	q := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Manufacturer").
		Preload("Supplier").
		Where("user_id = ?", input.OwnerID)

	if input.Filters.Name != "" {
		q = q.Where("LOWER(name) LIKE LOWER(?)", "%"+input.Filters.Name+"%")
	}
	if input.Filters.Barcode != "" {
		q = q.Where("barcode = ?", input.Filters.Barcode)
	}
	if input.Filters.Description != "" {
		q = q.Where("LOWER(description) LIKE LOWER(?)", "%"+input.Filters.Description+"%")
	}
	if input.Filters.Status != nil {
		q = q.Where("status = ?", *input.Filters.Status)
	}
	if input.Filters.Price != nil {
		q = q.Where("price = ?", *input.Filters.Price)
	}
	if input.Filters.Quantity != nil {
		q = q.Where("quantity = ?", *input.Filters.Quantity)
	}
	if input.Filters.CategoryID != nil {
		q = q.Where("category_id = ?", *input.Filters.CategoryID)
	}
	if input.Filters.SupplierID != nil {
		q = q.Where("supplier_id = ?", *input.Filters.SupplierID)
	}
	if input.Filters.ManufacturerID != nil {
		q = q.Where("manufacturer_id = ?", *input.Filters.ManufacturerID)
	}
	if cursor != nil {
		q = q.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Product
	err = q.Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(input.Pagination.Limit)).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	result := &ListResult{Items: rows}
	if len(rows) > limit {
		result.Items = rows[:limit]
		last := result.Items[limit-1]
		result.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return result, nil
}
