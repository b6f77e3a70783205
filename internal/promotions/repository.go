package promotions

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockpilothq/stockpilot-backend/pkg/db/models"
)

// Repository persists promotions and their product/category targets.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a promotions repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the promotion and its target associations.
func (r *Repository) Create(ctx context.Context, promotion *models.Promotion) (*models.Promotion, error) {
	if err := r.db.WithContext(ctx).Create(promotion).Error; err != nil {
		return nil, err
	}
	return promotion, nil
}

// Save replaces the promotion row.
func (r *Repository) Save(ctx context.Context, promotion *models.Promotion) (*models.Promotion, error) {
	if err := r.db.WithContext(ctx).Save(promotion).Error; err != nil {
		return nil, err
	}
	return promotion, nil
}

// Delete removes an owned promotion; join rows cascade at the database level.
func (r *Repository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&models.Promotion{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByID loads an owned promotion with its targets.
func (r *Repository) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*models.Promotion, error) {
	var promotion models.Promotion
	err := r.db.WithContext(ctx).
		Preload("Products").
		Preload("Categories").
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&promotion).Error
	if err != nil {
		return nil, err
	}
	return &promotion, nil
}

// List returns the owner's promotions matching the filters, newest first.
func (r *Repository) List(ctx context.Context, ownerID uuid.UUID, filters ListFilters) ([]models.Promotion, error) {
	q := r.db.WithContext(ctx).
		Preload("Products").
		Preload("Categories").
		Where("user_id = ?", ownerID)
	if filters.Name != "" {
		q = q.Where("LOWER(name) LIKE LOWER(?)", "%"+filters.Name+"%")
	}
	if filters.Description != "" {
		q = q.Where("LOWER(description) LIKE LOWER(?)", "%"+filters.Description+"%")
	}

	var rows []models.Promotion
	err := q.Order("created_at DESC").Find(&rows).Error
	return rows, err
}

// ReplaceTargets swaps the promotion's product and category associations.
func (r *Repository) ReplaceTargets(ctx context.Context, promotion *models.Promotion, products []models.Product, categories []models.Category) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Model(promotion).Association("Products").Replace(products); err != nil {
		return err
	}
	return tx.Model(promotion).Association("Categories").Replace(categories)
}

// OwnedProducts loads the owner's products matching ids.
func (r *Repository) OwnedProducts(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", ownerID, ids).
		Find(&rows).Error
	return rows, err
}

// OwnedCategories loads the owner's categories matching ids.
func (r *Repository) OwnedCategories(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) ([]models.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.Category
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", ownerID, ids).
		Find(&rows).Error
	return rows, err
}

// ListForProduct returns the promotions targeting the product directly or via
// its category. The union is deduplicated by promotion ID.
func (r *Repository) ListForProduct(ctx context.Context, ownerID, productID uuid.UUID) ([]models.Promotion, error) {
	var rows []models.Promotion
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Where(`
			EXISTS (
				SELECT 1 FROM promotion_products pp
				WHERE pp.promotion_id = promotions.id AND pp.product_id = ?
			)
			OR EXISTS (
				SELECT 1 FROM promotion_categories pc
				JOIN products p ON p.category_id = pc.category_id
				WHERE pc.promotion_id = promotions.id AND p.id = ?
			)
		`, productID, productID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}
