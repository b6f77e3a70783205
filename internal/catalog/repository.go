package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockpilothq/stockpilot-backend/pkg/db/models"
)

// Repository persists categories, suppliers and manufacturers. All reads are
// owner-scoped.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a catalog repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

func (r *Repository) SaveCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Save(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

func (r *Repository) DeleteCategory(ctx context.Context, ownerID, id uuid.UUID) error {
	return deleteOwned(ctx, r.db, &models.Category{}, ownerID, id)
}

func (r *Repository) FindCategory(ctx context.Context, ownerID, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *Repository) ListCategories(ctx context.Context, ownerID uuid.UUID, filters ListFilters) ([]models.Category, error) {
	var rows []models.Category
	err := listScope(r.db.WithContext(ctx), ownerID, filters).
		Order("name ASC").
		Find(&rows).Error
	return rows, err
}

// CategoryExists reports whether the owner has a category with the given ID.
func (r *Repository) CategoryExists(ctx context.Context, ownerID, id uuid.UUID) (bool, error) {
	return existsOwned(ctx, r.db, &models.Category{}, ownerID, id)
}

func (r *Repository) CreateSupplier(ctx context.Context, supplier *models.Supplier) (*models.Supplier, error) {
	if err := r.db.WithContext(ctx).Create(supplier).Error; err != nil {
		return nil, err
	}
	return supplier, nil
}

func (r *Repository) SaveSupplier(ctx context.Context, supplier *models.Supplier) (*models.Supplier, error) {
	if err := r.db.WithContext(ctx).Save(supplier).Error; err != nil {
		return nil, err
	}
	return supplier, nil
}

func (r *Repository) DeleteSupplier(ctx context.Context, ownerID, id uuid.UUID) error {
	return deleteOwned(ctx, r.db, &models.Supplier{}, ownerID, id)
}

func (r *Repository) FindSupplier(ctx context.Context, ownerID, id uuid.UUID) (*models.Supplier, error) {
	var supplier models.Supplier
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&supplier).Error
	if err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (r *Repository) ListSuppliers(ctx context.Context, ownerID uuid.UUID, filters ListFilters) ([]models.Supplier, error) {
	var rows []models.Supplier
	err := listScope(r.db.WithContext(ctx), ownerID, filters).
		Order("name ASC").
		Find(&rows).Error
	return rows, err
}

// SupplierExists reports whether the owner has a supplier with the given ID.
func (r *Repository) SupplierExists(ctx context.Context, ownerID, id uuid.UUID) (bool, error) {
	return existsOwned(ctx, r.db, &models.Supplier{}, ownerID, id)
}

func (r *Repository) CreateManufacturer(ctx context.Context, manufacturer *models.Manufacturer) (*models.Manufacturer, error) {
	if err := r.db.WithContext(ctx).Create(manufacturer).Error; err != nil {
		return nil, err
	}
	return manufacturer, nil
}

func (r *Repository) SaveManufacturer(ctx context.Context, manufacturer *models.Manufacturer) (*models.Manufacturer, error) {
	if err := r.db.WithContext(ctx).Save(manufacturer).Error; err != nil {
		return nil, err
	}
	return manufacturer, nil
}

func (r *Repository) DeleteManufacturer(ctx context.Context, ownerID, id uuid.UUID) error {
	return deleteOwned(ctx, r.db, &models.Manufacturer{}, ownerID, id)
}

func (r *Repository) FindManufacturer(ctx context.Context, ownerID, id uuid.UUID) (*models.Manufacturer, error) {
	var manufacturer models.Manufacturer
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&manufacturer).Error
	if err != nil {
		return nil, err
	}
	return &manufacturer, nil
}

func (r *Repository) ListManufacturers(ctx context.Context, ownerID uuid.UUID, filters ListFilters) ([]models.Manufacturer, error) {
	var rows []models.Manufacturer
	err := listScope(r.db.WithContext(ctx), ownerID, filters).
		Order("name ASC").
		Find(&rows).Error
	return rows, err
}

// ManufacturerExists reports whether the owner has a manufacturer with the given ID.
func (r *Repository) ManufacturerExists(ctx context.Context, ownerID, id uuid.UUID) (bool, error) {
	return existsOwned(ctx, r.db, &models.Manufacturer{}, ownerID, id)
}

func listScope(q *gorm.DB, ownerID uuid.UUID, filters ListFilters) *gorm.DB {
	q = q.Where("user_id = ?", ownerID)
	if filters.Name != "" {
		q = q.Where("LOWER(name) LIKE LOWER(?)", "%"+filters.Name+"%")
	}
	if filters.Description != "" {
		q = q.Where("LOWER(description) LIKE LOWER(?)", "%"+filters.Description+"%")
	}
	return q
}

func deleteOwned(ctx context.Context, db *gorm.DB, model any, ownerID, id uuid.UUID) error {
	res := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func existsOwned(ctx context.Context, db *gorm.DB, model any, ownerID, id uuid.UUID) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(model).
		Where("id = ? AND user_id = ?", id, ownerID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
