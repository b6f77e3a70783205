package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockpilothq/stockpilot-backend/pkg/db"
	"github.com/stockpilothq/stockpilot-backend/pkg/db/models"
	pkgerrors "github.com/stockpilothq/stockpilot-backend/pkg/errors"
)

// Service defines the catalog operations for categories, suppliers and
// manufacturers.
type Service interface {
	CreateCategory(ctx context.Context, ownerID uuid.UUID, req CategoryRequest) (*models.Category, error)
	UpdateCategory(ctx context.Context, ownerID, id uuid.UUID, req CategoryRequest) (*models.Category, error)
	DeleteCategory(ctx context.Context, ownerID, id uuid.UUID) error
	GetCategory(ctx context.Context, ownerID, id uuid.UUID) (*models.Category, error)
	ListCategories(ctx context.Context, ownerID uuid.UUID, filters ListFilters) ([]models.Category, error)

	CreateSupplier(ctx context.Context, ownerID uuid.UUID, req ContactRequest) (*models.Supplier, error)
	UpdateSupplier(ctx context.Context, ownerID, id uuid.UUID, req ContactRequest) (*models.Supplier, error)
	DeleteSupplier(ctx context.Context, ownerID, id uuid.UUID) error
	GetSupplier(ctx context.Context, ownerID, id uuid.UUID) (*models.Supplier, error)
	ListSuppliers(ctx context.Context, ownerID uuid.UUID, filters ListFilters) ([]models.Supplier, error)

	CreateManufacturer(ctx context.Context, ownerID uuid.UUID, req ContactRequest) (*models.Manufacturer, error)
	UpdateManufacturer(ctx context.Context, ownerID, id uuid.UUID, req ContactRequest) (*models.Manufacturer, error)
	DeleteManufacturer(ctx context.Context, ownerID, id uuid.UUID) error
	GetManufacturer(ctx context.Context, ownerID, id uuid.UUID) (*models.Manufacturer, error)
	ListManufacturers(ctx context.Context, ownerID uuid.UUID, filters ListFilters) ([]models.Manufacturer, error)
}

type service struct {
	repo *Repository
}

// NewService builds a catalog service backed by the provided repository.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CreateCategory(ctx context.Context, ownerID uuid.UUID, req CategoryRequest) (*models.Category, error) {
	if err := s.validateCategory(ctx, ownerID, &req, uuid.Nil); err != nil {
		return nil, err
	}
	category, err := s.repo.CreateCategory(ctx, req.ToModel(ownerID))
	if err != nil {
		return nil, mapWriteError(err, "idx_categories_owner_name", "category name already in use", "create category")
	}
	return category, nil
}

func (s *service) UpdateCategory(ctx context.Context, ownerID, id uuid.UUID, req CategoryRequest) (*models.Category, error) {
	if err := s.validateCategory(ctx, ownerID, &req, id); err != nil {
		return nil, err
	}
	existing, err := s.repo.FindCategory(ctx, ownerID, id)
	if err != nil {
		return nil, mapReadError(err, "category not found", "load category")
	}

	updated := req.ToModel(ownerID)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt

	category, err := s.repo.SaveCategory(ctx, updated)
	if err != nil {
		return nil, mapWriteError(err, "idx_categories_owner_name", "category name already in use", "update category")
	}
	return category, nil
}

func (s *service) DeleteCategory(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.repo.DeleteCategory(ctx, ownerID, id); err != nil {
		return mapReadError(err, "category not found", "delete category")
	}
	return nil
}

func (s *service) GetCategory(ctx context.Context, ownerID, id uuid.UUID) (*models.Category, error) {
	category, err := s.repo.FindCategory(ctx, ownerID, id)
	if err != nil {
		return nil, mapReadError(err, "category not found", "load category")
	}
	return category, nil
}

func (s *service) ListCategories(ctx context.Context, ownerID uuid.UUID, filters ListFilters) ([]models.Category, error) {
	rows, err := s.repo.ListCategories(ctx, ownerID, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	return rows, nil
}

func (s *service) CreateSupplier(ctx context.Context, ownerID uuid.UUID, req ContactRequest) (*models.Supplier, error) {
	if err := validateContact(ownerID, &req); err != nil {
		return nil, err
	}
	supplier, err := s.repo.CreateSupplier(ctx, req.ToSupplier(ownerID))
	if err != nil {
		return nil, mapWriteError(err, "idx_suppliers_owner_name", "supplier name already in use", "create supplier")
	}
	return supplier, nil
}

func (s *service) UpdateSupplier(ctx context.Context, ownerID, id uuid.UUID, req ContactRequest) (*models.Supplier, error) {
	if err := validateContact(ownerID, &req); err != nil {
		return nil, err
	}
	existing, err := s.repo.FindSupplier(ctx, ownerID, id)
	if err != nil {
		return nil, mapReadError(err, "supplier not found", "load supplier")
	}

	updated := req.ToSupplier(ownerID)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt

	supplier, err := s.repo.SaveSupplier(ctx, updated)
	if err != nil {
		return nil, mapWriteError(err, "idx_suppliers_owner_name", "supplier name already in use", "update supplier")
	}
	return supplier, nil
}

func (s *service) DeleteSupplier(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.repo.DeleteSupplier(ctx, ownerID, id); err != nil {
		return mapReadError(err, "supplier not found", "delete supplier")
	}
	return nil
}

func (s *service) GetSupplier(ctx context.Context, ownerID, id uuid.UUID) (*models.Supplier, error) {
	supplier, err := s.repo.FindSupplier(ctx, ownerID, id)
	if err != nil {
		return nil, mapReadError(err, "supplier not found", "load supplier")
	}
	return supplier, nil
}

func (s *service) ListSuppliers(ctx context.Context, ownerID uuid.UUID, filters ListFilters) ([]models.Supplier, error) {
	rows, err := s.repo.ListSuppliers(ctx, ownerID, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list suppliers")
	}
	return rows, nil
}

func (s *service) CreateManufacturer(ctx context.Context, ownerID uuid.UUID, req ContactRequest) (*models.Manufacturer, error) {
	if err := validateContact(ownerID, &req); err != nil {
		return nil, err
	}
	manufacturer, err := s.repo.CreateManufacturer(ctx, req.ToManufacturer(ownerID))
	if err != nil {
		return nil, mapWriteError(err, "idx_manufacturers_owner_name", "manufacturer name already in use", "create manufacturer")
	}
	return manufacturer, nil
}

func (s *service) UpdateManufacturer(ctx context.Context, ownerID, id uuid.UUID, req ContactRequest) (*models.Manufacturer, error) {
	if err := validateContact(ownerID, &req); err != nil {
		return nil, err
	}
	existing, err := s.repo.FindManufacturer(ctx, ownerID, id)
	if err != nil {
		return nil, mapReadError(err, "manufacturer not found", "load manufacturer")
	}

	updated := req.ToManufacturer(ownerID)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt

	manufacturer, err := s.repo.SaveManufacturer(ctx, updated)
	if err != nil {
		return nil, mapWriteError(err, "idx_manufacturers_owner_name", "manufacturer name already in use", "update manufacturer")
	}
	return manufacturer, nil
}

func (s *service) DeleteManufacturer(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.repo.DeleteManufacturer(ctx, ownerID, id); err != nil {
		return mapReadError(err, "manufacturer not found", "delete manufacturer")
	}
	return nil
}

func (s *service) GetManufacturer(ctx context.Context, ownerID, id uuid.UUID) (*models.Manufacturer, error) {
	manufacturer, err := s.repo.FindManufacturer(ctx, ownerID, id)
	if err != nil {
		return nil, mapReadError(err, "manufacturer not found", "load manufacturer")
	}
	return manufacturer, nil
}

func (s *service) ListManufacturers(ctx context.Context, ownerID uuid.UUID, filters ListFilters) ([]models.Manufacturer, error) {
	rows, err := s.repo.ListManufacturers(ctx, ownerID, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list manufacturers")
	}
	return rows, nil
}

func (s *service) validateCategory(ctx context.Context, ownerID uuid.UUID, req *CategoryRequest, selfID uuid.UUID) error {
	if ownerID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if req.ParentID != nil {
		if selfID != uuid.Nil && *req.ParentID == selfID {
			return pkgerrors.New(pkgerrors.CodeValidation, "category cannot be its own parent")
		}
		ok, err := s.repo.CategoryExists(ctx, ownerID, *req.ParentID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check parent category")
		}
		if !ok {
			return pkgerrors.New(pkgerrors.CodeValidation, "parent category not found")
		}
	}
	return nil
}

func validateContact(ownerID uuid.UUID, req *ContactRequest) error {
	if ownerID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	return nil
}

func mapWriteError(err error, constraint, duplicateMsg, step string) error {
	if db.IsUniqueViolation(err, constraint) || db.IsUniqueViolation(err, "") {
		return pkgerrors.New(pkgerrors.CodeValidation, duplicateMsg)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, step)
}

func mapReadError(err error, notFoundMsg, step string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, notFoundMsg)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, step)
}
