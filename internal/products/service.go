package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/stockpilothq/stockpilot-backend/pkg/db"
	"github.com/stockpilothq/stockpilot-backend/pkg/db/models"
	pkgerrors "github.com/stockpilothq/stockpilot-backend/pkg/errors"
)

// Service defines product catalog operations.
type Service interface {
	Create(ctx context.Context, ownerID uuid.UUID, req CreateProductRequest) (*models.Product, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, req UpdateProductRequest) (*models.Product, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	Get(ctx context.Context, ownerID, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context, input ListInput) (*ListResult, error)
}

// referenceChecker verifies that catalog references belong to the same owner.
type referenceChecker interface {
	CategoryExists(ctx context.Context, ownerID, id uuid.UUID) (bool, error)
	SupplierExists(ctx context.Context, ownerID, id uuid.UUID) (bool, error)
	ManufacturerExists(ctx context.Context, ownerID, id uuid.UUID) (bool, error)
}

type service struct {
	repo *Repository
	refs referenceChecker
}

// NewService builds a product service with the required dependencies.
func NewService(repo *Repository, refs referenceChecker) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	if refs == nil {
		return nil, fmt.Errorf("reference checker required")
	}
	return &service{repo: repo, refs: refs}, nil
}

func (s *service) Create(ctx context.Context, ownerID uuid.UUID, req CreateProductRequest) (*models.Product, error) {
	if err := s.validate(ctx, ownerID, &req); err != nil {
		return nil, err
	}

	product, err := s.repo.Create(ctx, req.ToModel(ownerID))
	if err != nil {
		if db.IsUniqueViolation(err, "idx_products_owner_barcode") || db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "barcode already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return product, nil
}

func (s *service) Update(ctx context.Context, ownerID, id uuid.UUID, req UpdateProductRequest) (*models.Product, error) {
	if err := s.validate(ctx, ownerID, &req); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	updated := req.ToModel(ownerID)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	// Associations are replaced through their ID columns, never via Save.
	updated.Category = nil
	updated.Manufacturer = nil
	updated.Supplier = nil

	product, err := s.repo.Update(ctx, updated)
	if err != nil {
		if db.IsUniqueViolation(err, "idx_products_owner_barcode") || db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "barcode already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return product, nil
}

func (s *service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

func (s *service) Get(ctx context.Context, ownerID, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

func (s *service) List(ctx context.Context, input ListInput) (*ListResult, error) {
	if input.OwnerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	result, err := s.repo.List(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return result, nil
}

func (s *service) validate(ctx context.Context, ownerID uuid.UUID, req *CreateProductRequest) error {
	if ownerID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Barcode = strings.TrimSpace(req.Barcode)
	if req.Name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if req.Barcode == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "barcode is required")
	}
	if req.Price.LessThan(decimal.Zero) {
		return pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if req.Quantity < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}
	if req.QuantityMin != nil && *req.QuantityMin < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity_min cannot be negative")
	}
	if req.QuantityMin != nil && req.QuantityMax != nil && *req.QuantityMin > *req.QuantityMax {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity_min cannot exceed quantity_max")
	}
	// Bounds are checked on explicit saves only; order flows bypass them.
	if req.QuantityMin != nil && req.Quantity < *req.QuantityMin {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity is below quantity_min")
	}
	if req.QuantityMax != nil && req.Quantity > *req.QuantityMax {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity exceeds quantity_max")
	}
	if req.Weight != nil && req.Weight.LessThan(decimal.Zero) {
		return pkgerrors.New(pkgerrors.CodeValidation, "weight cannot be negative")
	}

	return s.checkReferences(ctx, ownerID, req)
}

func (s *service) checkReferences(ctx context.Context, ownerID uuid.UUID, req *CreateProductRequest) error {
	if req.CategoryID != nil {
		ok, err := s.refs.CategoryExists(ctx, ownerID, *req.CategoryID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check category")
		}
		if !ok {
			return pkgerrors.New(pkgerrors.CodeValidation, "category not found")
		}
	}
	if req.SupplierID != nil {
		ok, err := s.refs.SupplierExists(ctx, ownerID, *req.SupplierID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check supplier")
		}
		if !ok {
			return pkgerrors.New(pkgerrors.CodeValidation, "supplier not found")
		}
	}
	if req.ManufacturerID != nil {
		ok, err := s.refs.ManufacturerExists(ctx, ownerID, *req.ManufacturerID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check manufacturer")
		}
		if !ok {
			return pkgerrors.New(pkgerrors.CodeValidation, "manufacturer not found")
		}
	}
	return nil
}
