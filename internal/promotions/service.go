package promotions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/stockpilothq/stockpilot-backend/pkg/db"
	"github.com/stockpilothq/stockpilot-backend/pkg/db/models"
	pkgerrors "github.com/stockpilothq/stockpilot-backend/pkg/errors"
)

// productFinder resolves owned products for effective price computation.
type productFinder interface {
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*models.Product, error)
}

// Service defines promotion management and discount resolution.
type Service interface {
	Create(ctx context.Context, ownerID uuid.UUID, req PromotionRequest) (*models.Promotion, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, req PromotionRequest) (*models.Promotion, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	Get(ctx context.Context, ownerID, id uuid.UUID) (*models.Promotion, error)
	List(ctx context.Context, ownerID uuid.UUID, filters ListFilters) ([]models.Promotion, error)
	EffectivePrice(ctx context.Context, ownerID, productID uuid.UUID, at time.Time) (*EffectivePriceResult, error)
}

type service struct {
	repo     *Repository
	products productFinder
}

// NewService builds a promotions service with the required dependencies.
func NewService(repo *Repository, products productFinder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("promotions repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product finder required")
	}
	return &service{repo: repo, products: products}, nil
}

func (s *service) Create(ctx context.Context, ownerID uuid.UUID, req PromotionRequest) (*models.Promotion, error) {
	if err := validatePromotion(ownerID, &req); err != nil {
		return nil, err
	}

	targetProducts, targetCategories, err := s.resolveTargets(ctx, ownerID, req)
	if err != nil {
		return nil, err
	}

	promotion := req.ToModel(ownerID)
	promotion.Products = targetProducts
	promotion.Categories = targetCategories

	created, err := s.repo.Create(ctx, promotion)
	if err != nil {
		if db.IsUniqueViolation(err, "idx_promotions_owner_name") || db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "promotion name already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create promotion")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, ownerID, id uuid.UUID, req PromotionRequest) (*models.Promotion, error) {
	if err := validatePromotion(ownerID, &req); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "promotion not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load promotion")
	}

	targetProducts, targetCategories, err := s.resolveTargets(ctx, ownerID, req)
	if err != nil {
		return nil, err
	}

	updated := req.ToModel(ownerID)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt

	saved, err := s.repo.Save(ctx, updated)
	if err != nil {
		if db.IsUniqueViolation(err, "idx_promotions_owner_name") || db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "promotion name already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update promotion")
	}

	if err := s.repo.ReplaceTargets(ctx, saved, targetProducts, targetCategories); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace promotion targets")
	}
	saved.Products = targetProducts
	saved.Categories = targetCategories
	return saved, nil
}

func (s *service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "promotion not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete promotion")
	}
	return nil
}

func (s *service) Get(ctx context.Context, ownerID, id uuid.UUID) (*models.Promotion, error) {
	promotion, err := s.repo.FindByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "promotion not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load promotion")
	}
	return promotion, nil
}

func (s *service) List(ctx context.Context, ownerID uuid.UUID, filters ListFilters) ([]models.Promotion, error) {
	rows, err := s.repo.List(ctx, ownerID, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list promotions")
	}
	return rows, nil
}

// EffectivePrice resolves the product's discounted price at the given instant
// by compounding every active promotion that targets it.
func (s *service) EffectivePrice(ctx context.Context, ownerID, productID uuid.UUID, at time.Time) (*EffectivePriceResult, error) {
	product, err := s.products.FindByID(ctx, ownerID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	applicable, err := s.repo.ListForProduct(ctx, ownerID, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list promotions for product")
	}

	active := ActiveAt(applicable, at)
	return &EffectivePriceResult{
		ProductID:      product.ID,
		BasePrice:      product.Price,
		EffectivePrice: ApplyDiscounts(product.Price, active),
		Promotions:     active,
	}, nil
}

func (s *service) resolveTargets(ctx context.Context, ownerID uuid.UUID, req PromotionRequest) ([]models.Product, []models.Category, error) {
	targetProducts, err := s.repo.OwnedProducts(ctx, ownerID, req.ProductIDs)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load target products")
	}
	if len(targetProducts) != len(dedupe(req.ProductIDs)) {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "one or more target products not found")
	}

	targetCategories, err := s.repo.OwnedCategories(ctx, ownerID, req.CategoryIDs)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load target categories")
	}
	if len(targetCategories) != len(dedupe(req.CategoryIDs)) {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "one or more target categories not found")
	}

	return targetProducts, targetCategories, nil
}

func validatePromotion(ownerID uuid.UUID, req *PromotionRequest) error {
	if ownerID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if req.DiscountPercentage.LessThan(decimal.Zero) || req.DiscountPercentage.GreaterThan(hundred) {
		return pkgerrors.New(pkgerrors.CodeValidation, "discount_percentage must be between 0 and 100")
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return pkgerrors.New(pkgerrors.CodeValidation, "start_date and end_date are required")
	}
	if req.EndDate.Before(req.StartDate) {
		return pkgerrors.New(pkgerrors.CodeValidation, "end_date cannot precede start_date")
	}
	return nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	unique := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}
