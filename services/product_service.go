package services

import (
	"context"
	"errors"
	"time"

	"backoffice-service/apperrors"
	"backoffice-service/models"
	"backoffice-service/repositories"
	"backoffice-service/store"
)

// ProductCache is a read-through cache for product lookups. Entries carry a
// TTL; mutations (including stock movements from the order core) invalidate
// eagerly.
type ProductCache interface {
	ProductInvalidator
	GetProduct(ctx context.Context, id int) (*models.Product, bool)
	SetProduct(ctx context.Context, product *models.Product)
}

type ProductService struct {
	products   *repositories.ProductRepository
	categories *repositories.CategoryRepository
	cache      ProductCache
}

func NewProductService(products *repositories.ProductRepository, categories *repositories.CategoryRepository, cache ProductCache) *ProductService {
	return &ProductService{products: products, categories: categories, cache: cache}
}

func (s *ProductService) Create(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	category, err := s.categories.Get(ctx, req.CategoryID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("Category not found")
		}
		return nil, apperrors.Internal(err)
	}

	product := models.Product{
		Name:       req.Name,
		Price:      req.Price,
		Stock:      req.Stock,
		CategoryID: &req.CategoryID,
		Category:   category,
		CreatedAt:  time.Now(),
	}
	id, err := s.products.Create(ctx, product)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	product.ID = id
	return &product, nil
}

func (s *ProductService) Get(ctx context.Context, id int) (*models.Product, error) {
	if s.cache != nil {
		if product, ok := s.cache.GetProduct(ctx, id); ok {
			return product, nil
		}
	}

	product, err := s.products.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("Product not found")
		}
		return nil, apperrors.Internal(err)
	}

	if s.cache != nil {
		s.cache.SetProduct(ctx, product)
	}
	return product, nil
}

func (s *ProductService) List(ctx context.Context, page, size int, name string, categoryID int) ([]models.Product, models.Pagination, error) {
	products, total, err := s.products.List(ctx, page, size, name, categoryID)
	if err != nil {
		return nil, models.Pagination{}, apperrors.Internal(err)
	}
	return products, models.Pagination{Total: total, Page: page, Limit: size}, nil
}

func (s *ProductService) Update(ctx context.Context, id int, patch models.ProductPatch) (*models.Product, error) {
	product, err := s.products.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("Product not found")
		}
		return nil, apperrors.Internal(err)
	}

	if patch.CategoryID != nil {
		exists, err := s.categories.Exists(ctx, *patch.CategoryID)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		if !exists {
			return nil, apperrors.NotFound("Category not found")
		}
	}

	merged := patch.Apply(*product)
	now := time.Now()
	merged.UpdatedAt = &now
	merged.Category = nil

	if err := s.products.Update(ctx, merged); err != nil {
		return nil, apperrors.Internal(err)
	}
	if s.cache != nil {
		s.cache.InvalidateProducts(ctx, id)
	}
	return s.Get(ctx, id)
}

func (s *ProductService) Delete(ctx context.Context, id int) error {
	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.NotFound("Product not found")
		}
		return apperrors.Internal(err)
	}
	if s.cache != nil {
		s.cache.InvalidateProducts(ctx, id)
	}
	return nil
}
