package services

import (
	"context"
	"errors"

	"backoffice-service/apperrors"
	"backoffice-service/models"
	"backoffice-service/repositories"
	"backoffice-service/store"
)

type CategoryService struct {
	categories *repositories.CategoryRepository
}

func NewCategoryService(categories *repositories.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

func (s *CategoryService) Create(ctx context.Context, req models.CreateCategoryRequest) (*models.Category, error) {
	count, err := s.categories.CountByName(ctx, req.Name)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if count > 0 {
		return nil, apperrors.Conflict("Category already exists")
	}

	id, err := s.categories.Create(ctx, req.Name)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &models.Category{ID: id, Name: req.Name}, nil
}

func (s *CategoryService) Get(ctx context.Context, id int) (*models.Category, error) {
	category, err := s.categories.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("Category not found")
		}
		return nil, apperrors.Internal(err)
	}
	return category, nil
}

func (s *CategoryService) List(ctx context.Context, page, limit int) ([]models.Category, models.Pagination, error) {
	categories, total, err := s.categories.List(ctx, page, limit)
	if err != nil {
		return nil, models.Pagination{}, apperrors.Internal(err)
	}
	return categories, models.Pagination{Total: total, Page: page, Limit: limit}, nil
}

func (s *CategoryService) Update(ctx context.Context, id int, req models.CreateCategoryRequest) (*models.Category, error) {
	category, err := s.categories.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("Category not found")
		}
		return nil, apperrors.Internal(err)
	}

	category.Name = req.Name
	if err := s.categories.Update(ctx, *category); err != nil {
		return nil, apperrors.Internal(err)
	}
	return category, nil
}

// Delete removes a category; products referencing it keep a null category
// (schema ON DELETE SET NULL).
func (s *CategoryService) Delete(ctx context.Context, id int) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.NotFound("Category not found")
		}
		return apperrors.Internal(err)
	}
	return nil
}
