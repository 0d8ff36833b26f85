package service

import (
	"context"
	"errors"

	"confidencevoice/internal/entity"
	"confidencevoice/internal/repository"
)

// catalogCache is the part of BookService categories need: book listings embed the
// category name.
type catalogCache interface {
	InvalidateCatalog(ctx context.Context)
}

type CategoryService struct {
	categoryRepo *repository.CategoryRepository
	catalog      catalogCache
	validator    *Validator
}

func NewCategoryService(categoryRepo *repository.CategoryRepository, catalog catalogCache, validator *Validator) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo, catalog: catalog, validator: validator}
}

func (s *CategoryService) GetCategories(ctx context.Context) ([]entity.Category, error) {
	categories, err := s.categoryRepo.GetCategories(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error getting categories")
		return nil, err
	}
	return categories, nil
}

func (s *CategoryService) CreateCategory(ctx context.Context, req *entity.CategoryRequest) (*entity.Category, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	created, err := s.categoryRepo.CreateCategory(ctx, &entity.Category{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Error creating category")
		return nil, translate(err, "category")
	}
	return created, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, id int, req *entity.CategoryRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}
	err := s.categoryRepo.UpdateCategory(ctx, &entity.Category{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Error().Err(err).Msgf("Error updating category %d", id)
		}
		return translate(err, "category")
	}
	s.catalog.InvalidateCatalog(ctx)
	return nil
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id int) error {
	if err := s.categoryRepo.DeleteCategory(ctx, id); err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Error().Err(err).Msgf("Error deleting category %d", id)
		}
		return err
	}
	s.catalog.InvalidateCatalog(ctx)
	return nil
}
