package service

import (
	"context"
	"log/slog"

	"github.com/aaravmahajanofficial/catalog-admin/internal/api/middleware"
	"github.com/aaravmahajanofficial/catalog-admin/internal/cache"
	"github.com/aaravmahajanofficial/catalog-admin/internal/errors"
	"github.com/aaravmahajanofficial/catalog-admin/internal/models"
	repository "github.com/aaravmahajanofficial/catalog-admin/internal/repositories"
)

type CategoryService interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
}

type categoryService struct {
	repo  repository.CategoryRepository
	cache cache.Cache
}

func NewCategoryService(repo repository.CategoryRepository, cache cache.Cache) CategoryService {
	return &categoryService{repo: repo, cache: cache}
}

// ListCategories serves the category listing from Redis, falling back to the
// database on a miss or a cache failure.
func (s *categoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	logger := middleware.LoggerFromContext(ctx)

	var categories []models.Category
	found, err := s.cache.Get(ctx, cache.CategoriesKey, &categories)
	if err != nil {
		logger.Warn("Category cache read failed", slog.String("error", err.Error()))
	}
	if found {
		logger.Debug("Category cache hit", slog.Int("count", len(categories)))
		return categories, nil
	}

	categories, err = s.repo.ListCategories(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch categories").WithError(err)
	}

	if err := s.cache.Set(ctx, cache.CategoriesKey, categories, 0); err != nil {
		logger.Warn("Category cache write failed", slog.String("error", err.Error()))
	}

	return categories, nil
}
