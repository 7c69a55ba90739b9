package service_test

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/aaravmahajanofficial/catalog-admin/internal/cache"
	appErrors "github.com/aaravmahajanofficial/catalog-admin/internal/errors"
	"github.com/aaravmahajanofficial/catalog-admin/internal/models"
	"github.com/aaravmahajanofficial/catalog-admin/internal/repositories/mocks"
	service "github.com/aaravmahajanofficial/catalog-admin/internal/services"
	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleProduct() *models.Product {
	draft := models.NewDraft()
	draft.Name = "Oil Filter"
	draft.SKU = "OF-1"
	draft.CategoryID = "cat-1"
	draft.Price = 12.5

	return &models.Product{Draft: draft, Ratings: models.EmptyRatings()}
}

func TestCreateProduct(t *testing.T) {
	ctx := t.Context()

	t.Run("Success - Create Product", func(t *testing.T) {
		// Arrange
		mockRepo := mocks.NewProductRepository(t)
		redisCache, redisMock := newTestCache(t)
		productService := service.NewProductService(mockRepo, redisCache)
		product := sampleProduct()

		mockRepo.On("CreateProduct", mock.Anything, product).Run(func(args mock.Arguments) {
			args.Get(1).(*models.Product).ID = "prod-1"
		}).Return(nil).Once()
		redisMock.ExpectDel(cache.CategoriesKey).SetVal(1)

		// Act
		created, err := productService.CreateProduct(ctx, product)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "prod-1", created.ID)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("Success - Cache Invalidation Failure Is Ignored", func(t *testing.T) {
		// Arrange
		mockRepo := mocks.NewProductRepository(t)
		redisCache, redisMock := newTestCache(t)
		productService := service.NewProductService(mockRepo, redisCache)

		mockRepo.On("CreateProduct", mock.Anything, mock.AnythingOfType("*models.Product")).Return(nil).Once()
		redisMock.ExpectDel(cache.CategoriesKey).SetErr(errors.New("redis down"))

		// Act
		created, err := productService.CreateProduct(ctx, sampleProduct())

		// Assert
		require.NoError(t, err)
		assert.NotNil(t, created)
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		// Arrange
		mockRepo := mocks.NewProductRepository(t)
		redisCache, redisMock := newTestCache(t)
		productService := service.NewProductService(mockRepo, redisCache)

		mockRepo.On("CreateProduct", mock.Anything, mock.AnythingOfType("*models.Product")).Return(errors.New("connection refused")).Once()

		// Act
		created, err := productService.CreateProduct(ctx, sampleProduct())

		// Assert
		assert.Nil(t, created)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeDatabaseError, appErr.Code)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})
}

func TestUpdateProduct(t *testing.T) {
	ctx := t.Context()
	productKey := cache.Key(cache.ProductKeyPrefix, "prod-1")

	t.Run("Success - Update Product", func(t *testing.T) {
		// Arrange
		mockRepo := mocks.NewProductRepository(t)
		redisCache, redisMock := newTestCache(t)
		productService := service.NewProductService(mockRepo, redisCache)

		mockRepo.On("UpdateProduct", mock.Anything, mock.MatchedBy(func(p *models.Product) bool {
			return p.ID == "prod-1" && p.Name == "Oil Filter"
		})).Return(nil).Once()
		redisMock.ExpectDel(productKey, cache.CategoriesKey).SetVal(2)

		// Act
		updated, err := productService.UpdateProduct(ctx, "prod-1", sampleProduct())

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "prod-1", updated.ID)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		mockRepo := mocks.NewProductRepository(t)
		redisCache, _ := newTestCache(t)
		productService := service.NewProductService(mockRepo, redisCache)

		mockRepo.On("UpdateProduct", mock.Anything, mock.Anything).Return(fmt.Errorf("updating product: %w", sql.ErrNoRows)).Once()

		// Act
		updated, err := productService.UpdateProduct(ctx, "prod-1", sampleProduct())

		// Assert
		assert.Nil(t, updated)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		// Arrange
		mockRepo := mocks.NewProductRepository(t)
		redisCache, _ := newTestCache(t)
		productService := service.NewProductService(mockRepo, redisCache)

		mockRepo.On("UpdateProduct", mock.Anything, mock.Anything).Return(errors.New("deadlock detected")).Once()

		// Act
		_, err := productService.UpdateProduct(ctx, "prod-1", sampleProduct())

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeDatabaseError, appErr.Code)
	})
}

func TestGetProduct(t *testing.T) {
	ctx := t.Context()
	productKey := cache.Key(cache.ProductKeyPrefix, "prod-1")

	t.Run("Success - Cache Hit", func(t *testing.T) {
		// Arrange
		mockRepo := mocks.NewProductRepository(t)
		redisCache, redisMock := newTestCache(t)
		productService := service.NewProductService(mockRepo, redisCache)

		product := sampleProduct()
		product.ID = "prod-1"
		data, err := json.Marshal(product)
		require.NoError(t, err)
		redisMock.ExpectGet(productKey).SetVal(string(data))

		// Act
		got, err := productService.GetProduct(ctx, "prod-1")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "prod-1", got.ID)
		assert.Equal(t, "Oil Filter", got.Name)
		mockRepo.AssertNotCalled(t, "GetProductByID", mock.Anything, mock.Anything)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("Success - Cache Miss", func(t *testing.T) {
		// Arrange
		mockRepo := mocks.NewProductRepository(t)
		redisCache, redisMock := newTestCache(t)
		productService := service.NewProductService(mockRepo, redisCache)

		product := sampleProduct()
		product.ID = "prod-1"
		data, err := json.Marshal(product)
		require.NoError(t, err)

		redisMock.ExpectGet(productKey).SetErr(redis.Nil)
		mockRepo.On("GetProductByID", mock.Anything, "prod-1").Return(product, nil).Once()
		redisMock.ExpectSet(productKey, data, testTTL).SetVal("OK")

		// Act
		got, err := productService.GetProduct(ctx, "prod-1")

		// Assert
		require.NoError(t, err)
		assert.Same(t, product, got)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		mockRepo := mocks.NewProductRepository(t)
		redisCache, redisMock := newTestCache(t)
		productService := service.NewProductService(mockRepo, redisCache)

		redisMock.ExpectGet(productKey).SetErr(redis.Nil)
		mockRepo.On("GetProductByID", mock.Anything, "prod-1").Return(nil, fmt.Errorf("querying database: %w", sql.ErrNoRows)).Once()

		// Act
		got, err := productService.GetProduct(ctx, "prod-1")

		// Assert
		assert.Nil(t, got)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})

	t.Run("Failure - Malformed ID", func(t *testing.T) {
		// Arrange
		mockRepo := mocks.NewProductRepository(t)
		redisCache, redisMock := newTestCache(t)
		productService := service.NewProductService(mockRepo, redisCache)

		badKey := cache.Key(cache.ProductKeyPrefix, "not-a-uuid")
		castErr := &pq.Error{Code: "22P02", Message: "invalid input syntax for type uuid"}
		redisMock.ExpectGet(badKey).SetErr(redis.Nil)
		mockRepo.On("GetProductByID", mock.Anything, "not-a-uuid").Return(nil, fmt.Errorf("querying database: %w", castErr)).Once()

		// Act
		got, err := productService.GetProduct(ctx, "not-a-uuid")

		// Assert
		assert.Nil(t, got)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}
