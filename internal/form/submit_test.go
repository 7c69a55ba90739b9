package form_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	appErrors "github.com/aaravmahajanofficial/catalog-admin/internal/errors"
	"github.com/aaravmahajanofficial/catalog-admin/internal/form"
	"github.com/aaravmahajanofficial/catalog-admin/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testCategories = []models.Category{
	{ID: "cat-1", Name: "Brakes", ProductCount: 12},
	{ID: "cat-2", Name: "Filters", ProductCount: 3},
}

func TestSubmit(t *testing.T) {
	t.Run("Failure - Empty draft", func(t *testing.T) {
		// Arrange
		f, store, categories := newTestForm(t)

		// Act
		product, err := f.Submit(context.Background())

		// Assert
		assert.Nil(t, product)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
		assert.Len(t, appErr.Fields, 7)
		for _, key := range []string{"name", "description", "sku", "brand", "categoryId", "price", "images"} {
			assert.Contains(t, appErr.Fields, key)
		}
		assert.Equal(t, models.FormStateIdle, f.State())
		store.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
		categories.AssertNotCalled(t, "ListCategories", mock.Anything)
	})

	t.Run("Success - Create Product", func(t *testing.T) {
		// Arrange
		f, store, categories := newTestForm(t)
		fillValid(t, f)
		_, _ = f.AddCompatibility()

		categories.On("ListCategories", mock.Anything).Return(testCategories, nil).Once()
		store.On("CreateProduct", mock.Anything, mock.MatchedBy(func(p *models.Product) bool {
			return p.Category != nil && *p.Category == testCategories[0] &&
				p.Ratings.Average == 0 && p.Ratings.Count == 0 && len(p.Ratings.Distribution) == 5 &&
				p.Videos != nil && len(p.Videos) == 0 &&
				len(p.Images) == 1 && p.Images[0].Role == models.ImageRoleMain &&
				len(p.Compatibility) == 1 &&
				p.Name == "Brake Pad Set" && p.Price == 49.99
		})).Return(func(_ context.Context, p *models.Product) (*models.Product, error) {
			saved := *p
			saved.ID = "prod-1"
			return &saved, nil
		}).Once()

		// Act
		product, err := f.Submit(context.Background())

		// Assert
		require.NoError(t, err)
		require.NotNil(t, product)
		assert.Equal(t, "prod-1", product.ID)
		assert.Equal(t, models.FormStateClosed, f.State())
		assert.Empty(t, f.Errors())
		store.AssertNumberOfCalls(t, "CreateProduct", 1)
		store.AssertNotCalled(t, "UpdateProduct", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Success - Update existing product", func(t *testing.T) {
		// Arrange
		f, store, categories := newTestForm(t)
		f.LoadProduct(&models.Product{ID: "prod-9", Draft: validDraft(), Images: []models.ImageEntry{{ID: "img-1", URL: "/a.png", Position: 1}}})
		set(t, f, "price", "59.99")

		categories.On("ListCategories", mock.Anything).Return(testCategories, nil).Once()
		store.On("UpdateProduct", mock.Anything, "prod-9", mock.MatchedBy(func(p *models.Product) bool {
			return p.Price == 59.99 && p.Category.ID == "cat-1"
		})).Return(&models.Product{ID: "prod-9"}, nil).Once()

		// Act
		product, err := f.Submit(context.Background())

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "prod-9", product.ID)
		store.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Unknown category", func(t *testing.T) {
		// Arrange
		f, store, categories := newTestForm(t)
		fillValid(t, f)
		set(t, f, "categoryId", "cat-999")

		categories.On("ListCategories", mock.Anything).Return(testCategories, nil).Once()

		// Act
		product, err := f.Submit(context.Background())

		// Assert
		assert.Nil(t, product)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeCategoryNotFound, appErr.Code)
		assert.Equal(t, models.ErrorMap{models.SubmitErrorKey: appErr.Message}, f.Errors())
		assert.Equal(t, models.FormStateIdle, f.State())
		store.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
		store.AssertNotCalled(t, "UpdateProduct", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Store error surfaces a general error", func(t *testing.T) {
		// Arrange
		f, store, categories := newTestForm(t)
		fillValid(t, f)

		categories.On("ListCategories", mock.Anything).Return(testCategories, nil).Twice()
		store.On("CreateProduct", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused")).Once()

		// Act
		product, err := f.Submit(context.Background())

		// Assert
		assert.Nil(t, product)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeSubmitFailed, appErr.Code)
		assert.Equal(t, "Failed to save product. Please try again.", f.Errors()[models.SubmitErrorKey])
		assert.Len(t, f.Errors(), 1)
		assert.Equal(t, models.FormStateIdle, f.State())
		store.AssertNumberOfCalls(t, "CreateProduct", 1)

		// A later attempt is allowed and replaces the banner.
		store.On("CreateProduct", mock.Anything, mock.Anything).Return(&models.Product{ID: "prod-2"}, nil).Once()
		product, err = f.Submit(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "prod-2", product.ID)
	})

	t.Run("Failure - Category source error", func(t *testing.T) {
		// Arrange
		f, store, categories := newTestForm(t)
		fillValid(t, f)

		categories.On("ListCategories", mock.Anything).Return(nil, errors.New("redis down")).Once()

		// Act
		_, err := f.Submit(context.Background())

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeSubmitFailed, appErr.Code)
		assert.True(t, f.Errors().Has(models.SubmitErrorKey))
		store.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
	})

	t.Run("Validation error replaces a general error", func(t *testing.T) {
		// Arrange
		f, store, categories := newTestForm(t)
		fillValid(t, f)
		categories.On("ListCategories", mock.Anything).Return(testCategories, nil).Once()
		store.On("CreateProduct", mock.Anything, mock.Anything).Return(nil, errors.New("timeout")).Once()
		_, _ = f.Submit(context.Background())
		require.True(t, f.Errors().Has(models.SubmitErrorKey))

		// Act
		set(t, f, "sku", " ")
		_, err := f.Submit(context.Background())

		// Assert
		require.Error(t, err)
		assert.Equal(t, models.ErrorMap{"sku": "SKU is required"}, f.Errors())
	})

	t.Run("Overlapping submit is rejected", func(t *testing.T) {
		// Arrange
		f, store, categories := newTestForm(t)
		fillValid(t, f)

		release := make(chan struct{})
		categories.On("ListCategories", mock.Anything).Return(testCategories, nil).Once()
		store.On("CreateProduct", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
			<-release
		}).Return(&models.Product{ID: "prod-3"}, nil).Once()

		var wg sync.WaitGroup
		var firstErr error
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, firstErr = f.Submit(context.Background())
		}()

		require.Eventually(t, func() bool {
			return f.State() == models.FormStatePersisting
		}, time.Second, time.Millisecond)

		// Act
		_, err := f.Submit(context.Background())
		cancelErr := f.Cancel()
		close(release)
		wg.Wait()

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeSubmissionInFlight, appErr.Code)
		assert.Error(t, cancelErr, "in-flight submission cannot be cancelled")
		require.NoError(t, firstErr)
		assert.Equal(t, models.FormStateClosed, f.State())
		store.AssertNumberOfCalls(t, "CreateProduct", 1)
	})

	t.Run("Caller cancellation does not abort persisting", func(t *testing.T) {
		// Arrange
		f, store, categories := newTestForm(t)
		fillValid(t, f)
		ctx, cancel := context.WithCancel(context.Background())

		categories.On("ListCategories", mock.Anything).Return(testCategories, nil).Once()
		store.On("CreateProduct", mock.Anything, mock.Anything).Return(func(storeCtx context.Context, p *models.Product) (*models.Product, error) {
			cancel()
			if storeCtx.Err() != nil {
				return nil, storeCtx.Err()
			}
			return &models.Product{ID: "prod-4"}, nil
		}).Once()

		// Act
		product, err := f.Submit(ctx)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "prod-4", product.ID)
	})

	t.Run("Closed form rejects edits", func(t *testing.T) {
		// Arrange
		f, store, categories := newTestForm(t)
		fillValid(t, f)
		categories.On("ListCategories", mock.Anything).Return(testCategories, nil).Once()
		store.On("CreateProduct", mock.Anything, mock.Anything).Return(&models.Product{ID: "prod-5"}, nil).Once()
		_, err := f.Submit(context.Background())
		require.NoError(t, err)

		// Act
		setErr := f.SetField(form.FieldInput{Path: "name", Value: "x"})
		_, submitErr := f.Submit(context.Background())

		// Assert
		for _, err := range []error{setErr, submitErr} {
			appErr, ok := appErrors.IsAppError(err)
			require.True(t, ok)
			assert.Equal(t, appErrors.ErrCodeFormClosed, appErr.Code)
		}
	})
}
