package form_test

import (
	"context"
	"errors"
	"testing"

	appErrors "github.com/aaravmahajanofficial/catalog-admin/internal/errors"
	"github.com/aaravmahajanofficial/catalog-admin/internal/form"
	"github.com/aaravmahajanofficial/catalog-admin/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	t.Run("Open, Get and Close", func(t *testing.T) {
		// Arrange
		deps, _, _ := testDeps(t)
		registry := form.NewRegistry(deps, form.Options{})

		// Act
		f, err := registry.Open(context.Background(), "")
		require.NoError(t, err)

		got, getErr := registry.Get(f.ID())
		closeErr := registry.Close(f.ID())
		_, missingErr := registry.Get(f.ID())

		// Assert
		require.NoError(t, getErr)
		assert.Same(t, f, got)
		require.NoError(t, closeErr)
		assert.Equal(t, models.FormStateClosed, f.State())
		appErr, ok := appErrors.IsAppError(missingErr)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		assert.Equal(t, 0, registry.Len())
	})

	t.Run("Open for edit loads the product", func(t *testing.T) {
		// Arrange
		deps, store, _ := testDeps(t)
		registry := form.NewRegistry(deps, form.Options{})
		existing := &models.Product{
			ID:            "prod-1",
			Draft:         validDraft(),
			Compatibility: []models.CompatibilityEntry{{Make: "Ford", Model: "Focus", Year: 2015}},
		}
		store.On("GetProduct", mock.Anything, "prod-1").Return(existing, nil).Once()

		// Act
		f, err := registry.Open(context.Background(), "prod-1")

		// Assert
		require.NoError(t, err)
		snap := f.Snapshot()
		assert.Equal(t, "prod-1", snap.ProductID)
		assert.Equal(t, "Brake Pad Set", snap.Draft.Name)
		assert.Equal(t, existing.Compatibility, snap.Compatibility)
	})

	t.Run("Failure - Product to edit not found", func(t *testing.T) {
		// Arrange
		deps, store, _ := testDeps(t)
		registry := form.NewRegistry(deps, form.Options{})
		store.On("GetProduct", mock.Anything, "prod-404").Return(nil, appErrors.NotFoundError("Product not found")).Once()

		// Act
		f, err := registry.Open(context.Background(), "prod-404")

		// Assert
		assert.Nil(t, f)
		require.Error(t, err)
		assert.Equal(t, 0, registry.Len())
	})

	t.Run("Successful submit removes the form", func(t *testing.T) {
		// Arrange
		deps, store, categories := testDeps(t)
		registry := form.NewRegistry(deps, form.Options{})
		f, err := registry.Open(context.Background(), "")
		require.NoError(t, err)
		fillValid(t, f)

		categories.On("ListCategories", mock.Anything).Return(testCategories, nil).Twice()
		store.On("CreateProduct", mock.Anything, mock.Anything).Return(nil, errors.New("boom")).Once()
		store.On("CreateProduct", mock.Anything, mock.Anything).Return(&models.Product{ID: "prod-1"}, nil).Once()

		// Act
		_, failErr := f.Submit(context.Background())
		openAfterFailure := registry.Len()
		_, okErr := f.Submit(context.Background())

		// Assert
		require.Error(t, failErr)
		assert.Equal(t, 1, openAfterFailure)
		require.NoError(t, okErr)
		assert.Equal(t, 0, registry.Len())
	})
}
