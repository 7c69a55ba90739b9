package errors_test

import (
	"fmt"
	"net/http"
	"testing"

	appErrors "github.com/aaravmahajanofficial/catalog-admin/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError(t *testing.T) {
	t.Run("Wrapped error is reachable", func(t *testing.T) {
		// Arrange
		cause := fmt.Errorf("connection reset")

		// Act
		err := appErrors.DatabaseError("Failed to create product").WithError(cause)

		// Assert
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "Failed to create product", err.Error())
		assert.Equal(t, http.StatusInternalServerError, err.StatusCode)
	})

	t.Run("IsAppError through fmt wrapping", func(t *testing.T) {
		// Arrange
		err := fmt.Errorf("submit: %w", appErrors.CategoryNotFoundError("Selected category not found"))

		// Act
		appErr, ok := appErrors.IsAppError(err)

		// Assert
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeCategoryNotFound, appErr.Code)
		assert.Equal(t, http.StatusUnprocessableEntity, appErr.StatusCode)
	})

	t.Run("IsAppError on plain error", func(t *testing.T) {
		appErr, ok := appErrors.IsAppError(fmt.Errorf("plain"))

		assert.False(t, ok)
		assert.Nil(t, appErr)
	})

	t.Run("WithFields copies the map", func(t *testing.T) {
		// Arrange
		fields := map[string]string{"name": "Product name is required"}

		// Act
		err := appErrors.ValidationError("Validation failed").WithFields(fields)
		fields["sku"] = "added later"

		// Assert
		assert.Len(t, err.Fields, 1)
		assert.Equal(t, "Product name is required", err.Fields["name"])
	})

	t.Run("AddValidationError message", func(t *testing.T) {
		err := appErrors.AddValidationError("path", "unknown field")

		assert.Equal(t, appErrors.ErrCodeValidation, err.Code)
		assert.Equal(t, "Invalid field 'path': unknown field", err.Message)
	})
}
