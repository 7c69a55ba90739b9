package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/catalog-admin/internal/api/middleware"
	service "github.com/aaravmahajanofficial/catalog-admin/internal/services"
	"github.com/aaravmahajanofficial/catalog-admin/internal/utils/response"
)

type CategoryHandler struct {
	categoryService service.CategoryService
}

func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func (h *CategoryHandler) ListCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		categories, err := h.categoryService.ListCategories(r.Context())
		if err != nil {
			logger.Error("Failed to list categories", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, categories)
	}
}
