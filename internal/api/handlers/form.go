package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aaravmahajanofficial/catalog-admin/internal/api/middleware"
	"github.com/aaravmahajanofficial/catalog-admin/internal/errors"
	"github.com/aaravmahajanofficial/catalog-admin/internal/form"
	"github.com/aaravmahajanofficial/catalog-admin/internal/models"
	"github.com/aaravmahajanofficial/catalog-admin/internal/utils"
	"github.com/aaravmahajanofficial/catalog-admin/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type FormHandler struct {
	registry  *form.Registry
	validator *validator.Validate
}

func NewFormHandler(registry *form.Registry) *FormHandler {
	return &FormHandler{registry: registry, validator: form.Validator()}
}

// lookup resolves the {id} path value to an open form, writing the error
// response when it cannot.
func (h *FormHandler) lookup(w http.ResponseWriter, r *http.Request) (*form.Form, *slog.Logger, bool) {
	logger := middleware.LoggerFromContext(r.Context())

	id := r.PathValue("id")
	f, err := h.registry.Get(id)
	if err != nil {
		logger.Warn("Form lookup failed", slog.String("form_id", id))
		response.Error(w, err)
		return nil, logger, false
	}

	return f, logger.With(slog.String("form_id", id)), true
}

func pathIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	i, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		response.Error(w, errors.BadRequestError("Invalid entry index"))
		return 0, false
	}

	return i, true
}

func (h *FormHandler) OpenForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.OpenFormRequest
		if r.ContentLength != 0 && !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid open form input")
			return
		}

		f, err := h.registry.Open(r.Context(), req.ProductID)
		if err != nil {
			logger.Error("Failed to open form", slog.String("product_id", req.ProductID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusCreated, f.Snapshot())
	}
}

func (h *FormHandler) GetForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, _, ok := h.lookup(w, r)
		if !ok {
			return
		}

		response.Success(w, http.StatusOK, f.Snapshot())
	}
}

func (h *FormHandler) CancelForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		if err := h.registry.Close(r.PathValue("id")); err != nil {
			logger.Warn("Failed to cancel form", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.NoContent(w)
	}
}

func (h *FormHandler) SetField() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, logger, ok := h.lookup(w, r)
		if !ok {
			return
		}

		var req models.SetFieldRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if err := f.SetField(form.FieldInput{Path: req.Path, Value: req.Value, Checked: req.Checked}); err != nil {
			logger.Warn("Rejected field edit", slog.String("path", req.Path), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, f.Snapshot())
	}
}

func (h *FormHandler) AddImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, _, ok := h.lookup(w, r)
		if !ok {
			return
		}

		if _, err := f.AddImage(); err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusCreated, f.Snapshot())
	}
}

func (h *FormHandler) UpdateImage() http.HandlerFunc {
	return h.updateEntry(func(f *form.Form, i int, field, value string) error {
		return f.UpdateImage(i, field, value)
	})
}

func (h *FormHandler) RemoveImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, _, ok := h.lookup(w, r)
		if !ok {
			return
		}

		if err := f.RemoveImage(r.PathValue("imageId")); err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, f.Snapshot())
	}
}

func (h *FormHandler) AddSpecification() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, _, ok := h.lookup(w, r)
		if !ok {
			return
		}

		if _, err := f.AddSpecification(); err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusCreated, f.Snapshot())
	}
}

func (h *FormHandler) UpdateSpecification() http.HandlerFunc {
	return h.updateEntry(func(f *form.Form, i int, field, value string) error {
		return f.UpdateSpecification(i, field, value)
	})
}

func (h *FormHandler) RemoveSpecification() http.HandlerFunc {
	return h.removeEntry(func(f *form.Form, i int) error {
		return f.RemoveSpecification(i)
	})
}

func (h *FormHandler) AddCompatibility() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, _, ok := h.lookup(w, r)
		if !ok {
			return
		}

		if _, err := f.AddCompatibility(); err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusCreated, f.Snapshot())
	}
}

func (h *FormHandler) UpdateCompatibility() http.HandlerFunc {
	return h.updateEntry(func(f *form.Form, i int, field, value string) error {
		return f.UpdateCompatibility(i, field, value)
	})
}

func (h *FormHandler) RemoveCompatibility() http.HandlerFunc {
	return h.removeEntry(func(f *form.Form, i int) error {
		return f.RemoveCompatibility(i)
	})
}

func (h *FormHandler) updateEntry(apply func(f *form.Form, i int, field, value string) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, logger, ok := h.lookup(w, r)
		if !ok {
			return
		}

		i, ok := pathIndex(w, r)
		if !ok {
			return
		}

		var req models.UpdateEntryRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if err := apply(f, i, req.Field, req.Value); err != nil {
			logger.Warn("Rejected entry edit", slog.Int("index", i), slog.String("field", req.Field), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, f.Snapshot())
	}
}

func (h *FormHandler) removeEntry(apply func(f *form.Form, i int) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, _, ok := h.lookup(w, r)
		if !ok {
			return
		}

		i, ok := pathIndex(w, r)
		if !ok {
			return
		}

		if err := apply(f, i); err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, f.Snapshot())
	}
}

func (h *FormHandler) OpenImport() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, _, ok := h.lookup(w, r)
		if !ok {
			return
		}

		if err := f.OpenImportPanel(); err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, f.Snapshot())
	}
}

func (h *FormHandler) CloseImport() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, _, ok := h.lookup(w, r)
		if !ok {
			return
		}

		f.CloseImportPanel()
		response.Success(w, http.StatusOK, f.Snapshot())
	}
}

// ApplyImport takes the import tool's listing JSON as the raw request body.
func (h *FormHandler) ApplyImport() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, logger, ok := h.lookup(w, r)
		if !ok {
			return
		}

		raw, err := utils.ReadBody(r)
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid request body").WithDetail(err.Error()))
			return
		}

		if err := f.ApplyImport(raw); err != nil {
			logger.Warn("Import rejected", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, f.Snapshot())
	}
}

func (h *FormHandler) Submit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, logger, ok := h.lookup(w, r)
		if !ok {
			return
		}

		status := http.StatusCreated
		if f.ProductID() != "" {
			status = http.StatusOK
		}

		product, err := f.Submit(r.Context())
		if err != nil {
			logger.Warn("Submit failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Product submitted", slog.String("product_id", product.ID))
		response.Success(w, status, product)
	}
}
