package api

import (
	"net/http"

	"github.com/aaravmahajanofficial/catalog-admin/internal/api/handlers"
	"github.com/aaravmahajanofficial/catalog-admin/internal/api/middleware"
)

type Handlers struct {
	Forms      *handlers.FormHandler
	Categories *handlers.CategoryHandler
	Auth       *middleware.AuthMiddleware
	Limiter    middleware.SubmitLimiter
}

// RegisterRoutes mounts the admin API under /api/v1. Every route requires an
// admin token.
func RegisterRoutes(mux *http.ServeMux, h Handlers) {
	auth := h.Auth.Authenticate
	submit := http.Handler(h.Forms.Submit())
	if h.Limiter != nil {
		submit = middleware.SubmitRateLimit(h.Limiter)(submit)
	}

	mux.HandleFunc("GET /api/v1/categories", auth(h.Categories.ListCategories()))

	mux.HandleFunc("POST /api/v1/forms", auth(h.Forms.OpenForm()))
	mux.HandleFunc("GET /api/v1/forms/{id}", auth(h.Forms.GetForm()))
	mux.HandleFunc("DELETE /api/v1/forms/{id}", auth(h.Forms.CancelForm()))
	mux.HandleFunc("PATCH /api/v1/forms/{id}/fields", auth(h.Forms.SetField()))

	mux.HandleFunc("POST /api/v1/forms/{id}/images", auth(h.Forms.AddImage()))
	mux.HandleFunc("PATCH /api/v1/forms/{id}/images/{index}", auth(h.Forms.UpdateImage()))
	mux.HandleFunc("DELETE /api/v1/forms/{id}/images/{imageId}", auth(h.Forms.RemoveImage()))

	mux.HandleFunc("POST /api/v1/forms/{id}/specifications", auth(h.Forms.AddSpecification()))
	mux.HandleFunc("PATCH /api/v1/forms/{id}/specifications/{index}", auth(h.Forms.UpdateSpecification()))
	mux.HandleFunc("DELETE /api/v1/forms/{id}/specifications/{index}", auth(h.Forms.RemoveSpecification()))

	mux.HandleFunc("POST /api/v1/forms/{id}/compatibility", auth(h.Forms.AddCompatibility()))
	mux.HandleFunc("PATCH /api/v1/forms/{id}/compatibility/{index}", auth(h.Forms.UpdateCompatibility()))
	mux.HandleFunc("DELETE /api/v1/forms/{id}/compatibility/{index}", auth(h.Forms.RemoveCompatibility()))

	mux.HandleFunc("POST /api/v1/forms/{id}/import/open", auth(h.Forms.OpenImport()))
	mux.HandleFunc("DELETE /api/v1/forms/{id}/import", auth(h.Forms.CloseImport()))
	mux.HandleFunc("POST /api/v1/forms/{id}/import", auth(h.Forms.ApplyImport()))

	mux.HandleFunc("POST /api/v1/forms/{id}/submit", auth(submit))
}
