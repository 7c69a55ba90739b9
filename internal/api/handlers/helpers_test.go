package handlers_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/catalog-admin/internal/api/handlers"
	"github.com/aaravmahajanofficial/catalog-admin/internal/form"
	"github.com/aaravmahajanofficial/catalog-admin/internal/form/mocks"
	"github.com/aaravmahajanofficial/catalog-admin/internal/models"
	"github.com/aaravmahajanofficial/catalog-admin/internal/utils/response"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var (
	adminID  = uuid.New()
	fixedNow = time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)
)

type formFixture struct {
	handler    *handlers.FormHandler
	registry   *form.Registry
	store      *mocks.ProductStore
	categories *mocks.CategorySource
}

func newFormFixture(t *testing.T) *formFixture {
	t.Helper()

	store := mocks.NewProductStore(t)
	categories := mocks.NewCategorySource(t)

	registry := form.NewRegistry(form.Dependencies{
		Store:      store,
		Categories: categories,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:        func() time.Time { return fixedNow },
	}, form.Options{})

	return &formFixture{
		handler:    handlers.NewFormHandler(registry),
		registry:   registry,
		store:      store,
		categories: categories,
	}
}

func (fx *formFixture) open(t *testing.T) *form.Form {
	t.Helper()

	f, err := fx.registry.Open(t.Context(), "")
	require.NoError(t, err)

	return f
}

func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder) response.APIResponse {
	t.Helper()

	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	return resp
}

// decodeData re-marshals the generic Data payload into dest.
func decodeData(t *testing.T, rr *httptest.ResponseRecorder, dest any) {
	t.Helper()

	resp := decodeResponse(t, rr)
	require.True(t, resp.Success, "expected a success envelope, got %s", rr.Body.String())

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, dest))
}

func snapshotOf(t *testing.T, rr *httptest.ResponseRecorder) models.FormSnapshot {
	t.Helper()

	var snap models.FormSnapshot
	decodeData(t, rr, &snap)

	return snap
}
