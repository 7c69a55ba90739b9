package form_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/catalog-admin/internal/form"
	"github.com/aaravmahajanofficial/catalog-admin/internal/form/mocks"
	"github.com/aaravmahajanofficial/catalog-admin/internal/models"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)

func testDeps(t *testing.T) (form.Dependencies, *mocks.ProductStore, *mocks.CategorySource) {
	t.Helper()

	store := mocks.NewProductStore(t)
	categories := mocks.NewCategorySource(t)

	return form.Dependencies{
		Store:      store,
		Categories: categories,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:        func() time.Time { return fixedNow },
	}, store, categories
}

func newTestForm(t *testing.T) (*form.Form, *mocks.ProductStore, *mocks.CategorySource) {
	t.Helper()

	deps, store, categories := testDeps(t)

	return form.New(deps, form.Options{}), store, categories
}

func set(t *testing.T, f *form.Form, path, value string) {
	t.Helper()
	require.NoError(t, f.SetField(form.FieldInput{Path: path, Value: value}))
}

// fillValid fills every required field and adds one image.
func fillValid(t *testing.T, f *form.Form) {
	t.Helper()

	set(t, f, "name", "Brake Pad Set")
	set(t, f, "description", "High-performance pads")
	set(t, f, "sku", "BP-100")
	set(t, f, "brand", "Acme")
	set(t, f, "categoryId", "cat-1")
	set(t, f, "price", "49.99")

	_, err := f.AddImage()
	require.NoError(t, err)
}

func validDraft() models.Draft {
	d := models.NewDraft()
	d.Name = "Brake Pad Set"
	d.Description = "High-performance pads"
	d.SKU = "BP-100"
	d.Brand = "Acme"
	d.CategoryID = "cat-1"
	d.Price = 49.99

	return d
}
