package form

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aaravmahajanofficial/catalog-admin/internal/errors"
	"github.com/aaravmahajanofficial/catalog-admin/internal/metrics"
)

// Registry tracks open forms by ID. Forms leave the registry when they are
// cancelled or successfully submitted.
type Registry struct {
	mu    sync.RWMutex
	forms map[string]*Form
	deps  Dependencies
	opts  Options
}

func NewRegistry(deps Dependencies, opts Options) *Registry {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	return &Registry{
		forms: make(map[string]*Form),
		deps:  deps,
		opts:  opts,
	}
}

// Open creates a form. A non-empty productID loads that product for editing.
func (r *Registry) Open(ctx context.Context, productID string) (*Form, error) {
	f := New(r.deps, r.opts)

	if productID != "" {
		product, err := r.deps.Store.GetProduct(ctx, productID)
		if err != nil {
			return nil, err
		}
		f.LoadProduct(product)
	}

	f.onClose = r.remove

	r.mu.Lock()
	r.forms[f.ID()] = f
	open := len(r.forms)
	r.mu.Unlock()

	metrics.SetOpenForms(open)
	r.deps.Logger.Info("Form opened", slog.String("form_id", f.ID()), slog.String("product_id", productID))

	return f, nil
}

func (r *Registry) Get(id string) (*Form, error) {
	r.mu.RLock()
	f, ok := r.forms[id]
	r.mu.RUnlock()

	if !ok {
		return nil, errors.NotFoundError("Form not found")
	}

	return f, nil
}

// Close cancels and forgets a form.
func (r *Registry) Close(id string) error {
	f, err := r.Get(id)
	if err != nil {
		return err
	}

	return f.Cancel()
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.forms)
}

func (r *Registry) remove(id string) {
	r.mu.Lock()
	delete(r.forms, id)
	open := len(r.forms)
	r.mu.Unlock()

	metrics.SetOpenForms(open)
}
