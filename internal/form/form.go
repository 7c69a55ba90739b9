package form

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aaravmahajanofficial/catalog-admin/internal/errors"
	"github.com/aaravmahajanofficial/catalog-admin/internal/models"
	"github.com/google/uuid"
)

// ProductStore persists assembled products.
type ProductStore interface {
	CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, product *models.Product) (*models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
}

// CategorySource lists the categories a draft may reference.
type CategorySource interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
}

type Dependencies struct {
	Store      ProductStore
	Categories CategorySource
	Logger     *slog.Logger
	Now        func() time.Time
}

type Options struct {
	ImageIDPrefix       string
	PlaceholderImageURL string
	SubmitTimeout       time.Duration
}

const (
	DefaultImageIDPrefix       = "img-"
	DefaultPlaceholderImageURL = "/images/placeholder.png"
	DefaultSubmitTimeout       = 15 * time.Second
)

// Form is one open product editor. All mutations are serialised by mu; the
// only call made without holding it is the store round-trip in Submit.
type Form struct {
	mu sync.Mutex

	id        string
	productID string

	store      ProductStore
	categories CategorySource
	logger     *slog.Logger
	now        func() time.Time
	opts       Options

	draft  models.Draft
	images ImageList
	specs  SpecificationList
	compat CompatibilityList
	errors models.ErrorMap

	state           models.FormState
	submitting      bool
	importPanelOpen bool

	onClose func(id string)
}

func New(deps Dependencies, opts Options) *Form {
	if opts.ImageIDPrefix == "" {
		opts.ImageIDPrefix = DefaultImageIDPrefix
	}
	if opts.PlaceholderImageURL == "" {
		opts.PlaceholderImageURL = DefaultPlaceholderImageURL
	}
	if opts.SubmitTimeout <= 0 {
		opts.SubmitTimeout = DefaultSubmitTimeout
	}

	now := deps.Now
	if now == nil {
		now = time.Now
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	id := uuid.NewString()

	return &Form{
		id:         id,
		store:      deps.Store,
		categories: deps.Categories,
		logger:     logger.With(slog.String("form_id", id)),
		now:        now,
		opts:       opts,
		draft:      models.NewDraft(),
		errors:     models.ErrorMap{},
		state:      models.FormStateIdle,
	}
}

// LoadProduct seeds the form from an existing product; a later Submit
// updates that product instead of creating a new one.
func (f *Form) LoadProduct(p *models.Product) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.productID = p.ID
	f.draft = p.Draft.Clone()
	if p.Category != nil && f.draft.CategoryID == "" {
		f.draft.CategoryID = p.Category.ID
	}
	f.images = ImageList{entries: cloneSlice(p.Images)}
	f.specs = SpecificationList{entries: cloneSlice(p.Specifications)}
	f.compat = CompatibilityList{entries: cloneSlice(p.Compatibility)}
}

func (f *Form) ID() string {
	return f.id
}

func (f *Form) ProductID() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.productID
}

func (f *Form) State() models.FormState {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.state
}

func (f *Form) Errors() models.ErrorMap {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.errors.Clone()
}

func (f *Form) Snapshot() models.FormSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	snap := models.FormSnapshot{
		ID:              f.id,
		ProductID:       f.productID,
		Draft:           f.draft.Clone(),
		Images:          f.images.Entries(),
		Specifications:  f.specs.Entries(),
		Compatibility:   f.compat.Entries(),
		Errors:          f.errors.Clone(),
		State:           f.state,
		ImportPanelOpen: f.importPanelOpen,
	}
	if main, ok := f.images.Main(); ok {
		snap.MainImage = &main
	}

	return snap
}

func (f *Form) OpenImportPanel() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checkOpen(); err != nil {
		return err
	}
	f.importPanelOpen = true

	return nil
}

func (f *Form) CloseImportPanel() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.importPanelOpen = false
}

// Cancel discards the form. A submission already in flight cannot be
// cancelled.
func (f *Form) Cancel() error {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return errors.SubmissionInFlightError("Product is being saved and cannot be cancelled")
	}
	if f.state == models.FormStateClosed {
		f.mu.Unlock()
		return nil
	}
	f.state = models.FormStateClosed
	onClose := f.onClose
	f.mu.Unlock()

	f.logger.Info("Form cancelled")
	if onClose != nil {
		onClose(f.id)
	}

	return nil
}

// must hold f.mu
func (f *Form) checkOpen() error {
	if f.state == models.FormStateClosed {
		return errors.FormClosedError("Form is closed")
	}

	return nil
}

// must hold f.mu
func (f *Form) clearError(key string) {
	if f.errors.Has(key) {
		delete(f.errors, key)
	}
}

func cloneSlice[T any](s []T) []T {
	out := make([]T, len(s))
	copy(out, s)

	return out
}
