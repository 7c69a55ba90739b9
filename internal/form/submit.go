package form

import (
	"context"
	stdErrors "errors"
	"log/slog"

	"github.com/aaravmahajanofficial/catalog-admin/internal/errors"
	"github.com/aaravmahajanofficial/catalog-admin/internal/metrics"
	"github.com/aaravmahajanofficial/catalog-admin/internal/models"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	msgFixFields        = "Please fix the highlighted fields"
	msgCategoryNotFound = "Selected category not found. Please choose a valid category."
	msgSubmitFailed     = "Failed to save product. Please try again."
)

var errCategoryNotFound = stdErrors.New("category not found")

var tracer = otel.Tracer("github.com/aaravmahajanofficial/catalog-admin/internal/form")

// Submit validates the draft, resolves its category and persists it.
//
// Idle -> Validating -> ResolvingCategory -> Persisting -> Closed. Every
// failure returns the form to Idle with its ErrorMap replaced; nothing is
// retried. A successful submit closes the form.
func (f *Form) Submit(ctx context.Context) (*models.Product, error) {
	ctx, span := tracer.Start(ctx, "form.Submit", trace.WithAttributes(attribute.String("form.id", f.id)))
	defer span.End()

	f.mu.Lock()

	if err := f.checkOpen(); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	if f.submitting {
		f.mu.Unlock()
		metrics.ObserveFormSubmission(metrics.OutcomeInFlight)
		return nil, errors.SubmissionInFlightError("Product is already being saved")
	}

	f.state = models.FormStateValidating
	images := f.images.Entries()
	if errs := Validate(f.draft, images); len(errs) > 0 {
		f.errors = errs
		f.state = models.FormStateIdle
		f.mu.Unlock()

		f.logger.Info("Form validation failed", slog.Int("error_count", len(errs)))
		metrics.ObserveFormSubmission(metrics.OutcomeInvalid)
		span.SetAttributes(attribute.String("form.outcome", metrics.OutcomeInvalid))
		return nil, errors.ValidationError(msgFixFields).WithFields(errs)
	}

	f.submitting = true
	f.state = models.FormStateResolvingCategory
	draft := f.draft.Clone()
	specs := f.specs.Entries()
	compat := f.compat.Entries()
	productID := f.productID
	f.mu.Unlock()

	// Store calls are not cancellable once started.
	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), f.opts.SubmitTimeout)
	defer cancel()

	category, err := f.resolveCategory(callCtx, draft.CategoryID)
	if err != nil {
		if stdErrors.Is(err, errCategoryNotFound) {
			f.logger.Warn("Draft references an unknown category", slog.String("category_id", draft.CategoryID))
			metrics.ObserveFormSubmission(metrics.OutcomeCategoryNotFound)
			return nil, f.fail(span, errors.CategoryNotFoundError(msgCategoryNotFound))
		}

		f.logger.Error("Failed to load categories", slog.String("error", err.Error()))
		metrics.ObserveFormSubmission(metrics.OutcomeFailed)
		return nil, f.fail(span, errors.SubmitFailedError(msgSubmitFailed).WithError(err))
	}

	record := assemble(draft, category, images, specs, compat)

	f.mu.Lock()
	f.state = models.FormStatePersisting
	f.mu.Unlock()

	var saved *models.Product
	outcome := metrics.OutcomeCreated
	if productID != "" {
		outcome = metrics.OutcomeUpdated
		saved, err = f.store.UpdateProduct(callCtx, productID, record)
	} else {
		saved, err = f.store.CreateProduct(callCtx, record)
	}

	if err != nil {
		f.logger.Error("Failed to save product", slog.String("error", err.Error()), slog.String("product_id", productID))
		metrics.ObserveFormSubmission(metrics.OutcomeFailed)
		return nil, f.fail(span, errors.SubmitFailedError(msgSubmitFailed).WithError(err))
	}

	f.mu.Lock()
	f.submitting = false
	f.errors = models.ErrorMap{}
	f.state = models.FormStateClosed
	onClose := f.onClose
	f.mu.Unlock()

	span.SetAttributes(attribute.String("product.id", saved.ID), attribute.String("form.outcome", outcome))
	f.logger.Info("Product saved", slog.String("product_id", saved.ID), slog.String("outcome", outcome))
	metrics.ObserveFormSubmission(outcome)

	if onClose != nil {
		onClose(f.id)
	}

	return saved, nil
}

// fail replaces the ErrorMap with a single general error and returns the
// form to Idle.
func (f *Form) fail(span trace.Span, appErr *errors.AppError) error {
	span.SetStatus(codes.Error, appErr.Code)
	if appErr.Err != nil {
		span.RecordError(appErr.Err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.errors = models.ErrorMap{models.SubmitErrorKey: appErr.Message}
	f.submitting = false
	f.state = models.FormStateIdle

	return appErr.WithFields(f.errors)
}

func (f *Form) resolveCategory(ctx context.Context, id string) (*models.Category, error) {
	categories, err := f.categories.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	for _, c := range categories {
		if c.ID == id {
			return &c, nil
		}
	}

	return nil, errCategoryNotFound
}

func assemble(draft models.Draft, category *models.Category, images []models.ImageEntry, specs []models.SpecificationEntry, compat []models.CompatibilityEntry) *models.Product {
	return &models.Product{
		Draft:          draft,
		Category:       category,
		Images:         images,
		Specifications: specs,
		Compatibility:  compat,
		Videos:         []models.Video{},
		Ratings:        models.EmptyRatings(),
	}
}
