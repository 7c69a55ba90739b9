package form

import (
	"bytes"
	"encoding/json"
	stdErrors "errors"
	"html"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/aaravmahajanofficial/catalog-admin/internal/errors"
	"github.com/aaravmahajanofficial/catalog-admin/internal/metrics"
	"github.com/aaravmahajanofficial/catalog-admin/internal/models"
	"github.com/aaravmahajanofficial/catalog-admin/internal/utils"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

var (
	plainPolicy = bluemonday.StrictPolicy()
	richPolicy  = bluemonday.UGCPolicy()
)

// DecodeImport strictly decodes and validates a payload from the import
// tool. Every offending field is reported in the returned error's Fields.
func DecodeImport(raw []byte) (*models.ImportPayload, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, errors.ImportDecodeError("Import payload is empty")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	var payload models.ImportPayload
	if err := dec.Decode(&payload); err != nil {
		return nil, errors.ImportDecodeError("Import payload is not valid").WithDetail(err.Error()).WithError(err)
	}
	if _, err := dec.Token(); !stdErrors.Is(err, io.EOF) {
		return nil, errors.ImportDecodeError("Import payload is not valid").WithDetail("unexpected data after the listing object")
	}

	if err := Validator().Struct(payload); err != nil {
		var validationErrs validator.ValidationErrors
		if !stdErrors.As(err, &validationErrs) {
			return nil, errors.ImportDecodeError("Import payload is not valid").WithError(err)
		}

		fields := make(map[string]string, len(validationErrs))
		for _, fe := range validationErrs {
			key := importFieldKey(fe)
			fields[key] = ruleMessage(key, fe)
		}

		return nil, errors.ImportDecodeError("Import payload is not valid").WithFields(fields).WithError(err)
	}

	return &payload, nil
}

// ApplyImport replaces the draft, images and specifications with an imported
// listing. Compatibility entries and the selected category are kept. The
// import panel is closed whether or not the payload was accepted.
func (f *Form) ApplyImport(raw []byte) error {
	payload, decodeErr := DecodeImport(raw)

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checkOpen(); err != nil {
		return err
	}

	f.importPanelOpen = false

	if decodeErr != nil {
		f.logger.Warn("Rejected import payload", slog.String("error", decodeErr.Error()))
		metrics.ObserveImport(metrics.OutcomeRejected)
		return decodeErr
	}

	stamp := strconv.FormatInt(f.now().UnixMilli(), 10)

	f.draft = draftFromImport(payload, f.draft.CategoryID)
	f.images = imagesFromImport(payload.Images, f.opts.ImageIDPrefix+stamp)
	f.specs = specsFromImport(payload.Specifications)

	f.logger.Info("Applied import",
		slog.String("sku", f.draft.SKU),
		slog.Int("images", f.images.Len()),
		slog.Int("specifications", f.specs.Len()),
	)
	metrics.ObserveImport(metrics.OutcomeApplied)

	return nil
}

func draftFromImport(p *models.ImportPayload, categoryID string) models.Draft {
	status := p.Status
	if status == "" {
		status = models.ProductStatusActive
	}

	invStatus := p.Inventory.Status
	if invStatus == "" {
		invStatus = models.InventoryStatusInStock
	}

	name := plainText(p.Name)

	slug := strings.TrimSpace(p.SEO.Slug)
	if slug == "" {
		slug = utils.Slugify(name)
	}

	return models.Draft{
		Name:             name,
		Description:      richPolicy.Sanitize(p.Description),
		ShortDescription: plainText(p.ShortDescription),
		SKU:              strings.TrimSpace(p.SKU),
		Brand:            plainText(p.Brand),
		Price:            p.Price,
		CompareAtPrice:   p.CompareAtPrice,
		CategoryID:       categoryID,
		Inventory: models.Inventory{
			Quantity:          p.Inventory.Quantity,
			LowStockThreshold: p.Inventory.LowStockThreshold,
			TrackInventory:    p.Inventory.TrackInventory,
			Status:            invStatus,
		},
		SEO: models.SEO{
			Title:       plainText(p.SEO.Title),
			Description: plainText(p.SEO.Description),
			Keywords:    cleanSet(p.SEO.Keywords),
			Slug:        slug,
		},
		Tags:     cleanSet(p.Tags),
		Featured: p.Featured,
		Status:   status,
	}
}

func imagesFromImport(in []models.ImportImage, idBase string) ImageList {
	var list ImageList
	for i, img := range in {
		id := strings.TrimSpace(img.ID)
		if id == "" {
			id = idBase + "-" + strconv.Itoa(i)
		}

		list.Add(id, img.URL, plainText(img.Alt))
		if img.Position > 0 {
			list.entries[i].Position = img.Position
		}
	}

	return list
}

func specsFromImport(in []models.ImportSpecification) SpecificationList {
	entries := make([]models.SpecificationEntry, 0, len(in))
	for _, s := range in {
		group := plainText(s.Group)
		if group == "" {
			group = models.DefaultSpecificationGroup
		}
		entries = append(entries, models.SpecificationEntry{
			Name:  plainText(s.Name),
			Value: plainText(s.Value),
			Group: group,
		})
	}

	return SpecificationList{entries: entries}
}

// plainText strips all markup; the strict policy escapes entities, which are
// turned back into text here.
func plainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(plainPolicy.Sanitize(s)))
}

func cleanSet(in []string) []string {
	out := []string{}
	for _, v := range in {
		v = plainText(v)
		if v == "" || slices.Contains(out, v) {
			continue
		}
		out = append(out, v)
	}

	return out
}

// "ImportPayload.images[0].url" -> "images[0].url"
func importFieldKey(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}

	return ns
}
