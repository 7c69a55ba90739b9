package form

import (
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/aaravmahajanofficial/catalog-admin/internal/errors"
	"github.com/aaravmahajanofficial/catalog-admin/internal/models"
)

// FieldInput mirrors a single input change: the field path, its text value
// and, for checkboxes, the checked state.
type FieldInput struct {
	Path    string
	Value   string
	Checked bool
}

type fieldSetter func(d *models.Draft, in FieldInput)

var fieldSetters = map[string]fieldSetter{
	"name":             func(d *models.Draft, in FieldInput) { d.Name = in.Value },
	"description":      func(d *models.Draft, in FieldInput) { d.Description = in.Value },
	"shortDescription": func(d *models.Draft, in FieldInput) { d.ShortDescription = in.Value },
	"sku":              func(d *models.Draft, in FieldInput) { d.SKU = in.Value },
	"brand":            func(d *models.Draft, in FieldInput) { d.Brand = in.Value },
	"price":            func(d *models.Draft, in FieldInput) { d.Price = parseFloat(in.Value) },
	"compareAtPrice":   func(d *models.Draft, in FieldInput) { d.CompareAtPrice = parseFloat(in.Value) },
	"categoryId":       func(d *models.Draft, in FieldInput) { d.CategoryID = in.Value },
	"tags":             func(d *models.Draft, in FieldInput) { d.Tags = splitSet(in.Value) },
	"featured":         func(d *models.Draft, in FieldInput) { d.Featured = in.Checked },
	"status":           func(d *models.Draft, in FieldInput) { d.Status = models.ProductStatus(in.Value) },

	"inventory.quantity":          func(d *models.Draft, in FieldInput) { d.Inventory.Quantity = parseInt(in.Value) },
	"inventory.lowStockThreshold": func(d *models.Draft, in FieldInput) { d.Inventory.LowStockThreshold = parseInt(in.Value) },
	"inventory.trackInventory":    func(d *models.Draft, in FieldInput) { d.Inventory.TrackInventory = in.Checked },
	"inventory.status":            func(d *models.Draft, in FieldInput) { d.Inventory.Status = models.InventoryStatus(in.Value) },

	"seo.title":       func(d *models.Draft, in FieldInput) { d.SEO.Title = in.Value },
	"seo.description": func(d *models.Draft, in FieldInput) { d.SEO.Description = in.Value },
	"seo.keywords":    func(d *models.Draft, in FieldInput) { d.SEO.Keywords = splitSet(in.Value) },
	"seo.slug":        func(d *models.Draft, in FieldInput) { d.SEO.Slug = in.Value },
}

// SetField applies one edit to the draft and dismisses any error currently
// shown for that field. It does not re-validate.
func (f *Form) SetField(in FieldInput) error {
	set, ok := fieldSetters[in.Path]
	if !ok {
		return errors.AddValidationError(in.Path, "unknown field")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checkOpen(); err != nil {
		return err
	}

	set(&f.draft, in)
	f.clearError(in.Path)

	return nil
}

var numericPrefix = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// parseFloat reads the leading number of s, so "49.99usd" is 49.99. Text
// without one, or a value that overflows, is 0.
func parseFloat(s string) float64 {
	m := numericPrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0
	}

	v, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsInf(v, 0) {
		return 0
	}

	return v
}

// parseInt truncates the leading number: "12abc" and "12.7" are both 12.
func parseInt(s string) int {
	v := parseFloat(s)
	if v > math.MaxInt32 || v < math.MinInt32 {
		return 0
	}

	return int(v)
}

// splitSet turns "a, b,,a" into [a b].
func splitSet(s string) []string {
	out := []string{}
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" || slices.Contains(out, part) {
			continue
		}
		out = append(out, part)
	}

	return out
}
