package form

import (
	"strconv"

	"github.com/aaravmahajanofficial/catalog-admin/internal/errors"
	"github.com/aaravmahajanofficial/catalog-admin/internal/models"
)

// AddImage appends a placeholder image whose alt text defaults to the
// current product name.
func (f *Form) AddImage() (models.ImageEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checkOpen(); err != nil {
		return models.ImageEntry{}, err
	}

	id := f.opts.ImageIDPrefix + strconv.FormatInt(f.now().UnixMilli(), 10)
	entry := f.images.Add(id, f.opts.PlaceholderImageURL, f.draft.Name)

	return entry, nil
}

func (f *Form) UpdateImage(i int, field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checkOpen(); err != nil {
		return err
	}
	if !f.images.UpdateField(i, field, value) {
		return errors.AddValidationError(field, "unknown image field")
	}

	return nil
}

func (f *Form) RemoveImage(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checkOpen(); err != nil {
		return err
	}
	f.images.Remove(id)

	return nil
}

func (f *Form) AddSpecification() (models.SpecificationEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checkOpen(); err != nil {
		return models.SpecificationEntry{}, err
	}

	return f.specs.Add(), nil
}

func (f *Form) UpdateSpecification(i int, field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checkOpen(); err != nil {
		return err
	}
	if !f.specs.UpdateField(i, field, value) {
		return errors.AddValidationError(field, "unknown specification field")
	}

	return nil
}

func (f *Form) RemoveSpecification(i int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checkOpen(); err != nil {
		return err
	}
	f.specs.Remove(i)

	return nil
}

// AddCompatibility appends an entry for the current calendar year.
func (f *Form) AddCompatibility() (models.CompatibilityEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checkOpen(); err != nil {
		return models.CompatibilityEntry{}, err
	}

	return f.compat.Add(f.now().Year()), nil
}

func (f *Form) UpdateCompatibility(i int, field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checkOpen(); err != nil {
		return err
	}
	if !f.compat.UpdateField(i, field, value) {
		return errors.AddValidationError(field, "unknown compatibility field")
	}

	return nil
}

func (f *Form) RemoveCompatibility(i int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checkOpen(); err != nil {
		return err
	}
	f.compat.Remove(i)

	return nil
}
