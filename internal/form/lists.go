package form

import (
	"slices"
	"strconv"
	"strings"

	"github.com/aaravmahajanofficial/catalog-admin/internal/models"
)

// ImageList keeps product images in display order. The head of the list is
// the main image; stored roles are never consulted.
//
// Removing an image does not renumber the Position of the remaining ones.
type ImageList struct {
	entries []models.ImageEntry
}

func (l *ImageList) Len() int {
	return len(l.entries)
}

func (l *ImageList) Add(id, url, alt string) models.ImageEntry {
	role := models.ImageRoleGallery
	if len(l.entries) == 0 {
		role = models.ImageRoleMain
	}

	entry := models.ImageEntry{
		ID:       l.uniqueID(id),
		URL:      url,
		Alt:      alt,
		Position: len(l.entries) + 1,
		Role:     role,
	}
	l.entries = append(slices.Clone(l.entries), entry)

	return entry
}

// UpdateField reports false for an unknown field. Out-of-range indices are
// ignored.
func (l *ImageList) UpdateField(i int, field, value string) bool {
	var apply func(e *models.ImageEntry)

	switch field {
	case "url":
		apply = func(e *models.ImageEntry) { e.URL = value }
	case "alt":
		apply = func(e *models.ImageEntry) { e.Alt = value }
	default:
		return false
	}

	if i < 0 || i >= len(l.entries) {
		return true
	}

	next := slices.Clone(l.entries)
	entry := next[i]
	apply(&entry)
	next[i] = entry
	l.entries = next

	return true
}

// Remove drops the image with the given ID and reports whether one existed.
func (l *ImageList) Remove(id string) bool {
	i := slices.IndexFunc(l.entries, func(e models.ImageEntry) bool { return e.ID == id })
	if i < 0 {
		return false
	}
	l.entries = slices.Delete(slices.Clone(l.entries), i, i+1)

	return true
}

// Entries returns a copy with roles derived from list order.
func (l *ImageList) Entries() []models.ImageEntry {
	out := make([]models.ImageEntry, len(l.entries))
	for i, e := range l.entries {
		e.Role = models.ImageRoleGallery
		if i == 0 {
			e.Role = models.ImageRoleMain
		}
		out[i] = e
	}

	return out
}

func (l *ImageList) Main() (models.ImageEntry, bool) {
	if len(l.entries) == 0 {
		return models.ImageEntry{}, false
	}

	e := l.entries[0]
	e.Role = models.ImageRoleMain

	return e, true
}

// two adds in the same millisecond would otherwise share an ID
func (l *ImageList) uniqueID(id string) string {
	candidate := id
	for n := 1; l.hasID(candidate); n++ {
		candidate = id + "-" + strconv.Itoa(n)
	}

	return candidate
}

func (l *ImageList) hasID(id string) bool {
	return slices.ContainsFunc(l.entries, func(e models.ImageEntry) bool { return e.ID == id })
}

type SpecificationList struct {
	entries []models.SpecificationEntry
}

func (l *SpecificationList) Len() int {
	return len(l.entries)
}

func (l *SpecificationList) Add() models.SpecificationEntry {
	entry := models.SpecificationEntry{Group: models.DefaultSpecificationGroup}
	l.entries = append(slices.Clone(l.entries), entry)

	return entry
}

func (l *SpecificationList) UpdateField(i int, field, value string) bool {
	var apply func(e *models.SpecificationEntry)

	switch field {
	case "name":
		apply = func(e *models.SpecificationEntry) { e.Name = value }
	case "value":
		apply = func(e *models.SpecificationEntry) { e.Value = value }
	case "group":
		apply = func(e *models.SpecificationEntry) { e.Group = value }
	default:
		return false
	}

	if i < 0 || i >= len(l.entries) {
		return true
	}

	next := slices.Clone(l.entries)
	entry := next[i]
	apply(&entry)
	next[i] = entry
	l.entries = next

	return true
}

func (l *SpecificationList) Remove(i int) bool {
	if i < 0 || i >= len(l.entries) {
		return false
	}
	l.entries = slices.Delete(slices.Clone(l.entries), i, i+1)

	return true
}

func (l *SpecificationList) Entries() []models.SpecificationEntry {
	return cloneSlice(l.entries)
}

type CompatibilityList struct {
	entries []models.CompatibilityEntry
}

func (l *CompatibilityList) Len() int {
	return len(l.entries)
}

func (l *CompatibilityList) Add(year int) models.CompatibilityEntry {
	entry := models.CompatibilityEntry{Year: year}
	l.entries = append(slices.Clone(l.entries), entry)

	return entry
}

// UpdateField coerces "year" the same way numeric draft fields are coerced.
func (l *CompatibilityList) UpdateField(i int, field, value string) bool {
	var apply func(e *models.CompatibilityEntry)

	switch field {
	case "make":
		apply = func(e *models.CompatibilityEntry) { e.Make = value }
	case "model":
		apply = func(e *models.CompatibilityEntry) { e.Model = value }
	case "year":
		year := parseInt(strings.TrimSpace(value))
		apply = func(e *models.CompatibilityEntry) { e.Year = year }
	default:
		return false
	}

	if i < 0 || i >= len(l.entries) {
		return true
	}

	next := slices.Clone(l.entries)
	entry := next[i]
	apply(&entry)
	next[i] = entry
	l.entries = next

	return true
}

func (l *CompatibilityList) Remove(i int) bool {
	if i < 0 || i >= len(l.entries) {
		return false
	}
	l.entries = slices.Delete(slices.Clone(l.entries), i, i+1)

	return true
}

func (l *CompatibilityList) Entries() []models.CompatibilityEntry {
	return cloneSlice(l.entries)
}
