package models

import "maps"

// ErrorMap holds the current field-level failures keyed by field name.
type ErrorMap map[string]string

// general-purpose key for errors that do not belong to one field.
const SubmitErrorKey = "submit"

func (m ErrorMap) Has(key string) bool {
	_, ok := m[key]
	return ok
}

func (m ErrorMap) Clone() ErrorMap {
	if m == nil {
		return ErrorMap{}
	}
	return maps.Clone(m)
}

type FormState string

const (
	FormStateIdle              FormState = "idle"
	FormStateValidating        FormState = "validating"
	FormStateResolvingCategory FormState = "resolving_category"
	FormStatePersisting        FormState = "persisting"
	FormStateClosed            FormState = "closed"
)

// FormSnapshot is a read-only copy of a form session used for rendering.
type FormSnapshot struct {
	ID              string               `json:"id"`
	ProductID       string               `json:"productId,omitempty"`
	Draft           Draft                `json:"draft"`
	Images          []ImageEntry         `json:"images"`
	MainImage       *ImageEntry          `json:"mainImage,omitempty"`
	Specifications  []SpecificationEntry `json:"specifications"`
	Compatibility   []CompatibilityEntry `json:"compatibility"`
	Errors          ErrorMap             `json:"errors"`
	State           FormState            `json:"state"`
	ImportPanelOpen bool                 `json:"importPanelOpen"`
}

type OpenFormRequest struct {
	ProductID string `json:"productId,omitempty" validate:"omitempty,uuid"`
}

type SetFieldRequest struct {
	Path    string `json:"path" validate:"required,max=64"`
	Value   string `json:"value"`
	Checked bool   `json:"checked"`
}

type UpdateEntryRequest struct {
	Field string `json:"field" validate:"required,max=32"`
	Value string `json:"value"`
}
