package form

import (
	"reflect"
	"strings"
	"sync"

	"github.com/aaravmahajanofficial/catalog-admin/internal/models"
	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator: field names are reported by their
// JSON names and "notblank" rejects whitespace-only strings.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})

		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})

		validate = v
	})

	return validate
}

var fieldMessages = map[string]string{
	"name":        "Product name is required",
	"description": "Description is required",
	"sku":         "SKU is required",
	"brand":       "Brand is required",
	"categoryId":  "Category is required",
	"price":       "Price must be greater than 0",
	"images":      "At least one image is required",
}

// Validate maps a draft and its images to field errors. An empty map means
// the draft can be submitted.
func Validate(d models.Draft, images []models.ImageEntry) models.ErrorMap {
	errs := models.ErrorMap{}

	if err := Validator().Struct(d); err != nil {
		if validationErrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range validationErrs {
				errs[fe.Field()] = draftMessage(fe)
			}
		}
	}

	if len(images) == 0 {
		errs["images"] = fieldMessages["images"]
	}

	return errs
}

// draftMessage prefers the form's wording for a field; it only ever sees the
// draft rules listed in fieldMessages.
func draftMessage(fe validator.FieldError) string {
	if msg, ok := fieldMessages[fe.Field()]; ok {
		return msg
	}

	return ruleMessage(fe.Field(), fe)
}

// ruleMessage describes the failed rule for the given field label.
func ruleMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return field + " is required"
	case "gt":
		return field + " must be greater than " + fe.Param()
	case "gte":
		return field + " must not be less than " + fe.Param()
	case "max":
		return field + " must be at most " + fe.Param() + " characters"
	case "oneof":
		return field + " must be one of: " + fe.Param()
	case "url":
		return field + " must be a valid URL"
	default:
		return field + " is invalid"
	}
}
