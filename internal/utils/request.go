package utils

import (
	stdErrors "errors"
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/catalog-admin/internal/errors"
	"github.com/aaravmahajanofficial/catalog-admin/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// ParseAndValidate decodes the body into dest and validates it. On failure
// the error response is already written.
func ParseAndValidate(r *http.Request, w http.ResponseWriter, dest any, validate *validator.Validate) bool {

	if err := DecodeJSONBody(r, dest); err != nil {
		slog.Warn("Invalid request", slog.String("error", err.Error()), slog.String("endpoint", r.URL.Path))
		response.Error(w, errors.BadRequestError("Invalid request body").WithDetail(err.Error()))
		return false
	}

	if err := validate.Struct(dest); err != nil {
		var validationErrs validator.ValidationErrors
		if !stdErrors.As(err, &validationErrs) {
			slog.Error("Unexpected validation error", slog.String("error", err.Error()))
			response.Error(w, errors.InternalError("Failed to validate request").WithError(err))
			return false
		}

		fields := make(map[string]string, len(validationErrs))
		for _, fe := range validationErrs {
			fields[fe.Field()] = fe.Field() + " failed " + fe.Tag()
		}

		slog.Warn("Validation failed", slog.Any("fields", fields))
		response.Error(w, errors.ValidationError("Invalid input data").WithFields(fields))
		return false
	}

	return true

}
