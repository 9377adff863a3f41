package handlers

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/kderen/bugtrail/internal/models"
	pkghttp "github.com/kderen/bugtrail/pkg/http"
)

// validate is the shared validator instance; it is safe for concurrent use
var validate = validator.New()

// decodeAndValidate decodes the request body into dst and runs struct
// validation. Writes the error response itself and returns false on any
// failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := pkghttp.DecodeJSON(r, dst); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return false
	}

	if err := validate.Struct(dst); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			field := validationErrors[0]
			pkghttp.WriteBadRequest(w, "invalid value for field: "+field.Field())
			return false
		}
		pkghttp.WriteBadRequest(w, "invalid request")
		return false
	}

	return true
}

// writeServiceError maps service sentinel errors to the uniform response
// envelope
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrBadCredentials):
		pkghttp.WriteUnauthorized(w, "Email or password is incorrect. Please try again")
	case errors.Is(err, models.ErrAccountLocked):
		pkghttp.WriteUnauthorized(w, "Your account has been locked. Please try again in a few minutes")
	case errors.Is(err, models.ErrAccountDisabled):
		pkghttp.WriteBadRequest(w, "Your account is disabled. Please contact administration")
	case errors.Is(err, models.ErrUnauthorized):
		pkghttp.WriteUnauthorized(w, "You need to log in to access this resource")
	case errors.Is(err, models.ErrForbidden):
		pkghttp.WriteForbidden(w, "You don't have permission to access this resource")
	case errors.Is(err, models.ErrNotFound):
		pkghttp.WriteNotFound(w, "Resource not found")
	case errors.Is(err, models.ErrConflict):
		pkghttp.WriteConflict(w, "Resource already exists")
	case errors.Is(err, models.ErrBadRequest):
		pkghttp.WriteBadRequest(w, "Invalid request")
	default:
		pkghttp.WriteInternalError(w, "An error occurred processing the request")
	}
}
