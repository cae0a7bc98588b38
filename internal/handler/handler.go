// Package handler exposes the record store over HTTP. Request bodies are
// decoded into typed DTOs and validated before any store call; the store
// never sees raw user input.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"flipdeck-api/pkg/apierror"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// decode parses and validates a JSON request body into dst.
func decode(r *http.Request, dst interface{}) error {
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apierror.BadRequest("invalid JSON body")
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			details := make([]apierror.FieldError, 0, len(verrs))
			for _, fe := range verrs {
				details = append(details, apierror.FieldError{
					Field:   fe.Field(),
					Message: "failed " + fe.Tag() + " validation",
				})
			}
			return apierror.Validation("request validation failed", details...)
		}
		return apierror.BadRequest("invalid request")
	}
	return nil
}

// idParam parses a numeric URL parameter.
func idParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apierror.BadRequest(name + " must be a positive integer")
	}
	return id, nil
}
