package shared

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// DecodeJSON decodes the request body into v.
func DecodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// ValidateRequest validates v with its own Validate method when present,
// falling back to struct tag validation.
func ValidateRequest(v interface{}) error {
	if withValidate, ok := v.(interface{ Validate() error }); ok {
		return withValidate.Validate()
	}
	return validate.Struct(v)
}
