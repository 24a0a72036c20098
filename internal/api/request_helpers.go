package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// validate is the shared request validator. A single instance caches struct
// metadata across requests.
var validate = validator.New()

// DecodeAndValidate parses the request body into dst and checks its
// validation tags. On failure it writes a 400 response and returns false;
// handlers just return.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return false
	}

	if err := validate.Struct(dst); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Request failed validation: "+err.Error())
		return false
	}

	return true
}
