package helpers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Validator is implemented by request DTOs that check for required fields.
// Validate returns the names of the missing fields; nil or empty means valid.
type Validator interface {
	Validate() []string
}

// DecodeAndValidate decodes the request body into dest and, if dest implements
// Validator, runs Validate(). Unknown fields are ignored and an empty body decodes
// as an empty object. On failure it writes a 400 JSON error and returns false.
// Callers should return immediately when DecodeAndValidate returns false.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dest any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dest); err != nil && !errors.Is(err, io.EOF) {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	if v, ok := dest.(Validator); ok {
		if missing := v.Validate(); len(missing) > 0 {
			WriteJSONError(w, http.StatusBadRequest, ErrCodeMissingField, "Missing required field: "+strings.Join(missing, ", "))
			return false
		}
	}
	return true
}

// MissingStrings returns the names whose values are blank, in the order given.
// Pairs are name, value.
func MissingStrings(pairs ...string) []string {
	var missing []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			missing = append(missing, pairs[i])
		}
	}
	return missing
}
