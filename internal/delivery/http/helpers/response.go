package helpers

import (
	"encoding/json"
	"net/http"
)

// Error codes for API error responses. Use these with WriteJSONError.
const (
	ErrCodeMissingField          = "missing_field"
	ErrCodeBadRequest            = "bad_request"
	ErrCodeUnauthorized          = "unauthorized"
	ErrCodeForbidden             = "forbidden"
	ErrCodeNotFound              = "not_found"
	ErrCodeConflict              = "conflict"
	ErrCodeCannotModifyCompleted = "cannot_modify_completed"
	ErrCodeInternalError         = "internal_error"
)

// Envelope types.
const (
	TypeSuccess = "success"
	TypeError   = "error"
)

// APIResponse is the standardized envelope for all API responses.
// On success Type is "success" and Data is set; on error Type is "error" and Code and Message are set.
// swagger:model APIResponse
type APIResponse struct {
	Type    string `json:"type"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// WriteJSON sets Content-Type to application/json, writes statusCode, and encodes v as is.
func WriteJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteJSONSuccess writes a success envelope carrying data and an optional message.
func WriteJSONSuccess(w http.ResponseWriter, statusCode int, message string, data any) {
	WriteJSON(w, statusCode, APIResponse{Type: TypeSuccess, Message: message, Data: data})
}

// WriteJSONError writes an error envelope with the given code and message and no data.
func WriteJSONError(w http.ResponseWriter, statusCode int, code, message string) {
	WriteJSON(w, statusCode, APIResponse{Type: TypeError, Code: code, Message: message})
}
