package apperrors

import (
	"encoding/json"
	"errors"
	"net/http"
)

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// WriteError translates err into the `{error: message}` wire contract.
// Errors outside the taxonomy are masked as a generic internal error;
// callers are expected to have logged them.
func WriteError(w http.ResponseWriter, err error) {
	var e *Error
	if errors.As(err, &e) {
		resp := map[string]interface{}{"error": e.Message}
		if len(e.Fields) > 0 {
			resp["emptyFields"] = e.Fields
		}
		WriteJSON(w, e.HTTPStatus(), resp)
		return
	}
	WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}
