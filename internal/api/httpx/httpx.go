package httpx

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the error shape of read endpoints: a short machine tag plus a
// user-facing message.
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Result is the tagged outcome of an admin write action.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, tag, message string) {
	WriteJSON(w, status, ErrorBody{Error: tag, Message: message})
}

// WriteResult maps an action error to the two-variant result body.
func WriteResult(w http.ResponseWriter, err error) {
	if err != nil {
		WriteJSON(w, http.StatusBadRequest, Result{Success: false, Error: err.Error()})
		return
	}
	WriteJSON(w, http.StatusOK, Result{Success: true})
}
