package utils

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/mayagamaleldin/graduationproject/models"
)

// WriteFormattedJSON writes data as indented JSON.
func WriteFormattedJSON(w http.ResponseWriter, data interface{}) {
	WriteJSONStatus(w, http.StatusOK, data)
}

// WriteJSONStatus writes data as indented JSON with the given status.
func WriteJSONStatus(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "    ")
	encoder.Encode(data)
}

// WriteSuccessResponse writes a success envelope.
func WriteSuccessResponse(w http.ResponseWriter, data interface{}) {
	WriteFormattedJSON(w, models.NewSuccessResponse(data))
}

// WriteErrorResponse writes an error envelope with the code's default message.
func WriteErrorResponse(w http.ResponseWriter, status, code int, data interface{}) {
	WriteJSONStatus(w, status, models.NewErrorResponse(code, data))
}

// WriteCustomErrorResponse writes an error envelope with a custom message.
func WriteCustomErrorResponse(w http.ResponseWriter, status, code int, message string, data interface{}) {
	WriteJSONStatus(w, status, models.NewCustomErrorResponse(code, message, data))
}

// HandleServiceError maps a store error onto a not-found or server error envelope.
func HandleServiceError(w http.ResponseWriter, err error, notFound func(error) bool, noDataCode int) {
	if notFound != nil && notFound(err) {
		WriteErrorResponse(w, http.StatusNotFound, noDataCode, map[string]interface{}{})
		return
	}
	WriteCustomErrorResponse(w, http.StatusInternalServerError, models.CodeDatabaseError, err.Error(), map[string]interface{}{})
}

// QueryInt reads a non-negative integer query parameter, falling back to def.
// ok is false when the parameter is present but malformed.
func QueryInt(r *http.Request, name string, def int) (value int, ok bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def, false
	}
	return n, true
}
