// Package handlers holds the shared HTTP response helpers used by the
// per-endpoint handler packages.
package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
)

type errorResponse struct {
	Error string `json:"error"`
}

// RespondJSON writes a JSON body with the given status.
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// RespondBadRequest writes a 400 with an error message.
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondJSON(w, http.StatusBadRequest, errorResponse{Error: message})
}

// RespondNotFound writes a 404 with an error message.
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondJSON(w, http.StatusNotFound, errorResponse{Error: message})
}

// RespondInternalError writes a 500 with a generic message.
func RespondInternalError(w http.ResponseWriter) {
	RespondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}

// RespondAttachment writes a binary download with the given file name.
func RespondAttachment(w http.ResponseWriter, fileName, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	// RFC 5987 filename* keeps the Korean file name intact.
	w.Header().Set("Content-Disposition", `attachment; filename*=UTF-8''`+url.PathEscape(fileName))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
