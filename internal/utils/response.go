package utils

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}

// SuccessResponse represents a standardized success response
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// RespondWithError sends a standardized error response
func RespondWithError(w http.ResponseWriter, code int, message string) {
	logrus.WithFields(logrus.Fields{
		"code":    code,
		"message": message,
	}).Debug("API error response")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	response := ErrorResponse{
		Error:   getErrorType(code),
		Message: message,
		Code:    code,
	}

	json.NewEncoder(w).Encode(response)
}

// RespondWithJSON sends a JSON response
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		logrus.WithError(err).Error("Failed to encode JSON response")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(code)
	w.Write(body)
}

// RespondWithSuccess wraps data in a SuccessResponse
func RespondWithSuccess(w http.ResponseWriter, code int, data interface{}, message string) {
	RespondWithJSON(w, code, SuccessResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

func BadRequestError(w http.ResponseWriter, message string) {
	RespondWithError(w, http.StatusBadRequest, message)
}

func InternalServerError(w http.ResponseWriter, message string) {
	RespondWithError(w, http.StatusInternalServerError, message)
}

func ValidationError(w http.ResponseWriter, message string) {
	RespondWithError(w, http.StatusBadRequest, "Validation failed: "+message)
}

// getErrorType returns a human-readable error type based on status code
func getErrorType(code int) string {
	switch code {
	case http.StatusBadRequest:
		return "Bad Request"
	case http.StatusForbidden:
		return "Forbidden"
	case http.StatusNotFound:
		return "Not Found"
	case http.StatusMethodNotAllowed:
		return "Method Not Allowed"
	case http.StatusUnsupportedMediaType:
		return "Unsupported Media Type"
	case http.StatusTooManyRequests:
		return "Rate Limited"
	case http.StatusInternalServerError:
		return "Internal Server Error"
	case http.StatusServiceUnavailable:
		return "Service Unavailable"
	default:
		return "Error"
	}
}
