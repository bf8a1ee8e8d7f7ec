package httpx

import (
	"encoding/json"
	"net/http"
)

// SuccessResponse is the envelope for every successful API response.
type SuccessResponse struct {
	Status  string      `json:"status"`
	Details string      `json:"details"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse is the envelope for every failed API response. Details is
// either a single human-readable string or a list of strings, one per
// violated field.
type ErrorResponse struct {
	Status  string      `json:"status"`
	Code    string      `json:"code"`
	Details interface{} `json:"details"`
	Data    interface{} `json:"data,omitempty"`
}

func JSONSuccess(w http.ResponseWriter, details string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(SuccessResponse{
		Status:  "success",
		Details: details,
		Data:    data,
	})
}

func JSONSuccessCreated(w http.ResponseWriter, details string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(SuccessResponse{
		Status:  "success",
		Details: details,
		Data:    data,
	})
}

func JSONError(w http.ResponseWriter, statusCode int, code string, details interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Status:  "error",
		Code:    code,
		Details: details,
	})
}
