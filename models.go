package main

import (
	"encoding/json"
	"net/http"
)

// APIError is the data model sent when an error occurred during request processing.
type APIError struct {
	RequestID string `json:"requestid"`
	Status    int    `json:"status"`
	Message   string `json:"message"`
}

// APIMessage is the data model sent when an operation succeed
// without any record to return, like update and delete.
type APIMessage struct {
	Message string `json:"message"`
}

func NewAPIError(requestid string, status int, message string) *APIError {
	return &APIError{
		RequestID: requestid,
		Status:    status,
		Message:   message,
	}
}

// WriteErrorResponse sends an error response with its status code.
func WriteErrorResponse(w http.ResponseWriter, errResp *APIError) error {
	return WriteJSONResponse(w, errResp.Status, errResp)
}

// WriteJSONResponse serializes any payload with a given status code.
func WriteJSONResponse(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}
