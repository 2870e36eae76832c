package utils

import (
	"encoding/json"
	"net/http"
)

func WriteJSON(w http.ResponseWriter, payload any, code int) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(payload)
}

func DecodeBody(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// Response is the uniform envelope used by every route: success flag, a
// human readable message and an optional payload.
// swagger:model Response
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func WriteData(w http.ResponseWriter, data any) error {
	return WriteJSON(w, Response{Success: true, Data: data}, http.StatusOK)
}

func WriteMessage(w http.ResponseWriter, message string, code int) error {
	return WriteJSON(w, Response{Success: true, Message: message}, code)
}

func WriteError(w http.ResponseWriter, message string, code int) error {
	return WriteJSON(w, Response{Success: false, Message: message}, code)
}

// MissingFieldsResponse enumerates every required field absent from a request.
// swagger:model MissingFieldsResponse
type MissingFieldsResponse struct {
	Success       bool     `json:"success"`
	Message       string   `json:"message"`
	MissingFields []string `json:"missingFields"`
}

func WriteMissingFields(w http.ResponseWriter, fields []string) error {
	return WriteJSON(w, MissingFieldsResponse{
		Success:       false,
		Message:       "Missing required fields",
		MissingFields: fields,
	}, http.StatusBadRequest)
}
