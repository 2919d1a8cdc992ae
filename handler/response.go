package handler

import (
	"encoding/json"
	"net/http"
)

// Response renders itself to an http.ResponseWriter.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// JSONResponse is the standard JSON response envelope
type JSONResponse struct {
	Data  any          `json:"data,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

type jsonResponse struct {
	status int
	body   JSONResponse
}

func (j jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	if j.status == http.StatusNoContent {
		return nil
	}
	return json.NewEncoder(w).Encode(j.body)
}

// JSON wraps v in the data envelope.
func JSON(v any, status int) Response {
	return jsonResponse{status: status, body: JSONResponse{Data: v}}
}

// JSONError renders err with the status classify picks for it. Server-side
// failures hide the error text.
func JSONError(err error) Response {
	status, detail := errorDetail(err)
	return jsonResponse{
		status: status,
		body:   JSONResponse{Error: detail},
	}
}

// errorDetail classifies err; server error messages are replaced by the
// status text.
func errorDetail(err error) (int, *ErrorDetail) {
	status, code := classify(err)
	message := err.Error()
	if status >= http.StatusInternalServerError {
		message = http.StatusText(status)
	}
	return status, &ErrorDetail{Code: code, Message: message}
}

// NoContent renders an empty 204 response.
func NoContent() Response {
	return noContent{}
}

type noContent struct{}

func (noContent) Render(w http.ResponseWriter, r *http.Request) error {
	w.WriteHeader(http.StatusNoContent)
	return nil
}
