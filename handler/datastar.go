package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/validate/pkg/validator"
)

// DataStar detection constants
const (
	// DataStarAcceptHeader is the Accept header value that indicates a DataStar request
	DataStarAcceptHeader = "text/event-stream"

	// DataStarQueryParam is the query parameter used by DataStar for signals
	DataStarQueryParam = "datastar"

	// SignalsKey is the signal the validation summary is patched into
	SignalsKey = "validation"
)

// IsDataStar checks if the request is a DataStar request.
func IsDataStar(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), DataStarAcceptHeader) {
		return true
	}
	if r.URL.Query().Has(DataStarQueryParam) {
		return true
	}
	return strings.Contains(r.Header.Get("Content-Type"), "application/x-datastar")
}

// signalValues reads the request's DataStar signals as field values.
// Non-string scalars are formatted; nested values are skipped.
func signalValues(r *http.Request) (map[string]string, error) {
	signals := map[string]any{}
	if err := datastar.ReadSignals(r, &signals); err != nil {
		return nil, HTTPError{Code: http.StatusBadRequest, Key: "invalid_signals", Err: err}
	}

	values := make(map[string]string, len(signals))
	for k, v := range signals {
		switch val := v.(type) {
		case nil:
			values[k] = ""
		case string:
			values[k] = val
		case bool, float64, json.Number:
			b, _ := json.Marshal(val)
			values[k] = string(b)
		}
	}
	return values, nil
}

// signalsResponse patches the summary into the client's signals over SSE.
type signalsResponse struct {
	summary validator.Summary
}

func (s signalsResponse) Render(w http.ResponseWriter, r *http.Request) error {
	data, err := json.Marshal(map[string]any{SignalsKey: s.summary})
	if err != nil {
		return err
	}
	sse := datastar.NewSSE(w, r)
	return sse.PatchSignals(data)
}

// SignalsError returns a response that patches err into the client's signals
// as {"validation":{"error":{"code":…,"message":…}}}. SSE responses always
// carry 200; the status lives in the error code.
func SignalsError(err error) Response {
	_, detail := errorDetail(err)
	return signalsError{detail: detail}
}

type signalsError struct {
	detail *ErrorDetail
}

func (s signalsError) Render(w http.ResponseWriter, r *http.Request) error {
	data, err := json.Marshal(map[string]any{
		SignalsKey: map[string]any{"error": s.detail},
	})
	if err != nil {
		return err
	}
	sse := datastar.NewSSE(w, r)
	return sse.PatchSignals(data)
}
