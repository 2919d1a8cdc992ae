package binder

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
)

const (
	// DefaultMaxMemory is the memory limit for parsing multipart forms (10MB).
	DefaultMaxMemory = 10 << 20
	// DefaultMaxJSONSize is the maximum size for JSON request bodies (1MB).
	DefaultMaxJSONSize = 1 << 20
)

// Values extracts submitted field values from a request. It understands
// application/x-www-form-urlencoded, multipart/form-data and JSON objects
// of scalar values. Requests without a body fall back to the query string.
//
// Only the first value of a repeated form key is kept, matching what a
// single control submits.
func Values(r *http.Request) (map[string]string, error) {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" || r.Body == nil || r.Body == http.NoBody {
		return first(r.URL.Query()), nil
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedMediaType, err)
	}

	switch {
	case mediaType == "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
		}
		return first(r.Form), nil

	case mediaType == "multipart/form-data":
		if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
		}
		values := first(r.URL.Query())
		if r.MultipartForm != nil {
			for k, v := range first(r.MultipartForm.Value) {
				values[k] = v
			}
		}
		return values, nil

	case mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"):
		return jsonValues(r.Body)

	default:
		return nil, fmt.Errorf("%w: got %s, expected form data or application/json", ErrUnsupportedMediaType, mediaType)
	}
}

func first(values map[string][]string) map[string]string {
	out := make(map[string]string, len(values))
	for k, v := range values {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}

func jsonValues(body io.Reader) (map[string]string, error) {
	data, err := io.ReadAll(io.LimitReader(body, DefaultMaxJSONSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read request body: %v", ErrFailedToParseJSON, err)
	}
	if len(data) > DefaultMaxJSONSize {
		return nil, fmt.Errorf("%w: request body too large (max %d bytes)", ErrFailedToParseJSON, DefaultMaxJSONSize)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return map[string]string{}, nil
	}

	var raw map[string]any
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToParseJSON, err)
	}

	out := make(map[string]string, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case nil:
			out[k] = ""
		case string:
			out[k] = val
		case json.Number:
			out[k] = val.String()
		case bool:
			out[k] = strconv.FormatBool(val)
		default:
			return nil, fmt.Errorf("%w: field %q must be a string, number, boolean or null", ErrFailedToParseJSON, k)
		}
	}
	return out, nil
}
