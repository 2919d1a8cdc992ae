package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Validations file formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// LoadValidations reads an explicit validations file: a mapping from field
// name to an ordered list of rule specifiers such as "required" or "min:3".
// The format follows the extension (.yaml, .yml or .json).
//
//	email:
//	  - required
//	  - email
//	username: [required, "min:3", "max:20"]
func LoadValidations(path string) (map[string][]string, error) {
	var format string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = FormatYAML
	case ".json":
		format = FormatJSON
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrReadingValidations, err)
	}
	return ParseValidations(data, format)
}

// ParseValidations decodes a validations document. A field mapped to an
// empty list is kept: it disables the field's implicit rules.
func ParseValidations(data []byte, format string) (map[string][]string, error) {
	out := map[string][]string{}

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &out); err != nil {
			return nil, errors.Join(ErrParsingValidations, err)
		}
	case FormatJSON:
		if len(bytes.TrimSpace(data)) == 0 {
			return out, nil
		}
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&out); err != nil {
			return nil, errors.Join(ErrParsingValidations, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	if out == nil {
		out = map[string][]string{}
	}
	for field, specs := range out {
		if field == "" {
			return nil, fmt.Errorf("%w: empty field name", ErrParsingValidations)
		}
		if specs == nil {
			out[field] = []string{}
		}
	}
	return out, nil
}
