package binder

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/dmitrymomot/validate/pkg/validator"
)

// Descriptors derives field descriptors from struct tags, so a request type
// can declare its implicit rules next to its fields:
//
//	type SignupRequest struct {
//		Email    string `form:"email" input:"required,type=email"`
//		Username string `form:"username" input:"required,min=3,max=20"`
//		Bio      string `form:"bio"`
//	}
//
// The field name comes from the form tag, then the json tag, then the Go
// field name. Fields tagged form:"-" are skipped. Nested structs are not
// walked.
func Descriptors(v any) ([]validator.FieldDescriptor, error) {
	rt, _, err := structOf(v)
	if err != nil {
		return nil, err
	}

	descriptors := make([]validator.FieldDescriptor, 0, rt.NumField())
	for i := range rt.NumField() {
		sf := rt.Field(i)
		name, ok := fieldName(sf)
		if !ok {
			continue
		}

		d := validator.FieldDescriptor{Name: name}
		if err := parseInputTag(sf.Tag.Get("input"), &d); err != nil {
			return nil, fmt.Errorf("%w: field %s: %v", ErrInvalidTag, sf.Name, err)
		}
		descriptors = append(descriptors, d)
	}
	return descriptors, nil
}

// StructValues returns the current values of the struct's named fields
// formatted as strings. Nil pointers yield empty strings.
func StructValues(v any) (map[string]string, error) {
	rt, rv, err := structOf(v)
	if err != nil {
		return nil, err
	}

	values := make(map[string]string, rt.NumField())
	for i := range rt.NumField() {
		name, ok := fieldName(rt.Field(i))
		if !ok {
			continue
		}
		values[name] = formatValue(rv.Field(i))
	}
	return values, nil
}

func structOf(v any) (reflect.Type, reflect.Value, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, reflect.Value{}, ErrInvalidTarget
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, reflect.Value{}, ErrInvalidTarget
	}
	return rv.Type(), rv, nil
}

func fieldName(sf reflect.StructField) (string, bool) {
	if !sf.IsExported() {
		return "", false
	}
	for _, tagName := range []string{"form", "json"} {
		tag, ok := sf.Tag.Lookup(tagName)
		if !ok {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if name == "-" {
			return "", false
		}
		if name != "" {
			return name, true
		}
	}
	return sf.Name, true
}

// parseInputTag reads "required,type=email,min=3,max=20".
func parseInputTag(tag string, d *validator.FieldDescriptor) error {
	if tag == "" {
		return nil
	}
	for part := range strings.SplitSeq(tag, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, val, hasVal := strings.Cut(part, "=")
		switch key {
		case "required":
			if hasVal {
				return fmt.Errorf("required takes no value")
			}
			d.Required = true
		case "type":
			d.Type = strings.ToLower(val)
		case "min":
			if _, err := strconv.Atoi(val); err != nil {
				return fmt.Errorf("min must be an integer, got %q", val)
			}
			d.Min = val
		case "max":
			if _, err := strconv.Atoi(val); err != nil {
				return fmt.Errorf("max must be an integer, got %q", val)
			}
			d.Max = val
		default:
			return fmt.Errorf("unknown attribute %q", key)
		}
	}
	return nil
}

func formatValue(v reflect.Value) string {
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(v.Float(), 'f', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	default:
		return fmt.Sprint(v.Interface())
	}
}
