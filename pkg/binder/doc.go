// Package binder feeds the validator from Go-side hosts: Values pulls the
// submitted field values out of an *http.Request, while Descriptors and
// StructValues read a request struct's tags and current values.
//
// Supported request bodies:
//   - application/x-www-form-urlencoded
//   - multipart/form-data (values only, files are ignored)
//   - application/json objects of strings, numbers, booleans and nulls
//
// Requests without a body are read from the query string.
//
// Struct tags:
//   - `form:"name"`  - field name (falls back to the json tag, then the Go name)
//   - `form:"-"`     - skip the field
//   - `input:"required,type=email,min=3,max=20"` - attribute-style rules
//
// Example:
//
//	fields, err := binder.Descriptors(SignupRequest{})
//	if err != nil {
//		return err
//	}
//	form, err := validator.New(validator.WithFields(fields...))
//	...
//	values, err := binder.Values(r)
//	if err != nil {
//		return err
//	}
//	state, err := form.ValidateAll(values)
package binder
