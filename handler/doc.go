// Package handler exposes form instances over HTTP so browser hosts can
// drive the per-field trigger remotely.
//
// A client registers the form's field set once (POST /forms, either JSON
// field descriptors or the form's HTML markup) and receives an instance ID.
// Each change, blur or submit event then posts the field's value to
// /forms/{id}/validate/{field}; the response carries the field's messages
// and the aggregate error_messages, error_count and all_valid values.
//
// Requests sent by DataStar (Accept: text/event-stream) read field values
// from the request signals and answer with a signals patch under the
// "validation" key instead of a JSON body:
//
//	<input name="email" data-bind-email
//	       data-on-blur="@post('/forms/' + $formId + '/validate/email')">
//	<span data-text="$validation.error_messages.email"></span>
//
// Instances live in a store.Store; the handler serializes updates to one
// instance so concurrent triggers never lose each other's results.
package handler
