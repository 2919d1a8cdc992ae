// Package htmlform derives validator field descriptors from rendered form
// markup, so rules declared as HTML attributes need no separate config.
//
//	<input name="username" required min="3">
//	<input name="email" type="email" required>
//
// becomes
//
//	username: required, min:3
//	email:    required, email
//
// Scan walks the parsed document with golang.org/x/net/html and records every
// named input, textarea and select in document order, together with the
// value a browser would submit for it. ScanComponent does the same for an
// a-h/templ component by rendering it first.
//
//	res, err := htmlform.ScanComponent(ctx, views.SignupForm())
//	if err != nil {
//	    return err
//	}
//	form, err := res.Form(validator.WithValidations(cfg.Validations))
//	if err != nil {
//	    return err
//	}
//	state, err := form.ValidateAll(res.Values)
//
// Only the required, min, max and type attributes are recognised; minlength,
// pattern and the like are ignored.
package htmlform
