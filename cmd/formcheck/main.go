// Command formcheck validates a form offline: it scans the form's HTML
// markup for fields and their current values, applies the explicit
// validations file, and reports the messages per field.
//
//	formcheck -html signup.html -validations validations.yaml -set username=ab
//
// The exit status is 0 when every assigned field is valid, 1 when any field
// has messages and 2 on usage or configuration errors.
package main

import (
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
