package htmlform

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/a-h/templ"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dmitrymomot/validate/pkg/validator"
)

// Result holds what a scan found: one descriptor per named control in
// document order, and the controls' current values keyed by name.
type Result struct {
	Fields []validator.FieldDescriptor
	Values map[string]string
}

// Names returns the field names in document order, without duplicates.
func (r Result) Names() []string {
	seen := make(map[string]bool, len(r.Fields))
	names := make([]string, 0, len(r.Fields))
	for _, f := range r.Fields {
		if !seen[f.Name] {
			seen[f.Name] = true
			names = append(names, f.Name)
		}
	}
	return names
}

// Buttons and similar inputs carry no user value.
var skippedInputTypes = map[string]bool{
	"submit": true,
	"button": true,
	"reset":  true,
	"image":  true,
}

// Scan parses markup and collects every named input, textarea and select.
// Only the required, min, max and type attributes feed the descriptor.
func Scan(r io.Reader) (Result, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return Result{}, errors.Join(ErrParseHTML, err)
	}

	res := Result{Values: make(map[string]string)}
	walk(doc, &res)
	return res, nil
}

// ScanString is Scan over a string.
func ScanString(markup string) (Result, error) {
	return Scan(strings.NewReader(markup))
}

// ScanComponent renders a templ component and scans the output.
func ScanComponent(ctx context.Context, c templ.Component) (Result, error) {
	if c == nil {
		return Result{}, ErrNilComponent
	}

	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		return Result{}, errors.Join(ErrRenderComponent, err)
	}
	return Scan(&buf)
}

func walk(n *html.Node, res *Result) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Input, atom.Textarea, atom.Select:
			collect(n, res)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, res)
	}
}

func collect(n *html.Node, res *Result) {
	name, ok := attr(n, "name")
	if !ok || name == "" {
		return
	}

	typ, _ := attr(n, "type")
	typ = strings.ToLower(strings.TrimSpace(typ))
	if n.DataAtom == atom.Input && skippedInputTypes[typ] {
		return
	}

	_, required := attr(n, "required")
	minAttr, _ := attr(n, "min")
	maxAttr, _ := attr(n, "max")

	res.Fields = append(res.Fields, validator.FieldDescriptor{
		Name:     name,
		Required: required,
		Min:      minAttr,
		Max:      maxAttr,
		Type:     typ,
	})

	if value, ok := currentValue(n, typ); ok {
		res.Values[name] = value
	} else if _, seen := res.Values[name]; !seen {
		res.Values[name] = ""
	}
}

// currentValue mirrors what a browser would submit for the control.
// Unchecked checkboxes and radios report no value.
func currentValue(n *html.Node, typ string) (string, bool) {
	switch n.DataAtom {
	case atom.Textarea:
		return textContent(n), true
	case atom.Select:
		return selectedOption(n)
	}

	switch typ {
	case "checkbox", "radio":
		if _, checked := attr(n, "checked"); !checked {
			return "", false
		}
		if v, ok := attr(n, "value"); ok {
			return v, true
		}
		return "on", true
	}

	v, _ := attr(n, "value")
	return v, true
}

func selectedOption(sel *html.Node) (string, bool) {
	var first, selected *html.Node
	var find func(*html.Node)
	find = func(n *html.Node) {
		for c := n.FirstChild; c != nil && selected == nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.DataAtom == atom.Option {
				if first == nil {
					first = c
				}
				if _, ok := attr(c, "selected"); ok {
					selected = c
				}
				continue
			}
			find(c)
		}
	}
	find(sel)

	opt := selected
	if opt == nil {
		opt = first
	}
	if opt == nil {
		return "", false
	}
	if v, ok := attr(opt, "value"); ok {
		return v, true
	}
	return strings.TrimSpace(textContent(opt)), true
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var collectText func(*html.Node)
	collectText = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collectText(c)
		}
	}
	collectText(n)
	return sb.String()
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// Form builds a validator.Form whose implicit rules come from the scanned
// fields. Options such as explicit validations still apply on top.
func (r Result) Form(opts ...validator.Option) (*validator.Form, error) {
	opts = append(opts, validator.WithFields(r.Fields...))
	return validator.New(opts...)
}
