package htmlform

import "errors"

var (
	// ErrParseHTML is returned when markup cannot be parsed.
	ErrParseHTML = errors.New("failed to parse form markup")

	// ErrRenderComponent is returned when a templ component fails to render.
	ErrRenderComponent = errors.New("failed to render component")

	// ErrNilComponent is returned when ScanComponent is given a nil component.
	ErrNilComponent = errors.New("component is nil")
)
