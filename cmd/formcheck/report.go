package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrymomot/validate/pkg/validator"
)

type fieldReport struct {
	Field    string   `json:"field"`
	Rules    []string `json:"rules"`
	Messages []string `json:"messages"`
}

type report struct {
	Fields     []fieldReport `json:"fields"`
	ErrorCount int           `json:"error_count"`
	AllValid   bool          `json:"all_valid"`
}

func newReport(form *validator.Form) report {
	summary := form.Summary()
	rules := form.Assignment().Strings()
	state := form.State()
	invalid, _ := validator.AsFieldErrors(state.Err())

	r := report{
		ErrorCount: invalid.Count(),
		AllValid:   summary.AllValid,
	}
	for _, field := range state.Fields() {
		messages := invalid.Messages(field)
		if messages == nil {
			messages = []string{}
		}
		r.Fields = append(r.Fields, fieldReport{
			Field:    field,
			Rules:    rules[field],
			Messages: messages,
		})
	}
	return r
}

func (r report) write(w io.Writer, format string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}
	return r.writeText(w)
}

func (r report) writeText(w io.Writer) error {
	renderer := lipgloss.NewRenderer(w)
	okStyle := renderer.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	failStyle := renderer.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	ruleStyle := renderer.NewStyle().Foreground(lipgloss.Color("8"))
	msgStyle := renderer.NewStyle().PaddingLeft(4)

	var sb strings.Builder
	for _, f := range r.Fields {
		mark := okStyle.Render("ok  ")
		if len(f.Messages) > 0 {
			mark = failStyle.Render("FAIL")
		}
		fmt.Fprintf(&sb, "%s %s %s\n", mark, f.Field, ruleStyle.Render("["+strings.Join(f.Rules, ", ")+"]"))
		for _, msg := range f.Messages {
			sb.WriteString(msgStyle.Render(msg))
			sb.WriteString("\n")
		}
	}

	var status string
	switch {
	case r.AllValid:
		status = okStyle.Render("all fields valid")
	case r.ErrorCount == 0:
		status = failStyle.Render("no fields validated")
	default:
		status = failStyle.Render(fmt.Sprintf("%d error(s)", r.ErrorCount))
	}
	sb.WriteString(status)
	sb.WriteString("\n")

	_, err := io.WriteString(w, sb.String())
	return err
}
