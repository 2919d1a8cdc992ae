package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dmitrymomot/validate/pkg/config"
	"github.com/dmitrymomot/validate/pkg/htmlform"
	"github.com/dmitrymomot/validate/pkg/logger"
	"github.com/dmitrymomot/validate/pkg/validator"
)

const (
	exitValid   = 0
	exitInvalid = 1
	exitUsage   = 2
)

var errUsage = errors.New("usage error")

type options struct {
	htmlPath        string
	validationsPath string
	valuesPath      string
	format          string
	verbose         bool
	set             assignments
}

// assignments collects repeated -set name=value flags.
type assignments map[string]string

func (a assignments) String() string {
	parts := make([]string, 0, len(a))
	for k, v := range a {
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, ",")
}

func (a assignments) Set(s string) error {
	name, value, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return fmt.Errorf("expected name=value, got %q", s)
	}
	a[name] = value
	return nil
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	opts := options{set: assignments{}}

	fs := flag.NewFlagSet("formcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.htmlPath, "html", "", "form markup to scan for fields and values (- for stdin)")
	fs.StringVar(&opts.validationsPath, "validations", os.Getenv("VALIDATE_VALIDATIONS_FILE"), "YAML or JSON validations file")
	fs.StringVar(&opts.valuesPath, "values", "", "JSON object of field values overriding the scanned ones")
	fs.StringVar(&opts.format, "format", "text", "output format: text or json")
	fs.BoolVar(&opts.verbose, "v", false, "log rule evaluation to stderr")
	fs.Var(opts.set, "set", "field value as name=value (repeatable)")

	if err := fs.Parse(args); err != nil {
		return opts, errors.Join(errUsage, err)
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("%w: unexpected arguments %v", errUsage, fs.Args())
	}
	if opts.format != "text" && opts.format != "json" {
		return opts, fmt.Errorf("%w: -format must be text or json", errUsage)
	}
	if opts.htmlPath == "" && opts.validationsPath == "" {
		return opts, fmt.Errorf("%w: at least one of -html or -validations is required", errUsage)
	}
	return opts, nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(stderr, "formcheck:", err)
		}
		return exitUsage
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	log := logger.New(
		logger.WithOutput(stderr),
		logger.WithTextFormatter(),
		logger.WithLevel(level),
	)

	form, values, err := buildForm(opts, stdin, log)
	if err != nil {
		log.Error("failed to prepare form", logger.Error(err))
		return exitUsage
	}

	if _, err := form.ValidateAll(values); err != nil {
		log.Error("validation aborted", logger.Error(err))
		return exitUsage
	}

	report := newReport(form)
	if err := report.write(stdout, opts.format); err != nil {
		log.Error("failed to write report", logger.Error(err))
		return exitUsage
	}
	if !report.AllValid {
		return exitInvalid
	}
	return exitValid
}

func buildForm(opts options, stdin io.Reader, log *slog.Logger) (*validator.Form, map[string]string, error) {
	formOpts := []validator.Option{validator.WithLogger(log)}
	values := map[string]string{}

	if opts.validationsPath != "" {
		validations, err := config.LoadValidations(opts.validationsPath)
		if err != nil {
			return nil, nil, err
		}
		formOpts = append(formOpts, validator.WithValidations(validations))
	}

	if opts.htmlPath != "" {
		res, err := scanFile(opts.htmlPath, stdin)
		if err != nil {
			return nil, nil, err
		}
		formOpts = append(formOpts, validator.WithFields(res.Fields...))
		for k, v := range res.Values {
			values[k] = v
		}
	}

	if opts.valuesPath != "" {
		data, err := os.ReadFile(opts.valuesPath)
		if err != nil {
			return nil, nil, err
		}
		var overrides map[string]string
		if err := json.Unmarshal(data, &overrides); err != nil {
			return nil, nil, fmt.Errorf("values file %s: %w", opts.valuesPath, err)
		}
		for k, v := range overrides {
			values[k] = v
		}
	}

	for k, v := range opts.set {
		values[k] = v
	}

	form, err := validator.New(formOpts...)
	if err != nil {
		return nil, nil, err
	}
	return form, values, nil
}

func scanFile(path string, stdin io.Reader) (htmlform.Result, error) {
	if path == "-" {
		return htmlform.Scan(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return htmlform.Result{}, err
	}
	defer f.Close()
	return htmlform.Scan(f)
}
