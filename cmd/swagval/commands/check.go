package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"sort"
	"strings"

	"github.com/JacobTheEvans/swagger-validator-middleware/middleware"
	"github.com/JacobTheEvans/swagger-validator-middleware/valerrors"
	"github.com/JacobTheEvans/swagger-validator-middleware/validator"
)

// ErrRequestRejected is returned by HandleCheck when the request violates the contract.
var ErrRequestRejected = errors.New("request rejected")

// CheckFlags contains flags for the check command
type CheckFlags struct {
	Method       string
	Route        string
	Path         string
	Query        keyValues
	Params       keyValues
	Body         string
	Format       string
	Placeholders string
}

// CheckOutput is the structured result of the check command.
type CheckOutput struct {
	Valid       bool   `json:"valid" yaml:"valid"`
	Route       string `json:"route,omitempty" yaml:"route,omitempty"`
	OperationID string `json:"operationId,omitempty" yaml:"operationId,omitempty"`

	Message string `json:"message,omitempty" yaml:"message,omitempty"`
	Kind    string `json:"kind,omitempty" yaml:"kind,omitempty"`
	Section string `json:"section,omitempty" yaml:"section,omitempty"`
	Field   string `json:"field,omitempty" yaml:"field,omitempty"`

	Query  map[string]any `json:"query,omitempty" yaml:"query,omitempty"`
	Params map[string]any `json:"params,omitempty" yaml:"params,omitempty"`
	Body   map[string]any `json:"body,omitempty" yaml:"body,omitempty"`
}

// SetupCheckFlags creates and configures a FlagSet for the check command.
// Returns the FlagSet and a CheckFlags struct with bound flag variables.
func SetupCheckFlags() (*flag.FlagSet, *CheckFlags) {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	flags := &CheckFlags{}

	fs.StringVar(&flags.Method, "method", "GET", "HTTP method of the request")
	fs.StringVar(&flags.Route, "route", "", "route pattern as a router reports it (e.g. /v1/pets/:id)")
	fs.StringVar(&flags.Path, "path", "", "concrete request path (e.g. /v1/pets/42); path params are extracted from it")
	fs.Var(&flags.Query, "query", "query value as key=value (repeatable)")
	fs.Var(&flags.Params, "param", "path parameter as key=value (repeatable)")
	fs.StringVar(&flags.Body, "body", "", "JSON request body, @file to read it from a file, or @- for stdin")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.StringVar(&flags.Placeholders, "placeholders", "colon", "route placeholder style: colon or brace")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: swagval check [flags] <contract>\n\n")
		Writef(fs.Output(), "Validate a single request against a Swagger contract.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  swagval check -method GET -path /v1/pets -query limit=10 swagger.yaml\n")
		Writef(fs.Output(), "  swagval check -method PUT -route /v1/pets/:id -param id=42 -body @pet.json swagger.yaml\n")
		Writef(fs.Output(), "  swagval check -method POST -path /v1/pets -body '{\"name\":\"rex\"}' --format json swagger.yaml\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    Request is valid\n")
		Writef(fs.Output(), "  1    Request was rejected or the contract could not be loaded\n")
	}

	return fs, flags
}

// HandleCheck executes the check command
func HandleCheck(args []string) error {
	fs, flags := SetupCheckFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("check command requires exactly one contract file")
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	if (flags.Route == "") == (flags.Path == "") {
		return fmt.Errorf("exactly one of -route or -path must be given")
	}

	body, err := readBodyFlag(flags.Body, os.Stdin)
	if err != nil {
		return err
	}

	v, err := LoadValidator(fs.Arg(0), flags.Placeholders)
	if err != nil {
		return fmt.Errorf("loading contract: %w", err)
	}

	out, err := runCheck(v, flags, body)
	if err != nil {
		return err
	}

	if flags.Format == FormatText {
		printCheckText(os.Stdout, out)
	} else if err := OutputStructured(os.Stdout, out, flags.Format); err != nil {
		return err
	}

	if !out.Valid {
		return fmt.Errorf("%w: %s", ErrRequestRejected, out.Message)
	}
	return nil
}

// runCheck validates the request described by flags.
func runCheck(v *validator.Validator, flags *CheckFlags, body any) (*CheckOutput, error) {
	route := flags.Route
	params := make(map[string]any)
	if flags.Path != "" {
		pattern, extracted, found := v.MatchPath(flags.Path)
		if !found {
			return &CheckOutput{
				Message: valerrors.RouteNotFoundMessage,
				Kind:    string(valerrors.KindRouteNotFound),
			}, nil
		}
		route = pattern
		for k, val := range extracted {
			params[k] = val
		}
	}
	for k, vals := range flags.Params.values {
		params[k] = vals[len(vals)-1]
	}

	result, err := v.Validate(&validator.Request{
		Method:       strings.ToUpper(flags.Method),
		RoutePattern: route,
		Query:        middleware.QueryValues(url.Values(flags.Query.values)),
		Params:       params,
		Body:         body,
	})
	if err != nil {
		var verr *valerrors.ValidationError
		if !errors.As(err, &verr) {
			return nil, err
		}
		return &CheckOutput{
			Route:   route,
			Message: verr.Error(),
			Kind:    string(verr.Kind),
			Section: string(verr.Section),
			Field:   verr.PathString(),
		}, nil
	}

	return &CheckOutput{
		Valid:       true,
		Route:       route,
		OperationID: result.Operation.OperationID,
		Query:       result.Query,
		Params:      result.Params,
		Body:        result.Body,
	}, nil
}

// readBodyFlag decodes the -body flag. A leading "@" names a file, "@-" reads stdin.
func readBodyFlag(value string, stdin io.Reader) (any, error) {
	if value == "" {
		return nil, nil
	}

	data := []byte(value)
	if name, ok := strings.CutPrefix(value, "@"); ok {
		var err error
		if name == "-" {
			data, err = io.ReadAll(stdin)
		} else {
			data, err = os.ReadFile(name)
		}
		if err != nil {
			return nil, fmt.Errorf("reading body: %w", err)
		}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var body any
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("body must be valid JSON: %w", err)
	}
	return body, nil
}

func printCheckText(w io.Writer, out *CheckOutput) {
	if out.Route != "" {
		Writef(w, "Route: %s\n", out.Route)
	}
	if !out.Valid {
		Writef(w, "Result: rejected (%s)\n", out.Kind)
		if out.Field != "" {
			Writef(w, "Field: %s (%s)\n", out.Field, out.Section)
		}
		Writef(w, "Message: %s\n", out.Message)
		return
	}

	Writef(w, "Operation: %s\n", out.OperationID)
	Writef(w, "Result: valid\n")
	printValues(w, "Query", out.Query)
	printValues(w, "Params", out.Params)
	if len(out.Body) > 0 {
		data, err := json.Marshal(out.Body)
		if err == nil {
			Writef(w, "Body: %s\n", data)
		}
	}
}

func printValues(w io.Writer, label string, values map[string]any) {
	if len(values) == 0 {
		return
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	Writef(w, "%s:\n", label)
	for _, k := range keys {
		Writef(w, "  %s = %v\n", k, values[k])
	}
}
