package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/JacobTheEvans/swagger-validator-middleware/schema"
	"github.com/JacobTheEvans/swagger-validator-middleware/validator"
)

// RoutesFlags contains flags for the routes command
type RoutesFlags struct {
	Method       string
	Format       string
	Placeholders string
}

// RouteInfo describes one contract operation as a router would register it.
type RouteInfo struct {
	Method      string `json:"method" yaml:"method"`
	Pattern     string `json:"pattern" yaml:"pattern"`
	Template    string `json:"template" yaml:"template"`
	OperationID string `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	QueryParams int    `json:"queryParams" yaml:"queryParams"`
	PathParams  int    `json:"pathParams" yaml:"pathParams"`
	HasBody     bool   `json:"hasBody" yaml:"hasBody"`
}

// SetupRoutesFlags creates and configures a FlagSet for the routes command.
// Returns the FlagSet and a RoutesFlags struct with bound flag variables.
func SetupRoutesFlags() (*flag.FlagSet, *RoutesFlags) {
	fs := flag.NewFlagSet("routes", flag.ContinueOnError)
	flags := &RoutesFlags{}

	fs.StringVar(&flags.Method, "method", "", "only list routes for this HTTP method")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.StringVar(&flags.Placeholders, "placeholders", "colon", "route placeholder style: colon or brace")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: swagval routes [flags] <contract>\n\n")
		Writef(fs.Output(), "List the routes a Swagger contract declares, basePath included.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  swagval routes swagger.yaml\n")
		Writef(fs.Output(), "  swagval routes -method post -placeholders brace swagger.yaml\n")
		Writef(fs.Output(), "  swagval routes --format json swagger.yaml | jq '.[].pattern'\n")
	}

	return fs, flags
}

// HandleRoutes executes the routes command
func HandleRoutes(args []string) error {
	fs, flags := SetupRoutesFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("routes command requires exactly one contract file")
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	v, err := LoadValidator(fs.Arg(0), flags.Placeholders)
	if err != nil {
		return fmt.Errorf("loading contract: %w", err)
	}

	routes := collectRoutes(v, flags.Method)
	if flags.Format != FormatText {
		return OutputStructured(os.Stdout, routes, flags.Format)
	}
	printRoutesText(os.Stdout, routes)
	return nil
}

func collectRoutes(v *validator.Validator, method string) []RouteInfo {
	var routes []RouteInfo
	for _, r := range v.Routes() {
		if method != "" && !strings.EqualFold(r.Method, method) {
			continue
		}
		routes = append(routes, RouteInfo{
			Method:      r.Method,
			Pattern:     r.Pattern,
			Template:    r.Operation.Template,
			OperationID: r.Operation.OperationID,
			QueryParams: len(r.Operation.ParametersIn(schema.InQuery)),
			PathParams:  len(r.Operation.ParametersIn(schema.InPath)),
			HasBody:     len(r.Operation.ParametersIn(schema.InBody)) > 0,
		})
	}
	return routes
}

func printRoutesText(w io.Writer, routes []RouteInfo) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	Writef(tw, "METHOD\tPATTERN\tOPERATION\tQUERY\tPATH\tBODY\n")
	for _, r := range routes {
		body := "-"
		if r.HasBody {
			body = "yes"
		}
		Writef(tw, "%s\t%s\t%s\t%d\t%d\t%s\n", r.Method, r.Pattern, r.OperationID, r.QueryParams, r.PathParams, body)
	}
	_ = tw.Flush()
	Writef(w, "\n%d route(s)\n", len(routes))
}
