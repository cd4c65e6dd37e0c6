// Package commands provides CLI command handlers for swagval.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/JacobTheEvans/swagger-validator-middleware/loader"
	"github.com/JacobTheEvans/swagger-validator-middleware/validator"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// OutputStructured writes data to w in the specified format (json or yaml).
func OutputStructured(w io.Writer, data any, format string) error {
	var bytes []byte
	var err error

	switch format {
	case FormatJSON:
		bytes, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		bytes, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}

	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	Writef(w, "%s\n", strings.TrimRight(string(bytes), "\n"))
	return nil
}

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr.
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// LoadValidator loads the contract at path and builds a validator that
// reports routes in the named placeholder style.
func LoadValidator(path, placeholders string) (*validator.Validator, error) {
	style, err := validator.ParsePlaceholderStyle(placeholders)
	if err != nil {
		return nil, err
	}
	doc, err := loader.Load(path)
	if err != nil {
		return nil, err
	}
	return validator.New(doc, validator.WithPlaceholderStyle(style))
}

// keyValues is a repeatable "key=value" flag.
type keyValues struct {
	keys   []string
	values map[string][]string
}

func (kv *keyValues) String() string {
	if kv == nil {
		return ""
	}
	parts := make([]string, 0, len(kv.keys))
	for _, k := range kv.keys {
		for _, v := range kv.values[k] {
			parts = append(parts, k+"="+v)
		}
	}
	return strings.Join(parts, ",")
}

func (kv *keyValues) Set(s string) error {
	key, value, ok := strings.Cut(s, "=")
	if !ok || key == "" {
		return fmt.Errorf("expected key=value, got %q", s)
	}
	if kv.values == nil {
		kv.values = make(map[string][]string)
	}
	if _, seen := kv.values[key]; !seen {
		kv.keys = append(kv.keys, key)
	}
	kv.values[key] = append(kv.values[key], value)
	return nil
}
