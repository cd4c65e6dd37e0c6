package validator

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/JacobTheEvans/swagger-validator-middleware/schema"
	"github.com/JacobTheEvans/swagger-validator-middleware/valerrors"
)

// PlaceholderStyle selects how the host router spells path parameters.
type PlaceholderStyle int

const (
	// ColonPlaceholders rewrites "{id}" to ":id" (Express, httprouter, gin, echo).
	ColonPlaceholders PlaceholderStyle = iota
	// BracePlaceholders keeps "{id}" (chi, net/http ServeMux).
	BracePlaceholders
)

// String returns the style name.
func (s PlaceholderStyle) String() string {
	switch s {
	case ColonPlaceholders:
		return "colon"
	case BracePlaceholders:
		return "brace"
	default:
		return fmt.Sprintf("PlaceholderStyle(%d)", int(s))
	}
}

// ParsePlaceholderStyle parses "colon" or "brace".
func ParsePlaceholderStyle(name string) (PlaceholderStyle, error) {
	switch strings.ToLower(name) {
	case "colon", "":
		return ColonPlaceholders, nil
	case "brace":
		return BracePlaceholders, nil
	default:
		return 0, fmt.Errorf("validator: unknown placeholder style %q (use colon or brace)", name)
	}
}

// RewriteTemplate prefixes a brace-templated route with basePath and
// converts its placeholders to style.
//
//	RewriteTemplate("/v1", "/pets/{id}", ColonPlaceholders) // "/v1/pets/:id"
func RewriteTemplate(basePath, template string, style PlaceholderStyle) string {
	if style == ColonPlaceholders {
		var b strings.Builder
		b.Grow(len(template))
		for i := 0; i < len(template); i++ {
			c := template[i]
			if c != '{' {
				b.WriteByte(c)
				continue
			}
			end := strings.IndexByte(template[i:], '}')
			if end == -1 {
				b.WriteString(template[i:])
				break
			}
			b.WriteByte(':')
			b.WriteString(template[i+1 : i+end])
			i += end
		}
		template = b.String()
	}
	return basePath + template
}

// route is one entry of the precompiled route table.
type route struct {
	pattern string
	// methods is keyed by case-folded method name
	methods map[string]*schema.Operation
}

// routeTable maps host route patterns to their operations.
type routeTable struct {
	byPattern map[string]*route
	patterns  []string
}

func newRouteTable(doc *schema.Document, style PlaceholderStyle) *routeTable {
	t := &routeTable{byPattern: make(map[string]*route, len(doc.Paths))}
	for template, methods := range doc.Paths {
		pattern := RewriteTemplate(doc.BasePath, template, style)
		r, ok := t.byPattern[pattern]
		if !ok {
			r = &route{pattern: pattern, methods: make(map[string]*schema.Operation, len(methods))}
			t.byPattern[pattern] = r
			t.patterns = append(t.patterns, pattern)
		}
		for method, op := range methods {
			r.methods[foldMethod(method)] = op
		}
	}
	sort.Strings(t.patterns)
	return t
}

// resolve finds the operation for an exact route pattern and a method,
// matched case-insensitively.
func (t *routeTable) resolve(pattern, method string) (*schema.Operation, error) {
	if r, ok := t.byPattern[pattern]; ok {
		if op, ok := r.methods[foldMethod(method)]; ok {
			return op, nil
		}
	}
	return nil, &valerrors.ValidationError{
		Kind:   valerrors.KindRouteNotFound,
		Detail: method + " " + pattern,
	}
}

// foldMethod case-folds an HTTP method. A Caser keeps internal state, so
// each call gets its own.
func foldMethod(method string) string {
	return cases.Fold().String(method)
}
