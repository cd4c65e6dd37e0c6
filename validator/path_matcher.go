package validator

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/JacobTheEvans/swagger-validator-middleware/loader"
)

// pathMatcher matches concrete request paths against one brace template
// and extracts its parameter values.
type pathMatcher struct {
	// template is the contract template without basePath (e.g. "/pets/{id}")
	template string

	regex      *regexp.Regexp
	paramNames []string

	// specificity orders matchers: literal characters add, parameters subtract
	specificity int
}

func newPathMatcher(basePath, template string) (*pathMatcher, error) {
	if template == "" {
		return nil, fmt.Errorf("path template cannot be empty")
	}

	var buf strings.Builder
	buf.WriteString("^")
	buf.WriteString(regexp.QuoteMeta(basePath))

	var paramNames []string
	specificity := 0

	for i := 0; i < len(template); {
		if template[i] != '{' {
			c := template[i]
			buf.WriteString(regexp.QuoteMeta(string(c)))
			if c != '/' {
				specificity++
			}
			i++
			continue
		}

		end := strings.IndexByte(template[i:], '}')
		if end == -1 {
			return nil, fmt.Errorf("unclosed path parameter at position %d in template %q", i, template)
		}
		name := template[i+1 : i+end]
		if name == "" {
			return nil, fmt.Errorf("empty path parameter at position %d in template %q", i, template)
		}
		for _, existing := range paramNames {
			if existing == name {
				return nil, fmt.Errorf("duplicate path parameter %q in template %q", name, template)
			}
		}
		paramNames = append(paramNames, name)
		buf.WriteString("([^/]+)")
		specificity--
		i += end + 1
	}
	buf.WriteString("$")

	re, err := regexp.Compile(buf.String())
	if err != nil {
		return nil, fmt.Errorf("compiling path pattern for template %q: %w", template, err)
	}

	return &pathMatcher{
		template:    template,
		regex:       re,
		paramNames:  paramNames,
		specificity: specificity,
	}, nil
}

func (pm *pathMatcher) match(path string) (map[string]string, bool) {
	m := pm.regex.FindStringSubmatch(path)
	if m == nil || len(m) != len(pm.paramNames)+1 {
		return nil, false
	}
	params := make(map[string]string, len(pm.paramNames))
	for i, name := range pm.paramNames {
		params[name] = m[i+1]
	}
	return params, true
}

// pathMatcherSet tries matchers from most to least specific.
type pathMatcherSet struct {
	matchers []*pathMatcher
}

// newPathMatcherSet compiles a matcher per template. Templates that cannot
// be compiled are logged and left out; they still resolve by exact pattern.
func newPathMatcherSet(basePath string, templates []string, logger loader.Logger) *pathMatcherSet {
	matchers := make([]*pathMatcher, 0, len(templates))
	for _, template := range templates {
		m, err := newPathMatcher(basePath, template)
		if err != nil {
			logger.Warn("skipping template for path matching", "template", template, "error", err)
			continue
		}
		matchers = append(matchers, m)
	}

	// Most specific first, then longest template, then alphabetical.
	sort.Slice(matchers, func(i, j int) bool {
		if matchers[i].specificity != matchers[j].specificity {
			return matchers[i].specificity > matchers[j].specificity
		}
		if len(matchers[i].template) != len(matchers[j].template) {
			return len(matchers[i].template) > len(matchers[j].template)
		}
		return matchers[i].template < matchers[j].template
	})

	return &pathMatcherSet{matchers: matchers}
}

func (s *pathMatcherSet) match(path string) (template string, params map[string]string, found bool) {
	for _, m := range s.matchers {
		if params, ok := m.match(path); ok {
			return m.template, params, true
		}
	}
	return "", nil, false
}
