// Package options provides shared helpers for functional option validation.
package options

import (
	"fmt"
	"strings"
)

// Source names one way of supplying an input and whether it was set.
type Source struct {
	Option string
	Set    bool
}

// ExactlyOne returns an error unless exactly one of sources is set.
// prefix is the package name used to prefix the error message.
func ExactlyOne(prefix string, sources ...Source) error {
	var set, names []string
	for _, s := range sources {
		names = append(names, s.Option)
		if s.Set {
			set = append(set, s.Option)
		}
	}

	switch len(set) {
	case 1:
		return nil
	case 0:
		return fmt.Errorf("%s: must specify an input source (use %s)", prefix, orList(names))
	default:
		return fmt.Errorf("%s: must specify exactly one input source, got %s", prefix, strings.Join(set, " and "))
	}
}

func orList(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return names[0] + " or " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + ", or " + names[len(names)-1]
	}
}
