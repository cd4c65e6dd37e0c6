package loader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/JacobTheEvans/swagger-validator-middleware/valerrors"
)

// refResolver replaces local $ref nodes with copies of their targets.
// Only document-local references ("#/...") are supported; anything else is
// an unresolved reference.
//
// A reference back into an object that is still being resolved binds to
// that same object, so recursive definitions come out as cyclic trees.
type refResolver struct {
	root map[string]any
	// resolving maps refs on the resolution chain to the object being
	// built for them; nil while the target is itself a reference
	resolving map[string]map[string]any
	maxDepth  int
}

func newRefResolver(root map[string]any, maxDepth int) *refResolver {
	return &refResolver{
		root:      root,
		resolving: make(map[string]map[string]any),
		maxDepth:  maxDepth,
	}
}

// resolve returns node with every $ref replaced by its dereferenced target.
// The input tree is not modified.
func (r *refResolver) resolve(node any, depth int) (any, error) {
	switch n := node.(type) {
	case map[string]any:
		if ref, ok := n["$ref"].(string); ok {
			return r.resolveRef(ref, depth)
		}
		out := make(map[string]any, len(n))
		if err := r.resolveInto(out, n, depth); err != nil {
			return nil, err
		}
		return out, nil

	case []any:
		out := make([]any, len(n))
		for i, v := range n {
			resolved, err := r.resolve(v, depth)
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
		return out, nil

	default:
		return node, nil
	}
}

func (r *refResolver) resolveRef(ref string, depth int) (any, error) {
	if !strings.HasPrefix(ref, "#") {
		return nil, &valerrors.ReferenceError{Ref: ref, Message: "only local references are supported"}
	}
	if node, ok := r.resolving[ref]; ok {
		if node != nil {
			return node, nil
		}
		// Only references in between: the chain never reaches a value.
		return nil, &valerrors.ReferenceError{Ref: ref, IsCircular: true}
	}
	if depth >= r.maxDepth {
		return nil, &valerrors.ReferenceError{Ref: ref, Message: fmt.Sprintf("reference chain exceeds maximum depth %d", r.maxDepth)}
	}

	target, err := r.lookup(ref)
	if err != nil {
		return nil, &valerrors.ReferenceError{Ref: ref, Message: err.Error()}
	}
	defer delete(r.resolving, ref)

	obj, ok := target.(map[string]any)
	if _, isRef := obj["$ref"].(string); !ok || isRef {
		r.resolving[ref] = nil
		return r.resolve(target, depth+1)
	}

	out := make(map[string]any, len(obj))
	r.resolving[ref] = out
	if err := r.resolveInto(out, obj, depth+1); err != nil {
		return nil, err
	}
	return out, nil
}

// resolveInto fills out with the resolved members of n.
func (r *refResolver) resolveInto(out, n map[string]any, depth int) error {
	for k, v := range n {
		resolved, err := r.resolve(v, depth)
		if err != nil {
			return err
		}
		out[k] = resolved
	}
	return nil
}

// lookup follows a JSON pointer (RFC 6901) from the document root.
func (r *refResolver) lookup(ref string) (any, error) {
	ref = strings.TrimPrefix(ref, "#")
	if ref == "" || ref == "/" {
		return r.root, nil
	}

	parts := strings.Split(strings.TrimPrefix(ref, "/"), "/")
	current := any(r.root)
	for i, part := range parts {
		part = unescapeJSONPointer(part)

		switch v := current.(type) {
		case map[string]any:
			next, ok := v[part]
			if !ok {
				return nil, fmt.Errorf("not found (missing key %q at #/%s)", part, strings.Join(parts[:i], "/"))
			}
			current = next

		case []any:
			index, err := strconv.Atoi(part)
			if err != nil || index < 0 {
				return nil, fmt.Errorf("invalid array index %q", part)
			}
			if index >= len(v) {
				return nil, fmt.Errorf("array index %d out of bounds (length %d)", index, len(v))
			}
			current = v[index]

		default:
			return nil, fmt.Errorf("cannot traverse into %T at #/%s", v, strings.Join(parts[:i], "/"))
		}
	}

	return current, nil
}

// unescapeJSONPointer decodes "~1" and "~0" in a pointer token.
func unescapeJSONPointer(token string) string {
	token = strings.ReplaceAll(token, "~1", "/")
	return strings.ReplaceAll(token, "~0", "~")
}

// normalize converts decoded YAML into a tree of map[string]any and []any.
// YAML allows non-string keys (response codes are often bare integers), so
// every key is stringified.
func normalize(node any) any {
	switch n := node.(type) {
	case map[string]any:
		for k, v := range n {
			n[k] = normalize(v)
		}
		return n
	case map[any]any:
		out := make(map[string]any, len(n))
		for k, v := range n {
			out[fmt.Sprint(k)] = normalize(v)
		}
		return out
	case []any:
		for i, v := range n {
			n[i] = normalize(v)
		}
		return n
	default:
		return node
	}
}
