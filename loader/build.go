package loader

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/JacobTheEvans/swagger-validator-middleware/internal/httputil"
	"github.com/JacobTheEvans/swagger-validator-middleware/schema"
)

// docBuilder converts a dereferenced contract tree into a schema.Document.
type docBuilder struct {
	// schemas maps each schema node already built, by map identity, to its
	// result so recursive definitions become pointer cycles
	schemas map[uintptr]*schema.Schema
}

// buildDocument converts a dereferenced contract tree into a schema.Document.
func buildDocument(tree map[string]any) (*schema.Document, error) {
	b := &docBuilder{schemas: make(map[uintptr]*schema.Schema)}
	return b.document(tree)
}

func (b *docBuilder) document(tree map[string]any) (*schema.Document, error) {
	doc := &schema.Document{Paths: make(map[string]map[string]*schema.Operation)}

	if raw, ok := tree["basePath"]; ok && raw != nil {
		basePath, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("basePath must be a string, got %T", raw)
		}
		doc.BasePath = strings.TrimSuffix(basePath, "/")
	}

	rawPaths, ok := tree["paths"]
	if !ok || rawPaths == nil {
		return doc, nil
	}
	paths, ok := rawPaths.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("paths must be a mapping, got %T", rawPaths)
	}

	for template, rawItem := range paths {
		if strings.HasPrefix(template, "x-") {
			continue
		}
		item, ok := rawItem.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("paths.%s must be a mapping, got %T", template, rawItem)
		}

		shared, err := b.parameters(item["parameters"], "paths."+template+".parameters")
		if err != nil {
			return nil, err
		}

		methods := make(map[string]*schema.Operation)
		for _, method := range httputil.Methods {
			rawOp, ok := item[method]
			if !ok {
				continue
			}
			op, err := b.operation(template, method, rawOp, shared)
			if err != nil {
				return nil, err
			}
			methods[method] = op
		}
		doc.Paths[template] = methods
	}

	return doc, nil
}

func (b *docBuilder) operation(template, method string, raw any, shared []*schema.Parameter) (*schema.Operation, error) {
	at := "paths." + template + "." + method
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s must be a mapping, got %T", at, raw)
	}

	own, err := b.parameters(m["parameters"], at+".parameters")
	if err != nil {
		return nil, err
	}

	op := &schema.Operation{
		Template:   template,
		Method:     method,
		Parameters: mergeParameters(shared, own),
	}
	if id, ok := m["operationId"].(string); ok {
		op.OperationID = id
	}
	return op, nil
}

// mergeParameters combines path-level and operation-level parameters.
// Operation parameters replace path-level ones with the same (in, name)
// in place; new ones are appended in declaration order.
func mergeParameters(shared, own []*schema.Parameter) []*schema.Parameter {
	if len(shared) == 0 {
		return own
	}
	merged := make([]*schema.Parameter, len(shared), len(shared)+len(own))
	copy(merged, shared)

	index := make(map[string]int, len(shared))
	for i, p := range shared {
		index[string(p.In)+":"+p.Name] = i
	}
	for _, p := range own {
		key := string(p.In) + ":" + p.Name
		if i, ok := index[key]; ok {
			merged[i] = p
			continue
		}
		merged = append(merged, p)
	}
	return merged
}

func (b *docBuilder) parameters(raw any, at string) ([]*schema.Parameter, error) {
	if raw == nil {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%s must be a sequence, got %T", at, raw)
	}

	params := make([]*schema.Parameter, 0, len(list))
	for i, entry := range list {
		p, err := b.parameter(entry, fmt.Sprintf("%s[%d]", at, i))
		if err != nil {
			return nil, err
		}
		params = append(params, p)
	}
	return params, nil
}

func (b *docBuilder) parameter(raw any, at string) (*schema.Parameter, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s must be a mapping, got %T", at, raw)
	}

	name, _ := m["name"].(string)
	in, _ := m["in"].(string)
	if name == "" {
		return nil, fmt.Errorf("%s: parameter name is required", at)
	}
	if in == "" {
		return nil, fmt.Errorf("%s: parameter %q must declare where it is located (in)", at, name)
	}

	p := &schema.Parameter{Name: name, In: schema.Location(in)}

	var err error
	switch {
	case p.In == schema.InBody:
		p.Schema = schema.Empty()
		if rawSchema, ok := m["schema"]; ok && rawSchema != nil {
			p.Schema, err = b.schema(rawSchema, at+".schema")
		}
	case m["type"] == nil && m["schema"] != nil:
		// Tolerate parameters that wrap their type in a schema object.
		p.Schema, err = b.schema(m["schema"], at+".schema")
	default:
		p.Schema, err = b.schema(m, at)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (b *docBuilder) schema(raw any, at string) (*schema.Schema, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s must be a mapping, got %T", at, raw)
	}

	id := reflect.ValueOf(m).Pointer()
	if s, ok := b.schemas[id]; ok {
		return s, nil
	}
	s := &schema.Schema{}
	b.schemas[id] = s

	if rawType, ok := m["type"]; ok && rawType != nil {
		kind, ok := rawType.(string)
		if !ok {
			return nil, fmt.Errorf("%s.type must be a string, got %T", at, rawType)
		}
		s.Kind = schema.Kind(kind)
	}

	if rawEnum, ok := m["enum"]; ok && rawEnum != nil {
		enum, ok := rawEnum.([]any)
		if !ok {
			return nil, fmt.Errorf("%s.enum must be a sequence, got %T", at, rawEnum)
		}
		s.Enum = enum
	}

	if rawItems, ok := m["items"]; ok && rawItems != nil {
		items, err := b.schema(rawItems, at+".items")
		if err != nil {
			return nil, err
		}
		s.Items = items
	}

	if rawProps, ok := m["properties"]; ok && rawProps != nil {
		props, ok := rawProps.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s.properties must be a mapping, got %T", at, rawProps)
		}
		s.Properties = make(map[string]*schema.Schema, len(props))
		for name, rawProp := range props {
			prop, err := b.schema(rawProp, at+".properties."+name)
			if err != nil {
				return nil, err
			}
			s.Properties[name] = prop
		}
	}

	if rawRequired, ok := m["required"]; ok && rawRequired != nil {
		// A boolean "required" is the parameter-level flag, not a field list.
		if list, ok := rawRequired.([]any); ok {
			for _, r := range list {
				name, ok := r.(string)
				if !ok {
					return nil, fmt.Errorf("%s.required must contain strings, got %T", at, r)
				}
				s.Required = append(s.Required, name)
			}
		}
	}

	return s, nil
}
