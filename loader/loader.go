// Package loader reads an API contract (Swagger/OpenAPI style, YAML or JSON)
// and turns it into a fully dereferenced schema.Document.
//
// Every local $ref under paths is replaced by a copy of its target, so the
// returned document contains no references. A recursive definition, such as
// a Node whose children are Nodes, becomes a schema that points back at
// itself. External file or URL references are not followed and fail the
// load, as does a chain of references that never reaches a value.
//
// # Basic Usage
//
//	doc, err := loader.Load("swagger.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Functional Options
//
//	doc, err := loader.LoadWithOptions(
//	    loader.WithBytes(contract),
//	    loader.WithSourceName("embedded"),
//	    loader.WithLogger(loader.NewSlogAdapter(slog.Default())),
//	)
//
// Every failure is a *valerrors.SchemaLoadError, so callers can test for it
// with errors.Is(err, valerrors.ErrSchemaLoad).
package loader

import (
	"fmt"
	"io"
	"os"
	"time"

	"go.yaml.in/yaml/v4"

	"github.com/JacobTheEvans/swagger-validator-middleware/schema"
	"github.com/JacobTheEvans/swagger-validator-middleware/valerrors"
)

// Load reads and dereferences the contract at path.
func Load(path string) (*schema.Document, error) {
	return LoadWithOptions(WithFilePath(path))
}

// LoadWithOptions reads and dereferences a contract using functional options.
// Exactly one of WithFilePath, WithReader or WithBytes must be given.
func LoadWithOptions(opts ...Option) (*schema.Document, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}

	source := cfg.source()
	log := cfg.logger.With("source", source)
	start := time.Now()

	data, err := cfg.read()
	if err != nil {
		return nil, &valerrors.SchemaLoadError{Source: source, Message: "reading contract", Cause: err}
	}

	doc, err := decode(data, cfg.maxRefDepth)
	if err != nil {
		return nil, &valerrors.SchemaLoadError{Source: source, Message: "malformed contract", Cause: err}
	}

	log.Debug("loaded contract",
		"bytes", len(data),
		"paths", len(doc.Paths),
		"operations", len(doc.Operations()),
		"elapsed", time.Since(start),
	)
	return doc, nil
}

// read returns the raw document bytes, enforcing the size limit.
func (c *loadConfig) read() ([]byte, error) {
	switch {
	case c.bytes != nil:
		if int64(len(c.bytes)) > c.maxFileSize {
			return nil, fmt.Errorf("document is %d bytes, exceeds maximum size %d", len(c.bytes), c.maxFileSize)
		}
		return c.bytes, nil

	case c.reader != nil:
		return readLimited(c.reader, c.maxFileSize)

	default:
		f, err := os.Open(*c.filePath)
		if err != nil {
			return nil, err
		}
		defer func() { _ = f.Close() }()
		return readLimited(f, c.maxFileSize)
	}
}

func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("document exceeds maximum size %d", limit)
	}
	return data, nil
}

// decode parses YAML or JSON and builds the dereferenced document.
func decode(data []byte, maxRefDepth int) (*schema.Document, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	tree, ok := normalize(raw).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("document root must be a mapping, got %T", raw)
	}

	if paths, ok := tree["paths"]; ok {
		resolved, err := newRefResolver(tree, maxRefDepth).resolve(paths, 0)
		if err != nil {
			return nil, err
		}
		// Shallow copy so the resolved paths never alias the raw tree.
		out := make(map[string]any, len(tree))
		for k, v := range tree {
			out[k] = v
		}
		out["paths"] = resolved
		tree = out
	}

	return buildDocument(tree)
}
