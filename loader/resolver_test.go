package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefResolver_Lookup(t *testing.T) {
	root := map[string]any{
		"definitions": map[string]any{
			"a/b": map[string]any{"type": "string"},
			"c~d": map[string]any{"type": "number"},
			"list": []any{
				map[string]any{"type": "boolean"},
			},
			"leaf": "text",
		},
	}
	r := newRefResolver(root, DefaultMaxRefDepth)

	tests := []struct {
		ref      string
		want     any
		contains string
	}{
		{ref: "#/definitions/a~1b", want: map[string]any{"type": "string"}},
		{ref: "#/definitions/c~0d", want: map[string]any{"type": "number"}},
		{ref: "#/definitions/list/0", want: map[string]any{"type": "boolean"}},
		{ref: "#", want: root},
		{ref: "#/definitions/missing", contains: `missing key "missing" at #/definitions`},
		{ref: "#/definitions/list/x", contains: `invalid array index "x"`},
		{ref: "#/definitions/list/3", contains: "out of bounds"},
		{ref: "#/definitions/leaf/deeper", contains: "cannot traverse into string"},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, err := r.lookup(tt.ref)
			if tt.contains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.contains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRefResolver_ResolveCopiesTargets(t *testing.T) {
	target := map[string]any{"type": "string"}
	root := map[string]any{
		"definitions": map[string]any{"Name": target},
		"paths": map[string]any{
			"/a": map[string]any{"$ref": "#/definitions/Name"},
			"/b": map[string]any{"$ref": "#/definitions/Name"},
		},
	}

	resolved, err := newRefResolver(root, DefaultMaxRefDepth).resolve(root["paths"], 0)
	require.NoError(t, err)

	paths := resolved.(map[string]any)
	a := paths["/a"].(map[string]any)
	b := paths["/b"].(map[string]any)
	assert.Equal(t, target, a)
	assert.Equal(t, target, b)

	a["type"] = "number"
	assert.Equal(t, "string", b["type"])
	assert.Equal(t, "string", target["type"])
}

func TestRefResolver_SiblingReuseIsNotCircular(t *testing.T) {
	root := map[string]any{
		"definitions": map[string]any{
			"Leaf": map[string]any{"type": "string"},
			"Pair": map[string]any{
				"properties": map[string]any{
					"left":  map[string]any{"$ref": "#/definitions/Leaf"},
					"right": map[string]any{"$ref": "#/definitions/Leaf"},
				},
			},
		},
	}

	_, err := newRefResolver(root, DefaultMaxRefDepth).resolve(map[string]any{"$ref": "#/definitions/Pair"}, 0)
	assert.NoError(t, err)
}

func TestRefResolver_RecursiveTargetBindsToItself(t *testing.T) {
	root := map[string]any{
		"definitions": map[string]any{
			"Node": map[string]any{
				"properties": map[string]any{
					"next": map[string]any{"$ref": "#/definitions/Node"},
				},
			},
		},
	}

	resolved, err := newRefResolver(root, DefaultMaxRefDepth).resolve(map[string]any{"$ref": "#/definitions/Node"}, 0)
	require.NoError(t, err)

	node := resolved.(map[string]any)
	next := node["properties"].(map[string]any)["next"].(map[string]any)
	next["marker"] = true
	assert.Equal(t, true, node["marker"], "next should be the node itself")
}

func TestNormalize(t *testing.T) {
	in := map[string]any{
		"responses": map[any]any{
			200:   map[any]any{"description": "ok"},
			"404": "missing",
		},
		"list": []any{map[any]any{true: "yes"}},
	}

	out := normalize(in).(map[string]any)
	assert.Equal(t, map[string]any{
		"200": map[string]any{"description": "ok"},
		"404": "missing",
	}, out["responses"])
	assert.Equal(t, []any{map[string]any{"true": "yes"}}, out["list"])
}
