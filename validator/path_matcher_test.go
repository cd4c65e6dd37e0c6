package validator

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JacobTheEvans/swagger-validator-middleware/loader"
)

func TestNewPathMatcher_Errors(t *testing.T) {
	tests := []struct {
		template string
		contains string
	}{
		{"", "cannot be empty"},
		{"/pets/{id", "unclosed path parameter"},
		{"/pets/{}", "empty path parameter"},
		{"/a/{id}/b/{id}", "duplicate path parameter"},
	}
	for _, tt := range tests {
		t.Run(tt.template, func(t *testing.T) {
			_, err := newPathMatcher("", tt.template)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestPathMatcher_Match(t *testing.T) {
	m, err := newPathMatcher("/v1.0", "/owners/{ownerId}/pets/{petId}")
	require.NoError(t, err)

	params, ok := m.match("/v1.0/owners/ann/pets/7")
	require.True(t, ok)
	assert.Equal(t, map[string]string{"ownerId": "ann", "petId": "7"}, params)

	_, ok = m.match("/v1x0/owners/ann/pets/7")
	assert.False(t, ok, "base path dot is literal")
	_, ok = m.match("/v1.0/owners/ann/pets/7/extra")
	assert.False(t, ok)
	_, ok = m.match("/v1.0/owners//pets/7")
	assert.False(t, ok)
}

func TestPathMatcherSet_Specificity(t *testing.T) {
	set := newPathMatcherSet("/v1", []string{"/pets/{id}", "/pets/mine", "/pets"}, loader.NopLogger{})

	template, params, found := set.match("/v1/pets/mine")
	require.True(t, found)
	assert.Equal(t, "/pets/mine", template)
	assert.Empty(t, params)

	template, params, found = set.match("/v1/pets/12")
	require.True(t, found)
	assert.Equal(t, "/pets/{id}", template)
	assert.Equal(t, "12", params["id"])

	_, _, found = set.match("/v2/pets")
	assert.False(t, found)
}

func TestPathMatcherSet_SkipsBadTemplates(t *testing.T) {
	var buf bytes.Buffer
	logger := loader.NewSlogAdapter(slog.New(slog.NewTextHandler(&buf, nil)))

	set := newPathMatcherSet("", []string{"/pets/{id", "/pets/{}", "/pets/{id}"}, logger)
	require.Len(t, set.matchers, 1)

	template, _, found := set.match("/pets/9")
	require.True(t, found)
	assert.Equal(t, "/pets/{id}", template)

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "skipping template for path matching")
	assert.Contains(t, out, "unclosed path parameter")
	assert.Contains(t, out, "empty path parameter")
}
