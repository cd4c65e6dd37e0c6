package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JacobTheEvans/swagger-validator-middleware/internal/testutil"
)

func TestValidateOutputFormat(t *testing.T) {
	for _, format := range []string{FormatText, FormatJSON, FormatYAML} {
		assert.NoError(t, ValidateOutputFormat(format))
	}
	err := ValidateOutputFormat("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format 'xml'")
}

func TestOutputStructured(t *testing.T) {
	data := map[string]any{"valid": true, "route": "/v1/pets"}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, OutputStructured(&buf, data, FormatJSON))
		assert.JSONEq(t, `{"valid": true, "route": "/v1/pets"}`, buf.String())
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, OutputStructured(&buf, data, FormatYAML))
		assert.YAMLEq(t, "valid: true\nroute: /v1/pets\n", buf.String())
	})

	t.Run("text is not structured", func(t *testing.T) {
		var buf bytes.Buffer
		assert.Error(t, OutputStructured(&buf, data, FormatText))
	})
}

func TestKeyValues(t *testing.T) {
	var kv keyValues
	require.NoError(t, kv.Set("tags=red"))
	require.NoError(t, kv.Set("limit=5"))
	require.NoError(t, kv.Set("tags=green"))
	require.NoError(t, kv.Set("empty="))

	assert.Equal(t, []string{"red", "green"}, kv.values["tags"])
	assert.Equal(t, []string{""}, kv.values["empty"])
	assert.Equal(t, "tags=red,tags=green,limit=5,empty=", kv.String())

	assert.Error(t, kv.Set("novalue"))
	assert.Error(t, kv.Set("=x"))
}

func TestLoadValidator(t *testing.T) {
	path := testutil.WriteContract(t, "petstore.yaml", testutil.PetstoreContract)

	v, err := LoadValidator(path, "brace")
	require.NoError(t, err)
	_, err = v.Resolve("/v1/pets/{id}", "GET")
	assert.NoError(t, err)

	_, err = LoadValidator(path, "angle")
	assert.Error(t, err)

	_, err = LoadValidator(path+".missing", "colon")
	assert.Error(t, err)
}
