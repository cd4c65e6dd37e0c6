package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JacobTheEvans/swagger-validator-middleware/internal/testutil"
	"github.com/JacobTheEvans/swagger-validator-middleware/valerrors"
	"github.com/JacobTheEvans/swagger-validator-middleware/validator"
)

func petstoreValidator(t *testing.T) *validator.Validator {
	t.Helper()
	v, err := validator.New(testutil.MustLoad(t, testutil.PetstoreContract))
	require.NoError(t, err)
	return v
}

func TestSetupCheckFlags(t *testing.T) {
	fs, flags := SetupCheckFlags()

	t.Run("default values", func(t *testing.T) {
		assert.Equal(t, "GET", flags.Method)
		assert.Equal(t, FormatText, flags.Format)
		assert.Equal(t, "colon", flags.Placeholders)
		assert.Empty(t, flags.Route)
		assert.Empty(t, flags.Path)
	})

	t.Run("parse flags", func(t *testing.T) {
		args := []string{
			"-method", "PUT", "-route", "/v1/pets/:id",
			"-param", "id=7", "-query", "mode=soft", "-query", "mode=hard",
			"--format", "json", "swagger.yaml",
		}
		require.NoError(t, fs.Parse(args))

		assert.Equal(t, "PUT", flags.Method)
		assert.Equal(t, "/v1/pets/:id", flags.Route)
		assert.Equal(t, []string{"7"}, flags.Params.values["id"])
		assert.Equal(t, []string{"soft", "hard"}, flags.Query.values["mode"])
		assert.Equal(t, "json", flags.Format)
		assert.Equal(t, "swagger.yaml", fs.Arg(0))
	})
}

func TestRunCheck(t *testing.T) {
	v := petstoreValidator(t)

	t.Run("valid by path", func(t *testing.T) {
		flags := &CheckFlags{Method: "get", Path: "/v1/pets"}
		require.NoError(t, flags.Query.Set("limit=3"))
		require.NoError(t, flags.Query.Set("debug=1"))

		out, err := runCheck(v, flags, nil)
		require.NoError(t, err)
		assert.True(t, out.Valid)
		assert.Equal(t, "/v1/pets", out.Route)
		assert.Equal(t, "listPets", out.OperationID)
		assert.Equal(t, map[string]any{"limit": "3"}, out.Query)
	})

	t.Run("params flag overrides extracted", func(t *testing.T) {
		flags := &CheckFlags{Method: "GET", Path: "/v1/pets/1"}
		require.NoError(t, flags.Params.Set("id=abc"))

		out, err := runCheck(v, flags, nil)
		require.NoError(t, err)
		assert.False(t, out.Valid)
		assert.Equal(t, string(valerrors.KindTypeMismatch), out.Kind)
		assert.Equal(t, "id", out.Field)
		assert.Equal(t, "params", out.Section)
	})

	t.Run("body violation", func(t *testing.T) {
		body := testutil.ValidPetBody()
		body["status"] = "sleeping"

		out, err := runCheck(v, &CheckFlags{Method: "POST", Route: "/v1/pets"}, body)
		require.NoError(t, err)
		assert.False(t, out.Valid)
		assert.Equal(t, "status must be one of the following [active, inactive]", out.Message)
	})

	t.Run("unknown path", func(t *testing.T) {
		out, err := runCheck(v, &CheckFlags{Method: "GET", Path: "/nope"}, nil)
		require.NoError(t, err)
		assert.False(t, out.Valid)
		assert.Equal(t, valerrors.RouteNotFoundMessage, out.Message)
	})
}

func TestReadBodyFlag(t *testing.T) {
	body, err := readBodyFlag("", nil)
	require.NoError(t, err)
	assert.Nil(t, body)

	body, err = readBodyFlag(`{"zip": 150}`, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"zip": json.Number("150")}, body)

	body, err = readBodyFlag("@-", strings.NewReader(`{"name": "rex"}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "rex"}, body)

	path := filepath.Join(t.TempDir(), "body.json")
	require.NoError(t, os.WriteFile(path, []byte(`["a"]`), 0o600))
	body, err = readBodyFlag("@"+path, nil)
	require.NoError(t, err)
	assert.Equal(t, []any{"a"}, body)

	_, err = readBodyFlag("{broken", nil)
	assert.Error(t, err)

	_, err = readBodyFlag("@"+path+".missing", nil)
	assert.Error(t, err)
}

func TestPrintCheckText(t *testing.T) {
	var buf bytes.Buffer
	printCheckText(&buf, &CheckOutput{
		Valid:       true,
		Route:       "/v1/pets",
		OperationID: "listPets",
		Query:       map[string]any{"status": "active", "limit": "3"},
	})
	assert.Equal(t, "Route: /v1/pets\nOperation: listPets\nResult: valid\nQuery:\n  limit = 3\n  status = active\n", buf.String())

	buf.Reset()
	printCheckText(&buf, &CheckOutput{
		Route:   "/v1/pets",
		Kind:    "MissingField",
		Section: "body",
		Field:   "name",
		Message: "name instance in body is required and must be supplied",
	})
	assert.Contains(t, buf.String(), "Result: rejected (MissingField)\n")
	assert.Contains(t, buf.String(), "Field: name (body)\n")
}

func TestHandleCheck_NoArgs(t *testing.T) {
	assert.Error(t, HandleCheck([]string{}))
}

func TestHandleCheck_Help(t *testing.T) {
	assert.NoError(t, HandleCheck([]string{"--help"}))
}

func TestHandleCheck_InvalidFormat(t *testing.T) {
	assert.Error(t, HandleCheck([]string{"--format", "invalid", "-path", "/v1/pets", "swagger.yaml"}))
}

func TestHandleCheck_RouteAndPath(t *testing.T) {
	err := HandleCheck([]string{"-route", "/v1/pets", "-path", "/v1/pets", "swagger.yaml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one of -route or -path")
}

func TestHandleCheck_Rejected(t *testing.T) {
	path := testutil.WriteContract(t, "petstore.yaml", testutil.PetstoreContract)

	err := HandleCheck([]string{"-path", "/v1/pets", "-query", "status=lost", "--format", "json", path})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRequestRejected)
}

func TestHandleCheck_Valid(t *testing.T) {
	path := testutil.WriteContract(t, "petstore.yaml", testutil.PetstoreContract)
	assert.NoError(t, HandleCheck([]string{"-path", "/v1/owners/ann/pets/3", path}))
}
