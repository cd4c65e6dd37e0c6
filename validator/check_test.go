package validator

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JacobTheEvans/swagger-validator-middleware/schema"
	"github.com/JacobTheEvans/swagger-validator-middleware/valerrors"
)

var bodyField = field{section: valerrors.SectionBody, path: []string{"pet", "name"}}

func TestCheckPresent(t *testing.T) {
	assert.NoError(t, checkPresent(bodyField, "x", true))
	assert.NoError(t, checkPresent(bodyField, nil, true), "explicit null is present")

	err := checkPresent(bodyField, nil, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, valerrors.ErrMissingField))
	assert.Equal(t, "pet/name instance in body is required and must be supplied", err.Error())
}

func TestCheckType(t *testing.T) {
	tests := []struct {
		name  string
		value any
		kind  schema.Kind
		ok    bool
	}{
		{"string", "a", schema.KindString, true},
		{"number is not string", 1.0, schema.KindString, false},
		{"float number", 1.5, schema.KindNumber, true},
		{"int number", 7, schema.KindNumber, true},
		{"json.Number", json.Number("12.5"), schema.KindNumber, true},
		{"numeric string", "42", schema.KindNumber, true},
		{"exponent string", "1.5e3", schema.KindNumber, true},
		{"negative string", "-0.25", schema.KindNumber, true},
		{"partial numeric string", "42abc", schema.KindNumber, false},
		{"empty string", "", schema.KindNumber, false},
		{"NaN string", "NaN", schema.KindNumber, false},
		{"NaN float", math.NaN(), schema.KindNumber, false},
		{"bool is not number", true, schema.KindNumber, false},
		{"integer", 3, schema.KindInteger, true},
		{"integral float", 3.0, schema.KindInteger, true},
		{"fractional float", 3.5, schema.KindInteger, false},
		{"integer string", "10", schema.KindInteger, true},
		{"fractional string", "10.5", schema.KindInteger, false},
		{"boolean", false, schema.KindBoolean, true},
		{"boolean string", "true", schema.KindBoolean, false},
		{"array", []any{1}, schema.KindArray, true},
		{"typed slice", []string{"a"}, schema.KindArray, true},
		{"bytes are not array", []byte("a"), schema.KindArray, false},
		{"string is not array", "a,b", schema.KindArray, false},
		{"object", map[string]any{}, schema.KindObject, true},
		{"array is not object", []any{}, schema.KindObject, false},
		{"null is not object", nil, schema.KindObject, false},
		{"null is not string", nil, schema.KindString, false},
		{"any accepts null", nil, schema.KindAny, true},
		{"any accepts object", map[string]any{}, schema.KindAny, true},
		{"unknown kind", "a", schema.Kind("file"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkType(bodyField, tt.value, tt.kind)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, valerrors.ErrTypeMismatch))
			var verr *valerrors.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, string(tt.kind), verr.Expected)
		})
	}
}

func TestCheckType_Message(t *testing.T) {
	err := checkType(field{section: valerrors.SectionQuery, path: []string{"limit"}}, "ten", schema.KindNumber)
	require.Error(t, err)
	assert.Equal(t, "limit instance in query must be of type: number", err.Error())
}

func TestCheckEnum(t *testing.T) {
	allowed := []any{"active", "inactive"}

	assert.NoError(t, checkEnum(bodyField, "anything", nil))
	assert.NoError(t, checkEnum(bodyField, "active", allowed))

	err := checkEnum(bodyField, "deleted", allowed)
	require.Error(t, err)
	assert.True(t, errors.Is(err, valerrors.ErrInvalidEnum))
	assert.Equal(t, "pet/name must be one of the following [active, inactive]", err.Error())

	t.Run("numbers compare numerically", func(t *testing.T) {
		numbers := []any{1, 2.5}
		assert.NoError(t, checkEnum(bodyField, 1.0, numbers))
		assert.NoError(t, checkEnum(bodyField, json.Number("2.5"), numbers))
		assert.Error(t, checkEnum(bodyField, 3, numbers))
	})

	t.Run("membership is strict by kind", func(t *testing.T) {
		assert.Error(t, checkEnum(bodyField, "1", []any{1}))
		assert.Error(t, checkEnum(bodyField, 1, []any{"1"}))
		assert.Error(t, checkEnum(bodyField, "true", []any{true}))
		assert.NoError(t, checkEnum(bodyField, true, []any{true}))
	})
}

func TestCheckRequired(t *testing.T) {
	parent := field{section: valerrors.SectionBody, path: []string{"address"}}
	obj := map[string]any{"zip": 1}

	assert.NoError(t, checkRequired(parent, obj, nil))
	assert.NoError(t, checkRequired(parent, obj, []string{"zip"}))

	err := checkRequired(parent, obj, []string{"zip", "city", "street"})
	require.Error(t, err)
	var verr *valerrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, valerrors.KindMissingField, verr.Kind)
	assert.Equal(t, []string{"address", "city"}, verr.Path, "first missing name only")
	assert.Equal(t, []string{"address"}, parent.path, "parent path not modified")
}

func TestIsNumber(t *testing.T) {
	assert.True(t, IsNumber(uint8(3)))
	assert.True(t, IsNumber(float32(1.25)))
	assert.True(t, IsNumber(" 7 "))
	assert.True(t, IsNumber("Inf"))
	assert.False(t, IsNumber(nil))
	assert.False(t, IsNumber(json.Number("x")))

	assert.False(t, IsInteger("Inf"))
	assert.True(t, IsInteger(int64(-9)))
}
