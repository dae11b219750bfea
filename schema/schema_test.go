package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// documentSchema mirrors the payload shape the create-graph tool accepts.
func documentSchema() JSON {
	return Object(map[string]JSON{
		"content":  StringWithDesc("Document text"),
		"metadata": Object(nil),
	}, "content")
}

func TestConstructors(t *testing.T) {
	assert.Equal(t, "string", String().Type)
	assert.Equal(t, "integer", Int().Type)
	assert.Equal(t, "number", Number().Type)
	assert.Equal(t, "boolean", Bool().Type)
	assert.Empty(t, Any().Type)

	desc := StringWithDesc("Graph namespace")
	assert.Equal(t, "string", desc.Type)
	assert.Equal(t, "Graph namespace", desc.Description)

	arr := Array(Number())
	assert.Equal(t, "array", arr.Type)
	require.NotNil(t, arr.Items)
	assert.Equal(t, "number", arr.Items.Type)

	obj := Object(map[string]JSON{"namespace": String()}, "namespace")
	assert.Equal(t, "object", obj.Type)
	assert.Equal(t, []string{"namespace"}, obj.Required)

	enum := Enum("json", "csv")
	assert.Len(t, enum.Enum, 2)
}

func TestValidate_String(t *testing.T) {
	s := String()

	assert.NoError(t, s.Validate("default"))
	assert.NoError(t, s.Validate(""))

	err := s.Validate(42)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected string, got int")

	assert.Error(t, s.Validate(true))
	assert.Error(t, s.Validate(nil))
}

func TestValidate_StringConstraints(t *testing.T) {
	one, sixtyFour := 1, 64
	namespace := JSON{
		Type:      "string",
		MinLength: &one,
		MaxLength: &sixtyFour,
		Pattern:   "^[a-z][a-z0-9-]*$",
	}

	assert.NoError(t, namespace.Validate("animals"))
	assert.NoError(t, namespace.Validate("ns-2"))

	err := namespace.Validate("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "less than minimum 1")

	err = namespace.Validate("Animals")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match pattern")

	long := make([]byte, 65)
	for i := range long {
		long[i] = 'a'
	}
	err = namespace.Validate(string(long))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "greater than maximum 64")
}

func TestValidate_Integer(t *testing.T) {
	s := Int()

	// Every Go integer width passes.
	for _, v := range []any{2, int8(2), int16(2), int32(2), int64(2), uint(2), uint8(2)} {
		assert.NoError(t, s.Validate(v), "%T", v)
	}

	// Decoded JSON numbers are float64; whole values count as integers.
	assert.NoError(t, s.Validate(float64(3)))

	err := s.Validate(2.5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "float with decimal")

	err = s.Validate("3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected integer, got string")
}

func TestValidate_NumberBounds(t *testing.T) {
	zero, one := 0.0, 1.0
	weight := JSON{Type: "number", Minimum: &zero, Maximum: &one}

	assert.NoError(t, weight.Validate(0.0))
	assert.NoError(t, weight.Validate(0.96))
	assert.NoError(t, weight.Validate(1))

	err := weight.Validate(1.5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "greater than maximum 1")

	err = weight.Validate(-0.1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "less than minimum 0")

	assert.Error(t, weight.Validate(true))
}

func TestValidate_Bool(t *testing.T) {
	s := Bool()

	assert.NoError(t, s.Validate(true))
	assert.NoError(t, s.Validate(false))
	assert.Error(t, s.Validate("true"))
	assert.Error(t, s.Validate(1))
}

func TestValidate_Array(t *testing.T) {
	vector := Array(Number())

	assert.NoError(t, vector.Validate([]float64{0.12, -0.7, 0.33}))
	assert.NoError(t, vector.Validate([]any{1, 2.5}))
	assert.NoError(t, vector.Validate([]float64{}))

	err := vector.Validate([]any{0.5, "oops", 0.7})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "item 1: expected number, got string")

	err = vector.Validate("not an array")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected array")

	// Without an item schema, any element passes.
	anything := JSON{Type: "array"}
	assert.NoError(t, anything.Validate([]any{"a", 1, true}))
}

func TestValidate_Object(t *testing.T) {
	doc := documentSchema()

	assert.NoError(t, doc.Validate(map[string]any{
		"content":  "cats are mammals",
		"metadata": map[string]any{"lang": "en"},
	}))

	// metadata is optional.
	assert.NoError(t, doc.Validate(map[string]any{"content": "dogs are mammals"}))

	err := doc.Validate(map[string]any{"metadata": map[string]any{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required field content is missing")

	err = doc.Validate(map[string]any{"content": 7})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "property content: expected string")
}

func TestValidate_ObjectExtraFieldsPass(t *testing.T) {
	doc := documentSchema()

	// Fields the schema doesn't declare are ignored, so older dispatchers
	// can send payloads with fields newer tools added.
	assert.NoError(t, doc.Validate(map[string]any{
		"content": "wolves are wild canines",
		"source":  "wikipedia",
	}))
}

func TestValidate_NestedObjects(t *testing.T) {
	input := Object(map[string]JSON{
		"namespace": String(),
		"documents": Array(documentSchema()),
	}, "documents")

	assert.NoError(t, input.Validate(map[string]any{
		"namespace": "animals",
		"documents": []any{
			map[string]any{"content": "cats are mammals"},
			map[string]any{"content": "dogs are mammals"},
		},
	}))

	err := input.Validate(map[string]any{
		"documents": []any{
			map[string]any{"content": "cats are mammals"},
			map[string]any{"metadata": map[string]any{}},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "property documents: item 1: required field content is missing")
}

func TestValidate_StructAsObject(t *testing.T) {
	type edit struct {
		Namespace string  `json:"namespace"`
		Operation string  `json:"operation"`
		Weight    float64 `json:"weight"`
	}

	s := Object(map[string]JSON{
		"namespace": String(),
		"operation": String(),
		"weight":    Number(),
	}, "namespace", "operation")

	assert.NoError(t, s.Validate(edit{Namespace: "animals", Operation: "update-edge", Weight: 0.8}))

	err := s.Validate(42)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected object, got int")
}

func TestValidate_Enum(t *testing.T) {
	format := Enum("json", "csv", "graphml")

	assert.NoError(t, format.Validate("csv"))

	err := format.Validate("yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not one of the allowed values")

	// Enum comparison is typed: the string "1" is not the number 1.
	hops := Enum(0, 1, 2)
	assert.NoError(t, hops.Validate(2))
	assert.Error(t, hops.Validate("2"))
}

func TestValidate_NilAndAny(t *testing.T) {
	assert.NoError(t, Any().Validate(nil))
	assert.NoError(t, Any().Validate("anything"))
	assert.NoError(t, Any().Validate(map[string]any{"k": 1}))

	err := String().Validate(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected type string, got nil")

	err = Object(nil).Validate(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected type object, got nil")
}

func TestValidate_UnknownTypePasses(t *testing.T) {
	// Forward compatibility: a schema written by a newer component with a
	// type this version doesn't know constrains nothing.
	s := JSON{Type: "date"}
	assert.NoError(t, s.Validate("2026-08-23"))
	assert.NoError(t, s.Validate(12))
}
