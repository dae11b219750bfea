package schema

import (
	"reflect"
	"strings"
	"time"
)

var timeType = reflect.TypeOf(time.Time{})

// FromType derives a JSON schema from a Go value's type using reflection.
// Tools use it to build input and output schemas from their request and
// response structs instead of writing the schema by hand.
//
// Mapping:
//   - struct: object schema, one property per exported field
//   - slice/array: array schema
//   - map: object schema without property constraints
//   - string, integer and float widths, bool: the matching primitive
//   - time.Time: string with the date-time format
//   - interface/any and unknown kinds: unconstrained schema
//
// Struct tags drive the object shape: `json:"name"` renames the property,
// `json:"-"` drops the field, omitempty makes it optional, and a
// `description:"..."` tag becomes the property description.
func FromType(t any) JSON {
	if t == nil {
		return JSON{}
	}
	return typeSchema(reflect.TypeOf(t))
}

func typeSchema(t reflect.Type) JSON {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t == timeType {
		return JSON{Type: "string", Format: "date-time"}
	}

	switch t.Kind() {
	case reflect.Struct:
		return structSchema(t)
	case reflect.Slice, reflect.Array:
		items := typeSchema(t.Elem())
		return JSON{Type: "array", Items: &items}
	case reflect.Map:
		// Key constraints aren't expressible here; accept any object.
		return JSON{Type: "object"}
	case reflect.String:
		return JSON{Type: "string"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return JSON{Type: "integer"}
	case reflect.Float32, reflect.Float64:
		return JSON{Type: "number"}
	case reflect.Bool:
		return JSON{Type: "boolean"}
	default:
		// interface{} and anything unrepresentable: unconstrained.
		return JSON{}
	}
}

func structSchema(t reflect.Type) JSON {
	properties := make(map[string]JSON)
	var required []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		name, optional, skip := jsonTag(field)
		if skip {
			continue
		}

		prop := typeSchema(field.Type)
		if desc := field.Tag.Get("description"); desc != "" {
			prop.Description = desc
		}
		properties[name] = prop

		if !optional {
			required = append(required, name)
		}
	}

	return JSON{Type: "object", Properties: properties, Required: required}
}

// jsonTag resolves the property name, optionality, and exclusion of a struct
// field from its json tag, defaulting to the Go field name.
func jsonTag(field reflect.StructField) (name string, optional, skip bool) {
	name = field.Name

	tag := field.Tag.Get("json")
	if tag == "" {
		return name, false, false
	}
	if tag == "-" {
		return "", false, true
	}

	parts := strings.Split(tag, ",")
	if parts[0] != "" {
		name = parts[0]
	}
	for _, opt := range parts[1:] {
		if opt == "omitempty" {
			optional = true
		}
	}
	return name, optional, false
}
