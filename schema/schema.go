package schema

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
)

// JSON is a JSON Schema definition. Graph tools declare one for their input
// and output payloads; the queue worker and the engine facade validate every
// payload against it before execution.
type JSON struct {
	Type        string          `json:"type,omitempty"`
	Description string          `json:"description,omitempty"`
	Properties  map[string]JSON `json:"properties,omitempty"`
	Required    []string        `json:"required,omitempty"`
	Items       *JSON           `json:"items,omitempty"`
	Enum        []any           `json:"enum,omitempty"`
	Default     any             `json:"default,omitempty"`
	Minimum     *float64        `json:"minimum,omitempty"`
	Maximum     *float64        `json:"maximum,omitempty"`
	MinLength   *int            `json:"minLength,omitempty"`
	MaxLength   *int            `json:"maxLength,omitempty"`
	Pattern     string          `json:"pattern,omitempty"`
	Format      string          `json:"format,omitempty"`
}

// Any accepts every value, including nil. Used for free-form fields such as
// node metadata values.
func Any() JSON {
	return JSON{}
}

// String creates a string schema.
func String() JSON {
	return JSON{Type: "string"}
}

// StringWithDesc creates a string schema with a description.
func StringWithDesc(desc string) JSON {
	return JSON{Type: "string", Description: desc}
}

// Int creates an integer schema. Whole-valued floats pass, since JSON
// decoding turns every number into float64.
func Int() JSON {
	return JSON{Type: "integer"}
}

// Number creates a number schema accepting integers and floats.
func Number() JSON {
	return JSON{Type: "number"}
}

// Bool creates a boolean schema.
func Bool() JSON {
	return JSON{Type: "boolean"}
}

// Array creates an array schema whose elements validate against items.
func Array(items JSON) JSON {
	return JSON{Type: "array", Items: &items}
}

// Object creates an object schema. Fields named in required must be present;
// fields not listed in properties are allowed and pass unvalidated.
func Object(properties map[string]JSON, required ...string) JSON {
	return JSON{Type: "object", Properties: properties, Required: required}
}

// Enum creates a schema that accepts only the listed values, compared with
// reflect.DeepEqual.
func Enum(values ...any) JSON {
	return JSON{Enum: values}
}

// Validate checks value against the schema and returns the first violation
// found, or nil if the value conforms.
func (s JSON) Validate(value any) error {
	if value == nil {
		if s.Type != "" {
			return fmt.Errorf("expected type %s, got nil", s.Type)
		}
		return nil
	}

	if len(s.Enum) > 0 {
		return s.validateEnum(value)
	}

	switch s.Type {
	case "string":
		return s.validateString(value)
	case "integer":
		return s.validateInteger(value)
	case "number":
		return s.validateNumber(value)
	case "boolean":
		return s.validateBoolean(value)
	case "array":
		return s.validateArray(value)
	case "object":
		return s.validateObject(value)
	default:
		// Empty or unrecognized type constrains nothing.
		return nil
	}
}

// asNumber widens any Go numeric value to float64. The second result is
// false for non-numeric values.
func asNumber(value any) (float64, bool) {
	switch v := reflect.ValueOf(value); v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	default:
		return 0, false
	}
}

func (s JSON) validateString(value any) error {
	str, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", value)
	}

	if s.MinLength != nil && len(str) < *s.MinLength {
		return fmt.Errorf("string length %d is less than minimum %d", len(str), *s.MinLength)
	}
	if s.MaxLength != nil && len(str) > *s.MaxLength {
		return fmt.Errorf("string length %d is greater than maximum %d", len(str), *s.MaxLength)
	}

	if s.Pattern != "" {
		matched, err := regexp.MatchString(s.Pattern, str)
		if err != nil {
			return fmt.Errorf("invalid pattern: %w", err)
		}
		if !matched {
			return fmt.Errorf("string does not match pattern %s", s.Pattern)
		}
	}

	return nil
}

func (s JSON) validateInteger(value any) error {
	num, ok := asNumber(value)
	if !ok {
		return fmt.Errorf("expected integer, got %T", value)
	}
	if num != float64(int64(num)) {
		return fmt.Errorf("expected integer, got float with decimal: %v", value)
	}
	return s.validateBounds(num)
}

func (s JSON) validateNumber(value any) error {
	num, ok := asNumber(value)
	if !ok {
		return fmt.Errorf("expected number, got %T", value)
	}
	return s.validateBounds(num)
}

func (s JSON) validateBounds(num float64) error {
	if s.Minimum != nil && num < *s.Minimum {
		return fmt.Errorf("value %v is less than minimum %v", num, *s.Minimum)
	}
	if s.Maximum != nil && num > *s.Maximum {
		return fmt.Errorf("value %v is greater than maximum %v", num, *s.Maximum)
	}
	return nil
}

func (s JSON) validateBoolean(value any) error {
	if _, ok := value.(bool); !ok {
		return fmt.Errorf("expected boolean, got %T", value)
	}
	return nil
}

func (s JSON) validateArray(value any) error {
	v := reflect.ValueOf(value)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return fmt.Errorf("expected array, got %T", value)
	}

	if s.Items == nil {
		return nil
	}
	for i := 0; i < v.Len(); i++ {
		if err := s.Items.Validate(v.Index(i).Interface()); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	return nil
}

func (s JSON) validateObject(value any) error {
	// Tool payloads are decoded JSON maps. Structs are accepted too by
	// round-tripping them through encoding/json.
	objMap, ok := value.(map[string]any)
	if !ok {
		data, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("expected object, got %T", value)
		}
		if err := json.Unmarshal(data, &objMap); err != nil {
			return fmt.Errorf("expected object, got %T", value)
		}
	}

	for _, req := range s.Required {
		if _, exists := objMap[req]; !exists {
			return fmt.Errorf("required field %s is missing", req)
		}
	}

	for key, val := range objMap {
		propSchema, exists := s.Properties[key]
		if !exists {
			// Unknown fields pass; tools ignore what they don't read.
			continue
		}
		if err := propSchema.Validate(val); err != nil {
			return fmt.Errorf("property %s: %w", key, err)
		}
	}

	return nil
}

func (s JSON) validateEnum(value any) error {
	for _, allowed := range s.Enum {
		if reflect.DeepEqual(value, allowed) {
			return nil
		}
	}
	return fmt.Errorf("value %v is not one of the allowed values: %v", value, s.Enum)
}
