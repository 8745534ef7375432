package schema

import (
	"encoding/json"
	"fmt"
)

// Kind is the JSON primitive a field must hold.
type Kind int

const (
	String Kind = iota + 1
	Number
	Boolean
	Object
	Array
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Number:
		return "number"
	case Boolean:
		return "boolean"
	case Object:
		return "object"
	case Array:
		return "array"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// kindOf reports the Kind of a decoded JSON value. ok is false for null and for
// values encoding/json never produces.
func kindOf(v any) (kind Kind, ok bool) {
	switch v.(type) {
	case string:
		return String, true
	case json.Number, float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return Number, true
	case bool:
		return Boolean, true
	case map[string]any:
		return Object, true
	case []any:
		return Array, true
	}
	return 0, false
}

func describe(v any) string {
	if v == nil {
		return "null"
	}
	if k, ok := kindOf(v); ok {
		return k.String()
	}
	return fmt.Sprintf("%T", v)
}
