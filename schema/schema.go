// Package schema checks decoded JSON against a declared shape and projects it onto a Go type.
//
// A schema is built from shapes. Required fields must be present and of the declared kind,
// Partial fields are checked only when present, and Intersection combines both:
//
//	var PersonValidator = schema.Intersection[Person](
//		schema.Required(schema.Props{"name": schema.String}),
//		schema.Partial(schema.Props{"age": schema.Number}),
//	)
//
// Fields not named by any shape are ignored.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"

	"github.com/go-viper/mapstructure/v2"
)

// Validator decodes a raw JSON value into T, failing with an error that matches
// ErrSchemaValidation when raw does not conform.
type Validator[T any] interface {
	Decode(raw any) (T, error)
}

// Func adapts an ordinary function to a Validator.
type Func[T any] func(raw any) (T, error)

func (f Func[T]) Decode(raw any) (T, error) {
	return f(raw)
}

// Props maps JSON field names to the kind each must hold.
type Props map[string]Kind

// Shape is one member of an Intersection.
type Shape struct {
	props   Props
	partial bool
}

// Required describes fields that must all be present and non-null.
func Required(props Props) Shape {
	return Shape{props: props}
}

// Partial describes fields that may be absent but are type checked when present.
func Partial(props Props) Shape {
	return Shape{props: props, partial: true}
}

// Type is a Validator built from shapes.
type Type[T any] struct {
	shapes []Shape
}

var _ Validator[struct{}] = (*Type[struct{}])(nil)

// Intersection returns a Type[T] that accepts an object only if it satisfies every shape.
func Intersection[T any](shapes ...Shape) *Type[T] {
	return &Type[T]{shapes: append([]Shape(nil), shapes...)}
}

// Decode accepts a map[string]any, []byte or json.RawMessage.
func (t *Type[T]) Decode(raw any) (T, error) {
	var out T

	obj, ok := asObject(raw)
	if !ok {
		return out, invalid(FieldError{Field: "$", Expected: Object, Got: describe(raw)})
	}

	if errs := t.check(obj); len(errs) > 0 {
		return out, invalid(errs...)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    "json",
		DecodeHook: numberHook,
		Result:     &out,
	})
	if err != nil {
		return out, invalid(FieldError{Field: "$", Reason: err.Error()})
	}
	if err := decoder.Decode(obj); err != nil {
		return out, invalid(FieldError{Field: "$", Reason: err.Error()})
	}
	return out, nil
}

func (t *Type[T]) check(obj map[string]any) []FieldError {
	var errs []FieldError
	for _, shape := range t.shapes {
		names := make([]string, 0, len(shape.props))
		for name := range shape.props {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			expected := shape.props[name]
			value, present := obj[name]
			if !present {
				if !shape.partial {
					errs = append(errs, FieldError{Field: name, Expected: expected})
				}
				continue
			}
			if got, ok := kindOf(value); !ok || got != expected {
				errs = append(errs, FieldError{Field: name, Expected: expected, Got: describe(value)})
			}
		}
	}
	return errs
}

// numberHook projects any JSON number onto integer and float fields. Integer
// fields take the whole part, so 3600.0 and 3.6e3 both decode as 3600.
func numberHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	n, ok := data.(json.Number)
	if !ok {
		return data, nil
	}
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
		f, err := n.Float64()
		if err != nil {
			return nil, err
		}
		f = math.Trunc(f)
		if f < math.MinInt64 || f >= math.MaxInt64 {
			return nil, fmt.Errorf("%s is out of range for %s", n, to)
		}
		return int64(f), nil
	case reflect.Float32, reflect.Float64:
		return n.Float64()
	}
	return data, nil
}

func asObject(raw any) (map[string]any, bool) {
	switch v := raw.(type) {
	case map[string]any:
		return v, true
	case json.RawMessage:
		return unmarshalObject(v)
	case []byte:
		return unmarshalObject(v)
	}
	return nil, false
}

func unmarshalObject(data []byte) (map[string]any, bool) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}
