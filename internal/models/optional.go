package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
)

// Optional is a JSON field that remembers whether it was provided at all.
// An absent key leaves Set false; an explicit null sets both Set and Null.
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// Some returns a provided, non-null Optional.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Null returns a provided Optional holding an explicit null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	var zero T
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		o.Value = zero
		return nil
	}
	o.Null = false
	o.Value = zero
	err := json.Unmarshal(data, &o.Value)
	var typeErr *json.UnmarshalTypeError
	if err == nil || errors.As(err, &typeErr) {
		return err
	}
	// Report values rejected by T's own decoder, such as a bad timestamp, as
	// type errors so the decoder tags them with the field name.
	return &json.UnmarshalTypeError{Value: string(data), Type: reflect.TypeFor[T]()}
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// IsPresent reports whether the field was provided, null or not.
func (o Optional[T]) IsPresent() bool {
	return o.Set
}

// Raw returns the provided value, or nil for an explicit null.
func (o Optional[T]) Raw() any {
	if o.Null {
		return nil
	}
	return o.Value
}

// Field is the type-erased view of an Optional used when building change sets.
type Field interface {
	IsPresent() bool
	Raw() any
}

// StripAbsent drops every entry that was never provided and unwraps the rest.
// Explicit nulls survive as nil values.
func StripAbsent(fields map[string]Field) map[string]any {
	out := make(map[string]any, len(fields))
	for name, f := range fields {
		if f == nil || !f.IsPresent() {
			continue
		}
		out[name] = f.Raw()
	}
	return out
}
