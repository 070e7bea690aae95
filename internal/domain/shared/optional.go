package shared

import (
	"bytes"
	"encoding/json"
)

// Optional is a patch field that tells "absent" apart from "set".
// A field set to its zero value (or to JSON null) means "clear it".
type Optional[T any] struct {
	value T
	set   bool
}

// Some returns an Optional holding v
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// None returns an unset Optional
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it was set
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSet reports whether the field was present
func (o Optional[T]) IsSet() bool {
	return o.set
}

// OrElse returns the value when set, otherwise def
func (o Optional[T]) OrElse(def T) T {
	if o.set {
		return o.value
	}
	return def
}

// UnmarshalJSON marks the field as set. JSON null clears it to the zero value.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		o.value = zero
		return nil
	}
	return json.Unmarshal(data, &o.value)
}

// MarshalJSON writes the value, or null when unset
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.set {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}
