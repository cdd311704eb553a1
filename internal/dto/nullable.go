package dto

import "encoding/json"

// Nullable distinguishes an omitted field (Set == false) from an explicit
// null (Set == true, Value == nil) in partial updates.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

// Null is an explicitly provided null.
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

// Some is an explicitly provided value.
func Some[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Value: &v}
}
