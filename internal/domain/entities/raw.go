package entities

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Raw holds the untouched backend payload an entity was normalized from.
// It marshals back to exactly the bytes it was built with.
type Raw json.RawMessage

// MarshalJSON emits the stored payload verbatim.
func (r Raw) MarshalJSON() ([]byte, error) {
	if len(r) == 0 {
		return []byte("null"), nil
	}
	return r, nil
}

// UnmarshalJSON keeps a copy of the payload bytes.
func (r *Raw) UnmarshalJSON(data []byte) error {
	if r == nil {
		return fmt.Errorf("entities.Raw: UnmarshalJSON on nil pointer")
	}
	*r = append((*r)[:0], data...)
	return nil
}

// Decode unmarshals the payload into v.
func (r Raw) Decode(v any) error {
	if len(r) == 0 {
		return fmt.Errorf("empty payload")
	}
	return json.Unmarshal(r, v)
}

// Field returns a single top-level field of an object payload.
func (r Raw) Field(name string) (any, bool) {
	var fields map[string]any
	if err := r.Decode(&fields); err != nil {
		return nil, false
	}
	value, ok := fields[name]
	return value, ok
}

// IsMock reports whether the payload is a placeholder synthesized after a failed call.
func (r Raw) IsMock() bool {
	value, ok := r.Field("mock")
	if !ok {
		return false
	}
	flag, isBool := value.(bool)
	return isBool && flag
}

// Equal compares two payloads byte for byte after trimming surrounding whitespace.
func (r Raw) Equal(other Raw) bool {
	return bytes.Equal(bytes.TrimSpace(r), bytes.TrimSpace(other))
}

// NewMockRaw builds the payload of a placeholder entity.
func NewMockRaw(provider, operation string, cause error) Raw {
	message := ""
	if cause != nil {
		message = cause.Error()
	}
	//nolint:errchkjson // map of strings and a bool always marshals
	data, _ := json.Marshal(map[string]any{
		"mock":      true,
		"error":     message,
		"provider":  provider,
		"operation": operation,
	})
	return Raw(data)
}
