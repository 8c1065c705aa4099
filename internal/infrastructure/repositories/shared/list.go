package shared

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// UnwrapList accepts the three list shapes the backends answer with: a bare array,
// {"items": [...]} (GitHub search) and {"data": [...]} (Gitea search). Each element
// keeps its original bytes.
func UnwrapList(payload json.RawMessage) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []json.RawMessage{}, nil
	}

	if trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("failed to decode list: %w", err)
		}
		return items, nil
	}

	var envelope struct {
		Items json.RawMessage `json:"items"`
		Data  json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode list envelope: %w", err)
	}
	switch {
	case len(envelope.Items) > 0:
		return UnwrapList(envelope.Items)
	case len(envelope.Data) > 0:
		return UnwrapList(envelope.Data)
	default:
		return nil, fmt.Errorf("list payload has neither items nor data")
	}
}

// MapList normalizes every element of a list payload.
func MapList[T any](payload json.RawMessage, normalize func(json.RawMessage) (T, error)) ([]T, error) {
	items, err := UnwrapList(payload)
	if err != nil {
		return nil, err
	}
	result := make([]T, 0, len(items))
	for _, item := range items {
		entity, normalizeErr := normalize(item)
		if normalizeErr != nil {
			return nil, normalizeErr
		}
		result = append(result, entity)
	}
	return result, nil
}
