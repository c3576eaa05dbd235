package mcp

import "fmt"

// Argument coercion helpers. MCP tool arguments arrive as decoded JSON
// (map[string]any with float64 numbers), so every list and mapping
// needs explicit shaping before it can cross into the typed clients.

// int64List coerces a JSON array of numbers into note/card IDs.
func int64List(v any) ([]int64, error) {
	if v == nil {
		return nil, fmt.Errorf("expected a list of IDs")
	}
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a list of IDs, got %T", v)
	}
	ids := make([]int64, len(items))
	for i, item := range items {
		n, ok := item.(float64)
		if !ok {
			return nil, fmt.Errorf("ID at index %d is not a number, got %T", i, item)
		}
		ids[i] = int64(n)
	}
	return ids, nil
}

// stringList coerces a JSON array of strings.
func stringList(v any) ([]string, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a list of strings, got %T", v)
	}
	out := make([]string, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("entry at index %d is not a string, got %T", i, item)
		}
		out[i] = s
	}
	return out, nil
}

// stringOrList accepts either a single string or a list of strings.
// Tag arguments historically arrive both ways.
func stringOrList(v any) ([]string, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case string:
		if t == "" {
			return nil, nil
		}
		return []string{t}, nil
	default:
		return stringList(v)
	}
}

// stringMap coerces a JSON object with string values, e.g. a field
// name to field content mapping.
func stringMap(v any) (map[string]string, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected an object, got %T", v)
	}
	out := make(map[string]string, len(obj))
	for key, val := range obj {
		s, ok := val.(string)
		if !ok {
			return nil, fmt.Errorf("value for %q is not a string, got %T", key, val)
		}
		out[key] = s
	}
	return out, nil
}
