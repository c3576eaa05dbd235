package anki

import (
	"context"
	"encoding/json"
	"fmt"
)

// ModelNames lists all note type (model) names.
func (c *Client) ModelNames(ctx context.Context) ([]string, error) {
	raw, err := c.Invoke(ctx, "modelNames", nil)
	if err != nil {
		return nil, err
	}
	var names []string
	if err := json.Unmarshal(raw, &names); err != nil {
		return nil, fmt.Errorf("decode modelNames result: %w", err)
	}
	return names, nil
}

// ModelFieldNames lists the field names a note type defines, in the
// order Anki presents them.
func (c *Client) ModelFieldNames(ctx context.Context, modelName string) ([]string, error) {
	raw, err := c.Invoke(ctx, "modelFieldNames", map[string]any{"modelName": modelName})
	if err != nil {
		return nil, err
	}
	var fields []string
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("decode modelFieldNames result: %w", err)
	}
	return fields, nil
}
