package anki

import (
	"context"
	"encoding/json"
	"fmt"
)

// Note describes one flashcard to be added.
type Note struct {
	DeckName  string            `json:"deck_name"`
	ModelName string            `json:"model_name"`
	Fields    map[string]string `json:"fields"`
	Tags      []string          `json:"tags,omitempty"`
}

// NoteField is AnkiConnect's raw per-field shape.
type NoteField struct {
	Value string `json:"value"`
	Order int    `json:"order"`
}

// NoteInfo is one record returned by notesInfo.
type NoteInfo struct {
	NoteID    int64                `json:"noteId"`
	ModelName string               `json:"modelName"`
	Tags      []string             `json:"tags"`
	Fields    map[string]NoteField `json:"fields"`
	Cards     []int64              `json:"cards"`
}

// noteParams maps a Note onto AnkiConnect's camelCase note shape.
// Duplicate submissions are rejected, scoped to the target deck.
func noteParams(n Note) map[string]any {
	tags := n.Tags
	if tags == nil {
		tags = []string{}
	}
	return map[string]any{
		"deckName":  n.DeckName,
		"modelName": n.ModelName,
		"fields":    n.Fields,
		"tags":      tags,
		"options": map[string]any{
			"allowDuplicate": false,
			"duplicateScope": "deck",
		},
	}
}

// AddNote adds a single note and returns its ID.
func (c *Client) AddNote(ctx context.Context, n Note) (int64, error) {
	raw, err := c.Invoke(ctx, "addNote", map[string]any{"note": noteParams(n)})
	if err != nil {
		return 0, err
	}
	var id int64
	if err := json.Unmarshal(raw, &id); err != nil {
		return 0, fmt.Errorf("decode addNote result: %w", err)
	}
	return id, nil
}

// AddNotes adds a batch of notes. The result has one entry per input
// note in input order; a nil entry marks a note Anki rejected
// (typically a duplicate).
func (c *Client) AddNotes(ctx context.Context, notes []Note) ([]*int64, error) {
	params := make([]map[string]any, len(notes))
	for i, n := range notes {
		params[i] = noteParams(n)
	}
	raw, err := c.Invoke(ctx, "addNotes", map[string]any{"notes": params})
	if err != nil {
		return nil, err
	}
	var ids []*int64
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, fmt.Errorf("decode addNotes result: %w", err)
	}
	return ids, nil
}

// FindNotes forwards an Anki search query verbatim and returns the
// matching note IDs. Query syntax is entirely Anki's business.
func (c *Client) FindNotes(ctx context.Context, query string) ([]int64, error) {
	raw, err := c.Invoke(ctx, "findNotes", map[string]any{"query": query})
	if err != nil {
		return nil, err
	}
	var ids []int64
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, fmt.Errorf("decode findNotes result: %w", err)
	}
	return ids, nil
}

// NotesInfo fetches raw note records, including the {value, order}
// field shape and the card IDs each note generated.
func (c *Client) NotesInfo(ctx context.Context, noteIDs []int64) ([]NoteInfo, error) {
	raw, err := c.Invoke(ctx, "notesInfo", map[string]any{"notes": noteIDs})
	if err != nil {
		return nil, err
	}
	var infos []NoteInfo
	if err := json.Unmarshal(raw, &infos); err != nil {
		return nil, fmt.Errorf("decode notesInfo result: %w", err)
	}
	return infos, nil
}

// DeleteNotes deletes the given notes and all cards they generated.
func (c *Client) DeleteNotes(ctx context.Context, noteIDs []int64) error {
	_, err := c.Invoke(ctx, "deleteNotes", map[string]any{"notes": noteIDs})
	return err
}

// ChangeDeck moves the given cards to the named deck, creating it if
// needed.
func (c *Client) ChangeDeck(ctx context.Context, cardIDs []int64, deck string) error {
	_, err := c.Invoke(ctx, "changeDeck", map[string]any{
		"cards": cardIDs,
		"deck":  deck,
	})
	return err
}

// UpdateNoteFields replaces field values on one note. Fields not named
// in the mapping keep their current values.
func (c *Client) UpdateNoteFields(ctx context.Context, noteID int64, fields map[string]string) error {
	_, err := c.Invoke(ctx, "updateNoteFields", map[string]any{
		"note": map[string]any{
			"id":     noteID,
			"fields": fields,
		},
	})
	return err
}

// AddTags adds the space-delimited tags to all given notes.
func (c *Client) AddTags(ctx context.Context, noteIDs []int64, tags string) error {
	_, err := c.Invoke(ctx, "addTags", map[string]any{
		"notes": noteIDs,
		"tags":  tags,
	})
	return err
}

// RemoveTags removes the space-delimited tags from all given notes.
func (c *Client) RemoveTags(ctx context.Context, noteIDs []int64, tags string) error {
	_, err := c.Invoke(ctx, "removeTags", map[string]any{
		"notes": noteIDs,
		"tags":  tags,
	})
	return err
}
