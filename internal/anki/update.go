package anki

import (
	"context"
	"fmt"
	"strings"
)

// Sub-operation names, in execution order.
const (
	OpDeckName   = "deck_name"
	OpFields     = "fields"
	OpTagsAdd    = "tags_add"
	OpTagsRemove = "tags_remove"
)

// UpdateSpec describes the independent parts of a batch note update.
// Every part is optional; a zero-value part is skipped.
type UpdateSpec struct {
	DeckName   string
	Fields     map[string]string
	TagsAdd    []string
	TagsRemove []string
}

// UpdateResult reports the outcome of UpdateNotes.
//
// Failure accounting is per sub-operation, not per note: when any
// errors occurred, every note counts as updated if at least one
// sub-operation succeeded, and as failed otherwise.
type UpdateResult struct {
	UpdatedCount   int      `json:"updated_count"`
	FailedCount    int      `json:"failed_count"`
	Operations     []string `json:"operations"`
	Errors         []string `json:"errors,omitempty"`
	PartialSuccess bool     `json:"partial_success,omitempty"`
}

// UpdateNotes applies each requested part of spec to the given notes
// as an independent sub-operation, in the order deck_name, fields,
// tags_add, tags_remove. A failing sub-operation is recorded and does
// not abort the remaining ones.
func (c *Client) UpdateNotes(ctx context.Context, noteIDs []int64, spec UpdateSpec) *UpdateResult {
	res := &UpdateResult{Operations: []string{}}

	run := func(op string, fn func() error) {
		if err := fn(); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", op, err))
			return
		}
		res.Operations = append(res.Operations, op)
	}

	if spec.DeckName != "" {
		run(OpDeckName, func() error {
			return c.moveNotesToDeck(ctx, noteIDs, spec.DeckName)
		})
	}
	if len(spec.Fields) > 0 {
		run(OpFields, func() error {
			return c.replaceNoteFields(ctx, noteIDs, spec.Fields)
		})
	}
	if len(spec.TagsAdd) > 0 {
		run(OpTagsAdd, func() error {
			return c.AddTags(ctx, noteIDs, strings.Join(spec.TagsAdd, " "))
		})
	}
	if len(spec.TagsRemove) > 0 {
		run(OpTagsRemove, func() error {
			return c.RemoveTags(ctx, noteIDs, strings.Join(spec.TagsRemove, " "))
		})
	}

	switch {
	case len(res.Errors) == 0:
		res.UpdatedCount = len(noteIDs)
	case len(res.Operations) > 0:
		res.UpdatedCount = len(noteIDs)
		res.PartialSuccess = true
	default:
		res.FailedCount = len(noteIDs)
	}

	return res
}

// moveNotesToDeck resolves the card IDs behind the given notes and
// moves them all to the destination deck. Zero resolved cards is a
// local error; no move call is issued.
func (c *Client) moveNotesToDeck(ctx context.Context, noteIDs []int64, deck string) error {
	infos, err := c.NotesInfo(ctx, noteIDs)
	if err != nil {
		return err
	}

	var cardIDs []int64
	for _, info := range infos {
		cardIDs = append(cardIDs, info.Cards...)
	}
	if len(cardIDs) == 0 {
		return fmt.Errorf("no cards resolved for the given notes")
	}

	return c.ChangeDeck(ctx, cardIDs, deck)
}

// replaceNoteFields issues one updateNoteFields call per note with the
// full replacement mapping. The first failure stops the loop.
func (c *Client) replaceNoteFields(ctx context.Context, noteIDs []int64, fields map[string]string) error {
	for _, id := range noteIDs {
		if err := c.UpdateNoteFields(ctx, id, fields); err != nil {
			return fmt.Errorf("note %d: %w", id, err)
		}
	}
	return nil
}
