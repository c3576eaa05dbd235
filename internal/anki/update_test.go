package anki

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noteInfoWithCards(noteID int64, cardIDs ...int64) map[string]any {
	return map[string]any{
		"noteId":    noteID,
		"modelName": "Basic",
		"tags":      []string{},
		"fields":    map[string]any{},
		"cards":     cardIDs,
	}
}

func TestUpdateNotesAllPartsInFixedOrder(t *testing.T) {
	f := newFakeAnki(t)
	f.stubResult("notesInfo", []map[string]any{noteInfoWithCards(1, 10, 11)})
	f.stubResult("changeDeck", nil)
	f.stubResult("updateNoteFields", nil)
	f.stubResult("addTags", nil)
	f.stubResult("removeTags", nil)

	res := f.client().UpdateNotes(context.Background(), []int64{1}, UpdateSpec{
		DeckName:   "Archive",
		Fields:     map[string]string{"Front": "x"},
		TagsAdd:    []string{"a", "b"},
		TagsRemove: []string{"c"},
	})

	assert.Equal(t, []string{OpDeckName, OpFields, OpTagsAdd, OpTagsRemove}, res.Operations)
	assert.Equal(t, 1, res.UpdatedCount)
	assert.Zero(t, res.FailedCount)
	assert.Empty(t, res.Errors)
	assert.False(t, res.PartialSuccess)

	assert.Equal(t,
		[]string{"notesInfo", "changeDeck", "updateNoteFields", "addTags", "removeTags"},
		f.actions())
}

func TestUpdateNotesJoinsTags(t *testing.T) {
	f := newFakeAnki(t)
	f.stubResult("addTags", nil)
	f.stubResult("removeTags", nil)

	res := f.client().UpdateNotes(context.Background(), []int64{1, 2}, UpdateSpec{
		TagsAdd:    []string{"a", "b"},
		TagsRemove: []string{"c"},
	})

	assert.Equal(t, []string{OpTagsAdd, OpTagsRemove}, res.Operations)
	assert.Equal(t, "a b", f.paramsFor("addTags")["tags"])
	assert.Equal(t, "c", f.paramsFor("removeTags")["tags"])
	assert.Equal(t, []any{float64(1), float64(2)}, f.paramsFor("addTags")["notes"])
}

func TestUpdateNotesDeckChangeWithoutCards(t *testing.T) {
	f := newFakeAnki(t)
	f.stubResult("notesInfo", []map[string]any{noteInfoWithCards(1)})
	f.stubResult("changeDeck", nil)

	res := f.client().UpdateNotes(context.Background(), []int64{1}, UpdateSpec{
		DeckName: "Archive",
	})

	require.NotEmpty(t, res.Errors)
	assert.Contains(t, res.Errors[0], OpDeckName+":")
	assert.Zero(t, res.UpdatedCount)
	assert.Equal(t, 1, res.FailedCount)
	assert.False(t, res.PartialSuccess)

	// The move itself must never have been issued.
	assert.NotContains(t, f.actions(), "changeDeck")
}

func TestUpdateNotesPartialSuccess(t *testing.T) {
	f := newFakeAnki(t)
	f.stubError("updateNoteFields", "field not found: Bogus")
	f.stubResult("addTags", nil)

	res := f.client().UpdateNotes(context.Background(), []int64{1, 2, 3}, UpdateSpec{
		Fields:  map[string]string{"Bogus": "x"},
		TagsAdd: []string{"reviewed"},
	})

	assert.Equal(t, []string{OpTagsAdd}, res.Operations)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], OpFields+":")
	assert.True(t, res.PartialSuccess)
	assert.Equal(t, 3, res.UpdatedCount)
	assert.Zero(t, res.FailedCount)
}

func TestUpdateNotesAllOperationsFail(t *testing.T) {
	f := newFakeAnki(t)
	f.stubError("addTags", "collection locked")
	f.stubError("removeTags", "collection locked")

	res := f.client().UpdateNotes(context.Background(), []int64{1, 2}, UpdateSpec{
		TagsAdd:    []string{"a"},
		TagsRemove: []string{"b"},
	})

	assert.Empty(t, res.Operations)
	assert.Len(t, res.Errors, 2)
	assert.False(t, res.PartialSuccess)
	assert.Zero(t, res.UpdatedCount)
	assert.Equal(t, 2, res.FailedCount)
}

func TestUpdateNotesFieldReplacementPerNote(t *testing.T) {
	f := newFakeAnki(t)
	f.stubResult("updateNoteFields", nil)

	res := f.client().UpdateNotes(context.Background(), []int64{1, 2, 3}, UpdateSpec{
		Fields: map[string]string{"Front": "x"},
	})

	require.Equal(t, []string{OpFields}, res.Operations)
	// One updateNoteFields call per note.
	assert.Equal(t, []string{"updateNoteFields", "updateNoteFields", "updateNoteFields"}, f.actions())
}

func TestUpdateNotesEmptySpecIsNoOp(t *testing.T) {
	f := newFakeAnki(t)

	res := f.client().UpdateNotes(context.Background(), []int64{1}, UpdateSpec{})

	assert.Empty(t, res.Operations)
	assert.Empty(t, res.Errors)
	assert.Equal(t, 1, res.UpdatedCount)
	assert.Empty(t, f.actions())
}
