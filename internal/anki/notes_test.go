package anki

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddNoteForcesDuplicateOptions(t *testing.T) {
	f := newFakeAnki(t)
	f.stubResult("addNote", 1496198395707)

	id, err := f.client().AddNote(context.Background(), Note{
		DeckName:  "Languages::French",
		ModelName: "Basic",
		Fields:    map[string]string{"Front": "Apple", "Back": "Pomme"},
		Tags:      []string{"fruit"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1496198395707), id)

	params := f.paramsFor("addNote")
	require.NotNil(t, params)
	note, ok := params["note"].(map[string]any)
	require.True(t, ok)

	assert.Equal(t, "Languages::French", note["deckName"])
	assert.Equal(t, "Basic", note["modelName"])

	options, ok := note["options"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, false, options["allowDuplicate"])
	assert.Equal(t, "deck", options["duplicateScope"])
}

func TestAddNoteNilTagsSentAsEmptyList(t *testing.T) {
	f := newFakeAnki(t)
	f.stubResult("addNote", 1)

	_, err := f.client().AddNote(context.Background(), Note{
		DeckName:  "Default",
		ModelName: "Basic",
		Fields:    map[string]string{"Front": "a", "Back": "b"},
	})
	require.NoError(t, err)

	note := f.paramsFor("addNote")["note"].(map[string]any)
	tags, ok := note["tags"].([]any)
	require.True(t, ok, "tags must be a JSON array, not null")
	assert.Empty(t, tags)
}

func TestAddNotesPreservesNullEntries(t *testing.T) {
	f := newFakeAnki(t)
	f.stubResult("addNotes", []any{float64(101), nil, float64(103)})

	ids, err := f.client().AddNotes(context.Background(), []Note{
		{DeckName: "D", ModelName: "Basic", Fields: map[string]string{"Front": "a"}},
		{DeckName: "D", ModelName: "Basic", Fields: map[string]string{"Front": "a"}},
		{DeckName: "D", ModelName: "Basic", Fields: map[string]string{"Front": "c"}},
	})
	require.NoError(t, err)
	require.Len(t, ids, 3)

	assert.Equal(t, int64(101), *ids[0])
	assert.Nil(t, ids[1])
	assert.Equal(t, int64(103), *ids[2])
}

func TestFindNotesForwardsQueryVerbatim(t *testing.T) {
	f := newFakeAnki(t)
	f.stubResult("findNotes", []int64{1, 2, 3})

	query := `deck:"Languages::French" tag:marked`
	ids, err := f.client().FindNotes(context.Background(), query)
	require.NoError(t, err)
	assert.Len(t, ids, 3)
	assert.Equal(t, query, f.paramsFor("findNotes")["query"])
}

func TestNotesInfoDecodesRawFieldShape(t *testing.T) {
	f := newFakeAnki(t)
	f.stubResult("notesInfo", []map[string]any{
		{
			"noteId":    1502298033753,
			"modelName": "Basic",
			"tags":      []string{"vocab"},
			"fields": map[string]any{
				"Front": map[string]any{"value": "Apple", "order": 0},
				"Back":  map[string]any{"value": "Pomme", "order": 1},
			},
			"cards": []int64{1498938915662},
		},
	})

	infos, err := f.client().NotesInfo(context.Background(), []int64{1502298033753})
	require.NoError(t, err)
	require.Len(t, infos, 1)

	info := infos[0]
	assert.Equal(t, int64(1502298033753), info.NoteID)
	assert.Equal(t, "Basic", info.ModelName)
	assert.Equal(t, []string{"vocab"}, info.Tags)
	assert.Equal(t, NoteField{Value: "Apple", Order: 0}, info.Fields["Front"])
	assert.Equal(t, []int64{1498938915662}, info.Cards)
}

func TestDeleteDecksParams(t *testing.T) {
	f := newFakeAnki(t)
	f.stubResult("deleteDecks", nil)

	err := f.client().DeleteDecks(context.Background(), []string{"Old"}, false)
	require.NoError(t, err)

	params := f.paramsFor("deleteDecks")
	assert.Equal(t, []any{"Old"}, params["decks"])
	assert.Equal(t, false, params["cardsToo"])
}

func TestCreateDeckPropagatesUpstreamError(t *testing.T) {
	f := newFakeAnki(t)
	f.stubError("createDeck", "collection is not available")

	_, err := f.client().CreateDeck(context.Background(), "New")
	var upErr *UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, "createDeck", upErr.Action)
}

func TestUpdateNoteFieldsParams(t *testing.T) {
	f := newFakeAnki(t)
	f.stubResult("updateNoteFields", nil)

	err := f.client().UpdateNoteFields(context.Background(), 42, map[string]string{"Front": "new"})
	require.NoError(t, err)

	note := f.paramsFor("updateNoteFields")["note"].(map[string]any)
	assert.Equal(t, float64(42), note["id"])
	assert.Equal(t, map[string]any{"Front": "new"}, note["fields"])
}
