package mcp

import (
	"context"
	"fmt"

	"github.com/jaytaylor/html2text"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ankimcp/anki-mcp-server/internal/anki"
)

// Agent-facing result shapes. Counts are included everywhere so the
// agent never has to measure lists itself.

type pingResult struct {
	Status  string `json:"status"`
	Version int    `json:"version"`
	Message string `json:"message,omitempty"`
}

type deckNamesResult struct {
	Decks []string `json:"decks"`
	Count int      `json:"count"`
}

type createDeckResult struct {
	Deck   string `json:"deck"`
	DeckID int64  `json:"deck_id"`
}

type deleteDeckResult struct {
	Deck    string `json:"deck"`
	Deleted bool   `json:"deleted"`
}

type modelNamesResult struct {
	Models []string `json:"models"`
	Count  int      `json:"count"`
}

type modelFieldNamesResult struct {
	ModelName string   `json:"model_name"`
	Fields    []string `json:"fields"`
	Count     int      `json:"count"`
}

type addNoteResult struct {
	NoteID int64 `json:"note_id"`
}

type addNotesResult struct {
	NoteIDs      []*int64 `json:"note_ids"`
	SuccessCount int      `json:"success_count"`
	FailureCount int      `json:"failure_count"`
}

type findNotesResult struct {
	Query   string  `json:"query"`
	NoteIDs []int64 `json:"note_ids"`
	Count   int     `json:"count"`
}

type noteInfo struct {
	NoteID    int64             `json:"note_id"`
	ModelName string            `json:"model_name"`
	Tags      []string          `json:"tags"`
	Fields    map[string]string `json:"fields"`
}

type notesInfoResult struct {
	Notes []noteInfo `json:"notes"`
	Count int        `json:"count"`
}

type deleteNotesResult struct {
	DeletedCount int `json:"deleted_count"`
}

func (s *Server) handlePing(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	version, err := s.anki.Version(ctx)
	if err != nil {
		return jsonResult(pingResult{Status: "error", Message: err.Error()}), nil
	}
	return jsonResult(pingResult{Status: "ok", Version: version}), nil
}

func (s *Server) handleGetDeckNames(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	decks, err := s.anki.DeckNames(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if decks == nil {
		decks = []string{}
	}
	return jsonResult(deckNamesResult{Decks: decks, Count: len(decks)}), nil
}

func (s *Server) handleCreateDeck(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	deck, err := request.RequireString("deck")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	id, err := s.anki.CreateDeck(ctx, deck)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(createDeckResult{Deck: deck, DeckID: id}), nil
}

func (s *Server) handleDeleteDeck(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	deck, err := request.RequireString("deck")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	cardsToo := true
	if v, ok := request.GetArguments()["cards_too"].(bool); ok {
		cardsToo = v
	}

	if err := s.anki.DeleteDecks(ctx, []string{deck}, cardsToo); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(deleteDeckResult{Deck: deck, Deleted: true}), nil
}

func (s *Server) handleGetModelNames(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	models, err := s.anki.ModelNames(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if models == nil {
		models = []string{}
	}
	return jsonResult(modelNamesResult{Models: models, Count: len(models)}), nil
}

func (s *Server) handleGetModelFieldNames(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	modelName, err := request.RequireString("model_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	fields, err := s.anki.ModelFieldNames(ctx, modelName)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if fields == nil {
		fields = []string{}
	}
	return jsonResult(modelFieldNamesResult{ModelName: modelName, Fields: fields, Count: len(fields)}), nil
}

func (s *Server) handleAddNote(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	note, err := noteFromArgs(request.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	id, err := s.anki.AddNote(ctx, note)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(addNoteResult{NoteID: id}), nil
}

func (s *Server) handleAddNotes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rawNotes, ok := request.GetArguments()["notes"].([]any)
	if !ok {
		return mcp.NewToolResultError("notes must be a list of note objects"), nil
	}

	notes := make([]anki.Note, len(rawNotes))
	for i, raw := range rawNotes {
		args, ok := raw.(map[string]any)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("note at index %d is not an object", i)), nil
		}
		note, err := noteFromArgs(args)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("note at index %d: %v", i, err)), nil
		}
		notes[i] = note
	}

	ids, err := s.anki.AddNotes(ctx, notes)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	successCount := 0
	for _, id := range ids {
		if id != nil {
			successCount++
		}
	}

	return jsonResult(addNotesResult{
		NoteIDs:      ids,
		SuccessCount: successCount,
		FailureCount: len(ids) - successCount,
	}), nil
}

// noteFromArgs shapes snake-case note arguments into a Note.
func noteFromArgs(args map[string]any) (anki.Note, error) {
	deckName, ok := args["deck_name"].(string)
	if !ok || deckName == "" {
		return anki.Note{}, fmt.Errorf("deck_name is required")
	}
	modelName, ok := args["model_name"].(string)
	if !ok || modelName == "" {
		return anki.Note{}, fmt.Errorf("model_name is required")
	}
	fields, err := stringMap(args["fields"])
	if err != nil {
		return anki.Note{}, fmt.Errorf("fields: %w", err)
	}
	tags, err := stringOrList(args["tags"])
	if err != nil {
		return anki.Note{}, fmt.Errorf("tags: %w", err)
	}

	return anki.Note{
		DeckName:  deckName,
		ModelName: modelName,
		Fields:    fields,
		Tags:      tags,
	}, nil
}

func (s *Server) handleFindNotes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ids, err := s.anki.FindNotes(ctx, query)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if ids == nil {
		ids = []int64{}
	}
	return jsonResult(findNotesResult{Query: query, NoteIDs: ids, Count: len(ids)}), nil
}

func (s *Server) handleGetNotesInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	ids, err := int64List(args["note_ids"])
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("note_ids: %v", err)), nil
	}

	plainText := false
	if v, ok := args["plain_text"].(bool); ok {
		plainText = v
	}

	infos, err := s.anki.NotesInfo(ctx, ids)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	notes := make([]noteInfo, len(infos))
	for i, info := range infos {
		notes[i] = flattenNoteInfo(info, plainText)
	}
	return jsonResult(notesInfoResult{Notes: notes, Count: len(notes)}), nil
}

// flattenNoteInfo drops AnkiConnect's {value, order} field shape down
// to a plain name→value mapping.
func flattenNoteInfo(info anki.NoteInfo, plainText bool) noteInfo {
	fields := make(map[string]string, len(info.Fields))
	for name, field := range info.Fields {
		value := field.Value
		if plainText {
			if text, err := html2text.FromString(value, html2text.Options{TextOnly: true}); err == nil {
				value = text
			}
		}
		fields[name] = value
	}

	tags := info.Tags
	if tags == nil {
		tags = []string{}
	}

	return noteInfo{
		NoteID:    info.NoteID,
		ModelName: info.ModelName,
		Tags:      tags,
		Fields:    fields,
	}
}

func (s *Server) handleDeleteNotes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ids, err := int64List(request.GetArguments()["note_ids"])
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("note_ids: %v", err)), nil
	}

	// Empty deletion lists short-circuit locally.
	if len(ids) == 0 {
		return jsonResult(deleteNotesResult{DeletedCount: 0}), nil
	}

	if err := s.anki.DeleteNotes(ctx, ids); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(deleteNotesResult{DeletedCount: len(ids)}), nil
}

func (s *Server) handleUpdateNotes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	ids, err := int64List(args["note_ids"])
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("note_ids: %v", err)), nil
	}

	spec, err := updateSpecFromArgs(args["updates"])
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("updates: %v", err)), nil
	}

	return jsonResult(s.anki.UpdateNotes(ctx, ids, spec)), nil
}

// updateSpecFromArgs shapes the updates object. Every part is
// optional; tags accept either a string or a list.
func updateSpecFromArgs(v any) (anki.UpdateSpec, error) {
	var spec anki.UpdateSpec

	obj, ok := v.(map[string]any)
	if !ok {
		return spec, fmt.Errorf("expected an object, got %T", v)
	}

	if deck, ok := obj["deck_name"]; ok && deck != nil {
		name, ok := deck.(string)
		if !ok {
			return spec, fmt.Errorf("deck_name must be a string")
		}
		spec.DeckName = name
	}

	if fields, ok := obj["fields"]; ok && fields != nil {
		m, err := stringMap(fields)
		if err != nil {
			return spec, fmt.Errorf("fields: %w", err)
		}
		spec.Fields = m
	}

	tagsAdd, err := stringOrList(obj["tags_add"])
	if err != nil {
		return spec, fmt.Errorf("tags_add: %w", err)
	}
	spec.TagsAdd = tagsAdd

	tagsRemove, err := stringOrList(obj["tags_remove"])
	if err != nil {
		return spec, fmt.Errorf("tags_remove: %w", err)
	}
	spec.TagsRemove = tagsRemove

	return spec, nil
}
