package descriptions

// Tool descriptions surfaced to the agent through the MCP tool list.

const (
	// Health check
	PingDescription = `Check if Anki is running and AnkiConnect is responsive.

**When to use:** First, before any other Anki operation.

**Returns:** {"status": "ok", "version": N} when reachable, {"status": "error", "message": "..."} otherwise. This tool never fails; connection problems are reported in the payload.`

	// Deck tools
	GetDeckNamesDescription = `List all existing deck names in Anki.

Deck names use "::" as a separator for nested decks (e.g. "Languages::French::Vocabulary"). Use this before creating decks or adding notes to see what already exists.`

	CreateDeckDescription = `Create a new deck in Anki.

Use "::" for nested decks (e.g. "Science::Biology::Cells"). Creating a deck that already exists is a no-op and returns the existing deck ID.`

	DeleteDeckDescription = `Delete a deck in Anki.

With cards_too=true (default) the contained cards and notes are deleted as well; with false they are moved to the "Default" deck.`

	// Model tools
	GetModelNamesDescription = `List all available note types (models) in Anki.

Common built-ins: "Basic" (Front/Back), "Basic (and reversed card)", "Cloze" (Text/Extra). Use this to discover models before adding notes.`

	GetModelFieldNamesDescription = `Get the field names of a note type.

Always call this before add_note so the field mapping uses the exact names the model defines ("Basic" has ["Front", "Back"], "Cloze" has ["Text", "Extra"]).`

	// Note tools
	AddNoteDescription = `Add a single note (flashcard) to Anki.

**Workflow:** get_deck_names (or create_deck) → get_model_names → get_model_field_names → add_note.

Duplicates are rejected within the target deck. Fields must match the model's field names exactly.`

	AddNotesDescription = `Add multiple notes to Anki in one batch.

Much more efficient than repeated add_note calls. Each input needs deck_name, model_name, fields and optional tags. The result lists one note ID per input in input order, with null marking a rejected note (typically a duplicate), plus success and failure counts.`

	FindNotesDescription = `Search for notes using Anki's search syntax.

The query is forwarded verbatim (e.g. 'deck:Default', 'tag:marked', 'front:apple'); syntax is entirely Anki's. Returns matching note IDs.`

	GetNotesInfoDescription = `Get detailed information about notes by ID.

Field values are flattened to a plain name→value mapping. Set plain_text=true to additionally strip HTML markup from field values.`

	DeleteNotesDescription = `Delete notes by ID, along with all cards they generated.

An empty ID list is a no-op that reports deleted_count 0 without contacting Anki.`

	UpdateNotesDescription = `Batch-update notes: move to another deck, replace field values, add tags, remove tags.

The four parts of "updates" (deck_name, fields, tags_add, tags_remove) are optional and applied independently in that order; a failing part does not stop the others. The result echoes which operations succeeded, lists per-operation errors, and flags partial success.`

	// PDF tools
	GetPDFTableOfContentsDescription = `Extract a PDF's table of contents (outline/bookmarks).

Returns (level, title, page) entries flattened depth-first. Useful for picking chapter page ranges to feed into read_pdf_pages. A PDF without an outline returns an empty list plus a hint. Failures are returned as an {"error": ...} payload rather than a tool error.`

	ReadPDFPagesDescription = `Extract plain text from a page range of a PDF.

Pages are 1-indexed and the range is inclusive; it is clamped against the document's actual page count. A start page beyond the last page returns an {"error": ...} payload. Use get_pdf_table_of_contents first to find interesting ranges.`

	GetPDFInfoDescription = `Get page count, file size and document metadata of a PDF.

Useful for sizing read_pdf_pages ranges before extracting text.`
)
