// Package mcp wires the AnkiConnect client and the PDF service into a
// Model Context Protocol tool surface served over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ankimcp/anki-mcp-server/internal/anki"
	"github.com/ankimcp/anki-mcp-server/internal/config"
	"github.com/ankimcp/anki-mcp-server/internal/descriptions"
	"github.com/ankimcp/anki-mcp-server/internal/pdf"
)

// Server represents the MCP server instance.
type Server struct {
	config     *config.Config
	anki       *anki.Client
	pdfService *pdf.Service
	mcpServer  *server.MCPServer
}

// NewServer creates a new MCP server instance.
func NewServer(cfg *config.Config, ankiClient *anki.Client, pdfService *pdf.Service) (*Server, error) {
	if ankiClient == nil {
		return nil, fmt.Errorf("ankiClient cannot be nil")
	}
	if pdfService == nil {
		return nil, fmt.Errorf("pdfService cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false), // the tool set is static
	)

	s := &Server{
		config:     cfg,
		anki:       ankiClient,
		pdfService: pdfService,
		mcpServer:  mcpServer,
	}

	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool(
		"ping",
		mcp.WithDescription(descriptions.PingDescription),
	), s.handlePing)

	s.mcpServer.AddTool(mcp.NewTool(
		"get_deck_names",
		mcp.WithDescription(descriptions.GetDeckNamesDescription),
	), s.handleGetDeckNames)

	s.mcpServer.AddTool(mcp.NewTool(
		"create_deck",
		mcp.WithDescription(descriptions.CreateDeckDescription),
		mcp.WithString("deck",
			mcp.Required(),
			mcp.Description("Name of the deck to create; use :: for nesting"),
		),
	), s.handleCreateDeck)

	s.mcpServer.AddTool(mcp.NewTool(
		"delete_deck",
		mcp.WithDescription(descriptions.DeleteDeckDescription),
		mcp.WithString("deck",
			mcp.Required(),
			mcp.Description("Name of the deck to delete"),
		),
		mcp.WithBoolean("cards_too",
			mcp.Description("Delete contained cards too (default true); false moves them to the Default deck"),
		),
	), s.handleDeleteDeck)

	s.mcpServer.AddTool(mcp.NewTool(
		"get_model_names",
		mcp.WithDescription(descriptions.GetModelNamesDescription),
	), s.handleGetModelNames)

	s.mcpServer.AddTool(mcp.NewTool(
		"get_model_field_names",
		mcp.WithDescription(descriptions.GetModelFieldNamesDescription),
		mcp.WithString("model_name",
			mcp.Required(),
			mcp.Description("Name of the note type to inspect"),
		),
	), s.handleGetModelFieldNames)

	s.mcpServer.AddTool(mcp.NewTool(
		"add_note",
		mcp.WithDescription(descriptions.AddNoteDescription),
		mcp.WithString("deck_name",
			mcp.Required(),
			mcp.Description("Deck to add the note to"),
		),
		mcp.WithString("model_name",
			mcp.Required(),
			mcp.Description("Note type, e.g. Basic or Cloze"),
		),
		mcp.WithObject("fields",
			mcp.Required(),
			mcp.Description("Mapping from field name to content, matching the model's fields"),
		),
		mcp.WithArray("tags",
			mcp.Description("Optional list of tags"),
		),
	), s.handleAddNote)

	s.mcpServer.AddTool(mcp.NewTool(
		"add_notes",
		mcp.WithDescription(descriptions.AddNotesDescription),
		mcp.WithArray("notes",
			mcp.Required(),
			mcp.Description("List of notes, each with deck_name, model_name, fields and optional tags"),
		),
	), s.handleAddNotes)

	s.mcpServer.AddTool(mcp.NewTool(
		"find_notes",
		mcp.WithDescription(descriptions.FindNotesDescription),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Anki search query, forwarded verbatim"),
		),
	), s.handleFindNotes)

	s.mcpServer.AddTool(mcp.NewTool(
		"get_notes_info",
		mcp.WithDescription(descriptions.GetNotesInfoDescription),
		mcp.WithArray("note_ids",
			mcp.Required(),
			mcp.Description("Note IDs to retrieve"),
		),
		mcp.WithBoolean("plain_text",
			mcp.Description("Strip HTML markup from field values (default false)"),
		),
	), s.handleGetNotesInfo)

	s.mcpServer.AddTool(mcp.NewTool(
		"delete_notes",
		mcp.WithDescription(descriptions.DeleteNotesDescription),
		mcp.WithArray("note_ids",
			mcp.Required(),
			mcp.Description("Note IDs to delete"),
		),
	), s.handleDeleteNotes)

	s.mcpServer.AddTool(mcp.NewTool(
		"update_notes",
		mcp.WithDescription(descriptions.UpdateNotesDescription),
		mcp.WithArray("note_ids",
			mcp.Required(),
			mcp.Description("Note IDs to update"),
		),
		mcp.WithObject("updates",
			mcp.Required(),
			mcp.Description("Update parts: deck_name (string), fields (object), tags_add (string or list), tags_remove (string or list)"),
		),
	), s.handleUpdateNotes)

	s.mcpServer.AddTool(mcp.NewTool(
		"get_pdf_table_of_contents",
		mcp.WithDescription(descriptions.GetPDFTableOfContentsDescription),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
	), s.handleGetPDFTableOfContents)

	s.mcpServer.AddTool(mcp.NewTool(
		"read_pdf_pages",
		mcp.WithDescription(descriptions.ReadPDFPagesDescription),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
		mcp.WithNumber("start_page",
			mcp.Required(),
			mcp.Description("First page to read (1-indexed, inclusive)"),
		),
		mcp.WithNumber("end_page",
			mcp.Required(),
			mcp.Description("Last page to read (inclusive)"),
		),
	), s.handleReadPDFPages)

	s.mcpServer.AddTool(mcp.NewTool(
		"get_pdf_info",
		mcp.WithDescription(descriptions.GetPDFInfoDescription),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
	), s.handleGetPDFInfo)
}

// jsonResult marshals data into a text tool result.
func jsonResult(data any) *mcp.CallToolResult {
	b, err := json.Marshal(data)
	if err != nil {
		slog.Error("failed to marshal tool result", "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err))
	}
	return mcp.NewToolResultText(string(b))
}

// errorPayload wraps a failure into an {"error": ...} payload for the
// tools that never surface protocol-level failures.
func errorPayload(err error) *mcp.CallToolResult {
	return jsonResult(map[string]string{"error": err.Error()})
}

// Run starts the MCP server in the configured mode.
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsServerMode() {
		// The HTTP transport is not wired up; stdio covers every
		// supported client so far.
		slog.Warn("server mode not implemented, falling back to stdio")
	}
	return s.runStdio()
}

func (s *Server) runStdio() error {
	if s.config.IsDebug() {
		slog.Debug("starting Anki MCP server in stdio mode", "anki_url", s.anki.URL())
	}

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}
