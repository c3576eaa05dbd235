package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ankimcp/anki-mcp-server/internal/pdf"
)

// The PDF tools never surface protocol-level failures: every error
// comes back as an {"error": ...} payload the agent can read and
// route around.

func (s *Server) handleGetPDFTableOfContents(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("file_path")
	if err != nil {
		return errorPayload(err), nil
	}

	result, err := s.pdfService.TableOfContents(pdf.TableOfContentsRequest{Path: path})
	if err != nil {
		return errorPayload(err), nil
	}
	return jsonResult(result), nil
}

func (s *Server) handleReadPDFPages(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("file_path")
	if err != nil {
		return errorPayload(err), nil
	}

	args := request.GetArguments()
	startPage, ok := args["start_page"].(float64)
	if !ok {
		return errorPayload(fmt.Errorf("start_page must be a number")), nil
	}
	endPage, ok := args["end_page"].(float64)
	if !ok {
		return errorPayload(fmt.Errorf("end_page must be a number")), nil
	}

	result, err := s.pdfService.ReadPages(pdf.ReadPagesRequest{
		Path:      path,
		StartPage: int(startPage),
		EndPage:   int(endPage),
	})
	if err != nil {
		return errorPayload(err), nil
	}
	return jsonResult(result), nil
}

func (s *Server) handleGetPDFInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("file_path")
	if err != nil {
		return errorPayload(err), nil
	}

	result, err := s.pdfService.DocumentInfo(pdf.InfoRequest{Path: path})
	if err != nil {
		return errorPayload(err), nil
	}
	return jsonResult(result), nil
}
