// Package pdf turns local PDF files into agent-consumable structures:
// flattened outlines, per-page plain text and document info. File
// handles are scoped strictly to one call; nothing is cached across
// calls.
package pdf

// Service is the facade the MCP layer talks to.
type Service struct {
	maxFileSize int64
	outline     *Outline
	pages       *PageReader
	info        *Info
}

// NewService creates a PDF service with all components.
func NewService(maxFileSize int64) *Service {
	return &Service{
		maxFileSize: maxFileSize,
		outline:     NewOutline(maxFileSize),
		pages:       NewPageReader(maxFileSize),
		info:        NewInfo(maxFileSize),
	}
}

// TableOfContents extracts the document outline as a flat list.
func (s *Service) TableOfContents(req TableOfContentsRequest) (*TableOfContentsResult, error) {
	return s.outline.TableOfContents(req)
}

// ReadPages extracts plain text from a 1-indexed inclusive page range.
func (s *Service) ReadPages(req ReadPagesRequest) (*ReadPagesResult, error) {
	return s.pages.ReadPages(req)
}

// DocumentInfo returns document-level properties.
func (s *Service) DocumentInfo(req InfoRequest) (*InfoResult, error) {
	return s.info.DocumentInfo(req)
}

// MaxFileSize returns the maximum file size limit.
func (s *Service) MaxFileSize() int64 {
	return s.maxFileSize
}
