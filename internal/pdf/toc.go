package pdf

import (
	"errors"
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// NoOutlineHint tells the caller what to do with documents that carry
// no bookmark tree.
const NoOutlineHint = "this PDF has no table of contents; use read_pdf_pages to read page ranges instead"

// Outline extracts a PDF's bookmark tree as a flat, depth-first list.
type Outline struct {
	maxFileSize int64
}

// NewOutline creates a new outline extractor with the specified constraints.
func NewOutline(maxFileSize int64) *Outline {
	return &Outline{maxFileSize: maxFileSize}
}

// TableOfContents opens the file, flattens its bookmark tree and
// closes the file before returning. A document without an outline is
// not an error; the result carries an empty list and a hint instead.
func (o *Outline) TableOfContents(req TableOfContentsRequest) (*TableOfContentsResult, error) {
	if err := validateFile(req.Path, o.maxFileSize); err != nil {
		return nil, err
	}

	f, err := os.Open(req.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	result := &TableOfContentsResult{Path: req.Path, TOC: []TOCEntry{}}

	bms, err := api.Bookmarks(f, conf)
	if err != nil {
		if isNoOutline(err) {
			result.Message = NoOutlineHint
			return result, nil
		}
		return nil, fmt.Errorf("failed to read outline: %w", err)
	}

	result.TOC = flattenBookmarks(bms, 1)
	result.Count = len(result.TOC)
	if result.Count == 0 {
		result.Message = NoOutlineHint
	}
	return result, nil
}

// isNoOutline reports whether err is the library's missing-bookmark
// sentinel, which marks a readable document rather than a failure.
func isNoOutline(err error) bool {
	return errors.Is(err, api.ErrNoOutlines)
}

// flattenBookmarks walks the bookmark tree depth-first, tagging each
// entry with its 1-based nesting level.
func flattenBookmarks(bms []pdfcpu.Bookmark, level int) []TOCEntry {
	entries := []TOCEntry{}
	for _, bm := range bms {
		entries = append(entries, TOCEntry{
			Level: level,
			Title: bm.Title,
			Page:  bm.PageFrom,
		})
		entries = append(entries, flattenBookmarks(bm.Kids, level+1)...)
	}
	return entries
}
