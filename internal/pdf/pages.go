package pdf

import (
	"fmt"

	"github.com/ledongthuc/pdf"
)

// PageReader extracts plain text from page ranges.
type PageReader struct {
	maxFileSize int64
}

// NewPageReader creates a new page reader with the specified constraints.
func NewPageReader(maxFileSize int64) *PageReader {
	return &PageReader{maxFileSize: maxFileSize}
}

// ReadPages extracts plain text from a 1-indexed inclusive page range.
// The range is clamped against the document's actual page count; a
// start beyond the last page is an error. The file handle is released
// before returning, on every path.
func (r *PageReader) ReadPages(req ReadPagesRequest) (*ReadPagesResult, error) {
	if err := validateFile(req.Path, r.maxFileSize); err != nil {
		return nil, err
	}

	f, doc, err := pdf.Open(req.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	total := doc.NumPage()
	start, end := clampRange(req.StartPage, req.EndPage, total)
	if start > total {
		return nil, fmt.Errorf("start page %d is beyond the last page (%d)", req.StartPage, total)
	}

	pages := make([]PageText, 0, end-start+1)
	for n := start; n <= end; n++ {
		pages = append(pages, PageText{Page: n, Text: extractPageText(doc, n)})
	}

	return &ReadPagesResult{
		Path:       req.Path,
		Pages:      pages,
		PageCount:  len(pages),
		TotalPages: total,
	}, nil
}

// clampRange clamps a 1-indexed inclusive range against the page
// count. The returned start may still exceed total; callers treat
// that as out of range.
func clampRange(start, end, total int) (int, int) {
	if start < 1 {
		start = 1
	}
	if end > total {
		end = total
	}
	return start, end
}

// extractPageText returns a page's plain text. A page that fails to
// decode yields empty text rather than failing the whole range.
func extractPageText(doc *pdf.Reader, pageNum int) string {
	return recoverPageText(func() string {
		page := doc.Page(pageNum)
		if page.V.IsNull() {
			return ""
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return ""
		}
		return text
	})
}

// recoverPageText shields page extraction from panics; the underlying
// library panics on some malformed value types.
func recoverPageText(extract func() string) (text string) {
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()
	return extract()
}
