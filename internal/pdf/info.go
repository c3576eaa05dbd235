package pdf

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Info reports document-level properties.
type Info struct {
	maxFileSize int64
}

// NewInfo creates a new info extractor with the specified constraints.
func NewInfo(maxFileSize int64) *Info {
	return &Info{maxFileSize: maxFileSize}
}

// DocumentInfo returns page count, file size and whatever metadata the
// document's Info dictionary carries.
func (i *Info) DocumentInfo(req InfoRequest) (*InfoResult, error) {
	if err := validateFile(req.Path, i.maxFileSize); err != nil {
		return nil, err
	}

	fileInfo, err := os.Stat(req.Path)
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}

	f, doc, err := pdf.Open(req.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	result := &InfoResult{
		Path:         req.Path,
		Size:         fileInfo.Size(),
		TotalPages:   doc.NumPage(),
		ModifiedDate: fileInfo.ModTime().Format("2006-01-02 15:04:05"),
	}
	extractMetadata(doc, result)

	return result, nil
}

// extractMetadata reads the trailer's Info dictionary. The underlying
// library panics on some malformed value types, hence the recover.
func extractMetadata(doc *pdf.Reader, result *InfoResult) {
	defer func() {
		_ = recover()
	}()

	trailer := doc.Trailer()
	if trailer.IsNull() {
		return
	}
	info := trailer.Key("Info")
	if info.IsNull() {
		return
	}

	get := func(key string) string {
		v := info.Key(key)
		if v.IsNull() {
			return ""
		}
		return strings.TrimSpace(v.String())
	}

	result.Title = get("Title")
	result.Author = get("Author")
	result.Subject = get("Subject")
	result.Producer = get("Producer")
	result.CreatedDate = get("CreationDate")
}
