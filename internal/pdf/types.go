package pdf

// TOCEntry is one outline bookmark flattened to its nesting level.
// Level is 1-based; Page is the 1-indexed target page.
type TOCEntry struct {
	Level int    `json:"level"`
	Title string `json:"title"`
	Page  int    `json:"page"`
}

// PageText is the extracted plain text of a single page.
type PageText struct {
	Page int    `json:"page"`
	Text string `json:"text"`
}

// Request Types

// TableOfContentsRequest asks for a PDF's outline.
type TableOfContentsRequest struct {
	Path string `json:"path"`
}

// ReadPagesRequest asks for plain text from a 1-indexed inclusive
// page range.
type ReadPagesRequest struct {
	Path      string `json:"path"`
	StartPage int    `json:"start_page"`
	EndPage   int    `json:"end_page"`
}

// InfoRequest asks for document-level information.
type InfoRequest struct {
	Path string `json:"path"`
}

// Response Types

// TableOfContentsResult carries the flattened outline. Message holds a
// usage hint when the document has no outline at all.
type TableOfContentsResult struct {
	Path    string     `json:"path"`
	TOC     []TOCEntry `json:"toc"`
	Count   int        `json:"count"`
	Message string     `json:"message,omitempty"`
}

// ReadPagesResult carries the extracted pages in ascending page order.
type ReadPagesResult struct {
	Path       string     `json:"path"`
	Pages      []PageText `json:"pages"`
	PageCount  int        `json:"page_count"`
	TotalPages int        `json:"total_pages"`
}

// InfoResult carries document metadata and page count.
type InfoResult struct {
	Path         string `json:"path"`
	Size         int64  `json:"size"`
	TotalPages   int    `json:"total_pages"`
	Title        string `json:"title,omitempty"`
	Author       string `json:"author,omitempty"`
	Subject      string `json:"subject,omitempty"`
	Producer     string `json:"producer,omitempty"`
	CreatedDate  string `json:"created_date,omitempty"`
	ModifiedDate string `json:"modified_date"`
}
