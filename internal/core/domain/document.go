package domain

import "strings"

// Document is a single indexed text file.
type Document struct {
	// Path is the stable, unique identifier (filesystem path at indexing time).
	Path string `json:"path"`

	// Content is the full raw text, trimmed of surrounding whitespace.
	Content string `json:"content"`
}

// NewDocument builds a Document with trimmed content.
// It returns false when nothing is left after trimming.
func NewDocument(path, content string) (Document, bool) {
	content = strings.TrimSpace(content)
	if content == "" {
		return Document{}, false
	}
	return Document{Path: path, Content: content}, true
}
