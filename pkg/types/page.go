// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

const (
	// PageKey is the metadata key holding a page identifier.
	PageKey = "page"

	// UnknownPage is rendered when a page carries no identifier.
	UnknownPage = "unknown"

	// SourceKey is the metadata key holding the source document path.
	SourceKey = "source"

	// TotalPagesKey is the metadata key holding the document page count.
	TotalPagesKey = "total_pages"
)

// Page is one page of source text as produced by a loader. Loaders set
// PageKey to the 0-based page index, SourceKey and TotalPagesKey.
type Page struct {
	Content  string         `json:"content" yaml:"content"`
	Metadata map[string]any `json:"metadata" yaml:"metadata"`
}

// CleanedPage is a Page whose content has been normalized. Metadata is the
// source Page's map itself, not a copy.
type CleanedPage struct {
	Content  string         `json:"content" yaml:"content"`
	Metadata map[string]any `json:"metadata" yaml:"metadata"`
}
