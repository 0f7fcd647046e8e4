// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render assembles cleaned pages into a single text document with
// one marker per page and writes it to disk.
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/pdf-ingest/pkg/types"
)

// markerFormat is the page header. Output is compared byte for byte with
// earlier runs, so the literal must not change.
const markerFormat = "\n--- Page %s ---\n"

// PageID returns the page identifier stored under types.PageKey, or
// types.UnknownPage when the key is absent or nil.
func PageID(metadata map[string]any) string {
	v, ok := metadata[types.PageKey]
	if !ok || v == nil {
		return types.UnknownPage
	}
	return fmt.Sprint(v)
}

// Marker returns the header emitted before a page's content.
func Marker(id string) string {
	return fmt.Sprintf(markerFormat, id)
}

// Document renders pages in the given order. Each page contributes its marker
// and its content; all fragments are joined with a single newline. An empty
// page list renders as the empty string.
func Document(pages []types.CleanedPage) string {
	fragments := make([]string, 0, 2*len(pages))
	for _, p := range pages {
		fragments = append(fragments, Marker(PageID(p.Metadata)), p.Content)
	}
	return strings.Join(fragments, "\n")
}

// Write replaces the file at path with content, creating the parent
// directory if needed. The file is truncated, never appended to.
func Write(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
