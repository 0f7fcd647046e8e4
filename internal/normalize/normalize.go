// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize cleans page text extracted from PDFs. Text is a pure
// function; Pages applies it across a document without reordering.
package normalize

import (
	"regexp"
	"strings"

	"github.com/sourcegraph/conc/iter"

	"github.com/pdiddy/pdf-ingest/pkg/types"
)

var (
	// hyphenBreak matches a word split across a line wrap.
	hyphenBreak = regexp.MustCompile(`-\n`)

	// horizontalSpace matches runs of spaces and tabs. Newlines are excluded
	// so line and paragraph structure survives.
	horizontalSpace = regexp.MustCompile(`[ \t]+`)
)

// Text removes line-wrap hyphenation, collapses runs of spaces and tabs to a
// single space, and trims surrounding whitespace. Newlines that do not
// follow a hyphen are preserved.
//
// Hyphen removal repeats until no "-\n" remains so that Text is idempotent:
// "a--\n\nb" becomes "ab", not "a-\nb".
func Text(text string) string {
	for hyphenBreak.MatchString(text) {
		text = hyphenBreak.ReplaceAllLiteralString(text, "")
	}
	text = horizontalSpace.ReplaceAllLiteralString(text, " ")
	return strings.TrimSpace(text)
}

// Pages normalizes each page's content using up to workers goroutines
// (0 means GOMAXPROCS). The result has the same length and order as pages,
// and each CleanedPage shares its source page's metadata map.
func Pages(pages []types.Page, workers int) []types.CleanedPage {
	if len(pages) == 0 {
		return []types.CleanedPage{}
	}
	mapper := iter.Mapper[types.Page, types.CleanedPage]{MaxGoroutines: workers}
	return mapper.Map(pages, func(p *types.Page) types.CleanedPage {
		return types.CleanedPage{
			Content:  Text(p.Content),
			Metadata: p.Metadata,
		}
	})
}
