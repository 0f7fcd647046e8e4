// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package loader

import (
	"context"
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/pdiddy/pdf-ingest/pkg/types"
)

// PDFLoader extracts page text in process with github.com/ledongthuc/pdf.
type PDFLoader struct{}

// NewPDFLoader returns a PDFLoader.
func NewPDFLoader() *PDFLoader {
	return &PDFLoader{}
}

// Load opens the PDF at path and extracts the plain text of every page.
// Pages without a content stream yield empty content so page indexes stay
// aligned with the document.
func (l *PDFLoader) Load(ctx context.Context, path string) ([]types.Page, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	total := r.NumPage()
	pages := make([]types.Page, 0, total)
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var text string
		if p := r.Page(i); !p.V.IsNull() {
			text, err = p.GetPlainText(nil)
			if err != nil {
				return nil, fmt.Errorf("extracting page %d of %s: %w", i, path, err)
			}
		}

		pages = append(pages, types.Page{
			Content:  text,
			Metadata: pageMetadata(path, i-1, total),
		})
	}
	return pages, nil
}
