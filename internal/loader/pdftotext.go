// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package loader

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pdiddy/pdf-ingest/internal/container"
	"github.com/pdiddy/pdf-ingest/pkg/types"
)

// pdftotextArgs reads the PDF from stdin and writes UTF-8 text to stdout.
// pdftotext ends every page with a form feed.
var pdftotextArgs = []string{"pdftotext", "-enc", "UTF-8", "-", "-"}

// ContainerLoader runs poppler's pdftotext inside a container.
type ContainerLoader struct {
	runtime container.Runtime
	image   string
}

// NewContainerLoader returns a loader backed by rt. An empty image selects
// DefaultImage. The image must already exist locally.
func NewContainerLoader(ctx context.Context, rt container.Runtime, image string) (*ContainerLoader, error) {
	if image == "" {
		image = DefaultImage
	}
	if err := rt.ImageExists(ctx, image); err != nil {
		return nil, fmt.Errorf("pdftotext image not available in %s: %w", rt.Name(), err)
	}
	return &ContainerLoader{runtime: rt, image: image}, nil
}

// Load pipes the PDF at path through pdftotext and splits the output into
// pages on form feeds.
func (c *ContainerLoader) Load(ctx context.Context, path string) ([]types.Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	var out bytes.Buffer
	if err := c.runtime.Run(ctx, c.image, pdftotextArgs, f, &out); err != nil {
		return nil, fmt.Errorf("extracting %s with pdftotext: %w", path, err)
	}

	texts := splitPages(out.String())
	pages := make([]types.Page, len(texts))
	for i, text := range texts {
		pages[i] = types.Page{
			Content:  text,
			Metadata: pageMetadata(path, i, len(texts)),
		}
	}
	return pages, nil
}

// splitPages splits pdftotext output on form feeds, dropping the empty
// segment after the final one.
func splitPages(out string) []string {
	parts := strings.Split(out, "\f")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}
