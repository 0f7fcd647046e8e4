// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package loader turns a PDF file into an ordered list of pages. Two
// backends exist: an in-process parser and a pdftotext container.
package loader

import (
	"context"
	"fmt"

	"github.com/pdiddy/pdf-ingest/internal/container"
	"github.com/pdiddy/pdf-ingest/pkg/types"
)

// DefaultImage is the poppler image used by the pdftotext backend.
const DefaultImage = "minidocks/poppler:latest"

// Loader reads a PDF and returns one Page per PDF page, in document order.
// Page metadata carries types.PageKey (0-based), types.SourceKey and
// types.TotalPagesKey.
type Loader interface {
	Load(ctx context.Context, path string) ([]types.Page, error)
}

// detectRuntime is swapped in tests.
var detectRuntime = container.Detect

// New returns the loader for cfg.Backend. The pdftotext backend requires a
// working container runtime with cfg.ContainerImage (or DefaultImage)
// available locally.
func New(ctx context.Context, cfg types.IngestConfig) (Loader, error) {
	switch cfg.Backend {
	case types.BackendPDF, "":
		return NewPDFLoader(), nil
	case types.BackendPdftotext:
		rt, err := detectRuntime(ctx)
		if err != nil {
			return nil, err
		}
		return NewContainerLoader(ctx, rt, cfg.ContainerImage)
	default:
		return nil, fmt.Errorf("unknown loader backend %q", cfg.Backend)
	}
}

func pageMetadata(path string, index, total int) map[string]any {
	return map[string]any{
		types.PageKey:       index,
		types.SourceKey:     path,
		types.TotalPagesKey: total,
	}
}
