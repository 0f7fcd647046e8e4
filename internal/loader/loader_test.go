// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package loader

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdf-ingest/internal/container"
	"github.com/pdiddy/pdf-ingest/pkg/types"
)

func stubDetect(t *testing.T, rt container.Runtime, err error) {
	t.Helper()
	orig := detectRuntime
	detectRuntime = func(context.Context) (container.Runtime, error) { return rt, err }
	t.Cleanup(func() { detectRuntime = orig })
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	t.Run("pdf backend", func(t *testing.T) {
		l, err := New(ctx, types.IngestConfig{Backend: types.BackendPDF})
		require.NoError(t, err)
		assert.IsType(t, &PDFLoader{}, l)
	})

	t.Run("empty backend defaults to pdf", func(t *testing.T) {
		l, err := New(ctx, types.IngestConfig{})
		require.NoError(t, err)
		assert.IsType(t, &PDFLoader{}, l)
	})

	t.Run("pdftotext backend", func(t *testing.T) {
		stubDetect(t, &fakeRuntime{images: map[string]bool{"poppler:x": true}}, nil)
		l, err := New(ctx, types.IngestConfig{Backend: types.BackendPdftotext, ContainerImage: "poppler:x"})
		require.NoError(t, err)
		assert.IsType(t, &ContainerLoader{}, l)
	})

	t.Run("pdftotext without runtime", func(t *testing.T) {
		stubDetect(t, nil, errors.New("no container runtime available"))
		_, err := New(ctx, types.IngestConfig{Backend: types.BackendPdftotext})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no container runtime available")
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := New(ctx, types.IngestConfig{Backend: "ocr"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown loader backend "ocr"`)
	})
}
