// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdf-ingest/pkg/types"
)

func TestPageID(t *testing.T) {
	tests := []struct {
		name string
		meta map[string]any
		want string
	}{
		{name: "integer page", meta: map[string]any{"page": 0}, want: "0"},
		{name: "string page", meta: map[string]any{"page": "iv"}, want: "iv"},
		{name: "missing key", meta: map[string]any{"source": "a.pdf"}, want: "unknown"},
		{name: "nil metadata", meta: nil, want: "unknown"},
		{name: "nil value", meta: map[string]any{"page": nil}, want: "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PageID(tt.meta))
		})
	}
}

func TestDocument(t *testing.T) {
	tests := []struct {
		name  string
		pages []types.CleanedPage
		want  string
	}{
		{
			name:  "no pages",
			pages: nil,
			want:  "",
		},
		{
			name: "single page",
			pages: []types.CleanedPage{
				{Content: "hello", Metadata: map[string]any{"page": 0}},
			},
			want: "\n--- Page 0 ---\n\nhello",
		},
		{
			name: "two pages with missing identifier",
			pages: []types.CleanedPage{
				{Content: "DataScience\n\nis fun.", Metadata: map[string]any{"page": 0}},
				{Content: "More text", Metadata: map[string]any{}},
			},
			want: "\n--- Page 0 ---\n\nDataScience\n\nis fun.\n\n--- Page unknown ---\n\nMore text",
		},
		{
			name: "empty content still gets a marker",
			pages: []types.CleanedPage{
				{Content: "", Metadata: map[string]any{"page": 3}},
			},
			want: "\n--- Page 3 ---\n\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Document(tt.pages))
		})
	}
}

func TestDocumentPreservesInputOrder(t *testing.T) {
	pages := []types.CleanedPage{
		{Content: "two", Metadata: map[string]any{"page": 2}},
		{Content: "zero", Metadata: map[string]any{"page": 0}},
		{Content: "one", Metadata: map[string]any{"page": 1}},
		{Content: "zero again", Metadata: map[string]any{"page": 0}},
	}

	out := Document(pages)

	markers := []string{"--- Page 2 ---", "--- Page 0 ---", "--- Page 1 ---"}
	last := -1
	for _, m := range markers {
		idx := strings.Index(out[last+1:], m)
		require.GreaterOrEqual(t, idx, 0, "marker %q missing after offset %d", m, last)
		last += idx + 1
	}
	assert.Equal(t, 2, strings.Count(out, "--- Page 0 ---"), "duplicate identifiers are rendered as-is")
}

func TestWrite(t *testing.T) {
	t.Run("creates file and parent directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out", "cleaned_text.txt")
		require.NoError(t, Write(path, "naïve text"))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "naïve text", string(data))
	})

	t.Run("replaces existing content", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cleaned_text.txt")
		require.NoError(t, os.WriteFile(path, []byte("old content that is longer"), 0o644))

		require.NoError(t, Write(path, "new"))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(data))
	})

	t.Run("empty document writes empty file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cleaned_text.txt")
		require.NoError(t, Write(path, Document(nil)))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Zero(t, info.Size())
	})

	t.Run("path is a directory", func(t *testing.T) {
		dir := t.TempDir()
		err := Write(dir, "x")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "writing")
	})
}
