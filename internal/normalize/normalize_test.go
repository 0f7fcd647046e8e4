// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdf-ingest/pkg/types"
)

func TestText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "hyphenated line break", in: "data-\nscience", want: "datascience"},
		{name: "collapses spaces and tabs", in: "a   b\tc", want: "a b c"},
		{name: "trims outer whitespace and newlines", in: "  \n hello \n  ", want: "hello"},
		{name: "keeps plain newlines", in: "line one\nline two\n\nline three", want: "line one\nline two\n\nline three"},
		{name: "hyphen not followed by newline kept", in: "well-known fact", want: "well-known fact"},
		{name: "hyphen then space then newline kept", in: "data- \nscience", want: "data- \nscience"},
		{name: "mixed tabs and spaces", in: "x \t \t y", want: "x y"},
		{name: "hyphen removal joins surrounding spaces", in: "a -\n b", want: "a b"},
		{name: "chained hyphen breaks", in: "a--\n\nb", want: "ab"},
		{name: "only whitespace", in: " \t\n\t ", want: ""},
		{name: "unchanged when already clean", in: "Clean text.", want: "Clean text."},
		{name: "page content from loader", in: "Data-\nScience\n\nis fun.", want: "DataScience\n\nis fun."},
		{name: "non-ascii preserved", in: "naïve  café-\nbar", want: "naïve cafébar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Text(tt.in))
		})
	}
}

func TestTextWithoutBreaksOrRunsOnlyTrims(t *testing.T) {
	inputs := []string{
		"hello",
		"\n\nparagraph one\nparagraph two\n",
		" single spaces only ",
		"\tleading tab",
	}
	for _, in := range inputs {
		assert.Equal(t, strings.TrimSpace(in), Text(in), "input %q", in)
	}
}

func TestTextIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"data-\nscience",
		"a--\n\nb",
		"a---\n\n\nb",
		"x -\n\t-\ny",
		"  mixed \t -\n content\n\n  ",
		"-\n-\n-\n",
	}
	for _, in := range inputs {
		once := Text(in)
		assert.Equal(t, once, Text(once), "input %q", in)
	}
}

func FuzzTextIdempotent(f *testing.F) {
	for _, seed := range []string{"", "data-\nscience", "a   b\tc", "a--\n\nb", " \n x-\n\ty \n"} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, in string) {
		once := Text(in)
		if twice := Text(once); twice != once {
			t.Errorf("Text not idempotent for %q: %q then %q", in, once, twice)
		}
	})
}

func TestPages(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		got := Pages(nil, 0)
		require.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("cleans content and shares metadata", func(t *testing.T) {
		meta := map[string]any{types.PageKey: 0, types.SourceKey: "doc.pdf"}
		pages := []types.Page{{Content: "Data-\nScience", Metadata: meta}}

		got := Pages(pages, 1)

		require.Len(t, got, 1)
		assert.Equal(t, "DataScience", got[0].Content)
		assert.Equal(t, reflect.ValueOf(meta).Pointer(), reflect.ValueOf(got[0].Metadata).Pointer(),
			"cleaned page must hold the source metadata map, not a copy")
		assert.Equal(t, map[string]any{types.PageKey: 0, types.SourceKey: "doc.pdf"}, meta,
			"source metadata must not be mutated")
	})

	t.Run("nil metadata stays nil", func(t *testing.T) {
		got := Pages([]types.Page{{Content: "x"}}, 0)
		require.Len(t, got, 1)
		assert.Nil(t, got[0].Metadata)
	})

	for _, workers := range []int{0, 1, 3, 64} {
		t.Run(fmt.Sprintf("preserves order with %d workers", workers), func(t *testing.T) {
			pages := make([]types.Page, 200)
			for i := range pages {
				pages[i] = types.Page{
					Content:  fmt.Sprintf("  page   %d  ", i),
					Metadata: map[string]any{types.PageKey: i},
				}
			}

			got := Pages(pages, workers)

			require.Len(t, got, len(pages))
			for i, cp := range got {
				assert.Equal(t, fmt.Sprintf("page %d", i), cp.Content)
				assert.Equal(t, i, cp.Metadata[types.PageKey])
			}
		})
	}
}
