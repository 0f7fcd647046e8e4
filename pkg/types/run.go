// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Run records one completed ingestion.
type Run struct {
	// ID is a UUID assigned when the run is recorded.
	ID string `json:"id" yaml:"id"`

	// Source is the path of the ingested PDF.
	Source string `json:"source" yaml:"source"`

	// SourceSHA256 is the hex digest of the PDF bytes.
	SourceSHA256 string `json:"source_sha256" yaml:"source_sha256"`

	// Output is the path of the cleaned text file.
	Output string `json:"output" yaml:"output"`

	// Backend names the loader used (e.g. "pdf", "pdftotext").
	Backend LoaderBackend `json:"backend" yaml:"backend"`

	// Bytes is the size of the written output.
	Bytes int `json:"bytes" yaml:"bytes"`

	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`

	// Pages lists the rendered pages in output order.
	Pages []RunPage `json:"pages,omitempty" yaml:"pages,omitempty"`
}

// RunPage summarizes one rendered page.
type RunPage struct {
	// Page is the identifier used in the page marker.
	Page string `json:"page" yaml:"page"`

	// Chars is the rune count of the cleaned content.
	Chars int `json:"chars" yaml:"chars"`
}
