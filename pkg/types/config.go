// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by Validate for unusable settings.
var ErrInvalidConfig = errors.New("invalid configuration")

// LoaderBackend identifies the tool that turns a PDF into pages.
type LoaderBackend string

const (
	BackendPDF       LoaderBackend = "pdf"
	BackendPdftotext LoaderBackend = "pdftotext"
)

const (
	// DefaultSource is the PDF ingested when no path is given.
	DefaultSource = "Introduction_to_Data_and_Data_Science.pdf"

	// DefaultOutput is the cleaned text file written by ingest.
	DefaultOutput = "cleaned_text.txt"

	// DefaultCredentialEnv names the credential checked before ingestion.
	DefaultCredentialEnv = "OPENAI_API_KEY"

	// DefaultPreviewChars is how much of the first page is logged.
	DefaultPreviewChars = 200
)

// IngestConfig holds settings for one ingestion run. It is resolved once at
// startup and passed down explicitly.
type IngestConfig struct {
	// SourcePath is the PDF to ingest, relative to the working directory.
	SourcePath string `json:"source" yaml:"source" mapstructure:"source"`

	// OutputPath is the cleaned text file, replaced on every run.
	OutputPath string `json:"output" yaml:"output" mapstructure:"output"`

	// Backend selects the loader: pdf or pdftotext.
	Backend LoaderBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// ContainerImage is the image used by the pdftotext backend.
	ContainerImage string `json:"container_image,omitempty" yaml:"container_image,omitempty" mapstructure:"container_image"`

	// ManifestPath, when set, receives a YAML summary of the rendered pages.
	ManifestPath string `json:"manifest,omitempty" yaml:"manifest,omitempty" mapstructure:"manifest"`

	// StorePath, when set, is the SQLite database recording run history.
	StorePath string `json:"store,omitempty" yaml:"store,omitempty" mapstructure:"store"`

	// Workers bounds parallel page normalization (0 = GOMAXPROCS).
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`

	// PreviewChars is the number of runes of page 0 logged after loading.
	PreviewChars int `json:"preview_chars" yaml:"preview_chars" mapstructure:"preview_chars"`

	// CredentialEnv names the environment variable that must be set.
	CredentialEnv string `json:"credential_env" yaml:"credential_env" mapstructure:"credential_env"`

	// Credential is the resolved value of CredentialEnv. Never serialized.
	Credential string `json:"-" yaml:"-" mapstructure:"-"`
}

// Validate reports the first unusable setting, wrapped in ErrInvalidConfig.
func (c IngestConfig) Validate() error {
	switch {
	case c.SourcePath == "":
		return fmt.Errorf("%w: source path is empty", ErrInvalidConfig)
	case c.OutputPath == "":
		return fmt.Errorf("%w: output path is empty", ErrInvalidConfig)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers must be >= 0, got %d", ErrInvalidConfig, c.Workers)
	case c.PreviewChars < 0:
		return fmt.Errorf("%w: preview chars must be >= 0, got %d", ErrInvalidConfig, c.PreviewChars)
	}
	switch c.Backend {
	case BackendPDF, BackendPdftotext:
	default:
		return fmt.Errorf("%w: unknown backend %q (use pdf or pdftotext)", ErrInvalidConfig, c.Backend)
	}
	return nil
}
