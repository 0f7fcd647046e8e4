// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdf-ingest/internal/render"
	"github.com/pdiddy/pdf-ingest/pkg/types"
)

// Manifest is the YAML sidecar describing a cleaned text file.
type Manifest struct {
	Source       string          `yaml:"source"`
	SourceSHA256 string          `yaml:"source_sha256"`
	Output       string          `yaml:"output"`
	Backend      string          `yaml:"backend"`
	Bytes        int             `yaml:"bytes"`
	Pages        []types.RunPage `yaml:"pages"`
}

func writeManifest(path string, run types.Run) error {
	m := Manifest{
		Source:       run.Source,
		SourceSHA256: run.SourceSHA256,
		Output:       run.Output,
		Backend:      string(run.Backend),
		Bytes:        run.Bytes,
		Pages:        run.Pages,
	}
	data, err := yaml.Marshal(&m)
	if err != nil {
		return err
	}
	return render.Write(path, string(data))
}
