// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest runs the PDF ingestion pipeline: check the source, load
// pages, normalize them, and write the cleaned text with page markers.
//
// Every failure is fatal. Nothing is written unless all pages were loaded
// and cleaned.
package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/pdiddy/pdf-ingest/internal/logging"
	"github.com/pdiddy/pdf-ingest/internal/normalize"
	"github.com/pdiddy/pdf-ingest/internal/render"
	"github.com/pdiddy/pdf-ingest/pkg/types"
)

var (
	// ErrSourceNotFound means the PDF to ingest does not exist.
	ErrSourceNotFound = errors.New("source not found")

	// ErrLoad means the loader could not extract pages from the source.
	ErrLoad = errors.New("loading source")

	// ErrWrite means the cleaned text or manifest could not be written.
	ErrWrite = errors.New("writing output")

	// ErrRecord means the run could not be added to the history store.
	ErrRecord = errors.New("recording run")
)

// Loader reads a PDF into pages in document order.
type Loader interface {
	Load(ctx context.Context, path string) ([]types.Page, error)
}

// Recorder stores a completed run and returns its ID.
type Recorder interface {
	Record(ctx context.Context, run types.Run) (string, error)
}

// Result describes a completed run.
type Result struct {
	RunID        string
	Pages        int
	Bytes        int
	OutputPath   string
	SourceSHA256 string
}

// Pipeline wires a loader to the normalize and render stages. Recorder is
// optional. Out receives human-readable progress lines.
type Pipeline struct {
	Loader   Loader
	Recorder Recorder
	Log      *zap.Logger
	Out      io.Writer
}

// Run ingests cfg.SourcePath into cfg.OutputPath.
func (p *Pipeline) Run(ctx context.Context, cfg types.IngestConfig) (Result, error) {
	log := p.Log
	if log == nil {
		log = zap.NewNop()
	}
	out := p.Out
	if out == nil {
		out = io.Discard
	}
	started := time.Now()

	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	if err := CheckSource(cfg.SourcePath); err != nil {
		return Result{}, err
	}

	digest, err := fileSHA256(cfg.SourcePath)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	pages, err := p.Loader.Load(ctx, cfg.SourcePath)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	fmt.Fprintf(out, "Loaded %d pages\n", len(pages))
	log.Info("loaded source",
		zap.String("source", cfg.SourcePath),
		zap.Int("pages", len(pages)),
		zap.String("backend", string(cfg.Backend)),
	)
	if len(pages) > 0 {
		log.Info("first page",
			zap.String("preview", logging.Preview(pages[0].Content, cfg.PreviewChars)),
			zap.Any("metadata", pages[0].Metadata),
		)
	}

	cleaned := normalize.Pages(pages, cfg.Workers)
	doc := render.Document(cleaned)

	if err := render.Write(cfg.OutputPath, doc); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	fmt.Fprintf(out, "Cleaned text written to %s\n", cfg.OutputPath)
	log.Info("wrote cleaned text",
		zap.String("output", cfg.OutputPath),
		zap.Int("bytes", len(doc)),
	)

	run := types.Run{
		Source:       cfg.SourcePath,
		SourceSHA256: digest,
		Output:       cfg.OutputPath,
		Backend:      cfg.Backend,
		Bytes:        len(doc),
		StartedAt:    started,
		Pages:        summarize(cleaned),
	}

	if cfg.ManifestPath != "" {
		if err := writeManifest(cfg.ManifestPath, run); err != nil {
			return Result{}, fmt.Errorf("%w: %w", ErrWrite, err)
		}
		log.Info("wrote manifest", zap.String("manifest", cfg.ManifestPath))
	}

	result := Result{
		Pages:        len(cleaned),
		Bytes:        len(doc),
		OutputPath:   cfg.OutputPath,
		SourceSHA256: digest,
	}

	if p.Recorder != nil {
		run.FinishedAt = time.Now()
		id, err := p.Recorder.Record(ctx, run)
		if err != nil {
			return Result{}, fmt.Errorf("%w: %w", ErrRecord, err)
		}
		result.RunID = id
		log.Info("recorded run", zap.String("run_id", id))
	}

	return result, nil
}

// CheckSource returns ErrSourceNotFound unless path is an existing regular
// file.
func CheckSource(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s not found in %s", ErrSourceNotFound, path, workingDir())
		}
		return fmt.Errorf("%w: %w", ErrSourceNotFound, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrSourceNotFound, path)
	}
	return nil
}

// summarize lists each cleaned page's marker identifier and rune count.
func summarize(pages []types.CleanedPage) []types.RunPage {
	out := make([]types.RunPage, len(pages))
	for i, p := range pages {
		out[i] = types.RunPage{
			Page:  render.PageID(p.Metadata),
			Chars: utf8.RuneCountInString(p.Content),
		}
	}
	return out
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func workingDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return "working directory"
	}
	return wd
}
