// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/pdf-ingest/internal/ingest"
	"github.com/pdiddy/pdf-ingest/internal/loader"
	"github.com/pdiddy/pdf-ingest/internal/secrets"
	"github.com/pdiddy/pdf-ingest/internal/store"
	"github.com/pdiddy/pdf-ingest/pkg/types"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [pdf]",
	Short: "Clean a PDF's text and write it with page markers",
	Long: `Ingest checks that the API credential is set, loads the PDF (default
Introduction_to_Data_and_Data_Science.pdf) one page at a time, removes
hyphenation at line breaks, collapses runs of spaces and tabs, and writes
every page to the output file behind a "--- Page N ---" marker.

The output file is replaced on every run. Nothing is written when the
credential or the PDF is missing.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringP("output", "o", types.DefaultOutput, "cleaned text file (replaced on every run)")
	ingestCmd.Flags().String("backend", string(types.BackendPDF), "page loader: pdf or pdftotext")
	ingestCmd.Flags().String("image", loader.DefaultImage, "container image for the pdftotext backend")
	ingestCmd.Flags().String("manifest", "", "also write a YAML page manifest to this path")
	ingestCmd.Flags().Int("workers", 0, "parallel page normalization (0 = GOMAXPROCS)")
	ingestCmd.Flags().Int("preview", types.DefaultPreviewChars, "characters of the first page to log")
	ingestCmd.Flags().String("credential-env", types.DefaultCredentialEnv, "environment variable that must hold the API key")

	bindFlag("output", ingestCmd.Flags().Lookup("output"))
	bindFlag("backend", ingestCmd.Flags().Lookup("backend"))
	bindFlag("container_image", ingestCmd.Flags().Lookup("image"))
	bindFlag("manifest", ingestCmd.Flags().Lookup("manifest"))
	bindFlag("workers", ingestCmd.Flags().Lookup("workers"))
	bindFlag("preview_chars", ingestCmd.Flags().Lookup("preview"))
	bindFlag("credential_env", ingestCmd.Flags().Lookup("credential-env"))

	viper.SetDefault("source", types.DefaultSource)

	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg := ingestConfig(args)

	key, err := secrets.Require(cfg.CredentialEnv, secrets.Environ(), dotenv, loadedSecrets)
	if err != nil {
		return err
	}
	cfg.Credential = key
	fmt.Fprintln(os.Stderr, "API key loaded.")

	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := ingest.CheckSource(cfg.SourcePath); err != nil {
		return err
	}

	ctx := cmd.Context()
	l, err := loader.New(ctx, cfg)
	if err != nil {
		return err
	}

	p := &ingest.Pipeline{
		Loader: l,
		Log:    logger,
		Out:    cmd.OutOrStdout(),
	}

	if cfg.StorePath != "" {
		st, err := store.Open(cfg.StorePath)
		if err != nil {
			return err
		}
		defer st.Close()
		p.Recorder = st
	}

	res, err := p.Run(ctx, cfg)
	if err != nil {
		return err
	}

	if res.RunID != "" {
		logger.Info("run recorded", zap.String("run_id", res.RunID), zap.String("store", cfg.StorePath))
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Ingestion step complete")
	return nil
}

// ingestConfig resolves flags, environment and config file into one
// IngestConfig. A positional argument overrides the configured source.
func ingestConfig(args []string) types.IngestConfig {
	source := viper.GetString("source")
	if len(args) > 0 {
		source = args[0]
	}
	return types.IngestConfig{
		SourcePath:     source,
		OutputPath:     viper.GetString("output"),
		Backend:        types.LoaderBackend(viper.GetString("backend")),
		ContainerImage: viper.GetString("container_image"),
		ManifestPath:   viper.GetString("manifest"),
		StorePath:      viper.GetString("store"),
		Workers:        viper.GetInt("workers"),
		PreviewChars:   viper.GetInt("preview_chars"),
		CredentialEnv:  viper.GetString("credential_env"),
	}
}
