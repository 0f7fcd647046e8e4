// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdf-ingest CLI. It loads a PDF,
// cleans each page's text and writes a single text file with page markers,
// ready for a later retrieval stage.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/pdf-ingest/internal/logging"
	"github.com/pdiddy/pdf-ingest/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// loadedSecrets holds keys read from the secrets directory at startup.
	loadedSecrets map[string]string

	// dotenv holds variables read from the .env file at startup.
	dotenv map[string]string

	// logger is built in PersistentPreRunE from --debug.
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "pdf-ingest",
	Short: "Clean PDF text for retrieval pipelines",
	Long: `pdf-ingest loads a PDF page by page, removes line-wrap hyphenation and
redundant spacing, and writes the cleaned text to a single file with one
marker per page. Runs can be recorded in a local SQLite history.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.New(viper.GetBool("debug"))
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		logger = l

		s, err := secrets.Load(viper.GetString("secrets_dir"))
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.Debug("loaded secrets", zap.Strings("keys", keys))
		}

		env, err := secrets.LoadDotEnv(viper.GetString("env_file"))
		if err != nil {
			return err
		}
		dotenv = env
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pdf-ingest.yaml or ~/.config/pdf-ingest/config.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "human-readable debug logging")
	rootCmd.PersistentFlags().String("secrets-dir", ".secrets", "directory of secret files (one key per file)")
	rootCmd.PersistentFlags().String("env-file", ".env", "dotenv file read before checking credentials")
	rootCmd.PersistentFlags().String("store", "", "SQLite run history database (empty disables recording)")

	bindFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	bindFlag("secrets_dir", rootCmd.PersistentFlags().Lookup("secrets-dir"))
	bindFlag("env_file", rootCmd.PersistentFlags().Lookup("env-file"))
	bindFlag("store", rootCmd.PersistentFlags().Lookup("store"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pdf-ingest")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pdf-ingest"))
		}
	}

	viper.SetEnvPrefix("PDF_INGEST")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// bindFlag panics on failure, which only happens for a nil flag.
func bindFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
