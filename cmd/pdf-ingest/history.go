// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdf-ingest/internal/store"
	"github.com/pdiddy/pdf-ingest/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded ingestion runs",
	Long: `History reads the SQLite run history written by "ingest --store" and
lists recent runs, newest first. Use --run to show the pages of one run,
or --format yaml to export runs with their pages.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum runs to list")
	historyCmd.Flags().String("run", "", "show the pages of one run ID")
	historyCmd.Flags().String("format", "table", "output format: table, json, or yaml")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	path := viper.GetString("store")
	if path == "" {
		return fmt.Errorf("no run history configured: pass --store or set store in pdf-ingest.yaml")
	}
	limit, _ := cmd.Flags().GetInt("limit")
	runID, _ := cmd.Flags().GetString("run")
	format, _ := cmd.Flags().GetString("format")

	st, err := store.Open(path)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()
	w := cmd.OutOrStdout()

	if runID != "" {
		run, err := st.Run(ctx, runID)
		if err != nil {
			return err
		}
		if format == "json" {
			return writeJSON(w, run)
		}
		return formatRun(w, run)
	}

	switch format {
	case "yaml":
		return st.ExportYAML(ctx, w, limit)
	case "json":
		runs, err := st.Runs(ctx, limit)
		if err != nil {
			return err
		}
		return writeJSON(w, runs)
	case "table", "":
		runs, err := st.Runs(ctx, limit)
		if err != nil {
			return err
		}
		return formatRuns(w, runs)
	default:
		return fmt.Errorf("unsupported format %q: use table, json, or yaml", format)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatRuns(w io.Writer, runs []types.Run) error {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-36s  %-20s  %-30s  %-9s  %s\n", "Run", "Finished", "Source", "Backend", "Bytes")
	fmt.Fprintln(w, strings.Repeat("-", 110))
	for _, r := range runs {
		fmt.Fprintf(w, "%-36s  %-20s  %-30s  %-9s  %d\n",
			r.ID, r.FinishedAt.Format("2006-01-02 15:04:05"), truncate(r.Source, 30), r.Backend, r.Bytes)
	}
	fmt.Fprintf(w, "\n%d runs\n", len(runs))
	return nil
}

func formatRun(w io.Writer, run types.Run) error {
	fmt.Fprintf(w, "Run:     %s\n", run.ID)
	fmt.Fprintf(w, "Source:  %s (sha256 %s)\n", run.Source, run.SourceSHA256)
	fmt.Fprintf(w, "Output:  %s (%d bytes)\n", run.Output, run.Bytes)
	fmt.Fprintf(w, "Backend: %s\n\n", run.Backend)
	fmt.Fprintf(w, "%-8s  %s\n", "Page", "Chars")
	for _, p := range run.Pages {
		fmt.Fprintf(w, "%-8s  %d\n", p.Page, p.Chars)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-(n-3):]
}
