package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Sena-ops/lintmerge/internal/config"
	"github.com/Sena-ops/lintmerge/internal/report"
	"github.com/Sena-ops/lintmerge/internal/session"
	"github.com/Sena-ops/lintmerge/internal/store"
)

var (
	summaryDir       string
	summaryTimestamp string
	summaryJSON      bool
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Rebuild the summary of a persisted session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := filepath.Abs(summaryDir)
		if err != nil {
			return err
		}
		ts := summaryTimestamp
		if ts == "" {
			ts, err = store.LatestTimestamp(dir)
			if err != nil {
				return err
			}
		}

		cfg, _, err := config.Load(".")
		if err != nil {
			return err
		}
		sess := &session.Session{Logger: logger, OutputDir: dir}
		out, err := sess.Resummarize(ts, cfg.EnabledTools(), report.Metadata{
			Project:  cfg.Project,
			Standard: cfg.Standard,
		})
		if err != nil {
			logger.Errorw("could not rebuild summary", "timestamp", ts, "error", err)
			return err
		}

		if summaryJSON {
			encoded, err := json.MarshalIndent(out.Document, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal document: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
			return nil
		}
		printOutcome(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	summarizeCmd.Flags().StringVarP(&summaryDir, "dir", "d", "static_analysis_reports", "Directory holding the session's results")
	summarizeCmd.Flags().StringVarP(&summaryTimestamp, "timestamp", "t", "", "Session timestamp (default: latest)")
	summarizeCmd.Flags().BoolVar(&summaryJSON, "json", false, "Print the report document as JSON")
	rootCmd.AddCommand(summarizeCmd)
}
