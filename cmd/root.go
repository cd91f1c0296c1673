// Package cmd provides the command-line interface for the transitions-kpi tool.
package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/openedx/transitions-kpi/internal/config"
	"github.com/openedx/transitions-kpi/internal/jira"
	"github.com/openedx/transitions-kpi/internal/kpi"
	"github.com/openedx/transitions-kpi/internal/logging"
	"github.com/openedx/transitions-kpi/internal/storage"
	"github.com/openedx/transitions-kpi/pkg/models"
)

var rootCmd = &cobra.Command{
	Use:   "transitions-kpi",
	Short: "Summarize workflow transition KPIs from the issue tracker",
	Long: `transitions-kpi scrapes ticket transition histories from the issue tracker,
caches them in a states file, and prints rolling average durations for four
workflow metrics: time in triage, total engineering time, team backlog time
and product review time.

The scrape result is cached in states.json (configurable via STATES_FILE), so
a report can be recomputed with --no-scrape without re-hitting the tracker.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		noScrape, err := cmd.Flags().GetBool("no-scrape")
		if err != nil {
			return err
		}
		debug, err := cmd.Flags().GetBool("debug")
		if err != nil {
			return err
		}
		pretty, err := cmd.Flags().GetBool("pretty")
		if err != nil {
			return err
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %v", err)
		}

		if !noScrape {
			client, err := jira.NewClient(cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize jira client: %v", err)
			}

			records, err := client.ScrapeProject(cfg.Jira.Project)
			if err != nil {
				return fmt.Errorf("failed to scrape project: %v", err)
			}

			if err := storage.Save(cfg.StatesFile, records); err != nil {
				return err
			}
			logging.Info("saved scraped records",
				"file", cfg.StatesFile,
				"record_count", len(records))
		}

		records, err := storage.Load(cfg.StatesFile)
		if err != nil {
			return err
		}

		return report(records, debug, pretty, cmd.OutOrStdout())
	},
}

// report runs the core pipeline over a record set: normalize, fold, format.
// Diagnostics and the four metric blocks are written to out in that order.
func report(records []models.Record, debug, pretty bool, out io.Writer) error {
	normalized, err := kpi.NormalizeAll(records, time.Now)
	if err != nil {
		return err
	}

	totals, err := kpi.Fold(normalized, kpi.FoldOptions{
		Debug:  debug,
		Pretty: pretty,
		Out:    out,
	})
	if err != nil {
		return err
	}

	style := kpi.StyleCompact
	if pretty {
		style = kpi.StylePretty
	}

	return kpi.WriteReport(out, totals, style)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().Bool("no-scrape", false, "Don't re-run the scraper, just read the current states file")
	rootCmd.Flags().Bool("debug", false, "Show per-ticket debugging messages")
	rootCmd.Flags().Bool("pretty", false, "Pretty print the average durations")
}
