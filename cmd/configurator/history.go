package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/configurator/pkg/cli"
	"mercator-hq/configurator/pkg/config"
	"mercator-hq/configurator/pkg/history"
	"mercator-hq/configurator/pkg/history/retention"
)

var historyFlags struct {
	session string
	model   string
	valid   bool
	invalid bool
	since   time.Duration
	limit   int
	format  string

	days       int
	maxRecords int64
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect and prune the validation history",
	Long: `Inspect and prune recorded validation runs.

History is only persistent with the sqlite backend; the memory backend
starts empty in every process.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded validation runs",
	Long: `List recorded validation runs, newest first.

Examples:
  # Last 20 runs
  configurator history list --limit 20

  # Failed runs of the last day as CSV
  configurator history list --invalid --since 24h --format csv`,
	RunE: runHistoryList,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove old validation runs",
	Long: `Remove validation runs older than the retention period and trim the
history to the configured maximum number of records.

Examples:
  # Apply history.retention from the configuration
  configurator history prune

  # Keep one week, at most 1000 runs
  configurator history prune --days 7 --max-records 1000`,
	RunE: runHistoryPrune,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd, historyPruneCmd)

	historyListCmd.Flags().StringVar(&historyFlags.session, "session", "", "filter by session id")
	historyListCmd.Flags().StringVar(&historyFlags.model, "model", "", "filter by model name")
	historyListCmd.Flags().BoolVar(&historyFlags.valid, "valid", false, "only valid runs")
	historyListCmd.Flags().BoolVar(&historyFlags.invalid, "invalid", false, "only invalid runs")
	historyListCmd.Flags().DurationVar(&historyFlags.since, "since", 0, "only runs newer than this duration")
	historyListCmd.Flags().IntVar(&historyFlags.limit, "limit", history.DefaultLimit, "maximum number of runs")
	historyListCmd.Flags().StringVar(&historyFlags.format, "format", "text", "output format: text, json, csv")
	historyListCmd.MarkFlagsMutuallyExclusive("valid", "invalid")

	historyPruneCmd.Flags().IntVar(&historyFlags.days, "days", 0, "retention in days (default: history.retention.days)")
	historyPruneCmd.Flags().Int64Var(&historyFlags.maxRecords, "max-records", 0, "maximum records kept (default: history.retention.max_records)")
}

// RecordList is a listing of validation runs.
type RecordList struct {
	Records []*history.Record `json:"records"`
	Total   int64             `json:"total"`
}

// Header implements cli.Tabular.
func (l *RecordList) Header() []string {
	return []string{"id", "recorded_at", "session_id", "model", "valid", "instances", "total", "price_limit", "violations"}
}

// Rows implements cli.Tabular.
func (l *RecordList) Rows() [][]string {
	rows := make([][]string, 0, len(l.Records))
	for _, r := range l.Records {
		rows = append(rows, []string{
			r.ID,
			r.RecordedAt.Format(time.RFC3339),
			r.SessionID,
			r.ModelName,
			strconv.FormatBool(r.Valid),
			strconv.Itoa(r.Instances),
			strconv.FormatFloat(r.Total, 'f', -1, 64),
			strconv.FormatFloat(r.PriceLimit, 'f', -1, 64),
			strings.Join(r.Violations, "; "),
		})
	}
	return rows
}

// WriteText prints the listing in human-readable form.
func (l *RecordList) WriteText(w io.Writer) error {
	fmt.Fprintf(w, "Validation runs: %d of %d\n", len(l.Records), l.Total)
	for _, r := range l.Records {
		status := "✓ valid"
		if !r.Valid {
			status = "✗ invalid"
		}
		fmt.Fprintf(w, "\n%s  %s  %s\n", r.RecordedAt.Format(time.RFC3339), r.ModelName, status)
		fmt.Fprintf(w, "  session: %s  instances: %d  total: %s\n",
			r.SessionID, r.Instances, strconv.FormatFloat(r.Total, 'f', -1, 64))
		for _, v := range r.Violations {
			if _, err := fmt.Fprintf(w, "  • %s\n", v); err != nil {
				return err
			}
		}
	}
	return nil
}

func historyQuery() *history.Query {
	q := &history.Query{
		SessionID: historyFlags.session,
		ModelName: historyFlags.model,
		Limit:     historyFlags.limit,
	}
	if historyFlags.valid || historyFlags.invalid {
		valid := historyFlags.valid
		q.Valid = &valid
	}
	if historyFlags.since > 0 {
		start := time.Now().Add(-historyFlags.since)
		q.StartTime = &start
	}
	return q
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	cfg := config.MustGetConfig()
	ctx := cmd.Context()

	out, err := formatter(historyFlags.format)
	if err != nil {
		return err
	}
	store, err := openHistory(&cfg.History)
	if err != nil {
		return cli.NewCommandError("history list", err)
	}
	if store == nil {
		return cli.NewConfigError("history.enabled", "history is disabled")
	}
	defer store.Close()

	q := historyQuery()
	records, err := store.Query(ctx, q)
	if err != nil {
		return cli.NewCommandError("history list", err)
	}
	total, err := store.Count(ctx, q)
	if err != nil {
		return cli.NewCommandError("history list", err)
	}

	return out.FormatTo(cmd.OutOrStdout(), &RecordList{Records: records, Total: total})
}

func runHistoryPrune(cmd *cobra.Command, args []string) error {
	cfg := config.MustGetConfig()

	store, err := openHistory(&cfg.History)
	if err != nil {
		return cli.NewCommandError("history prune", err)
	}
	if store == nil {
		return cli.NewConfigError("history.enabled", "history is disabled")
	}
	defer store.Close()

	rc := retentionConfig(&cfg.History.Retention)
	if cmd.Flags().Changed("days") {
		rc.RetentionDays = historyFlags.days
	}
	if cmd.Flags().Changed("max-records") {
		rc.MaxRecords = historyFlags.maxRecords
	}

	removed, err := retention.NewPruner(store, rc).Prune(cmd.Context())
	if err != nil {
		return cli.NewCommandError("history prune", err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d record(s)\n", removed)
	return err
}

func retentionConfig(cfg *config.RetentionConfig) *retention.Config {
	return &retention.Config{
		RetentionDays: cfg.Days,
		PruneSchedule: cfg.Schedule,
		MaxRecords:    cfg.MaxRecords,
	}
}
