package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dlwhyte/agentfoundry/internal/app"
	"github.com/dlwhyte/agentfoundry/internal/domain"
	"github.com/dlwhyte/agentfoundry/internal/infrastructure/cli/helpers"
)

// NewHistoryCommand creates the history command with all subcommands
func NewHistoryCommand(container *app.Container) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded attack sessions",
	}

	historyCmd.AddCommand(
		newHistoryListCommand(container),
		newHistorySearchCommand(container),
		newHistoryClearCommand(container),
		newHistoryExportCommand(container),
		newHistoryStatsCommand(container),
		newHistoryRetainCommand(container),
	)

	return historyCmd
}

// newHistoryListCommand creates the 'history list' subcommand
func newHistoryListCommand(container *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listSessions(cmd.OutOrStdout(), container, limit, "")
		},
	}

	cmd.Flags().IntVar(&limit, "limit", domain.DefaultSessionLimit, "Max sessions to show")
	return cmd
}

// newHistorySearchCommand creates the 'history search' subcommand
func newHistorySearchCommand(container *app.Container) *cobra.Command {
	var query string
	var searchLimit int

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search sessions by prompt, outcome, or breach type",
		RunE: func(cmd *cobra.Command, args []string) error {
			if query == "" {
				return fmt.Errorf(ErrQueryRequired)
			}
			return listSessions(cmd.OutOrStdout(), container, searchLimit, query)
		},
	}

	cmd.Flags().StringVar(&query, "query", "", "Search keyword")
	cmd.Flags().IntVar(&searchLimit, "limit", domain.DefaultSessionSearchLimit, "Limit search results")
	return cmd
}

// newHistoryClearCommand creates the 'history clear' subcommand
func newHistoryClearCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every recorded session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return clearSessions(container)
		},
	}
}

// newHistoryExportCommand creates the 'history export' subcommand
func newHistoryExportCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Export sessions to a JSONL file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return exportSessions(container, args[0])
		},
	}
}

// newHistoryStatsCommand creates the 'history stats' subcommand
func newHistoryStatsCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show outcome distribution and block rate",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showSessionStats(cmd.OutOrStdout(), container)
		},
	}
}

// newHistoryRetainCommand creates the 'history retain' subcommand
func newHistoryRetainCommand(container *app.Container) *cobra.Command {
	var retainDays int

	cmd := &cobra.Command{
		Use:   "retain",
		Short: "Prune sessions older than N days and update retention policy",
		RunE: func(cmd *cobra.Command, args []string) error {
			if retainDays <= 0 {
				return fmt.Errorf(ErrInvalidRetainDays)
			}
			return updateSessionRetention(cmd.Context(), cmd.OutOrStdout(), container, retainDays)
		},
	}

	cmd.Flags().IntVar(&retainDays, "days", domain.DefaultHistoryRetainDays, "Days to retain sessions")
	return cmd
}

// listSessions prints sessions, optionally filtered by a keyword
func listSessions(out io.Writer, container *app.Container, limit int, search string) error {
	store := container.SessionStore
	if store == nil {
		return fmt.Errorf(ErrSessionStoreUnavailable)
	}

	records, err := store.Records(limit, search)
	if err != nil {
		return fmt.Errorf("failed to retrieve sessions: %w", err)
	}

	if len(records) == 0 {
		fmt.Fprintln(out, MsgNoSessionsRecorded)
		return nil
	}

	for _, rec := range records {
		marker := ""
		if rec.Simulated {
			marker = " (simulated)"
		}
		fmt.Fprintf(out, "%s | %s | %s%s | %s\n",
			rec.Timestamp.Format(domain.TimestampFormat),
			rec.Model,
			rec.Outcome,
			marker,
			rec.Prompt)
	}

	return nil
}

// clearSessions wipes the session store
func clearSessions(container *app.Container) error {
	if container.SessionStore == nil {
		return fmt.Errorf(ErrSessionStoreUnavailable)
	}

	if err := container.SessionStore.Clear(); err != nil {
		return fmt.Errorf("failed to clear sessions: %w", err)
	}

	return nil
}

// exportSessions exports sessions to a JSONL file
func exportSessions(container *app.Container, path string) error {
	store := container.SessionStore
	if store == nil {
		return fmt.Errorf(ErrSessionStoreUnavailable)
	}

	if err := store.ExportJSON(path); err != nil {
		return fmt.Errorf("failed to export sessions to %s: %w", path, err)
	}

	return nil
}

// showSessionStats displays outcome distribution and block rate
func showSessionStats(out io.Writer, container *app.Container) error {
	store := container.SessionStore
	if store == nil {
		return fmt.Errorf(ErrSessionStoreUnavailable)
	}

	records, err := store.Records(0, "")
	if err != nil {
		return fmt.Errorf("failed to retrieve sessions for analysis: %w", err)
	}

	if len(records) == 0 {
		fmt.Fprintln(out, MsgNoSessionsRecorded)
		return nil
	}

	stats := helpers.AnalyzeSessions(records)

	fmt.Fprintf(out, "Sessions analyzed: %d\n", len(records))
	fmt.Fprintf(out, "Stopped by guardrails: %d (%.1f%%)\n", stats.Stopped, stats.StopRate())
	fmt.Fprintf(out, "Breaches (real + simulated): %d\n", stats.Breaches)

	fmt.Fprintln(out, "Outcomes:")
	for _, stat := range helpers.TopCounts(stats.OutcomeCounts, 0) {
		fmt.Fprintf(out, "  %s: %d\n", stat.Name, stat.Count)
	}

	fmt.Fprintln(out, "Models:")
	for _, stat := range helpers.TopCounts(stats.ModelCounts, 5) {
		fmt.Fprintf(out, "  %s: %d\n", stat.Name, stat.Count)
	}

	return nil
}

// updateSessionRetention prunes old sessions and updates the policy
func updateSessionRetention(ctx context.Context, out io.Writer, container *app.Container, days int) error {
	store := container.SessionStore
	if store == nil {
		return fmt.Errorf(ErrSessionStoreUnavailable)
	}

	if err := store.PruneOlderThan(days); err != nil {
		return fmt.Errorf("failed to prune old sessions: %w", err)
	}

	cfg, err := container.ConfigProvider.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	cfg.History.RetentionDays = days

	if err := helpers.SaveConfigWithValidation(container, cfg); err != nil {
		return err
	}

	fmt.Fprintf(out, "Retained last %d days of sessions.\n", days)
	return nil
}
