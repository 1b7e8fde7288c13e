package cli

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	historyapp "github.com/doeshing/qrgen/internal/application/history"
	"github.com/doeshing/qrgen/internal/domain"
	"github.com/doeshing/qrgen/internal/infrastructure/cli/helpers"
)

const (
	msgNoHistoryRecorded = "No history recorded yet."
	msgNoMatches         = "No matching history entries."
)

func newHistoryCommand(s *session) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect and edit generation history",
	}

	historyCmd.AddCommand(
		newHistoryListCommand(s),
		newHistorySearchCommand(s),
		newHistoryShowCommand(s),
		newHistoryRenameCommand(s),
		newHistoryDeleteCommand(s),
		newHistoryClearCommand(s),
		newHistoryExportCommand(s),
		newHistoryStatsCommand(s),
	)
	return historyCmd
}

func historyService(cmd *cobra.Command, s *session) (*historyapp.Service, error) {
	container, err := s.Container(cmd)
	if err != nil {
		return nil, err
	}
	if container.HistoryService == nil {
		return nil, fmt.Errorf("history store unavailable")
	}
	return container.HistoryService, nil
}

func newHistoryListCommand(s *session) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent history entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := historyService(cmd, s)
			if err != nil {
				return err
			}
			records, err := svc.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			printRecords(cmd.OutOrStdout(), records, msgNoHistoryRecorded)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", domain.DefaultHistoryLimit, "Max entries to show (0 for all)")
	return cmd
}

func newHistorySearchCommand(s *session) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search history text and file paths",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := historyService(cmd, s)
			if err != nil {
				return err
			}
			records, err := svc.Search(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			printRecords(cmd.OutOrStdout(), records, msgNoMatches)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Limit search results (0 for all)")
	return cmd
}

func newHistoryShowCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "show <path>",
		Short: "Show the history entry for an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := historyService(cmd, s)
			if err != nil {
				return err
			}
			rec, ok, err := svc.Find(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no history entry for %s", args[0])
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Text:    %s\n", rec.Text)
			fmt.Fprintf(out, "File:    %s\n", rec.FilePath)
			fmt.Fprintf(out, "Kind:    %s\n", historyapp.Classify(rec.Text))
			fmt.Fprintf(out, "Created: %s\n", formatCreatedAt(rec.CreatedAt))
			return nil
		},
	}
}

func newHistoryRenameCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <path> <new text>",
		Short: "Change the text recorded for an image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := historyService(cmd, s)
			if err != nil {
				return err
			}
			changed, err := svc.Rename(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if !changed {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing renamed.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s\n", args[0])
			return nil
		},
	}
}

func newHistoryDeleteCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <path>...",
		Short: "Remove history entries by image path",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := historyService(cmd, s)
			if err != nil {
				return err
			}
			removed, err := svc.Delete(cmd.Context(), args...)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d of %d entries.\n", removed, len(args))
			return nil
		},
	}
}

func newHistoryClearCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all history entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := historyService(cmd, s)
			if err != nil {
				return err
			}
			if err := svc.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
			return nil
		},
	}
}

func newHistoryExportCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Export history as a JSON array",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := historyService(cmd, s)
			if err != nil {
				return err
			}
			count, err := svc.Export(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries to %s\n", count, args[0])
			return nil
		},
	}
}

func newHistoryStatsCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarise history by payload kind",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := historyService(cmd, s)
			if err != nil {
				return err
			}
			stats, err := svc.Stats(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if stats.Total == 0 {
				fmt.Fprintln(out, msgNoHistoryRecorded)
				return nil
			}
			fmt.Fprintf(out, "Total entries: %s\n", humanize.Comma(int64(stats.Total)))
			fmt.Fprintf(out, "Unique files: %d (%d missing on disk)\n", stats.UniquePaths, stats.MissingFiles)
			for _, kind := range helpers.SortKindCounts(stats.ByKind) {
				fmt.Fprintf(out, "  %-7s %4d  %5.1f%%\n", kind.Kind, kind.Count, helpers.Percentage(kind.Count, stats.Total))
			}
			return nil
		},
	}
}

func printRecords(out io.Writer, records domain.HistoryLog, empty string) {
	if len(records) == 0 {
		fmt.Fprintln(out, empty)
		return
	}
	for _, rec := range records {
		fmt.Fprintf(out, "%s | %s | %s\n", formatCreatedAt(rec.CreatedAt), rec.FilePath, rec.Text)
	}
}
