package ui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
)

func (a *App) historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Manage saved schedules",
		Long: `Save schedules locally and bring them back later.

The history keeps the newest entries up to storage.history_limit.`,
	}

	cmd.AddCommand(a.historyListCmd())
	cmd.AddCommand(a.historySaveCmd())
	cmd.AddCommand(a.historyShowCmd())
	cmd.AddCommand(a.historyRmCmd())
	cmd.AddCommand(a.historyClearCmd())
	cmd.AddCommand(a.historyPruneCmd())
	return cmd
}

func (a *App) historyListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved schedules, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			h, err := a.openHistory()
			if err != nil {
				return err
			}
			entries, err := h.List(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No saved schedules.")
				return nil
			}
			fmt.Fprintln(out, formatHeader(fmt.Sprintf("%-5s %-16s %-24s %s", "ID", "SAVED", "TITLE", "SCORE")))
			for _, e := range entries {
				fmt.Fprintf(out, "%-5d %-16s %-24s %s %s\n",
					e.ID,
					e.CreatedAt.Local().Format("2006-01-02 15:04"),
					e.Title(),
					formatScore(e.Score),
					formatMuted(e.Source))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum entries to list (0 for all)")
	return cmd
}

func (a *App) historySaveCmd() *cobra.Command {
	var (
		label string
		rank  int
	)

	cmd := &cobra.Command{
		Use:   "save FILE",
		Short: "Save a schedule from a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSchedule(args[0], rank)
			if err != nil {
				return err
			}
			h, err := a.openHistory()
			if err != nil {
				return err
			}
			source := args[0]
			if abs, err := filepath.Abs(source); err == nil {
				source = abs
			}
			id, err := h.Save(cmd.Context(), label, source, s)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatOK(fmt.Sprintf("Saved %s as #%d", s.Title(), id)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&label, "label", "l", "", "Label shown in the history list")
	cmd.Flags().IntVarP(&rank, "rank", "r", 1, "Schedule rank within the file")
	return cmd
}

func (a *App) historyShowCmd() *cobra.Command {
	var (
		width int
		table bool
	)

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Print a saved schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			h, err := a.openHistory()
			if err != nil {
				return err
			}
			e, err := h.Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatMuted(fmt.Sprintf("#%d %s, saved %s", e.ID, e.Title(), e.CreatedAt.Local().Format("2006-01-02 15:04"))))
			if table {
				a.printTable(out, e.Schedule)
				return nil
			}
			return a.printGrid(out, e.Schedule, "", width)
		},
	}

	cmd.Flags().IntVarP(&width, "width", "w", 0, "Grid width (default terminal width)")
	cmd.Flags().BoolVarP(&table, "table", "t", false, "Show a table instead of the grid")
	return cmd
}

func (a *App) historyRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm ID",
		Short: "Delete a saved schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			h, err := a.openHistory()
			if err != nil {
				return err
			}
			if err := h.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatOK(fmt.Sprintf("Deleted #%d", id)))
			return nil
		},
	}
}

func (a *App) historyClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every saved schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			h, err := a.openHistory()
			if err != nil {
				return err
			}
			n, err := h.Clear(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatOK(fmt.Sprintf("Deleted %d saved schedule(s)", n)))
			return nil
		},
	}
}

func (a *App) historyPruneCmd() *cobra.Command {
	var keep int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Keep only the newest saved schedules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("keep") {
				keep = a.config.Storage.HistoryLimit
				if keep == 0 {
					return errors.New("history_limit is unlimited; pass --keep")
				}
			}
			h, err := a.openHistory()
			if err != nil {
				return err
			}
			n, err := h.Prune(cmd.Context(), keep)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatOK(fmt.Sprintf("Pruned %d saved schedule(s)", n)))
			return nil
		},
	}

	cmd.Flags().IntVarP(&keep, "keep", "k", 0, "Entries to keep (default storage.history_limit)")
	return cmd
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
