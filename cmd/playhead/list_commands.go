package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"playhead/internal/progress"
)

func newWatchingCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "watching",
		Short: "List continue-watching items (video)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(ctx, cmd, progress.KindVideo, limit)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum entries to show")
	return cmd
}

func newListeningCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "listening",
		Short: "List continue-listening items (audio)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(ctx, cmd, progress.KindAudio, limit)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum entries to show")
	return cmd
}

func runList(ctx *commandContext, cmd *cobra.Command, kind progress.MediaKind, limit int) error {
	return ctx.withStore(func(store *progress.Store) error {
		var records []progress.Record
		resolved := ctx.listLimit(limit)
		if kind == progress.KindVideo {
			records = store.ContinueWatching(resolved)
		} else {
			records = store.ContinueListening(resolved)
		}

		out := cmd.OutOrStdout()
		if len(records) == 0 {
			fmt.Fprintln(out, "Nothing to resume")
			return nil
		}

		rows := make([][]string, 0, len(records))
		for i, rec := range records {
			rows = append(rows, []string{
				fmt.Sprintf("%d", i+1),
				displayTitle(rec.Title),
				formatPercent(rec.Fraction()),
				formatSeconds(rec.CurrentTime),
				rec.LastActivity.Format("2006-01-02 15:04"),
				rec.ItemID,
			})
		}
		headers := []string{"#", "Title", "Progress", "Position", "Last activity", "Item"}
		aligns := []columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignLeft, alignLeft}
		fmt.Fprintln(out, renderTable(headers, rows, aligns))
		return nil
	})
}
