package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"playhead/internal/progress"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <item> [filename]",
		Short: "Show stored progress for an item",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *progress.Store) error {
				var (
					rec progress.Record
					ok  bool
				)
				if len(args) == 2 {
					rec, ok = store.GetProgress(args[0], args[1])
				} else {
					rec, ok = store.LatestProgress(args[0])
				}

				out := cmd.OutOrStdout()
				if !ok {
					fmt.Fprintf(out, "No progress recorded for %s\n", args[0])
					return nil
				}
				if asJSON {
					return printJSON(out, rec)
				}

				fmt.Fprintf(out, "Item:      %s\n", rec.ItemID)
				fmt.Fprintf(out, "File:      %s\n", rec.Filename)
				fmt.Fprintf(out, "Title:     %s\n", displayTitle(rec.Title))
				fmt.Fprintf(out, "Kind:      %s\n", rec.Kind)
				fmt.Fprintf(out, "Position:  %s of %s (%s)\n", formatSeconds(rec.CurrentTime), formatSeconds(rec.Duration), formatPercent(rec.Fraction()))
				fmt.Fprintf(out, "Activity:  %s\n", rec.LastActivity.Format("2006-01-02 15:04:05 MST"))
				if rec.IsAlbum() && rec.TrackFilename != nil {
					fmt.Fprintf(out, "Track:     #%d %s", trackNumber(rec), *rec.TrackFilename)
					if rec.TrackCurrentTime != nil {
						fmt.Fprintf(out, " at %s", formatSeconds(*rec.TrackCurrentTime))
					}
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "Resumable: %v\n", rec.IsResumable())
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the record as JSON")
	return cmd
}

func trackNumber(rec progress.Record) int {
	if rec.TrackIndex == nil {
		return 0
	}
	return *rec.TrackIndex
}
