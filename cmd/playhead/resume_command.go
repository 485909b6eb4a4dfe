package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"playhead/internal/progress"
)

func newResumeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "resume <item>",
		Short: "Check whether an item has a resumable position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *progress.Store) error {
				out := cmd.OutOrStdout()
				rec, ok := store.LatestProgress(args[0])
				if !ok {
					fmt.Fprintf(out, "No progress recorded for %s\n", args[0])
					return nil
				}
				if !rec.IsResumable() {
					fmt.Fprintf(out, "%s has no resumable progress (just started)\n", args[0])
					return nil
				}

				elapsed := rec.CurrentTime
				unit := rec.Filename
				if rec.TrackCurrentTime != nil {
					elapsed = *rec.TrackCurrentTime
					if rec.TrackFilename != nil {
						unit = *rec.TrackFilename
					}
				}
				fmt.Fprintf(out, "Resume %s at %s into %s\n", args[0], formatSeconds(elapsed), unit)
				return nil
			})
		},
	}
}
