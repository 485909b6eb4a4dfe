package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"playhead/internal/progress"
)

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <item> [filename]",
		Short: "Remove stored progress for an item or a single file",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *progress.Store) error {
				out := cmd.OutOrStdout()
				if len(args) == 2 {
					store.RemoveProgress(args[0], args[1])
					fmt.Fprintf(out, "Removed progress for %s/%s\n", args[0], args[1])
					return nil
				}
				store.RemoveItemProgress(args[0])
				fmt.Fprintf(out, "Removed all progress for %s\n", args[0])
				return nil
			})
		},
	}
}

func newClearCommand(ctx *commandContext) *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every stored progress record",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmed {
				return fmt.Errorf("refusing to clear all progress without --yes")
			}
			return ctx.withStore(func(store *progress.Store) error {
				store.Clear()
				fmt.Fprintln(cmd.OutOrStdout(), "Cleared all progress")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&confirmed, "yes", false, "Confirm clearing all progress")
	return cmd
}
