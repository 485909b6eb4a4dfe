package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"playhead/internal/config"
	"playhead/internal/progress"
	"playhead/internal/statestore"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show a summary of stored progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *progress.Store) error {
				total := store.Count()
				watching := store.ContinueWatching(total + 1)
				listening := store.ContinueListening(total + 1)

				rows := [][]string{
					{"Total records", strconv.Itoa(total)},
					{"Continue watching", strconv.Itoa(len(watching))},
					{"Continue listening", strconv.Itoa(len(listening))},
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderTable([]string{"Metric", "Count"}, rows, []columnAlignment{alignLeft, alignRight}))
				return nil
			})
		},
	}
}

func newHealthCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Run diagnostics against the state backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withBackend(func(cfg *config.Config, backend statestore.Backend) error {
				out := cmd.OutOrStdout()

				sqliteStore, ok := backend.(*statestore.SQLiteStore)
				if !ok {
					records, err := backend.Load()
					if err != nil {
						return fmt.Errorf("read state file: %w", err)
					}
					fmt.Fprintf(out, "Backend:  file\n")
					fmt.Fprintf(out, "Path:     %s\n", cfg.StateFilePath())
					fmt.Fprintf(out, "Records:  %d\n", len(records))
					return nil
				}

				health, err := sqliteStore.CheckHealth(cmd.Context())
				if err != nil {
					return err
				}
				printSQLiteHealth(out, health)
				return nil
			})
		},
	}
}

func printSQLiteHealth(out io.Writer, health statestore.DatabaseHealth) {
	fmt.Fprintf(out, "Backend:    sqlite\n")
	fmt.Fprintf(out, "Path:       %s\n", health.DBPath)
	fmt.Fprintf(out, "Exists:     %v\n", health.DatabaseExists)
	fmt.Fprintf(out, "Readable:   %v\n", health.DatabaseReadable)
	fmt.Fprintf(out, "Table:      %v\n", health.TableExists)
	fmt.Fprintf(out, "Integrity:  %v\n", health.IntegrityCheck)
	fmt.Fprintf(out, "Records:    %d\n", health.TotalRecords)
	if health.Error != "" {
		fmt.Fprintf(out, "Error:      %s\n", health.Error)
	}
}
