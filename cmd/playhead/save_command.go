package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"playhead/internal/progress"
)

func newSaveCommand(ctx *commandContext) *cobra.Command {
	var (
		itemID    string
		filename  string
		position  float64
		duration  float64
		title     string
		mediaType string
		imageURL  string
		trackIdx  int
		trackFile string
		trackTime float64
	)

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Record a playback position update",
		Long: `Record a playback position update for a media file.

Single-file mode stores --time as seconds into --file. Album mode (any of the
--track-* flags) stores whole-album progress for multi-track audio: --time
holds the coarse album-level fraction and --track-time the seconds elapsed in
the active track.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if itemID == "" {
				return errors.New("--item is required")
			}

			albumMode := trackIdx >= 0 || trackFile != "" || trackTime >= 0
			var rec progress.Record
			switch {
			case albumMode:
				if trackFile == "" {
					return errors.New("album mode requires --track-file")
				}
				if trackIdx < 0 {
					trackIdx = 0
				}
				if trackTime < 0 {
					trackTime = 0
				}
				rec = progress.NewAlbumRecord(itemID, position, duration, title, mediaType, trackIdx, trackFile, trackTime)
			default:
				if filename == "" {
					return errors.New("--file is required outside album mode")
				}
				rec = progress.NewFileRecord(itemID, filename, position, duration, title, mediaType)
			}
			rec.ImageURL = imageURL

			return ctx.withStore(func(store *progress.Store) error {
				complete := rec.IsComplete()
				store.SaveProgress(rec)
				out := cmd.OutOrStdout()
				if complete {
					fmt.Fprintf(out, "Playback complete; cleared progress for %s/%s\n", rec.ItemID, rec.Filename)
					return nil
				}
				fmt.Fprintf(out, "Recorded %s at %s (%s)\n", rec.ItemID, formatSeconds(rec.CurrentTime), formatPercent(rec.Fraction()))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&itemID, "item", "", "Item identifier")
	cmd.Flags().StringVar(&filename, "file", "", "Filename within the item")
	cmd.Flags().Float64Var(&position, "time", 0, "Playhead position in seconds (album-level fraction in album mode)")
	cmd.Flags().Float64Var(&duration, "duration", 0, "Total length in seconds")
	cmd.Flags().StringVar(&title, "title", "", "Display title")
	cmd.Flags().StringVar(&mediaType, "media-type", "video", "Media type string from the library service")
	cmd.Flags().StringVar(&imageURL, "image-url", "", "Thumbnail URL")
	cmd.Flags().IntVar(&trackIdx, "track-index", -1, "Active track index (album mode)")
	cmd.Flags().StringVar(&trackFile, "track-file", "", "Active track filename (album mode)")
	cmd.Flags().Float64Var(&trackTime, "track-time", -1, "Seconds elapsed in the active track (album mode)")

	return cmd
}
