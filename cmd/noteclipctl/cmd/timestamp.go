package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/noteclip/internal/application"
	"github.com/ericfisherdev/noteclip/internal/domain/model"
)

var (
	stampCollectionID string
	stampTitle        string
	stampURL          string
	stampAt           string
)

var timestampCmd = &cobra.Command{
	Use:   "timestamp",
	Short: "Append a playback timestamp to the row matching a title",
	Long: `Append a "- m:ss" bullet, hyperlinked to the position in the video,
to the row whose title exactly matches --title. When no row matches, one
is created with the bullet as its first body block.

--at accepts plain seconds ("90") or YouTube t-parameter form ("1m30s").`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		seconds, err := application.ParseTimeOffset(stampAt)
		if err != nil {
			return err
		}

		note := model.TimestampNote{Label: application.FormatPlayback(seconds)}
		if stampURL != "" {
			note.SourceURL = application.StampURL(stampURL, seconds)
		}

		result, err := saver.AddTimestamp(cmd.Context(), stampCollectionID, stampTitle, stampURL, note)
		if err != nil {
			return err
		}

		if result.Created {
			fmt.Printf("created %s\n", result.RecordURL)
		} else {
			fmt.Printf("appended to %s\n", result.RecordURL)
		}
		return nil
	},
}

func init() {
	timestampCmd.Flags().StringVarP(&stampCollectionID, "collection", "c", "", "target database id (default: configured collection)")
	timestampCmd.Flags().StringVarP(&stampTitle, "title", "t", "", "row title to match (required)")
	timestampCmd.Flags().StringVarP(&stampURL, "url", "u", "", "video url")
	timestampCmd.Flags().StringVar(&stampAt, "at", "", "playback position, e.g. 90 or 1m30s (required)")
	_ = timestampCmd.MarkFlagRequired("title")
	_ = timestampCmd.MarkFlagRequired("at")
	rootCmd.AddCommand(timestampCmd)
}
