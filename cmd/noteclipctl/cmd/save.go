package cmd

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

var (
	saveCollectionID string
	saveTitle        string
	saveURL          string
)

var saveCmd = &cobra.Command{
	Use:   "save [url]",
	Short: "Save a page as a row in the configured Notion database",
	Long: `Save a page (title + URL) as a new row.

The URL may be given as an argument, via --url, or, when both are
omitted, read from the system clipboard. An empty title is saved as
"Untitled"; if the database has no url-typed property the URL is written
into the page body instead of a structured field.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		url := saveURL
		if len(args) == 1 {
			url = args[0]
		}
		if url == "" {
			fromClipboard, err := clipboard.ReadAll()
			if err != nil {
				return fmt.Errorf("no url given and clipboard unreadable: %w", err)
			}
			url = strings.TrimSpace(fromClipboard)
			if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
				return fmt.Errorf("clipboard does not hold a url: %q", truncate(url, 60))
			}
		}

		result, err := saver.SavePage(cmd.Context(), saveCollectionID, saveTitle, url)
		if err != nil {
			return err
		}

		fmt.Printf("saved %s\n", result.Record.URL)
		if result.CollectionURL != "" {
			fmt.Printf("collection %s\n", result.CollectionURL)
		}
		return nil
	},
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func init() {
	saveCmd.Flags().StringVarP(&saveCollectionID, "collection", "c", "", "target database id (default: configured collection)")
	saveCmd.Flags().StringVarP(&saveTitle, "title", "t", "", "page title")
	saveCmd.Flags().StringVarP(&saveURL, "url", "u", "", "page url (default: argument or clipboard)")
	rootCmd.AddCommand(saveCmd)
}
