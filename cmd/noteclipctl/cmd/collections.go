package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var refreshCollections bool

var collectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "List the Notion databases the configured key can write to",
	Long: `List the databases visible to the configured Notion integration,
most recently edited first. Listings are cached for six hours per
credential; --refresh forces a live fetch. Only the first 100 databases
are returned.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		collections, cached, err := discovery.ListCollections(cmd.Context(), refreshCollections)
		if err != nil {
			return err
		}

		source := "live"
		if cached {
			source = "cached"
		}
		fmt.Printf("%d collections (%s)\n", len(collections), source)
		for _, c := range collections {
			fmt.Printf("%s  %s\n    %s\n", c.ID, c.Title, c.URL)
		}
		return nil
	},
}

func init() {
	collectionsCmd.Flags().BoolVar(&refreshCollections, "refresh", false, "bypass the cache and fetch live")
	rootCmd.AddCommand(collectionsCmd)
}
